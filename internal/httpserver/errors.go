package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"food-delivery/internal/cart"
	"food-delivery/internal/domain"
	"food-delivery/internal/orderstatus"
	authsvc "food-delivery/internal/service/auth"
	cartsvc "food-delivery/internal/service/cart"
	couponsvc "food-delivery/internal/service/coupon"
	ordersvc "food-delivery/internal/service/order"
	sessionsvc "food-delivery/internal/service/session"
)

// errorBody is the toast shape the front end renders: a short title plus a
// human message.
type errorBody struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func abortWith(c *gin.Context, status int, title, message string) {
	c.AbortWithStatusJSON(status, errorBody{Title: title, Message: message})
}

// writeError maps service errors to status codes. Anything unrecognized is
// logged and reported as 500 without details.
func writeError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	var (
		vErr   *domain.ValidationError
		selErr *cart.SelectionError
	)
	switch {
	case errors.As(err, &vErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Title: "Dados inválidos", Message: vErr.Message, Field: vErr.Field})
	case errors.As(err, &selErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorBody{Title: "Seleção inválida", Message: selErr.Message, Field: selErr.GroupID})
	case errors.Is(err, couponsvc.ErrInvalidCoupon):
		abortWith(c, http.StatusUnprocessableEntity, "Cupom inválido", "Cupom não encontrado ou inativo.")
	case errors.Is(err, couponsvc.ErrExpiredCoupon):
		abortWith(c, http.StatusUnprocessableEntity, "Cupom expirado", "Este cupom já expirou.")
	case errors.Is(err, cartsvc.ErrItemUnavailable):
		abortWith(c, http.StatusUnprocessableEntity, "Item indisponível", "Este item não está disponível no momento.")
	case errors.Is(err, orderstatus.ErrIllegalTransition):
		abortWith(c, http.StatusUnprocessableEntity, "Status inválido", "Esta mudança de status não é permitida.")
	case errors.Is(err, orderstatus.ErrReasonRequired):
		abortWith(c, http.StatusUnprocessableEntity, "Motivo obrigatório", "Informe o motivo do cancelamento.")
	case errors.Is(err, orderstatus.ErrDelivererRequired):
		abortWith(c, http.StatusUnprocessableEntity, "Entregador obrigatório", "Selecione um entregador.")
	case errors.Is(err, ordersvc.ErrDelivererUnavailable):
		abortWith(c, http.StatusUnprocessableEntity, "Entregador indisponível", "O entregador não existe ou está inativo.")
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		abortWith(c, http.StatusUnauthorized, "Falha no login", "Email ou senha incorretos.")
	case errors.Is(err, authsvc.ErrInvalidToken), errors.Is(err, sessionsvc.ErrInvalidToken):
		abortWith(c, http.StatusUnauthorized, "Sessão expirada", "Faça login novamente.")
	case errors.Is(err, domain.ErrNotFound):
		abortWith(c, http.StatusNotFound, "Não encontrado", "O recurso solicitado não existe.")
	case errors.Is(err, domain.ErrAlreadyExists):
		abortWith(c, http.StatusConflict, "Já cadastrado", "Já existe um registro com estes dados.")
	case errors.Is(err, domain.ErrConflict):
		abortWith(c, http.StatusConflict, "Pedido alterado", "O pedido foi alterado por outra pessoa. Recarregue e tente novamente.")
	default:
		logger.Errorw("http: request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		abortWith(c, http.StatusInternalServerError, "Erro", "Não foi possível concluir a operação.")
	}
}

func badRequest(c *gin.Context, message string) {
	abortWith(c, http.StatusBadRequest, "Requisição inválida", message)
}
