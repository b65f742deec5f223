package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"food-delivery/internal/domain"
	"food-delivery/internal/rbac"
)

type ctxKey string

const (
	companyCtxKey     ctxKey = "company"
	userCtxKey        ctxKey = "user"
	cartSessionCtxKey ctxKey = "cartSession"

	cartSessionHeader = "X-Cart-Session"
)

// companyMiddleware resolves the :companySlug path segment.
func companyMiddleware(repo companyRepo, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := strings.TrimSpace(c.Param("companySlug"))
		if slug == "" {
			badRequest(c, "empresa não informada")
			return
		}
		company, err := repo.GetBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				abortWith(c, http.StatusNotFound, "Empresa não encontrada", "Verifique o endereço acessado.")
				return
			}
			writeError(c, logger, err)
			return
		}
		ctx := context.WithValue(c.Request.Context(), companyCtxKey, company)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func companyFrom(c *gin.Context) *domain.Company {
	company, _ := c.Request.Context().Value(companyCtxKey).(*domain.Company)
	return company
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// authMiddleware requires a valid access token for the current company.
func authMiddleware(auth authService, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortWith(c, http.StatusUnauthorized, "Não autenticado", "Faça login para continuar.")
			return
		}
		user, err := auth.LookupByToken(c.Request.Context(), companyFrom(c).ID, token)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		ctx := context.WithValue(c.Request.Context(), userCtxKey, user)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func userFrom(c *gin.Context) *domain.User {
	user, _ := c.Request.Context().Value(userCtxKey).(*domain.User)
	return user
}

// requireRole must run after authMiddleware. Admins satisfy every role.
func requireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rbac.HasAnyRole(userFrom(c), roles...) {
			abortWith(c, http.StatusForbidden, "Acesso negado", "Você não tem permissão para esta ação.")
			return
		}
		c.Next()
	}
}

// cartSessionMiddleware maps the cart session token to its session id.
func cartSessionMiddleware(sessions sessionService, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(cartSessionHeader))
		if token == "" {
			abortWith(c, http.StatusUnauthorized, "Sessão ausente", "Abra uma sessão de carrinho primeiro.")
			return
		}
		id, err := sessions.Lookup(c.Request.Context(), companyFrom(c).ID, token)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		ctx := context.WithValue(c.Request.Context(), cartSessionCtxKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func cartSessionFrom(c *gin.Context) string {
	id, _ := c.Request.Context().Value(cartSessionCtxKey).(string)
	return id
}
