package httpserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"food-delivery/internal/domain"
	ordersvc "food-delivery/internal/service/order"
)

type statusRequest struct {
	Status      string `json:"status" binding:"required"`
	Reason      string `json:"reason"`
	DelivererID string `json:"delivererId"`
	// UpdatedAt is the order version the operator saw. When set, a newer
	// write by someone else turns this request into a 409.
	UpdatedAt *time.Time `json:"updatedAt"`
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

type correctRequest struct {
	Status      string `json:"status" binding:"required"`
	Reason      string `json:"reason"`
	DelivererID string `json:"delivererId"`
}

func parseDay(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return nil, domain.Invalid("date", "data deve estar no formato AAAA-MM-DD")
	}
	return &day, nil
}

func parseListInput(c *gin.Context) (ordersvc.ListInput, error) {
	var in ordersvc.ListInput
	var err error
	if in.From, err = parseDay(c.Query("from")); err != nil {
		return in, err
	}
	if in.To, err = parseDay(c.Query("to")); err != nil {
		return in, err
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" && raw != "all" {
		for _, part := range strings.Split(raw, ",") {
			st, ok := domain.ParseOrderStatus(part)
			if !ok {
				return in, domain.Invalid("status", "status desconhecido: "+part)
			}
			in.Statuses = append(in.Statuses, st)
		}
	}
	if raw := c.Query("paymentMethod"); raw != "" && raw != "all" {
		m, ok := domain.ParsePaymentMethod(raw)
		if !ok {
			return in, domain.Invalid("paymentMethod", "forma de pagamento desconhecida")
		}
		in.PaymentMethod = m
	}
	if raw := c.Query("paymentStatus"); raw != "" && raw != "all" {
		p, ok := domain.ParsePaymentStatus(raw)
		if !ok {
			return in, domain.Invalid("paymentStatus", "status de pagamento desconhecido")
		}
		in.PaymentStatus = p
	}
	in.DelivererID = strings.TrimSpace(c.Query("delivererId"))
	in.ToDeduct = c.Query("toDeduct") == "true"
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return in, domain.Invalid("limit", "limit inválido")
		}
		in.Limit = n
	}
	return in, nil
}

func (h *handlers) listOrders(c *gin.Context) {
	in, err := parseListInput(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	orders, err := h.OrderSvc.List(c.Request.Context(), companyFrom(c).ID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": orEmpty(orders), "count": len(orders)})
}

func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.OrderSvc.Get(c.Request.Context(), companyFrom(c).ID, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) orderOptions(c *gin.Context) {
	opts, err := h.OrderSvc.Options(c.Request.Context(), companyFrom(c).ID, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": orEmpty(opts)})
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status é obrigatório")
		return
	}
	to, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		badRequest(c, "status desconhecido")
		return
	}
	order, err := h.OrderSvc.UpdateStatus(c.Request.Context(), companyFrom(c).ID, c.Param("id"), ordersvc.StatusInput{
		To:                to,
		Reason:            req.Reason,
		DelivererID:       req.DelivererID,
		ExpectedUpdatedAt: req.UpdatedAt,
		UserID:            userFrom(c).ID,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) updatePaymentStatus(c *gin.Context) {
	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "paymentStatus é obrigatório")
		return
	}
	order, err := h.OrderSvc.UpdatePaymentStatus(c.Request.Context(), companyFrom(c).ID, c.Param("id"), domain.PaymentStatus(req.PaymentStatus), userFrom(c).ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) finalizeOrder(c *gin.Context) {
	order, err := h.OrderSvc.Finalize(c.Request.Context(), companyFrom(c).ID, c.Param("id"), userFrom(c).ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) correctOrder(c *gin.Context) {
	var req correctRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status é obrigatório")
		return
	}
	order, err := h.OrderSvc.Correct(c.Request.Context(), companyFrom(c).ID, c.Param("id"), ordersvc.StatusInput{
		To:          domain.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status))),
		Reason:      req.Reason,
		DelivererID: req.DelivererID,
		UserID:      userFrom(c).ID,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) orderHistory(c *gin.Context) {
	audits, err := h.Audits.ListByOrder(c.Request.Context(), companyFrom(c).ID, c.Param("id"), 100)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": audits})
}

// courierQueue defaults to today; ?day=AAAA-MM-DD picks another day.
func (h *handlers) courierQueue(c *gin.Context) {
	day := h.now()
	if d, err := parseDay(c.Query("day")); err != nil {
		writeError(c, h.logger, err)
		return
	} else if d != nil {
		day = *d
	}
	orders, err := h.OrderSvc.CourierQueue(c.Request.Context(), companyFrom(c).ID, userFrom(c), day)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": orEmpty(orders)})
}

func (h *handlers) confirmDelivery(c *gin.Context) {
	order, err := h.OrderSvc.ConfirmDelivery(c.Request.Context(), companyFrom(c).ID, c.Param("id"), userFrom(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
