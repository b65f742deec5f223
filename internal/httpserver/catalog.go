package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"food-delivery/internal/domain"
)

type availabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// couponRequest takes the expiry as a calendar day.
type couponRequest struct {
	Code        string            `json:"code"`
	Type        domain.CouponType `json:"type"`
	Value       decimal.Decimal   `json:"value"`
	ExpiresOn   string            `json:"expiresOn"`
	Active      *bool             `json:"active"`
	Description string            `json:"description"`
}

func (r couponRequest) coupon() (domain.Coupon, error) {
	c := domain.Coupon{
		Code:        r.Code,
		Type:        domain.CouponType(strings.ToLower(strings.TrimSpace(string(r.Type)))),
		Value:       r.Value,
		Active:      r.Active == nil || *r.Active,
		Description: strings.TrimSpace(r.Description),
	}
	raw := strings.TrimSpace(r.ExpiresOn)
	if raw == "" {
		return c, nil
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		t, rfcErr := time.Parse(time.RFC3339, raw)
		if rfcErr != nil {
			return c, domain.Invalid("expiresOn", "data de validade deve estar no formato AAAA-MM-DD")
		}
		day = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	c.ExpiresOn = day
	return c, nil
}

func (h *handlers) publicMenu(c *gin.Context) {
	menu, err := h.MenuSvc.Menu(c.Request.Context(), companyFrom(c).ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

func (h *handlers) listCategories(c *gin.Context) {
	list, err := h.CategorySvc.List(c.Request.Context(), companyFrom(c).ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": orEmpty(list)})
}

// upsertCategory creates on POST and updates the :id category on PUT.
func (h *handlers) upsertCategory(c *gin.Context) {
	var req domain.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	req.ID = c.Param("id")
	cat, err := h.CategorySvc.Upsert(c.Request.Context(), companyFrom(c).ID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, cat)
}

func (h *handlers) deleteCategory(c *gin.Context) {
	if err := h.CategorySvc.Delete(c.Request.Context(), companyFrom(c).ID, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listVariations(c *gin.Context) {
	list, err := h.VariationSvc.List(c.Request.Context(), companyFrom(c).ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": orEmpty(list)})
}

func (h *handlers) createVariation(c *gin.Context) {
	var req domain.Variation
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	v, err := h.VariationSvc.Create(c.Request.Context(), companyFrom(c).ID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *handlers) updateVariation(c *gin.Context) {
	var req domain.Variation
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	v, err := h.VariationSvc.Update(c.Request.Context(), companyFrom(c).ID, c.Param("id"), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handlers) deleteVariation(c *gin.Context) {
	if err := h.VariationSvc.Delete(c.Request.Context(), companyFrom(c).ID, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) setVariationAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "available é obrigatório")
		return
	}
	v, err := h.VariationSvc.SetAvailable(c.Request.Context(), companyFrom(c).ID, c.Param("id"), *req.Available)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handlers) listMenuItems(c *gin.Context) {
	list, err := h.MenuSvc.List(c.Request.Context(), companyFrom(c).ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": orEmpty(list)})
}

func (h *handlers) getMenuItem(c *gin.Context) {
	item, err := h.MenuSvc.Get(c.Request.Context(), companyFrom(c).ID, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) createMenuItem(c *gin.Context) {
	var req domain.MenuItem
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	item, err := h.MenuSvc.Create(c.Request.Context(), companyFrom(c).ID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *handlers) updateMenuItem(c *gin.Context) {
	var req domain.MenuItem
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	item, err := h.MenuSvc.Update(c.Request.Context(), companyFrom(c).ID, c.Param("id"), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) deleteMenuItem(c *gin.Context) {
	if err := h.MenuSvc.Delete(c.Request.Context(), companyFrom(c).ID, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) setMenuItemAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "available é obrigatório")
		return
	}
	item, err := h.MenuSvc.SetAvailable(c.Request.Context(), companyFrom(c).ID, c.Param("id"), *req.Available)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) listCoupons(c *gin.Context) {
	list, err := h.CouponSvc.List(c.Request.Context(), companyFrom(c).ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": orEmpty(list)})
}

func (h *handlers) createCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	in, err := req.coupon()
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	coupon, err := h.CouponSvc.Create(c.Request.Context(), companyFrom(c).ID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

func (h *handlers) updateCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	in, err := req.coupon()
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	coupon, err := h.CouponSvc.Update(c.Request.Context(), companyFrom(c).ID, c.Param("id"), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

func (h *handlers) deleteCoupon(c *gin.Context) {
	if err := h.CouponSvc.Delete(c.Request.Context(), companyFrom(c).ID, c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) setCouponActive(c *gin.Context) {
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "active é obrigatório")
		return
	}
	coupon, err := h.CouponSvc.SetActive(c.Request.Context(), companyFrom(c).ID, c.Param("id"), *req.Active)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

func orEmpty[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
