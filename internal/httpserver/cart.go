package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "food-delivery/internal/service/cart"
	ordersvc "food-delivery/internal/service/order"
)

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type couponCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *handlers) issueCartSession(c *gin.Context) {
	session, err := h.SessionSvc.Issue(c.Request.Context(), companyFrom(c).ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.CartSvc.Quote(companyFrom(c).ID, cartSessionFrom(c)))
}

func (h *handlers) clearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.CartSvc.Clear(companyFrom(c).ID, cartSessionFrom(c)))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req cartsvc.AddInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	quote, err := h.CartSvc.Add(c.Request.Context(), companyFrom(c).ID, cartSessionFrom(c), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *handlers) changeCartItem(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity é obrigatório")
		return
	}
	c.JSON(http.StatusOK, h.CartSvc.ChangeQuantity(companyFrom(c).ID, cartSessionFrom(c), c.Param("key"), *req.Quantity))
}

func (h *handlers) increaseCartItem(c *gin.Context) {
	c.JSON(http.StatusOK, h.CartSvc.Increase(companyFrom(c).ID, cartSessionFrom(c), c.Param("key")))
}

func (h *handlers) decreaseCartItem(c *gin.Context) {
	c.JSON(http.StatusOK, h.CartSvc.Decrease(companyFrom(c).ID, cartSessionFrom(c), c.Param("key")))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	c.JSON(http.StatusOK, h.CartSvc.Remove(companyFrom(c).ID, cartSessionFrom(c), c.Param("key")))
}

func (h *handlers) applyCoupon(c *gin.Context) {
	var req couponCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "código do cupom é obrigatório")
		return
	}
	quote, err := h.CartSvc.ApplyCoupon(c.Request.Context(), companyFrom(c).ID, cartSessionFrom(c), req.Code, h.now())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *handlers) removeCoupon(c *gin.Context) {
	c.JSON(http.StatusOK, h.CartSvc.RemoveCoupon(companyFrom(c).ID, cartSessionFrom(c)))
}

// checkout takes the cart out of the session and puts it back if the order
// cannot be placed, so a second checkout never sees the same cart.
func (h *handlers) checkout(c *gin.Context) {
	var req ordersvc.CheckoutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	companyID, sessionID := companyFrom(c).ID, cartSessionFrom(c)
	st := h.CartSvc.Take(companyID, sessionID)
	order, err := h.OrderSvc.Checkout(c.Request.Context(), companyID, st, req)
	if err != nil {
		h.CartSvc.Restore(companyID, sessionID, st)
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *handlers) createPDVOrder(c *gin.Context) {
	var req ordersvc.PDVInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	companyID, sessionID := companyFrom(c).ID, cartSessionFrom(c)
	st := h.CartSvc.Take(companyID, sessionID)
	order, err := h.OrderSvc.CreatePDV(c.Request.Context(), companyID, st, req)
	if err != nil {
		h.CartSvc.Restore(companyID, sessionID, st)
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
