package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	delivsvc "food-delivery/internal/service/deliverer"
)

func (h *handlers) listDeliverers(c *gin.Context) {
	list, err := h.DelivererSvc.List(c.Request.Context(), companyFrom(c).ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": orEmpty(list)})
}

func (h *handlers) listActiveDeliverers(c *gin.Context) {
	list, err := h.DelivererSvc.ListActive(c.Request.Context(), companyFrom(c).ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": orEmpty(list)})
}

func (h *handlers) createDeliverer(c *gin.Context) {
	var req delivsvc.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	u, err := h.DelivererSvc.Create(c.Request.Context(), companyFrom(c).ID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *handlers) updateDeliverer(c *gin.Context) {
	var req delivsvc.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "corpo da requisição inválido")
		return
	}
	u, err := h.DelivererSvc.Update(c.Request.Context(), companyFrom(c).ID, c.Param("id"), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *handlers) toggleDeliverer(c *gin.Context) {
	u, err := h.DelivererSvc.Toggle(c.Request.Context(), companyFrom(c).ID, c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
