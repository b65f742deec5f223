package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"food-delivery/internal/domain"
)

// lookupAddress prefills checkout fields. A miss is a 404 the form treats
// as "type it in".
func (h *handlers) lookupAddress(c *gin.Context) {
	addr, err := h.Address.Lookup(c.Request.Context(), c.Param("postalCode"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			abortWith(c, http.StatusNotFound, "CEP não encontrado", "Preencha o endereço manualmente.")
			return
		}
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}
