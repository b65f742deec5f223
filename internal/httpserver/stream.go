package httpserver

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// streamOrders pushes committed order events of the company as server-sent
// events until the client disconnects or the hub closes.
func (h *handlers) streamOrders(c *gin.Context) {
	events, cancel := h.Events.Subscribe(companyFrom(c).ID)
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.SSEvent("ready", gin.H{"company": companyFrom(c).Slug})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.EventType, ev)
			return true
		}
	})
}
