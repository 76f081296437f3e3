package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler returns the socket.io HTTP handler mounted at /socket.io.
func (h *Hub) Handler() http.Handler {
	return h.sio.ServeHandler(nil)
}

// RegisterRoutes mounts socket.io and the stats endpoint.
func RegisterRoutes(r *gin.Engine, rg *gin.RouterGroup, hub *Hub) {
	handler := gin.WrapH(hub.Handler())
	r.Any("/socket.io", handler)
	r.Any("/socket.io/*any", handler)

	rg.GET("/gateway/stats", func(c *gin.Context) {
		online := hub.OnlineUsers()
		c.JSON(http.StatusOK, gin.H{
			"online": len(online),
			"users":  online,
		})
	})
}
