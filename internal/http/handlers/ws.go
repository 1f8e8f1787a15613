package handlers

import (
	"net/http"

	"realm_backend/internal/logger"
	"realm_backend/internal/service"
	"realm_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

// WS upgrades the connection and subscribes it to the event feed.
// The feed is one-way; clients receive market ticks, burns and
// battle results but cannot send commands.
func (h *Handler) WS(c *gin.Context) {
	// JWT from query
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}

	if _, _, err := service.ParseJWT(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if err := ws.Serve(h.Hub, c.Writer, c.Request); err != nil {
		logger.Error("ws upgrade failed", "error", err)
	}
}
