package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MarketData returns the current market record.
func (h *Handler) MarketData(c *gin.Context) {
	market, err := h.Market.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"market": market})
}
