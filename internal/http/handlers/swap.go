package handlers

import (
	"net/http"

	"realm_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type SwapRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// SwapUsdtToRealm converts USDT into REALM at the current market price.
func (h *Handler) SwapUsdtToRealm(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.Swap.UsdtToRealm(c.Request.Context(), userID, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(ws.EventMarketTick, gin.H{"price": result.Price})
	}
	c.JSON(http.StatusOK, result)
}

// SwapRealmToUsdt converts REALM into USDT at the current market price.
func (h *Handler) SwapRealmToUsdt(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.Swap.RealmToUsdt(c.Request.Context(), userID, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(ws.EventMarketTick, gin.H{"price": result.Price})
	}
	c.JSON(http.StatusOK, result)
}
