package handlers

import (
	"net/http"
	"strings"

	"realm_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required,min=4,max=128"`
}

// Login creates-or-fetches the user for a wallet address and issues a
// session token. New users get the starting balance and a referral code.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet_address is required"})
		return
	}

	wallet := strings.ToLower(strings.TrimSpace(req.WalletAddress))

	user, err := h.UserRepo.GetOrCreate(c.Request.Context(), wallet)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := service.GenerateJWT(user.ID, user.WalletAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
