package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type UseReferralRequest struct {
	ReferralCode string `json:"referral_code" binding:"required,min=4,max=16"`
}

// UseReferral applies a referral code for the authenticated user.
func (h *Handler) UseReferral(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req UseReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	newBalance, err := h.Referrals.Use(c.Request.Context(), userID, req.ReferralCode)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"realm_balance": newBalance})
}

// MyReferralCode returns the authenticated user's code.
func (h *Handler) MyReferralCode(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"referral_code": user.ReferralCode})
}

// ReferralStats returns the referral counters for the user.
func (h *Handler) ReferralStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	stats, err := h.Referrals.Stats(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
