package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetUser returns the ledger record for a wallet address.
func (h *Handler) GetUser(c *gin.Context) {
	wallet := strings.ToLower(c.Param("address"))

	user, err := h.UserRepo.GetByWallet(c.Request.Context(), wallet)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Me returns the authenticated user's record with pending staking
// rewards included.
func (h *Handler) Me(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"user":            user,
		"pending_rewards": h.Staking.PendingRewards(user, timeNow()),
	})
}

// GetUserTransactions returns the audit trail for a wallet address.
func (h *Handler) GetUserTransactions(c *gin.Context) {
	wallet := strings.ToLower(c.Param("address"))

	user, err := h.UserRepo.GetByWallet(c.Request.Context(), wallet)
	if err != nil {
		fail(c, err)
		return
	}

	txs, err := h.TransactionRepo.GetByUserID(c.Request.Context(), user.ID, 100)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}
