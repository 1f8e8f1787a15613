package handlers

import (
	"net/http"

	"realm_backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type DepositRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// Deposit credits USDT to the user and unlocks withdrawals. Payment
// verification happens upstream; this endpoint records the result.
func (h *Handler) Deposit(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()

	tx, err := h.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	usdtBalance, err := h.Ledger.CreditUsdtWithTx(ctx, tx, userID, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET can_withdraw = TRUE WHERE id = $1`, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	if err := h.Ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeDeposit,
		Amount:   req.Amount,
		Currency: domain.CurrencyUsdt,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usdt_balance": usdtBalance,
		"can_withdraw": true,
	})
}
