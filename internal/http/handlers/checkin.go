package handlers

import (
	"net/http"
	"time"

	"realm_backend/internal/domain"
	"realm_backend/internal/economy"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// Checkin credits the daily reward once per UTC calendar day.
func (h *Handler) Checkin(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	ctx := c.Request.Context()

	tx, err := h.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := h.UserRepo.GetByIDForUpdate(ctx, tx, userID)
	if err != nil {
		fail(c, err)
		return
	}

	now := timeNow()
	if user.CheckedInToday(now) {
		fail(c, domain.ErrAlreadyCheckedIn)
		return
	}

	newBalance, err := h.Ledger.CreditRealmWithTx(ctx, tx, userID, economy.CheckinReward)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.Ledger.AddExperienceWithTx(ctx, tx, userID, economy.CheckinRewardXP); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if _, err := tx.Exec(ctx,
		`UPDATE users SET last_checkin = $1 WHERE id = $2`, now, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	if err := h.Ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeCheckin,
		Amount:   economy.CheckinReward,
		Currency: domain.CurrencyRealm,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reward":        economy.CheckinReward,
		"xp":            economy.CheckinRewardXP,
		"realm_balance": newBalance,
	})
}
