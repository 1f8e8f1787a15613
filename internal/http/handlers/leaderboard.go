package handlers

import (
	"net/http"
	"strconv"

	"realm_backend/internal/leaderboard"

	"github.com/gin-gonic/gin"
)

// Leaderboard returns the top players by battles won. Served from the
// Redis sorted set when available, otherwise straight from SQL.
func (h *Handler) Leaderboard(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	if h.Board.Enabled() {
		entries, err := h.Board.Top(c.Request.Context(), limit)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"leaderboard": entries, "source": "redis"})
			return
		}
	}

	users, err := h.UserRepo.TopByBattlesWon(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}

	entries := make([]leaderboard.Entry, 0, len(users))
	for i, u := range users {
		entries = append(entries, leaderboard.Entry{
			Rank:   i + 1,
			Wallet: u.WalletAddress,
			Wins:   u.BattlesWon,
		})
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries, "source": "sql"})
}
