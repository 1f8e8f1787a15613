package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type CreateBattleRequest struct {
	Wager float64 `json:"wager" binding:"required,gt=0"`
}

type JoinBattleRequest struct {
	BattleID int64 `json:"battle_id" binding:"required,min=1"`
}

// CreateBattle opens a waiting battle, debiting wager and energy.
func (h *Handler) CreateBattle(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	battle, err := h.Battles.Create(c.Request.Context(), userID, req.Wager)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"battle": battle})
}

// JoinBattle activates a waiting battle and schedules its resolution.
func (h *Handler) JoinBattle(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req JoinBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	battle, err := h.Battles.Join(c.Request.Context(), userID, req.BattleID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"battle": battle})
}

// AvailableBattles lists waiting battles open for joining.
func (h *Handler) AvailableBattles(c *gin.Context) {
	battles, err := h.BattleRepo.ListAvailable(c.Request.Context(), 50)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"battles": battles})
}

// UserBattles lists battles involving the given wallet.
func (h *Handler) UserBattles(c *gin.Context) {
	wallet := strings.ToLower(c.Param("address"))

	user, err := h.UserRepo.GetByWallet(c.Request.Context(), wallet)
	if err != nil {
		fail(c, err)
		return
	}

	battles, err := h.BattleRepo.ListByUser(c.Request.Context(), user.ID, 50)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"battles": battles})
}
