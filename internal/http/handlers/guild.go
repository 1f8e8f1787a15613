package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CreateGuildRequest struct {
	Name       string `json:"name" binding:"required,min=3,max=32"`
	MaxMembers int    `json:"max_members" binding:"omitempty,min=2,max=100"`
	MinLevel   int    `json:"min_level" binding:"omitempty,min=1"`
	MinNFTs    int    `json:"min_nfts" binding:"omitempty,min=0"`
}

type JoinGuildRequest struct {
	GuildID int64 `json:"guild_id" binding:"required,min=1"`
}

// CreateGuild debits the creation cost and founds a guild.
func (h *Handler) CreateGuild(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req CreateGuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	guild, err := h.Guilds.Create(c.Request.Context(), userID, req.Name, req.MaxMembers, req.MinLevel, req.MinNFTs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guild": guild})
}

// JoinGuild adds the user to a guild.
func (h *Handler) JoinGuild(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req JoinGuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	guild, err := h.Guilds.Join(c.Request.Context(), userID, req.GuildID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guild": guild})
}

// LeaveGuild removes the user from their guild.
func (h *Handler) LeaveGuild(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	if err := h.Guilds.Leave(c.Request.Context(), userID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"left": true})
}

// ListGuilds returns all guilds with their members.
func (h *Handler) ListGuilds(c *gin.Context) {
	guilds, err := h.GuildRepo.List(c.Request.Context(), 100)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guilds": guilds})
}

// GetGuild returns one guild and its member wallets.
func (h *Handler) GetGuild(c *gin.Context) {
	var uri struct {
		ID int64 `uri:"id" binding:"required,min=1"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guild id"})
		return
	}

	guild, err := h.GuildRepo.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		fail(c, err)
		return
	}

	members, err := h.GuildRepo.Members(c.Request.Context(), guild.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"guild": guild, "members": members})
}
