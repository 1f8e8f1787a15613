package handlers

import (
	"net/http"

	"realm_backend/internal/domain"
	"realm_backend/internal/economy"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type BuyNFTRequest struct {
	NFTID int64 `json:"nft_id" binding:"required,min=1"`
}

// Marketplace lists NFTs open for purchase.
func (h *Handler) Marketplace(c *gin.Context) {
	nfts, err := h.NFTRepo.Marketplace(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nfts": nfts})
}

// MyNFTs lists the authenticated user's NFTs.
func (h *Handler) MyNFTs(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	nfts, err := h.NFTRepo.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nfts": nfts})
}

// BuyNFT debits the buyer, assigns ownership and unlocks withdrawals.
// The platform share is computed for the audit trail only; no admin
// balance is credited.
func (h *Handler) BuyNFT(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req BuyNFTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()

	nft, err := h.NFTRepo.GetByID(ctx, req.NFTID)
	if err != nil {
		fail(c, err)
		return
	}
	if nft.OwnerID != nil {
		fail(c, domain.ErrNFTAlreadyOwned)
		return
	}

	tx, err := h.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := h.UserRepo.GetByIDForUpdate(ctx, tx, userID); err != nil {
		fail(c, err)
		return
	}

	newBalance, err := h.Ledger.DebitRealmWithTx(ctx, tx, userID, nft.Price)
	if err != nil {
		fail(c, err)
		return
	}

	claimed, err := h.NFTRepo.AssignOwnerWithTx(ctx, tx, nft.ID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if !claimed {
		fail(c, domain.ErrNFTAlreadyOwned)
		return
	}

	// First purchase unlocks swaps and withdrawals.
	if _, err := tx.Exec(ctx,
		`UPDATE users SET can_withdraw = TRUE WHERE id = $1`, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	adminFee := economy.NFTAdminFee(nft.Price)
	if err := h.Ledger.LogWithTx(ctx, tx, &domain.Transaction{
		UserID:   userID,
		Type:     domain.TxTypeNFTPurchase,
		Amount:   nft.Price,
		Currency: domain.CurrencyRealm,
		AdminFee: adminFee,
		Meta:     map[string]interface{}{"nft_id": nft.ID, "name": nft.Name},
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nft":           nft,
		"realm_balance": newBalance,
		"admin_fee":     adminFee,
		"can_withdraw":  true,
	})
}
