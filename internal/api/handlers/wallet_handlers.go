package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/loopcard/loop_service/internal/adapters/striga"
)

// WalletHandlers handles wallet, transaction and rate HTTP requests
type WalletHandlers struct {
	wallets *striga.WalletService
	logger  *zap.Logger
}

// NewWalletHandlers creates new wallet handlers
func NewWalletHandlers(wallets *striga.WalletService, logger *zap.Logger) *WalletHandlers {
	return &WalletHandlers{
		wallets: wallets,
		logger:  logger,
	}
}

type createWalletRequest struct {
	UserUUID string `json:"userUuid" binding:"required,uuid"`
	Name     string `json:"name" binding:"required"`
}

// CreateWallet creates a custodial wallet for a managed user
// POST /api/v1/wallets
func (h *WalletHandlers) CreateWallet(c *gin.Context) {
	var req createWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	wallet, err := h.wallets.CreateWallet(c.Request.Context(), req.UserUUID, req.Name)
	if err != nil {
		h.logger.Error("Failed to create wallet", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, wallet)
}

// GetWallet retrieves a wallet owned by a managed user
// GET /api/v1/users/:id/wallets/:walletId
func (h *WalletHandlers) GetWallet(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_USER_ID", "message": "User id must be a UUID"})
		return
	}

	wallet, err := h.wallets.GetWallet(c.Request.Context(), userUUID.String(), c.Param("walletId"))
	if err != nil {
		h.logger.Error("Failed to get wallet", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// GetWalletBalance retrieves the balances of a wallet
// GET /api/v1/wallets/:walletId/balance
func (h *WalletHandlers) GetWalletBalance(c *gin.Context) {
	balance, err := h.wallets.GetWalletBalance(c.Request.Context(), c.Param("walletId"))
	if err != nil {
		h.logger.Error("Failed to get wallet balance", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// CreateTransaction submits a transfer to the provider
// POST /api/v1/transactions
func (h *WalletHandlers) CreateTransaction(c *gin.Context) {
	var req striga.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	tx, err := h.wallets.CreateTransaction(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create transaction", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// GetVaults lists the provider custody vaults
// GET /api/v1/vaults
func (h *WalletHandlers) GetVaults(c *gin.Context) {
	vaults, err := h.wallets.GetVaults(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get vaults", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vaults)
}

// GetRates returns the supported-asset rates against a base asset
// GET /api/v1/rates?base=USD
func (h *WalletHandlers) GetRates(c *gin.Context) {
	base := c.DefaultQuery("base", "USD")

	rates, err := h.wallets.GetRates(c.Request.Context(), base)
	if err != nil {
		h.logger.Error("Failed to get rates", zap.String("base", base), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"base": base, "rates": rates})
}
