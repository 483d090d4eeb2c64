package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tripcover.backend/internal/domain/entities"
	domainerrors "tripcover.backend/internal/domain/errors"
	"tripcover.backend/internal/interfaces/http/middleware"
	"tripcover.backend/internal/interfaces/http/response"
	"tripcover.backend/internal/usecases"
)

type walletService interface {
	CreateWallet(ctx context.Context, ownerID uuid.UUID, input *entities.CreateWalletInput) (*entities.Wallet, error)
	GetWallet(ctx context.Context, ownerID uuid.UUID) (*entities.Wallet, error)
	RequestChange(ctx context.Context, walletID, requesterID uuid.UUID, input *entities.ChangeRequestInput) (*entities.WalletChangeRequest, error)
	ListChangeRequests(ctx context.Context, walletID, requesterID uuid.UUID) ([]*entities.WalletChangeRequest, error)
}

// WalletHandler handles payout wallet endpoints
type WalletHandler struct {
	walletUsecase walletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase *usecases.WalletUsecase) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// CreateWallet binds the caller's single payout wallet
// POST /api/v1/wallets
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var input entities.CreateWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("ERR_INVALID_INPUT", err.Error()))
		return
	}

	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	wallet, err := h.walletUsecase.CreateWallet(c.Request.Context(), principalID, &input)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Payout wallet bound",
		"wallet":  wallet,
	})
}

// GetWallet returns the caller's wallet, if one is bound
// GET /api/v1/wallets
func (h *WalletHandler) GetWallet(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	wallet, err := h.walletUsecase.GetWallet(c.Request.Context(), principalID)
	if err != nil {
		writeError(c, err)
		return
	}

	if wallet == nil {
		response.Success(c, http.StatusOK, gin.H{"wallet": nil})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallet": wallet})
}

// RequestChange files a change request for the caller's wallet
// POST /api/v1/wallets/:id/change-requests
func (h *WalletHandler) RequestChange(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ERR_INVALID_INPUT", "Invalid wallet ID"))
		return
	}

	var input entities.ChangeRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("ERR_INVALID_INPUT", err.Error()))
		return
	}

	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	request, err := h.walletUsecase.RequestChange(c.Request.Context(), walletID, principalID, &input)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Change request submitted for review",
		"request": request,
	})
}

// ListChangeRequests returns the wallet's change-request history
// GET /api/v1/wallets/:id/change-requests
func (h *WalletHandler) ListChangeRequests(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ERR_INVALID_INPUT", "Invalid wallet ID"))
		return
	}

	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	requests, err := h.walletUsecase.ListChangeRequests(c.Request.Context(), walletID, principalID)
	if err != nil {
		writeError(c, err)
		return
	}

	if requests == nil {
		requests = []*entities.WalletChangeRequest{}
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}
