package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tripcover.backend/internal/domain/entities"
	domainerrors "tripcover.backend/internal/domain/errors"
	"tripcover.backend/internal/interfaces/http/middleware"
	"tripcover.backend/internal/interfaces/http/response"
	"tripcover.backend/internal/usecases"
	"tripcover.backend/pkg/utils"
)

type verificationAdminService interface {
	Decide(ctx context.Context, principalID uuid.UUID, decision entities.VerificationDecision) (*entities.VerificationRecord, error)
	ListByStatus(ctx context.Context, status entities.VerificationStatus, limit, offset int) ([]*entities.VerificationRecord, int64, error)
}

type walletAdminService interface {
	DecideChange(ctx context.Context, requestID uuid.UUID, decision entities.ChangeDecision) (*entities.WalletChangeRequest, error)
	ListChangeRequestsByStatus(ctx context.Context, status entities.ChangeRequestStatus, limit, offset int) ([]*entities.WalletChangeRequest, int64, error)
}

// AdminHandler is the admin decision boundary: authorization plus
// delegation, no workflow logic of its own
type AdminHandler struct {
	verificationUsecase verificationAdminService
	walletUsecase       walletAdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(verificationUsecase *usecases.VerificationUsecase, walletUsecase *usecases.WalletUsecase) *AdminHandler {
	return &AdminHandler{
		verificationUsecase: verificationUsecase,
		walletUsecase:       walletUsecase,
	}
}

type decisionInput struct {
	Outcome string `json:"outcome" binding:"required"`
}

// ListVerifications lists the verification review queue
// GET /api/v1/admin/verifications?status=&page=&limit=
func (h *AdminHandler) ListVerifications(c *gin.Context) {
	status := entities.VerificationStatus(c.DefaultQuery("status", string(entities.VerificationPendingReview)))
	params := utils.GetPaginationParams(queryInt(c, "page", 1), queryInt(c, "limit", 20))

	records, total, err := h.verificationUsecase.ListByStatus(c.Request.Context(), status, params.Limit, params.CalculateOffset())
	if err != nil {
		writeError(c, err)
		return
	}

	if records == nil {
		records = []*entities.VerificationRecord{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"records":    records,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// DecideVerification records a verdict on a principal's pending document
// POST /api/v1/admin/verifications/:principalId/decision
func (h *AdminHandler) DecideVerification(c *gin.Context) {
	principalID, err := uuid.Parse(c.Param("principalId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ERR_INVALID_INPUT", "Invalid principal ID"))
		return
	}

	var input decisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("ERR_INVALID_INPUT", err.Error()))
		return
	}

	record, err := h.verificationUsecase.Decide(c.Request.Context(), principalID, entities.VerificationDecision(input.Outcome))
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.CountVerificationDecision(input.Outcome)
	response.Success(c, http.StatusOK, gin.H{
		"message": "Decision recorded",
		"record":  record,
	})
}

// ListChangeRequests lists the wallet change review queue
// GET /api/v1/admin/change-requests?status=&page=&limit=
func (h *AdminHandler) ListChangeRequests(c *gin.Context) {
	status := entities.ChangeRequestStatus(c.DefaultQuery("status", string(entities.ChangeRequestPending)))
	params := utils.GetPaginationParams(queryInt(c, "page", 1), queryInt(c, "limit", 20))

	requests, total, err := h.walletUsecase.ListChangeRequestsByStatus(c.Request.Context(), status, params.Limit, params.CalculateOffset())
	if err != nil {
		writeError(c, err)
		return
	}

	if requests == nil {
		requests = []*entities.WalletChangeRequest{}
	}

	response.Success(c, http.StatusOK, gin.H{
		"requests":   requests,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// DecideChangeRequest records a verdict on a pending wallet change
// POST /api/v1/admin/change-requests/:id/decision
func (h *AdminHandler) DecideChangeRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ERR_INVALID_INPUT", "Invalid request ID"))
		return
	}

	var input decisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("ERR_INVALID_INPUT", err.Error()))
		return
	}

	request, err := h.walletUsecase.DecideChange(c.Request.Context(), requestID, entities.ChangeDecision(input.Outcome))
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.CountWalletChangeDecision(input.Outcome)
	response.Success(c, http.StatusOK, gin.H{
		"message": "Decision recorded",
		"request": request,
	})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
