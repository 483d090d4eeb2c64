package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tripcover.backend/internal/domain/entities"
	domainerrors "tripcover.backend/internal/domain/errors"
	"tripcover.backend/internal/interfaces/http/middleware"
	"tripcover.backend/internal/interfaces/http/response"
	"tripcover.backend/internal/usecases"
)

type verificationService interface {
	SubmitDocument(ctx context.Context, principalID uuid.UUID, input *entities.SubmitDocumentInput, content io.Reader) (*entities.VerificationRecord, error)
	GetStatus(ctx context.Context, principalID uuid.UUID) (*entities.VerificationRecord, error)
}

// VerificationHandler handles identity-verification endpoints
type VerificationHandler struct {
	verificationUsecase verificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationUsecase *usecases.VerificationUsecase) *VerificationHandler {
	return &VerificationHandler{verificationUsecase: verificationUsecase}
}

// SubmitDocument accepts an identity document upload
// POST /api/v1/verification/documents
func (h *VerificationHandler) SubmitDocument(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("ERR_MISSING_FILE", "A document file is required"))
		return
	}

	documentType := c.PostForm("documentType")
	if documentType == "" {
		response.Error(c, domainerrors.BadRequest("ERR_MISSING_DOCUMENT_TYPE", "documentType is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.InternalError(err))
		return
	}
	defer file.Close()

	input := &entities.SubmitDocumentInput{
		DocumentType: entities.DocumentType(documentType),
		FileName:     fileHeader.Filename,
		FileSize:     fileHeader.Size,
		ContentType:  fileHeader.Header.Get("Content-Type"),
	}

	record, err := h.verificationUsecase.SubmitDocument(c.Request.Context(), principalID, input, file)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Document submitted for review",
		"record":  record,
	})
}

// GetStatus returns the caller's verification state
// GET /api/v1/verification/status
func (h *VerificationHandler) GetStatus(c *gin.Context) {
	principalID, ok := middleware.GetPrincipalID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	record, err := h.verificationUsecase.GetStatus(c.Request.Context(), principalID)
	if err != nil {
		writeError(c, err)
		return
	}

	if record == nil {
		response.Success(c, http.StatusOK, gin.H{
			"status": entities.VerificationNotUploaded,
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status": record.Status,
		"record": record,
	})
}
