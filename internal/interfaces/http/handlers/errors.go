package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "tripcover.backend/internal/domain/errors"
	"tripcover.backend/internal/interfaces/http/response"
)

// workflowError maps a domain sentinel to its HTTP shape. Validation maps
// to 400, preconditions to 409/422, authorization to 401/403, transaction
// conflicts to 503 (transient, caller may retry).
func workflowError(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidDocumentType):
		return domainerrors.BadRequest("ERR_INVALID_DOCUMENT_TYPE", "Unknown document type")
	case errors.Is(err, domainerrors.ErrUnsupportedFile):
		return domainerrors.BadRequest("ERR_UNSUPPORTED_FILE", "File type not allowed (jpeg, png or pdf)")
	case errors.Is(err, domainerrors.ErrFileTooLarge):
		return domainerrors.BadRequest("ERR_FILE_TOO_LARGE", "File exceeds the 5 MiB limit")
	case errors.Is(err, domainerrors.ErrUnsupportedNetwork):
		return domainerrors.BadRequest("ERR_UNSUPPORTED_NETWORK", "Network is not supported")
	case errors.Is(err, domainerrors.ErrInvalidAddress):
		return domainerrors.BadRequest("ERR_INVALID_ADDRESS", "Address does not match the network format")
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest("ERR_INVALID_INPUT", "Invalid input")

	case errors.Is(err, domainerrors.ErrAlreadyVerified):
		return domainerrors.Conflict("ERR_ALREADY_VERIFIED", "Identity is already verified", err)
	case errors.Is(err, domainerrors.ErrPendingReviewExists):
		return domainerrors.Conflict("ERR_PENDING_REVIEW_EXISTS", "A document is already under review", err)
	case errors.Is(err, domainerrors.ErrNoPendingRecord):
		return domainerrors.UnprocessableEntity("ERR_NO_PENDING_RECORD", "No document is pending review", err)
	case errors.Is(err, domainerrors.ErrNotVerified):
		return domainerrors.UnprocessableEntity("ERR_NOT_VERIFIED", "Identity must be verified first", err)
	case errors.Is(err, domainerrors.ErrWalletAlreadyExists):
		return domainerrors.Conflict("ERR_WALLET_EXISTS", "A payout wallet is already bound to this account", err)
	case errors.Is(err, domainerrors.ErrPendingChangeExists):
		return domainerrors.Conflict("ERR_PENDING_CHANGE_EXISTS", "A change request is already pending for this wallet", err)
	case errors.Is(err, domainerrors.ErrNoPendingRequest):
		return domainerrors.UnprocessableEntity("ERR_NO_PENDING_REQUEST", "No pending change request with this id", err)
	case errors.Is(err, domainerrors.ErrAlreadyDecided):
		return domainerrors.Conflict("ERR_ALREADY_DECIDED", "This record has already been decided", err)

	case errors.Is(err, domainerrors.ErrNotOwner):
		return domainerrors.Forbidden("You do not own this wallet")
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("Resource not found")

	case errors.Is(err, domainerrors.ErrTxConflict):
		return domainerrors.ServiceUnavailable("Concurrent update conflict, please retry", err)
	}
	return domainerrors.NewAppError(http.StatusInternalServerError, "ERR_INTERNAL", "internal server error", err)
}

func writeError(c *gin.Context, err error) {
	response.Error(c, workflowError(err))
}
