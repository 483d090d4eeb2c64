package errors

import (
	"errors"
	"net/http"
)

// Validation errors: the request itself is malformed. Retrying with the
// same input will never succeed.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidDocumentType = errors.New("invalid document type")
	ErrInvalidAddress      = errors.New("invalid wallet address")
	ErrUnsupportedNetwork  = errors.New("unsupported network")
	ErrUnsupportedFile     = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Precondition errors: the request is well-formed but the workflow state
// does not allow it.
var (
	ErrAlreadyVerified     = errors.New("document already verified")
	ErrPendingReviewExists = errors.New("a document is already pending review")
	ErrNoPendingRecord     = errors.New("no verification record pending review")
	ErrNotVerified         = errors.New("identity not verified")
	ErrWalletAlreadyExists = errors.New("wallet already exists for this account")
	ErrPendingChangeExists = errors.New("a change request is already pending for this wallet")
	ErrNoPendingRequest    = errors.New("no pending change request")
	ErrAlreadyDecided      = errors.New("decision already recorded")
)

// Authorization errors: a distinct class so callers can tell "fix the
// input and retry" apart from "never retry".
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotOwner     = errors.New("not the wallet owner")
)

// Infrastructure errors
var (
	ErrNotFound   = errors.New("resource not found")
	ErrTxConflict = errors.New("transaction conflict")
)

// AppError represents an application error with an HTTP status and a
// stable machine-readable code
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "ERR_NOT_FOUND", message, ErrNotFound)
}

func BadRequest(code, message string) *AppError {
	return NewAppError(http.StatusBadRequest, code, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "ERR_UNAUTHORIZED", message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "ERR_FORBIDDEN", message, ErrForbidden)
}

func Conflict(code string, message string, err error) *AppError {
	return NewAppError(http.StatusConflict, code, message, err)
}

func UnprocessableEntity(code, message string, err error) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, code, message, err)
}

func ServiceUnavailable(message string, err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, "ERR_TRANSIENT", message, err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "ERR_INTERNAL", "internal server error", err)
}
