package domain

import (
	"errors"
	"fmt"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageFailedValidation     = "validation failed"

	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenExpired  = errors.New("token expired")

	// ErrAlreadyExists is returned when a unique (user, target) pair is
	// inserted a second time.
	ErrAlreadyExists = errors.New("entry already exists")
)

// Validation error codes.
const (
	CodeDuplicateIngredient = "duplicate_ingredient"
	CodeNonPositiveAmount   = "non_positive_amount"
	CodeAmountTooLarge      = "amount_too_large"
	CodeMissingTags         = "missing_tags"
	CodeDuplicateTag        = "duplicate_tag"
	CodeNonPositiveDuration = "non_positive_duration"
	CodeMissingIngredients  = "missing_ingredients"
	CodeUnknownIngredient   = "unknown_ingredient"
	CodeUnknownTag          = "unknown_tag"
	CodeSelfSubscribe       = "self_subscribe"
	CodeInvalidImage        = "invalid_image"
	CodeInvalidField        = "invalid"
)

// ValidationError is a user-correctable problem with one request field.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

type (
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}
)

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}
