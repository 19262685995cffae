package presenters

import (
	"errors"

	"foodgram/domain"
	"foodgram/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type (
	Response struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
	}

	ErrorBody struct {
		Status  bool              `json:"status"`
		Message string            `json:"message"`
		Error   string            `json:"error,omitempty"`
		Code    string            `json:"code,omitempty"`
		Errors  map[string]string `json:"errors,omitempty"`
	}

	ListData struct {
		Results    any               `json:"results"`
		Pagination domain.Pagination `json:"pagination"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ListResponse(c *fiber.Ctx, results any, pagination domain.Pagination, message string) error {
	return SuccessResponse(c, ListData{Results: results, Pagination: pagination}, fiber.StatusOK, message)
}

// ErrorResponse writes the error payload. Validation failures also carry
// the offending fields and, for semantic checks, a machine readable code.
// Server errors carry the message only; their cause is logged, not sent.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	body := ErrorBody{
		Status:  false,
		Message: message,
	}
	if err != nil && statusCode < fiber.StatusInternalServerError {
		body.Error = err.Error()

		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			body.Code = vErr.Code
			body.Errors = map[string]string{vErr.Field: vErr.Message}
		} else if fields := utils.FieldErrors(err); fields != nil {
			body.Code = domain.CodeInvalidField
			body.Errors = fields
		}
	}
	return c.Status(statusCode).JSON(body)
}
