package presenters

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorBody(t *testing.T, status int, err error) ErrorBody {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ErrorResponse(c, status, "failed", err)
	})

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()
	require.Equal(t, status, resp.StatusCode)

	var body ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestErrorResponseHidesServerErrors(t *testing.T) {
	body := errorBody(t, fiber.StatusInternalServerError, errors.New("load cart ingredients: integer overflow"))

	assert.False(t, body.Status)
	assert.Equal(t, "failed", body.Message)
	assert.Empty(t, body.Error)
	assert.Empty(t, body.Code)
}

func TestErrorResponseClientErrors(t *testing.T) {
	body := errorBody(t, fiber.StatusBadRequest, domain.ErrAlreadyExists)
	assert.Equal(t, domain.ErrAlreadyExists.Error(), body.Error)

	body = errorBody(t, fiber.StatusBadRequest, domain.NewValidationError("tags", domain.CodeMissingTags, "at least one tag is required"))
	assert.Equal(t, domain.CodeMissingTags, body.Code)
	assert.Equal(t, map[string]string{"tags": "at least one tag is required"}, body.Errors)
}
