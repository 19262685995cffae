package handlers

import (
	"errors"

	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const (
	defaultPageLimit = 6
	maxPageLimit     = 100
)

var (
	badRequestErrors = []error{
		domain.ErrAlreadyExists,
		domain.ErrNotInCart,
		domain.ErrNotFavorited,
		domain.ErrNotSubscribed,
		domain.ErrEmailTaken,
		domain.ErrUsernameTaken,
		domain.ErrInvalidCredentials,
		domain.ErrUnknownListFormat,
	}

	notFoundErrors = []error{
		domain.ErrRecipeNotFound,
		domain.ErrUserNotFound,
		domain.ErrTagNotFound,
		domain.ErrIngredientNotFound,
	}
)

func statusFor(err error) int {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) || utils.FieldErrors(err) != nil {
		return fiber.StatusBadRequest
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return fiber.StatusNotFound
		}
	}
	switch {
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// failure replies with the status that matches err.
func failure(c *fiber.Ctx, message string, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorw(message, "path", c.Path(), "error", err)
	}
	return presenters.ErrorResponse(c, status, message, err)
}

func pageParams(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
