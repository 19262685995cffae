package handlers

import (
	"foodgram/domain"
	"foodgram/internal/api/presenters"
	"foodgram/internal/middleware"
	"foodgram/pkg/shoppinglist"

	"github.com/gofiber/fiber/v2"
)

type (
	ShoppingListHandler interface {
		DownloadShoppingCart(c *fiber.Ctx) error
		SendShoppingCart(c *fiber.Ctx) error
	}

	shoppingListHandler struct {
		shoppingListService shoppinglist.ShoppingListService
	}
)

func NewShoppingListHandler(shoppingListService shoppinglist.ShoppingListService) ShoppingListHandler {
	return &shoppingListHandler{shoppingListService: shoppingListService}
}

func (h *shoppingListHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	doc, err := h.shoppingListService.Download(c.Context(), middleware.UserID(c), c.Query("format", domain.ListFormatText))
	if err != nil {
		return failure(c, domain.MessageFailedDownloadCart, err)
	}

	c.Attachment(doc.Filename)
	c.Set(fiber.HeaderContentType, doc.ContentType)
	return c.Status(fiber.StatusOK).Send(doc.Body)
}

func (h *shoppingListHandler) SendShoppingCart(c *fiber.Ctx) error {
	if err := h.shoppingListService.Send(c.Context(), middleware.UserID(c), c.Query("format", domain.ListFormatText)); err != nil {
		return failure(c, domain.MessageFailedSendCart, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendCart)
}
