package shoppinglist

import (
	"context"
	"fmt"
	"time"

	"foodgram/domain"
	"foodgram/internal/utils/mailing"
	"foodgram/pkg/user"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	ShoppingListService interface {
		Aggregate(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
		Download(ctx context.Context, userID, format string) (domain.Document, error)
		Send(ctx context.Context, userID, format string) error
	}

	shoppingListService struct {
		shoppingListRepository ShoppingListRepository
		userRepository         user.UserRepository
		mailer                 mailing.Mailer
		fontPath               string
		now                    func() time.Time
	}
)

func NewShoppingListService(
	shoppingListRepository ShoppingListRepository,
	userRepository user.UserRepository,
	mailer mailing.Mailer,
	fontPath string,
) ShoppingListService {
	return &shoppingListService{
		shoppingListRepository: shoppingListRepository,
		userRepository:         userRepository,
		mailer:                 mailer,
		fontPath:               fontPath,
		now:                    time.Now,
	}
}

func (s *shoppingListService) Aggregate(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	lines, err := s.shoppingListRepository.GetCartIngredientLines(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load cart ingredients: %w", err)
	}
	return Aggregate(lines), nil
}

func (s *shoppingListService) Download(ctx context.Context, userID, format string) (domain.Document, error) {
	renderer, err := s.renderer(format)
	if err != nil {
		return domain.Document{}, err
	}

	items, err := s.Aggregate(ctx, userID)
	if err != nil {
		return domain.Document{}, err
	}
	return renderer.Render(items)
}

// Send mails the list to the user: the text rendering as the message body
// and the requested format as an attachment.
func (s *shoppingListService) Send(ctx context.Context, userID, format string) error {
	renderer, err := s.renderer(format)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	recipient, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	items, err := s.Aggregate(ctx, userID)
	if err != nil {
		return err
	}

	text, err := TextRenderer{}.Render(items)
	if err != nil {
		return err
	}
	doc, err := renderer.Render(items)
	if err != nil {
		return err
	}

	body := string(text.Body)
	if body == "" {
		body = "Your shopping cart is empty.\n"
	}

	if err := s.mailer.SendMail(recipient.Email, "Your shopping list", body, mailing.Attachment{
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
		Body:        doc.Body,
	}); err != nil {
		log.Errorw("failed to send shopping list", "user_id", userID, "error", err)
		return fmt.Errorf("send shopping list: %w", err)
	}

	log.Infow("shopping list sent", "user_id", userID, "items", len(items), "format", doc.ContentType)
	return nil
}

func (s *shoppingListService) renderer(format string) (Renderer, error) {
	return NewRenderer(format, RenderOptions{
		FontPath: s.fontPath,
		Date:     s.now(),
	})
}
