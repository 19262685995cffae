package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.User, error)
		GetUser(ctx context.Context, id, viewerID string) (domain.User, error)
		GetUsers(ctx context.Context, page, limit int, viewerID string) ([]domain.User, int64, error)
		Subscribe(ctx context.Context, userID, authorID string, recipesLimit int) (domain.Subscription, error)
		Unsubscribe(ctx context.Context, userID, authorID string) error
		GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.Subscription, int64, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

// ToUser converts a stored user into its public payload.
func ToUser(u *entities.User, subscribed bool) domain.User {
	return domain.User{
		ID:           u.ID.String(),
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func ToRecipeShort(r *entities.Recipe) domain.RecipeShort {
	return domain.RecipeShort{
		ID:          r.ID.String(),
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.userRepository.IsEmailTaken(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return domain.User{}, domain.ErrEmailTaken
	}

	taken, err = s.userRepository.IsUsernameTaken(ctx, req.Username)
	if err != nil {
		return domain.User{}, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return domain.User{}, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{
		Email:     email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) || errors.Is(err, domain.ErrUsernameTaken) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	return ToUser(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String())
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{AuthToken: token}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return ToUser(user, false), nil
}

func (s *userService) GetUser(ctx context.Context, id, viewerID string) (domain.User, error) {
	targetID, err := parseUserID(id)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.userRepository.GetUserByID(ctx, targetID)
	if err != nil {
		return domain.User{}, err
	}

	subscribed, err := s.subscribedTo(ctx, viewerID, []uuid.UUID{user.ID})
	if err != nil {
		return domain.User{}, err
	}
	return ToUser(user, subscribed[user.ID]), nil
}

func (s *userService) GetUsers(ctx context.Context, page, limit int, viewerID string) ([]domain.User, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	subscribed, err := s.subscribedTo(ctx, viewerID, ids)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.User, 0, len(users))
	for _, u := range users {
		res = append(res, ToUser(u, subscribed[u.ID]))
	}
	return res, count, nil
}

func (s *userService) Subscribe(ctx context.Context, userID, authorID string, recipesLimit int) (domain.Subscription, error) {
	followerID, err := parseUserID(userID)
	if err != nil {
		return domain.Subscription{}, err
	}
	followingID, err := parseUserID(authorID)
	if err != nil {
		return domain.Subscription{}, err
	}

	if followerID == followingID {
		return domain.Subscription{}, domain.NewValidationError("author", domain.CodeSelfSubscribe, "cannot subscribe to yourself")
	}

	author, err := s.userRepository.GetUserByID(ctx, followingID)
	if err != nil {
		return domain.Subscription{}, err
	}

	if err := s.userRepository.Subscribe(ctx, followerID, followingID); err != nil {
		return domain.Subscription{}, err
	}

	return s.toSubscription(ctx, author, recipesLimit)
}

func (s *userService) Unsubscribe(ctx context.Context, userID, authorID string) error {
	followerID, err := parseUserID(userID)
	if err != nil {
		return err
	}
	followingID, err := parseUserID(authorID)
	if err != nil {
		return err
	}

	if _, err := s.userRepository.GetUserByID(ctx, followingID); err != nil {
		return err
	}
	return s.userRepository.Unsubscribe(ctx, followerID, followingID)
}

func (s *userService) GetSubscriptions(ctx context.Context, userID string, page, limit, recipesLimit int) ([]domain.Subscription, int64, error) {
	followerID, err := parseUserID(userID)
	if err != nil {
		return nil, 0, err
	}

	authors, count, err := s.userRepository.GetSubscriptions(ctx, followerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.Subscription, 0, len(authors))
	for _, author := range authors {
		sub, err := s.toSubscription(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, sub)
	}
	return res, count, nil
}

func (s *userService) toSubscription(ctx context.Context, author *entities.User, recipesLimit int) (domain.Subscription, error) {
	recipes, err := s.userRepository.GetAuthorRecipes(ctx, author.ID, recipesLimit)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("get author recipes: %w", err)
	}
	total, err := s.userRepository.CountAuthorRecipes(ctx, author.ID)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("count author recipes: %w", err)
	}

	short := make([]domain.RecipeShort, 0, len(recipes))
	for _, r := range recipes {
		short = append(short, ToRecipeShort(r))
	}

	return domain.Subscription{
		User:         ToUser(author, true),
		Recipes:      short,
		RecipesCount: total,
	}, nil
}

// subscribedTo is empty for anonymous viewers.
func (s *userService) subscribedTo(ctx context.Context, viewerID string, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if viewerID == "" {
		return map[uuid.UUID]bool{}, nil
	}
	id, err := uuid.Parse(viewerID)
	if err != nil {
		return map[uuid.UUID]bool{}, nil
	}
	return s.userRepository.SubscribedTo(ctx, id, authorIDs)
}

func parseUserID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.ErrUserNotFound
	}
	return parsed, nil
}
