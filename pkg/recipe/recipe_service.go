package recipe

import (
	"context"
	"fmt"
	"sort"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/utils"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/user"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, recipeID, userID string) error
		GetRecipeDetail(ctx context.Context, recipeID, userID string) (domain.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int, userID string) ([]domain.Recipe, int64, error)
		AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeShort, error)
		RemoveFavorite(ctx context.Context, recipeID, userID string) error
		AddToCart(ctx context.Context, recipeID, userID string) (domain.RecipeShort, error)
		RemoveFromCart(ctx context.Context, recipeID, userID string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		userRepository   user.UserRepository
		storage          storage.Storage
	}
)

func NewRecipeService(recipeRepository RecipeRepository, userRepository user.UserRepository, storage storage.Storage) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		storage:          storage,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.RecipeRequest, userID string) (domain.Recipe, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return domain.Recipe{}, domain.ErrUserNotFound
	}
	if err := ValidateRecipe(req); err != nil {
		return domain.Recipe{}, err
	}
	if req.Image == "" {
		return domain.Recipe{}, domain.NewValidationError("image", domain.CodeInvalidImage, "image is required")
	}

	imageKey, imageURL, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		ImageURL:    imageURL,
	}

	err = s.recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		lines, tags, err := resolveRelations(ctx, repo, req)
		if err != nil {
			return err
		}
		recipe.Ingredients = lines
		recipe.Tags = tags
		return repo.CreateRecipe(ctx, recipe)
	})
	if err != nil {
		s.discardImage(ctx, imageKey)
		return domain.Recipe{}, err
	}

	log.Infow("recipe created", "recipe_id", recipe.ID.String(), "author_id", userID)
	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

// UpdateRecipe replaces the recipe fields together with its whole ingredient
// and tag sets. On any failure the stored recipe is left as it was.
func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.RecipeRequest, userID string) (domain.Recipe, error) {
	recipe, err := s.authoredRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.Recipe{}, err
	}
	if err := ValidateRecipe(req); err != nil {
		return domain.Recipe{}, err
	}

	var imageKey string
	if req.Image != "" {
		key, url, err := s.uploadImage(ctx, req.Image)
		if err != nil {
			return domain.Recipe{}, err
		}
		imageKey = key
		recipe.ImageURL = url
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime

	err = s.recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		lines, tags, err := resolveRelations(ctx, repo, req)
		if err != nil {
			return err
		}
		if err := repo.UpdateRecipe(ctx, recipe); err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if err := repo.ReplaceIngredients(ctx, recipe.ID, lines); err != nil {
			return fmt.Errorf("replace ingredients: %w", err)
		}
		if err := repo.ReplaceTags(ctx, recipe, tags); err != nil {
			return fmt.Errorf("replace tags: %w", err)
		}
		return nil
	})
	if err != nil {
		s.discardImage(ctx, imageKey)
		return domain.Recipe{}, err
	}

	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, userID string) error {
	recipe, err := s.authoredRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	return s.recipeRepository.Transaction(ctx, func(repo RecipeRepository) error {
		return repo.DeleteRecipe(ctx, recipe)
	})
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID, userID string) (domain.Recipe, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}

	res, err := s.toRecipes(ctx, []*entities.Recipe{recipe}, userID)
	if err != nil {
		return domain.Recipe{}, err
	}
	return res[0], nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, page, limit int, userID string) ([]domain.Recipe, int64, error) {
	var scopes []Scope

	if filter.AuthorID != "" {
		authorID, err := uuid.Parse(filter.AuthorID)
		if err != nil {
			return []domain.Recipe{}, 0, nil
		}
		scopes = append(scopes, ByAuthor(authorID))
	}
	if len(filter.TagSlugs) > 0 {
		scopes = append(scopes, WithTagSlugs(filter.TagSlugs))
	}

	// favorites and cart filters only apply to a known user
	if viewerID, err := uuid.Parse(userID); err == nil {
		if filter.IsFavorited {
			scopes = append(scopes, FavoritedBy(viewerID))
		}
		if filter.IsInShoppingCart {
			scopes = append(scopes, InCartOf(viewerID))
		}
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, page, limit, scopes...)
	if err != nil {
		return nil, 0, err
	}

	res, err := s.toRecipes(ctx, recipes, userID)
	if err != nil {
		return nil, 0, err
	}
	return res, count, nil
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID, userID string) (domain.RecipeShort, error) {
	return s.addEntry(ctx, recipeID, userID, s.recipeRepository.AddFavorite)
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID, userID string) error {
	return s.removeEntry(ctx, recipeID, userID, s.recipeRepository.RemoveFavorite)
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID, userID string) (domain.RecipeShort, error) {
	return s.addEntry(ctx, recipeID, userID, s.recipeRepository.AddToCart)
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID, userID string) error {
	return s.removeEntry(ctx, recipeID, userID, s.recipeRepository.RemoveFromCart)
}

type entryFunc func(ctx context.Context, userID, recipeID uuid.UUID) error

func (s *recipeService) addEntry(ctx context.Context, recipeID, userID string, add entryFunc) (domain.RecipeShort, error) {
	uid, recipe, err := s.lookup(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeShort{}, err
	}
	if err := add(ctx, uid, recipe.ID); err != nil {
		return domain.RecipeShort{}, err
	}
	return user.ToRecipeShort(recipe), nil
}

func (s *recipeService) removeEntry(ctx context.Context, recipeID, userID string, remove entryFunc) error {
	uid, recipe, err := s.lookup(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	return remove(ctx, uid, recipe.ID)
}

func (s *recipeService) lookup(ctx context.Context, recipeID, userID string) (uuid.UUID, *entities.Recipe, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, nil, domain.ErrUserNotFound
	}
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return uuid.Nil, nil, domain.ErrRecipeNotFound
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return uid, recipe, nil
}

func (s *recipeService) authoredRecipe(ctx context.Context, recipeID, userID string) (*entities.Recipe, error) {
	_, recipe, err := s.lookup(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func (s *recipeService) uploadImage(ctx context.Context, payload string) (string, string, error) {
	img, err := utils.DecodeImage(payload)
	if err != nil {
		return "", "", domain.NewValidationError("image", domain.CodeInvalidImage, err.Error())
	}

	key := "recipes/" + uuid.NewString() + img.Extension
	url, err := s.storage.UploadFile(ctx, key, img.ContentType, img.Data)
	if err != nil {
		return "", "", fmt.Errorf("upload image: %w", err)
	}
	return key, url, nil
}

func (s *recipeService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.DeleteFile(ctx, key); err != nil {
		log.Warnf("failed to remove orphaned image %s: %v", key, err)
	}
}

// resolveRelations loads the referenced ingredients and tags, failing with a
// validation error when any id is unknown.
func resolveRelations(ctx context.Context, repo RecipeRepository, req domain.RecipeRequest) ([]*entities.RecipeIngredient, []*entities.Tag, error) {
	ingredientIDs := make([]uuid.UUID, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		id, err := uuid.Parse(line.ID)
		if err != nil {
			return nil, nil, domain.NewValidationError("ingredients", domain.CodeUnknownIngredient, "unknown ingredient "+line.ID)
		}
		ingredientIDs = append(ingredientIDs, id)
	}
	ingredients, err := repo.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	known := make(map[uuid.UUID]bool, len(ingredients))
	for _, ing := range ingredients {
		known[ing.ID] = true
	}

	lines := make([]*entities.RecipeIngredient, 0, len(req.Ingredients))
	for i, line := range req.Ingredients {
		if !known[ingredientIDs[i]] {
			return nil, nil, domain.NewValidationError("ingredients", domain.CodeUnknownIngredient, "unknown ingredient "+line.ID)
		}
		lines = append(lines, &entities.RecipeIngredient{
			IngredientID: ingredientIDs[i],
			Amount:       line.Amount,
		})
	}

	tagIDs := make([]uuid.UUID, 0, len(req.Tags))
	for _, raw := range req.Tags {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, domain.NewValidationError("tags", domain.CodeUnknownTag, "unknown tag "+raw)
		}
		tagIDs = append(tagIDs, id)
	}
	tags, err := repo.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		found := make(map[uuid.UUID]bool, len(tags))
		for _, tag := range tags {
			found[tag.ID] = true
		}
		for i, id := range tagIDs {
			if !found[id] {
				return nil, nil, domain.NewValidationError("tags", domain.CodeUnknownTag, "unknown tag "+req.Tags[i])
			}
		}
	}

	return lines, tags, nil
}

func (s *recipeService) toRecipes(ctx context.Context, recipes []*entities.Recipe, userID string) ([]domain.Recipe, error) {
	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	favorited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}
	subscribed := map[uuid.UUID]bool{}
	if viewerID, err := uuid.Parse(userID); err == nil {
		if favorited, err = s.recipeRepository.FavoritedRecipeIDs(ctx, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if inCart, err = s.recipeRepository.CartRecipeIDs(ctx, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if subscribed, err = s.userRepository.SubscribedTo(ctx, viewerID, authorIDs); err != nil {
			return nil, err
		}
	}

	res := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		item := domain.Recipe{
			ID:               r.ID.String(),
			Tags:             toTags(r.Tags),
			Ingredients:      toIngredients(r.Ingredients),
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.ImageURL,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
			PubDate:          r.CreatedAt,
		}
		if r.Author != nil {
			item.Author = user.ToUser(r.Author, subscribed[r.AuthorID])
		}
		res = append(res, item)
	}
	return res, nil
}

func toTags(tags []*entities.Tag) []domain.Tag {
	res := make([]domain.Tag, 0, len(tags))
	for _, t := range tags {
		res = append(res, domain.Tag{ID: t.ID.String(), Name: t.Name, Color: t.Color, Slug: t.Slug})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Slug < res[j].Slug })
	return res
}

func toIngredients(lines []*entities.RecipeIngredient) []domain.RecipeIngredient {
	res := make([]domain.RecipeIngredient, 0, len(lines))
	for _, line := range lines {
		item := domain.RecipeIngredient{ID: line.IngredientID.String(), Amount: line.Amount}
		if line.Ingredient != nil {
			item.Name = line.Ingredient.Name
			item.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		res = append(res, item)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}
