package recipe

import (
	"context"
	"errors"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		// Transaction runs fn against a repository bound to one database
		// transaction; any returned error rolls every write back.
		Transaction(ctx context.Context, fn func(repo RecipeRepository) error) error

		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		ReplaceIngredients(ctx context.Context, recipeID uuid.UUID, lines []*entities.RecipeIngredient) error
		ReplaceTags(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag) error
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, page, limit int, scopes ...Scope) ([]*entities.Recipe, int64, error)

		GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error)
		GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error)

		AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
		RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
		FavoritedRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
		AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error
		RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error
		CartRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Transaction(ctx context.Context, fn func(repo RecipeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&recipeRepository{db: tx})
	})
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// UpdateRecipe writes the scalar columns only; associations are replaced
// through ReplaceIngredients and ReplaceTags.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).
		Model(recipe).
		Select("name", "text", "cooking_time", "image_url", "updated_at").
		Omit(clause.Associations).
		Updates(recipe).Error
}

func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipeID uuid.UUID, lines []*entities.RecipeIngredient) error {
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&entities.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	for _, line := range lines {
		line.RecipeID = recipeID
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&lines).Error
}

func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *entities.Recipe, tags []*entities.Tag) error {
	return r.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(tags)
}

// DeleteRecipe removes the recipe together with its ingredient lines, tag
// links, favorites and cart entries.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	db := r.db.WithContext(ctx)

	dependents := []any{
		&entities.CartEntry{},
		&entities.FavoriteEntry{},
		&entities.RecipeIngredient{},
	}
	for _, model := range dependents {
		if err := db.Where("recipe_id = ?", recipe.ID).Delete(model).Error; err != nil {
			return err
		}
	}

	if err := db.Model(recipe).Association("Tags").Clear(); err != nil {
		return err
	}

	res := db.Delete(&entities.Recipe{}, "id = ?", recipe.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("recipes.id = ?", id).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, page, limit int, scopes ...Scope) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Scopes(scopes...).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.withDetails(r.db.WithContext(ctx)).
		Scopes(scopes...).
		Offset(offset).
		Limit(limit).
		Order("recipes.created_at desc").
		Order("recipes.id").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient")
}

func (r *recipeRepository) GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *recipeRepository) GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.insertUnique(ctx, &entities.FavoriteEntry{UserID: userID, RecipeID: recipeID})
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.deleteEntry(ctx, &entities.FavoriteEntry{}, userID, recipeID, domain.ErrNotFavorited)
}

func (r *recipeRepository) FavoritedRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.entryRecipeIDs(ctx, &entities.FavoriteEntry{}, userID, recipeIDs)
}

func (r *recipeRepository) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.insertUnique(ctx, &entities.CartEntry{UserID: userID, RecipeID: recipeID})
}

func (r *recipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.deleteEntry(ctx, &entities.CartEntry{}, userID, recipeID, domain.ErrNotInCart)
}

func (r *recipeRepository) CartRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.entryRecipeIDs(ctx, &entities.CartEntry{}, userID, recipeIDs)
}

// insertUnique leans on the (user_id, recipe_id) unique index: a second
// insert of the same pair affects no rows.
func (r *recipeRepository) insertUnique(ctx context.Context, entry any) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyExists
	}
	return nil
}

func (r *recipeRepository) deleteEntry(ctx context.Context, model any, userID, recipeID uuid.UUID, absent error) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return absent
	}
	return nil
}

func (r *recipeRepository) entryRecipeIDs(ctx context.Context, model any, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
