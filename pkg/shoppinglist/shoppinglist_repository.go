package shoppinglist

import (
	"context"

	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ShoppingListRepository interface {
		GetCartIngredientLines(ctx context.Context, userID uuid.UUID) ([]entities.CartIngredientLine, error)
	}

	shoppingListRepository struct {
		db *gorm.DB
	}
)

func NewShoppingListRepository(db *gorm.DB) ShoppingListRepository {
	return &shoppingListRepository{db: db}
}

// GetCartIngredientLines sums the ingredient amounts of every recipe in the
// user's cart, one row per ingredient, in a single statement.
func (r *shoppingListRepository) GetCartIngredientLines(ctx context.Context, userID uuid.UUID) ([]entities.CartIngredientLine, error) {
	var lines []entities.CartIngredientLine
	if err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN cart_entries ON cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("cart_entries.user_id = ?", userID).
		Group("ingredients.id, ingredients.name, ingredients.measurement_unit").
		Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
