package recipe

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope narrows a recipe query. Scopes are independent of each other and
// may be applied in any order.
type Scope = func(*gorm.DB) *gorm.DB

func ByAuthor(authorID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.author_id = ?", authorID)
	}
}

// WithTagSlugs keeps recipes carrying at least one of the slugs.
func WithTagSlugs(slugs []string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"recipes.id IN (SELECT recipe_tags.recipe_id FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE tags.slug IN ?)",
			slugs,
		)
	}
}

func FavoritedBy(userID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.id IN (SELECT favorite_entries.recipe_id FROM favorite_entries WHERE favorite_entries.user_id = ?)", userID)
	}
}

func InCartOf(userID uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipes.id IN (SELECT cart_entries.recipe_id FROM cart_entries WHERE cart_entries.user_id = ?)", userID)
	}
}
