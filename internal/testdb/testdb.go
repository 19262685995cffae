// Package testdb opens migrated in-memory sqlite databases for tests.
package testdb

import (
	"fmt"
	"testing"

	migration "foodgram/cmd/database/migrate"
	"foodgram/entities"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns an isolated, migrated in-memory database that is closed when
// the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// one connection keeps the shared in-memory database free of table locks
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migration.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite database: %v", err)
	}
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, username string) *entities.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &entities.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: username,
		LastName:  "Tester",
		Password:  string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func CreateIngredient(t testing.TB, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()

	ingredient := &entities.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("create ingredient %s: %v", name, err)
	}
	return ingredient
}

func CreateTag(t testing.TB, db *gorm.DB, slug string) *entities.Tag {
	t.Helper()

	tag := &entities.Tag{Name: slug, Color: "#E26C2D", Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag %s: %v", slug, err)
	}
	return tag
}

// Line describes one ingredient line of a recipe created by CreateRecipe.
type Line struct {
	Ingredient *entities.Ingredient
	Amount     int
}

func CreateRecipe(t testing.TB, db *gorm.DB, author *entities.User, name string, tags []*entities.Tag, lines ...Line) *entities.Recipe {
	t.Helper()

	recipe := &entities.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        name + " description",
		CookingTime: 10,
		Tags:        tags,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("create recipe %s: %v", name, err)
	}
	for _, line := range lines {
		ri := &entities.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: line.Ingredient.ID,
			Amount:       line.Amount,
		}
		if err := db.Create(ri).Error; err != nil {
			t.Fatalf("create recipe line: %v", err)
		}
	}
	return recipe
}

func AddToCart(t testing.TB, db *gorm.DB, user *entities.User, recipe *entities.Recipe) {
	t.Helper()

	if err := db.Create(&entities.CartEntry{UserID: user.ID, RecipeID: recipe.ID}).Error; err != nil {
		t.Fatalf("add to cart: %v", err)
	}
}
