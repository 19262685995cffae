package routes

import (
	"foodgram/internal/api/handlers"
	"foodgram/internal/middleware"
	"foodgram/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	RecipeHandler       handlers.RecipeHandler
	ShoppingListHandler handlers.ShoppingListHandler
	CatalogHandler      handlers.CatalogHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Catalog()
	c.Recipe()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth/token")
	auth.Post("/login", c.UserHandler.Login)
}

func (c *Config) User() {
	authRequired := c.Middleware.AuthMiddleware(c.JWTService)
	authOptional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	user := c.App.Group("/api/users")
	// fixed paths first so they are not captured by :id
	{
		user.Post("", c.UserHandler.Register)
		user.Get("", authOptional, c.UserHandler.GetUsers)
		user.Get("/me", authRequired, c.UserHandler.Me)
		user.Get("/subscriptions", authRequired, c.UserHandler.GetSubscriptions)
		user.Get("/:id", authOptional, c.UserHandler.GetUser)
		user.Post("/:id/subscribe", authRequired, c.UserHandler.Subscribe)
		user.Delete("/:id/subscribe", authRequired, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Catalog() {
	tags := c.App.Group("/api/tags")
	tags.Get("", c.CatalogHandler.GetTags)
	tags.Get("/:id", c.CatalogHandler.GetTag)

	ingredients := c.App.Group("/api/ingredients")
	ingredients.Get("", c.CatalogHandler.GetIngredients)
	ingredients.Get("/:id", c.CatalogHandler.GetIngredient)
}

func (c *Config) Recipe() {
	authRequired := c.Middleware.AuthMiddleware(c.JWTService)
	authOptional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/recipes")
	{
		recipes.Get("/download_shopping_cart", authRequired, c.ShoppingListHandler.DownloadShoppingCart)
		recipes.Post("/send_shopping_cart", authRequired, c.ShoppingListHandler.SendShoppingCart)

		recipes.Get("", authOptional, c.RecipeHandler.GetRecipes)
		recipes.Post("", authRequired, c.RecipeHandler.CreateRecipe)
		recipes.Get("/:id", authOptional, c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id", authRequired, c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", authRequired, c.RecipeHandler.DeleteRecipe)

		recipes.Post("/:id/favorite", authRequired, c.RecipeHandler.AddFavorite)
		recipes.Delete("/:id/favorite", authRequired, c.RecipeHandler.RemoveFavorite)
		recipes.Post("/:id/shopping_cart", authRequired, c.RecipeHandler.AddToCart)
		recipes.Delete("/:id/shopping_cart", authRequired, c.RecipeHandler.RemoveFromCart)
	}
}
