package config

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"foodgram/domain"
	"foodgram/internal/api/handlers"
	"foodgram/internal/api/presenters"
	"foodgram/internal/api/routes"
	"foodgram/internal/middleware"
	"foodgram/internal/utils"
	"foodgram/internal/utils/mailing"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/catalog"
	"foodgram/pkg/jwt"
	"foodgram/pkg/recipe"
	"foodgram/pkg/shoppinglist"
	"foodgram/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Dependencies are the outside services the app talks to. Nil fields are
// built from configuration.
type Dependencies struct {
	Storage   storage.Storage
	Mailer    mailing.Mailer
	LogOutput io.Writer
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	return Build(db, Dependencies{})
}

func Build(db *gorm.DB, deps Dependencies) (*fiber.App, error) {
	utils.InitValidator()
	SetLogLevel(utils.GetConfig("LOG_LEVEL"))

	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	if deps.LogOutput == nil {
		if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
			return nil, err
		}
		file, err := os.OpenFile("./logs/app.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		deps.LogOutput = file
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfig("TIME_ZONE"),
		Output:     deps.LogOutput,
	}))

	if rateLimit := utils.GetConfigInt("RATE_LIMIT_MAX", 20); rateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        rateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	// utils
	if deps.Storage == nil {
		bucket := utils.GetConfig("AWS_S3_BUCKET")
		s, err := storage.New(bucket)
		if err != nil {
			return nil, err
		}
		deps.Storage = s
		if bucket == "" {
			app.Static("/media", utils.GetConfig("MEDIA_DIR"))
		}
	}
	if deps.Mailer == nil {
		deps.Mailer = mailing.NewMailer()
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)
	shoppingListRepository := shoppinglist.NewShoppingListRepository(db)

	// Service
	ttl := time.Duration(utils.GetConfigInt("TOKEN_TTL_MINUTES", 1440)) * time.Minute
	jwtService := jwt.NewJWTService(secret, ttl)
	userService := user.NewUserService(userRepository, jwtService)
	recipeService := recipe.NewRecipeService(recipeRepository, userRepository, deps.Storage)
	catalogTTL := time.Duration(utils.GetConfigInt("CATALOG_CACHE_TTL_SECONDS", 60)) * time.Second
	catalogService := catalog.NewCatalogService(catalogRepository, catalogTTL)
	shoppingListService := shoppinglist.NewShoppingListService(
		shoppingListRepository,
		userRepository,
		deps.Mailer,
		utils.GetConfig("PDF_FONT_PATH"),
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	shoppingListHandler := handlers.NewShoppingListHandler(shoppingListService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		RecipeHandler:       recipeHandler,
		ShoppingListHandler: shoppingListHandler,
		CatalogHandler:      catalogHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if code == fiber.StatusInternalServerError {
		log.Errorw("unhandled error", "path", c.Path(), "error", err)
	}
	return presenters.ErrorResponse(c, code, domain.MessageFailedProcessRequest, err)
}

func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "trace":
		log.SetLevel(log.LevelTrace)
	case "debug":
		log.SetLevel(log.LevelDebug)
	case "warn", "warning":
		log.SetLevel(log.LevelWarn)
	case "error":
		log.SetLevel(log.LevelError)
	default:
		log.SetLevel(log.LevelInfo)
	}
}
