package config

import (
	"fmt"
	"strings"

	"foodgram/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the database selected by DB_DRIVER: postgres (default)
// or sqlite at DB_PATH.
func ConnectDB() (*gorm.DB, error) {
	dialector, err := dialectorFor(utils.GetConfig("DB_DRIVER"))
	if err != nil {
		return nil, err
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if strings.EqualFold(utils.GetConfig("LOG_LEVEL"), "debug") {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}

func dialectorFor(driver string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case "", "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			utils.GetConfig("DB_HOST"),
			utils.GetConfig("DB_USER"),
			utils.GetConfig("DB_PASSWORD"),
			utils.GetConfig("DB_NAME"),
			utils.GetConfig("DB_PORT"),
			utils.GetConfig("TIME_ZONE"),
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(utils.GetConfig("DB_PATH") + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}
