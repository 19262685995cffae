package utils

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort      string `yaml:"APP_PORT"`
	AppURL       string `yaml:"APP_URL"`
	LogLevel     string `yaml:"LOG_LEVEL"`
	TimeZone     string `yaml:"TIME_ZONE"`
	RateLimitMax string `yaml:"RATE_LIMIT_MAX"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	// JWT
	JWTSecret       string `yaml:"JWT_SECRET"`
	TokenTTLMinutes string `yaml:"TOKEN_TTL_MINUTES"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Media storage. When AWS_S3_BUCKET is empty images go to MEDIA_DIR.
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
	MediaDir     string `yaml:"MEDIA_DIR"`

	// Seconds a cached tag or ingredient catalog is served before reloading.
	CatalogCacheTTLSeconds string `yaml:"CATALOG_CACHE_TTL_SECONDS"`

	// Shopping list rendering
	PDFFontPath string `yaml:"PDF_FONT_PATH"`
}

var (
	configMu sync.RWMutex
	config   = defaultConfig()
)

func defaultConfig() Config {
	return Config{
		AppPort:         "8080",
		AppURL:          "http://localhost:8080",
		LogLevel:        "info",
		TimeZone:        "UTC",
		RateLimitMax:    "20",
		DBDriver:        "postgres",
		DBPort:          "5432",
		DBPath:          "foodgram.db",
		TokenTTLMinutes: "1440",
		MediaDir:        "./media",

		CatalogCacheTTLSeconds: "60",
	}
}

// fields maps every config key to its storage in c.
func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":           &c.AppPort,
		"APP_URL":            &c.AppURL,
		"LOG_LEVEL":          &c.LogLevel,
		"TIME_ZONE":          &c.TimeZone,
		"RATE_LIMIT_MAX":     &c.RateLimitMax,
		"DB_DRIVER":          &c.DBDriver,
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"DB_PATH":            &c.DBPath,
		"JWT_SECRET":         &c.JWTSecret,
		"TOKEN_TTL_MINUTES":  &c.TokenTTLMinutes,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
		"MEDIA_DIR":          &c.MediaDir,
		"PDF_FONT_PATH":      &c.PDFFontPath,

		"CATALOG_CACHE_TTL_SECONDS": &c.CatalogCacheTTLSeconds,
	}
}

// LoadConfig reads config.yaml (or $CONFIG_PATH) and .env, then lets
// non-empty environment variables override the file values.
func LoadConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	LoadConfigFrom(path)
}

func LoadConfigFrom(path string) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Error reading .env file: %s", err)
	}

	cfg := defaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		log.Infof("config file %s not read, using defaults and environment: %s", path, err)
	} else if err := yaml.Unmarshal(file, &cfg); err != nil {
		log.Errorf("Error parsing YAML file: %s", err)
	}

	for key, field := range cfg.fields() {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			*field = value
		}
	}

	configMu.Lock()
	config = cfg
	configMu.Unlock()
}

func GetConfig(key string) string {
	configMu.RLock()
	defer configMu.RUnlock()

	if field, ok := config.fields()[key]; ok {
		return *field
	}
	return ""
}

// GetConfigInt returns the integer value of key, or fallback when the key
// is unset or not a number.
func GetConfigInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return value
}

// SetConfig overrides a single key at runtime.
func SetConfig(key, value string) {
	configMu.Lock()
	defer configMu.Unlock()

	if field, ok := config.fields()[key]; ok {
		*field = value
	}
}
