package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendDatabase = "database"
)

// Config holds all application configuration
type Config struct {
	Port           string
	GoEnv          string
	StorageBackend string

	// File backend: the two JSON documents that make up the store.
	CarsFile   string
	OrdersFile string

	// Database backend: PostgreSQL when DatabaseURL is set, otherwise an
	// embedded SQLite file at DatabasePath.
	DatabaseURL  string
	DatabasePath string

	// SeedFile is the fixture catalog loaded into an empty store at startup.
	SeedFile string

	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	LogLevel           string
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// In hosted environments the variables are set directly, so
			// it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	config := &Config{
		Port:               getEnv("PORT", "8080"),
		GoEnv:              getEnv("GO_ENV", "development"),
		StorageBackend:     getEnv("STORAGE_BACKEND", BackendFile),
		CarsFile:           getEnv("CARS_FILE", "data/cars.json"),
		OrdersFile:         getEnv("ORDERS_FILE", "data/orders.json"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DatabasePath:       getEnv("DATABASE_PATH", "data/car-rental.db"),
		SeedFile:           getEnv("SEED_FILE", "data/cars.json"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the configuration is internally consistent
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory:
	case BackendFile:
		if c.CarsFile == "" || c.OrdersFile == "" {
			return fmt.Errorf("CARS_FILE and ORDERS_FILE are required for the file backend")
		}
	case BackendDatabase:
		if c.DatabaseURL == "" && c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_URL or DATABASE_PATH is required for the database backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want %s, %s or %s)",
			c.StorageBackend, BackendMemory, BackendFile, BackendDatabase)
	}
	return nil
}

// UseS3 returns true if catalog image URLs should be served from S3
func (c *Config) UseS3() bool {
	return c.AWSS3Bucket != ""
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
