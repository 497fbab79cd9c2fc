package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Server struct {
		Port     string
		GinMode  string
		LogLevel string
	}

	Pusher struct {
		AppID   string
		Key     string
		Secret  string
		Cluster string
	}

	Minio struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		PublicURL string
		UseSSL    bool
	}

	Auth struct {
		// AdminPasswordHash is a bcrypt hash of the admin password.
		AdminPasswordHash string
		JWTSecret         string
		TokenTTLMinutes   int64
	}

	Storage struct {
		// Type selects the repository backend: postgres or memory.
		Type string
	}

	Transport struct {
		// Backends is a comma-separated list: memory, postgres, pusher.
		Backends string
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.DB.Host = getEnv("DB_HOST", "localhost")
	config.DB.Port = getEnv("DB_PORT", "5432")
	config.DB.User = getEnv("DB_USER", "muro")
	config.DB.Password = getEnv("DB_PASSWORD", "muro_password")
	config.DB.Name = getEnv("DB_NAME", "muro_db")
	config.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")
	config.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	config.Pusher.AppID = getEnv("PUSHER_APP_ID", "")
	config.Pusher.Key = getEnv("PUSHER_KEY", "")
	config.Pusher.Secret = getEnv("PUSHER_SECRET", "")
	config.Pusher.Cluster = getEnv("PUSHER_CLUSTER", "us2")

	config.Minio.Endpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	config.Minio.AccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	config.Minio.SecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	config.Minio.Bucket = getEnv("MINIO_BUCKET", "muro-images")
	config.Minio.PublicURL = getEnv("MINIO_PUBLIC_URL", "http://localhost:9000")
	config.Minio.UseSSL = getEnvAsBool("MINIO_USE_SSL", false)

	config.Auth.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", "")
	config.Auth.JWTSecret = getEnv("JWT_SECRET", "dev-secret-change-me")
	config.Auth.TokenTTLMinutes = getEnvAsInt64("TOKEN_TTL_MINUTES", 480)

	config.Storage.Type = getEnv("STORAGE_TYPE", "postgres")
	config.Transport.Backends = getEnv("TRANSPORT_BACKENDS", "memory,pusher")

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,PUT,PATCH,DELETE,HEAD,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type,Authorization")

	return config
}

// GetDatabaseURL returns the database connection URL
func (c *Config) GetDatabaseURL() string {
	return "postgres://" + c.DB.User + ":" + c.DB.Password + "@" + c.DB.Host + ":" + c.DB.Port + "/" + c.DB.Name + "?sslmode=" + c.DB.SSLMode
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 gets an environment variable as int64 or returns a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
