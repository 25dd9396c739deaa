package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	RabbitMQURL   string // Empty disables event publishing
	HTTPPort      string
	LogLevel      string

	JWTSecret string
	TokenTTL  time.Duration

	CORSAllowedOrigins string
	CORSAllowedMethods string
	CORSAllowedHeaders string

	AI *AIConfig
}

// Load reads an optional .env file and then the environment
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "careerai"),
		RedisAddr:     redisAddr(getEnv("REDIS_URI", "localhost:6379")),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		HTTPPort:      getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		JWTSecret: getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		CORSAllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET, POST, PUT, PATCH, DELETE, OPTIONS"),
		CORSAllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type, Authorization"),

		AI: DefaultAIConfig(),
	}
}

// redisAddr strips a redis:// prefix if present
func redisAddr(uri string) string {
	if len(uri) > 8 && uri[:8] == "redis://" {
		return uri[8:]
	}
	return uri
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}
