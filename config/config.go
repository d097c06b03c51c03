package config

import (
	"os"
	"strconv"
	"time"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AIConfig struct {
	APIKey          string
	ExtractionModel string
	OptimizerModel  string
	RequestTimeout  time.Duration
}

type S3Config struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
}

type AppConfig struct {
	Port        string
	Environment string
	JWTSecret   string
	JWTLifetime time.Duration
	Database    DatabaseConfig
	AI          AIConfig
	S3          S3Config
	// AI endpoints get a stricter per-user rate limit than the rest.
	AIRateLimit       int
	AIRateLimitWindow time.Duration
}

func GetDatabaseConfig() DatabaseConfig {
	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "resumeforge"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func GetAIConfig() AIConfig {
	timeoutSec, _ := strconv.Atoi(getEnv("AI_TIMEOUT_SECONDS", "60"))
	return AIConfig{
		APIKey:          getEnv("GEMINI_API_KEY", ""),
		ExtractionModel: getEnv("GEMINI_EXTRACTION_MODEL", "gemini-2.0-flash"),
		OptimizerModel:  getEnv("GEMINI_OPTIMIZER_MODEL", "gemini-1.5-flash"),
		RequestTimeout:  time.Duration(timeoutSec) * time.Second,
	}
}

func GetS3Config() S3Config {
	return S3Config{
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Region:    getEnv("AWS_REGION", ""),
		Bucket:    getEnv("AWS_S3_BUCKET", ""),
	}
}

func GetAppConfig() AppConfig {
	jwtHours, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	aiRate, _ := strconv.Atoi(getEnv("AI_RATE_LIMIT", "10"))
	aiWindowMin, _ := strconv.Atoi(getEnv("AI_RATE_LIMIT_WINDOW_MINUTES", "10"))
	return AppConfig{
		Port:              getEnv("PORT", "8081"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTLifetime:       time.Duration(jwtHours) * time.Hour,
		Database:          GetDatabaseConfig(),
		AI:                GetAIConfig(),
		S3:                GetS3Config(),
		AIRateLimit:       aiRate,
		AIRateLimitWindow: time.Duration(aiWindowMin) * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
