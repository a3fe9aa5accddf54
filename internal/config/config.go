package config

import (
	"os"
	"strconv"
)

type Config struct {
	DB_USERNAME string
	DB_PASSWORD string
	DB_HOST     string
	DB_PORT     string
	DB_NAME     string
	DISABLE_TLS string

	PORT string

	// Secret used to sign session tokens.
	JWT_SECRET string

	// OAuth client id the Google ID tokens must be issued for. Google
	// sign-in is disabled when empty.
	GOOGLE_CLIENT_ID string

	// Accepts the fixture password against the demo sentinel digest.
	// Must stay off outside demo environments.
	DEMO_LOGIN bool

	GEMINI_API_KEY     string
	GEMINI_MODEL       string
	AI_TIMEOUT_SECONDS int

	// "postgres" (default) or "file"
	STORE_BACKEND   string
	STORE_FILE_PATH string

	// Otel
	OTEL_EXPORTER_OTLP_ENDPOINT string
}

func ReadConfig() *Config {
	aiTimeout := 30
	if timeoutStr := os.Getenv("AI_TIMEOUT_SECONDS"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil {
			aiTimeout = timeout
		}
	}

	return &Config{
		DB_USERNAME: os.Getenv("DB_USERNAME"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_NAME:     os.Getenv("DB_NAME"),
		DISABLE_TLS: os.Getenv("DISABLE_TLS"),

		PORT: GetEnvOrDefault("PORT", "3000"),

		JWT_SECRET:       os.Getenv("JWT_SECRET"),
		GOOGLE_CLIENT_ID: os.Getenv("GOOGLE_CLIENT_ID"),
		DEMO_LOGIN:       os.Getenv("DEMO_LOGIN") == "true",

		GEMINI_API_KEY:     os.Getenv("GEMINI_API_KEY"),
		GEMINI_MODEL:       GetEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		AI_TIMEOUT_SECONDS: aiTimeout,

		STORE_BACKEND:   GetEnvOrDefault("STORE_BACKEND", "postgres"),
		STORE_FILE_PATH: GetEnvOrDefault("STORE_FILE_PATH", "./data/altiva.json"),

		OTEL_EXPORTER_OTLP_ENDPOINT: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
