package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel           string
	SeedFile           string
	BcryptCost         int
	MessageWindowHours int
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = FromEnv()
}

// FromEnv reads the configuration from the current environment only.
func FromEnv() Config {
	return Config{
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		SeedFile:           getEnv("SEED_FILE", ""),
		BcryptCost:         getEnvAsInt("BCRYPT_COST", 10),
		MessageWindowHours: getEnvAsInt("MESSAGE_WINDOW_HOURS", 24),
	}
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
