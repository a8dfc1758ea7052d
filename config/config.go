package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI   string
	MongoDB    string
	PORT       string
	SessionTTL time.Duration
}

type CollectionName string

var DB_Collection = struct {
	Users       CollectionName
	Tasks       CollectionName
	Sessions    CollectionName
	Assignments CollectionName
}{
	Users:       "users",
	Tasks:       "tasks",
	Sessions:    "sessions",
	Assignments: "assignments",
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	AppConfig = &Config{
		MongoURI:   getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    getEnv("MONGO_DB", "taskmanager_db"),
		PORT:       getEnv("APP_PORT", "3000"),
		SessionTTL: time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
	}

	log.Println("Environment variables loaded successfully")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, falling back to %d", key, defaultValue)
	}
	return defaultValue
}
