package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string
	DBInMemory bool

	JWTSecret string
	JWTTTL    time.Duration

	OpenAIKey      string
	OpenAIModel    string
	MaxSuggestTags int

	ScrapeTimeout time.Duration

	AuthRateRPS   float64
	AuthRateBurst int
}

// LoadConfig reads configuration from the environment, with a .env file as a
// development convenience.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "5000"),

		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getEnv("DB_HOST", "localhost:3306"),
		DBName:     getEnv("DB_NAME", "notestash"),
		DBInMemory: os.Getenv("DB_IN_MEMORY") == "true",

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 72)) * time.Hour,

		OpenAIKey:      os.Getenv("OPENAI_KEY"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		MaxSuggestTags: getEnvInt("MAX_SUGGEST_TAGS", 5),

		ScrapeTimeout: time.Duration(getEnvInt("SCRAPE_TIMEOUT_SECONDS", 5)) * time.Second,

		AuthRateRPS:   float64(getEnvInt("AUTH_RATE_RPS", 1)),
		AuthRateBurst: getEnvInt("AUTH_RATE_BURST", 5),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil {
			return val
		}
	}
	return fallback
}
