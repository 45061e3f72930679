package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/notestash/notestash/internal/auth"
	"github.com/notestash/notestash/internal/classifier"
	"github.com/notestash/notestash/internal/config"
	"github.com/notestash/notestash/internal/handlers"
	"github.com/notestash/notestash/internal/middleware"
	"github.com/notestash/notestash/internal/scrape"
	"github.com/notestash/notestash/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	var store storage.Storage
	if cfg.DBInMemory {
		logger.Info("using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		mysqlStore, err := storage.NewMySQLStorage(storage.MySQLConfig{
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			Host:     cfg.DBHost,
			DBName:   cfg.DBName,
		}, logger)
		if err != nil {
			logger.Fatal("failed to initialize storage", zap.Error(err))
		}
		store = mysqlStore
	}
	defer store.Close()

	var suggester classifier.Suggester
	if cfg.OpenAIKey != "" {
		suggester = classifier.NewGPTSuggester(cfg.OpenAIKey, cfg.OpenAIModel, cfg.MaxSuggestTags, logger)
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Store:       store,
		JWT:         auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL),
		Titles:      scrape.NewTitleFetcher(cfg.ScrapeTimeout),
		Suggester:   suggester,
		AuthLimiter: middleware.NewRateLimiter(cfg.AuthRateRPS, cfg.AuthRateBurst),
		Logger:      logger,
	})

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
