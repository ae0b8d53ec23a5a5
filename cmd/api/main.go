package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"praxis-server/internal/adapter/repo"
	"praxis-server/internal/domain"
	api "praxis-server/internal/http"
	"praxis-server/internal/http/handlers"
	"praxis-server/internal/infra"
	"praxis-server/internal/infra/geoip"
	"praxis-server/internal/middleware"
	"praxis-server/internal/providers/gemini"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	var store domain.ResultStore
	switch cfg.StoreBackend {
	case infra.StoreBackendRedis:
		client, err := infra.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer client.Close()
		store = repo.NewRedisStore(client, cfg.ResultTTL)
	case infra.StoreBackendPostgres:
		pool, err := infra.NewDBPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		store, err = repo.NewPostgresStore(ctx, pool, cfg.ResultTTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare result store")
		}
	default:
		mem := repo.NewMemoryStore(cfg.ResultTTL)
		defer mem.Close()
		store = mem
	}
	logger.Info().Str("backend", cfg.StoreBackend).Dur("ttl", cfg.ResultTTL).Msg("result store ready")

	// Capability check happens once here, not per request.
	var client *gemini.Client
	if cfg.GeminiConfigured() {
		client, err = gemini.New(gemini.Options{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
			Logger:  logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build gemini client")
		}
		logger.Info().Str("model", client.Model()).Msg("gemini analysis enabled")
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set; serving fallback analysis")
	}

	resolver, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	var lookup middleware.CountryLookup
	if resolver != nil {
		defer resolver.Close()
		lookup = resolver.CountryCode
	}

	app := handlers.NewApp(store, client, cfg, logger)
	router := api.NewRouter(app, cfg, logger, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
