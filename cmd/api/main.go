package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"brandforge/internal/app"
	"brandforge/internal/http/handlers"
	httpapi "brandforge/internal/http/httpapi"
	"brandforge/internal/infra"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	orchestrator, err := app.NewOrchestrator(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build orchestrator")
	}

	handler := handlers.NewApp(orchestrator, &logger, cfg.Version, cfg.RequestTimeout)
	router := httpapi.NewRouter(handler, httpapi.Options{
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("addr", server.Addr()).
			Int("pass_threshold", orchestrator.Threshold()).
			Int("max_attempts", cfg.MaxAttempts).
			Int("max_concurrent", cfg.MaxConcurrentAssets).
			Msg("API listening")
		if err := server.Start(); err != nil {
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
