package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matchpredict/matchpredict/internal/api"
	"github.com/matchpredict/matchpredict/internal/config"
	"github.com/matchpredict/matchpredict/internal/history"
	"github.com/matchpredict/matchpredict/internal/logging"
	"github.com/matchpredict/matchpredict/internal/metrics"
	"github.com/matchpredict/matchpredict/internal/predictor"
	"github.com/matchpredict/matchpredict/internal/reference"
	"github.com/matchpredict/matchpredict/internal/server"
	"log/slog"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting matchpredict")

	ref, err := reference.Load(cfg.Predictor.ReferenceDataPath)
	if err != nil {
		logger.Error("failed to load reference data", "error", err, "path", cfg.Predictor.ReferenceDataPath)
		os.Exit(1)
	}
	logger.Info("reference data loaded", "leagues", len(ref.Leagues()))

	store := history.NewMemoryStore()
	pred := predictor.New(ref, store, predictor.Options{
		NormalizeProbabilities: cfg.Predictor.NormalizeProbabilities,
		Seed:                   cfg.Predictor.Seed,
	})

	collector, err := metrics.NewHTTPCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	handler := api.NewRouter(api.Options{
		Predictor: pred,
		Metrics:   collector,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})

	srv := server.New(cfg.Server, logger, handler)
	if err := srv.Listen(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := srv.Serve(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	server.Announce(logger, cfg.Announce.PublicURL, endpoints())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func endpoints() []server.Endpoint {
	out := make([]server.Endpoint, 0, len(api.Routes))
	for _, r := range api.Routes {
		out = append(out, server.Endpoint{Method: r.Method, Path: r.Path, Description: r.Description})
	}
	return out
}
