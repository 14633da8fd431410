// Package main provides the entry point for the fight prediction API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/fight-predictor/internal/api"
	"github.com/yourusername/fight-predictor/internal/config"
	"github.com/yourusername/fight-predictor/internal/database"
	"github.com/yourusername/fight-predictor/internal/dataset"
	"github.com/yourusername/fight-predictor/internal/health"
	"github.com/yourusername/fight-predictor/internal/logger"
	"github.com/yourusername/fight-predictor/internal/metrics"
	"github.com/yourusername/fight-predictor/internal/ml"
	"github.com/yourusername/fight-predictor/internal/repository"
	"github.com/yourusername/fight-predictor/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.PathFromEnv(config.DefaultConfigPath), "Path to configuration file")
}

var rootCmd = &cobra.Command{
	Use:     "server",
	Short:   "Serve fight predictions over HTTP",
	Long:    `Loads the fighter dataset and the trained scaler and classifier, then serves POST /api/predict and GET /api/fighters.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Fight predictor starting")

	metrics.InitRegistry()
	client := dataset.NewRateLimitedHTTPClient(dataset.HTTPClientConfigFrom(cfg.Dataset), appLog)
	defer client.Close()

	var opts []service.PredictionOption
	var cache *ml.PredictionCache
	if cfg.Prediction.CacheEnabled {
		cache = ml.NewPredictionCache(cfg.CacheTTL(), cfg.Prediction.CacheMaxSize)
	}

	checks := map[string]health.Checker{}
	var registry repository.ModelRepository
	if cfg.Database.Enabled {
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		appLog.Info("Database connection established")

		repos, err := repository.NewRepositories(db)
		if err != nil {
			return fmt.Errorf("failed to initialize repositories: %w", err)
		}
		if cfg.Prediction.RecordPredictions {
			opts = append(opts, service.WithRecorder(repos.Prediction))
		}
		registry = repos.Model
		checks["database"] = health.PingChecker(db)
	}

	predLog := logger.NewPredictionLogger(appLog)
	loadModel := func(ctx context.Context) (service.Model, error) {
		model, err := service.LoadModel(ctx, cfg, client, appLog)
		if err != nil {
			return service.Model{}, err
		}
		predLog.LogModelLoaded(cfg.Artifacts.ScalerPath, cfg.Artifacts.ModelPath, model.Store.Len(), len(model.Store.Fighters()))
		if registry != nil {
			if active, err := registry.GetActive(ctx, cfg.Training.ModelName); err == nil && active.Version != model.Version {
				appLog.WithFields(logrus.Fields{
					"registry_version": active.Version,
					"loaded_version":   model.Version,
				}).Warn("Loaded artifacts differ from the active registry model")
			}
		}
		return model, nil
	}

	// Artifact load failures are fatal: the service never starts without a usable model.
	predictor, err := service.NewReloader(ctx, loadModel, cache, appLog, opts...)
	if err != nil {
		if errors.Is(err, ml.ErrArtifactLoad) {
			appLog.WithError(err).Fatal("Failed to load model artifacts")
		}
		return fmt.Errorf("failed to load model: %w", err)
	}
	served := predictor.Current()

	router := api.NewRouter(api.NewHandler(predictor, appLog), api.RouterConfig{
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		RateLimitPerSecond: cfg.Server.RateLimitPerSecond,
		RateLimitBurst:     cfg.Server.RateLimitBurst,
		MetricsEnabled:     cfg.Metrics.Enabled,
		MetricsPath:        cfg.Metrics.Path,
		Logger:             appLog,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	var healthServer *health.Server
	if cfg.Health.Port > 0 {
		healthServer = health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Port:        cfg.Health.Port,
			Logger:      appLog,
			Checks:      checks,
		})
		if err := healthServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		appLog.WithFields(logrus.Fields{
			"addr":          srv.Addr,
			"model_version": served.Version(),
			"cache_scope":   served.CacheScope(),
			"fighters":      len(served.Fighters()),
		}).Info("API server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()
	if healthServer != nil {
		healthServer.SetReady(true)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	for {
		select {
		case err := <-serveErr:
			return fmt.Errorf("api server failed: %w", err)
		case sig := <-sigChan:
			if sig == syscall.SIGHUP {
				appLog.Info("Reloading model artifacts")
				// a failed reload keeps serving the previous model
				_ = predictor.Reload(ctx)
				continue
			}

			appLog.WithField("signal", sig).Info("Shutdown signal received")
			if healthServer != nil {
				healthServer.SetReady(false)
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				appLog.WithError(err).Error("Error during API server shutdown")
			}
			cancel()

			appLog.Info("Fight predictor shut down successfully")
			return nil
		}
	}
}
