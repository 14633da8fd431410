// Package main provides the offline training entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/fight-predictor/internal/config"
	"github.com/yourusername/fight-predictor/internal/database"
	"github.com/yourusername/fight-predictor/internal/dataset"
	"github.com/yourusername/fight-predictor/internal/logger"
	"github.com/yourusername/fight-predictor/internal/metrics"
	"github.com/yourusername/fight-predictor/internal/repository"
	"github.com/yourusername/fight-predictor/internal/scheduler"
	"github.com/yourusername/fight-predictor/internal/service"
)

var (
	configFile string
	schedule   string
	seed       int64
	testSize   float64
	register   bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.PathFromEnv(config.DefaultConfigPath), "Path to configuration file")
	rootCmd.Flags().StringVar(&schedule, "schedule", "", "Cron expression; keeps retraining on this schedule instead of running once")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Override the split seed")
	rootCmd.Flags().Float64Var(&testSize, "test-size", 0, "Override the held-out fraction")
	rootCmd.Flags().BoolVar(&register, "register", true, "Record the run in the model registry when the database is enabled")
}

var rootCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the fight outcome classifier",
	Long: `Loads the historical fight dataset, excludes title fights, fits the scaler
and classifier on a seeded train/test split, prints accuracy and the confusion
matrix for the held-out partition, and writes both artifacts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Flags().Changed("seed") {
			cfg.Training.Seed = seed
		}
		if cmd.Flags().Changed("test-size") {
			cfg.Training.TestSize = testSize
		}
		if schedule != "" {
			cfg.Training.Schedule = schedule
		}
		return run(cmd.Context(), cfg)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()

	client := dataset.NewRateLimitedHTTPClient(dataset.HTTPClientConfigFrom(cfg.Dataset), appLog)
	defer client.Close()

	var modelRepo repository.ModelRepository
	if cfg.Database.Enabled && register {
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		repos, err := repository.NewRepositories(db)
		if err != nil {
			return fmt.Errorf("failed to initialize repositories: %w", err)
		}
		modelRepo = repos.Model
	}

	trainer := service.NewTrainingService(service.TrainingConfigFrom(cfg), client, modelRepo, appLog)

	if cfg.Training.Schedule == "" {
		report, err := trainer.Run(ctx)
		if err != nil {
			if errors.Is(err, service.ErrTrainingInProgress) {
				return fmt.Errorf("another training run holds %s: %w", cfg.TrainingLockPath(), err)
			}
			return err
		}
		printReport(report)
		return nil
	}

	sched := scheduler.NewScheduler(trainer, appLog)
	sched.OnComplete(printReport)
	if err := sched.ScheduleRetraining(cfg.Training.Schedule); err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	appLog.WithFields(logrus.Fields{
		"schedule": cfg.Training.Schedule,
		"next_run": sched.NextRun(),
	}).Info("Retraining scheduled")

	<-ctx.Done()
	sched.Stop()
	return nil
}

func printReport(report *service.TrainingReport) {
	fmt.Println(report.Evaluation.String())
	fmt.Printf("\nModel version: %s\n", report.Version)
	fmt.Printf("Samples: %d train / %d test (%d title fights excluded of %d rows)\n",
		report.TrainSamples, report.TestSamples, report.TitleFightsExcluded, report.TotalRows)
	fmt.Printf("Scaler saved to %s\n", report.ScalerPath)
	fmt.Printf("Model saved to %s\n", report.ModelPath)
}
