// Package main reports the state of the trained artifacts and the model registry.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/fight-predictor/internal/config"
	"github.com/yourusername/fight-predictor/internal/database"
	"github.com/yourusername/fight-predictor/internal/ml"
	"github.com/yourusername/fight-predictor/internal/repository"
	"github.com/yourusername/fight-predictor/internal/service"
)

var (
	configFile string
	limit      int
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.PathFromEnv(config.DefaultConfigPath), "Path to configuration file")
	rootCmd.Flags().IntVar(&limit, "limit", 10, "Number of registry entries and recent predictions to list")
}

var rootCmd = &cobra.Command{
	Use:   "model-status",
	Short: "Check trained artifact and registry status",
	Long:  `Displays the artifacts the server would load and, when the database is enabled, the recent entries of the model registry and the latest served predictions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return config.LoadSecretsFromAWS(cmd.Context(), cfg)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return displayStatus(ctx)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func displayStatus(ctx context.Context) error {
	fmt.Println("Model Artifacts:")
	displayArtifact("Scaler", cfg.Artifacts.ScalerPath)
	displayArtifact("Classifier", cfg.Artifacts.ModelPath)

	fmt.Println("\nConfiguration:")
	fmt.Printf("  Dataset: %s\n", cfg.Dataset.Path)
	fmt.Printf("  Split: test size %.2f, seed %d\n", cfg.Training.TestSize, cfg.Training.Seed)
	fmt.Printf("  Cache: enabled=%v ttl=%ds max=%d\n", cfg.Prediction.CacheEnabled, cfg.Prediction.CacheTTLSeconds, cfg.Prediction.CacheMaxSize)
	if cfg.Training.Schedule != "" {
		fmt.Printf("  Retraining schedule: %s\n", cfg.Training.Schedule)
	}

	if !cfg.Database.Enabled {
		fmt.Println("\nModel Registry: disabled")
		return nil
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.HealthCheck(ctx); err != nil {
		fmt.Printf("\nModel Registry: UNAVAILABLE (%v)\n", err)
		return nil
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return err
	}

	entries, err := repos.Model.List(ctx, cfg.Training.ModelName, limit)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	fmt.Printf("\nModel Registry (%s):\n", cfg.Training.ModelName)
	if len(entries) == 0 {
		fmt.Println("  no trained models recorded")
	}
	for _, m := range entries {
		marker := " "
		if m.IsActive() {
			marker = "*"
		}
		accuracy, _ := m.GetMetric("accuracy")
		fmt.Printf("  %s %s  trained %s  accuracy %v  %s\n",
			marker, m.Version, m.TrainedAt.Format(time.RFC3339), accuracy, m.Path)
	}

	recent, err := repos.Prediction.ListRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list predictions: %w", err)
	}

	fmt.Println("\nRecent Predictions:")
	if len(recent) == 0 {
		fmt.Println("  no predictions recorded")
	}
	for _, p := range recent {
		fmt.Printf("  %s  %s vs %s -> %s (%s%%)  model %s\n",
			p.PredictedAt.Format(time.RFC3339), p.RedName, p.BlueName, p.Winner, p.Confidence.StringFixed(2), p.ModelVersion)
	}
	return nil
}

func displayArtifact(label, path string) {
	info, err := ml.ReadArtifactInfo(path)
	if err != nil {
		fmt.Printf("  %s: UNAVAILABLE (%v)\n", label, err)
		return
	}
	fmt.Printf("  %s: %s\n", label, path)
	fmt.Printf("    kind: %s (format %d)\n", info.Kind, info.FormatVersion)
	fmt.Printf("    version: %s\n", service.VersionFromTime(info.TrainedAt))
	fmt.Printf("    features: %s\n", strings.Join(info.FeatureNames, ", "))
}
