// Package main provides a one-shot command line prediction.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/fight-predictor/internal/config"
	"github.com/yourusername/fight-predictor/internal/dataset"
	"github.com/yourusername/fight-predictor/internal/logger"
	"github.com/yourusername/fight-predictor/internal/models"
	"github.com/yourusername/fight-predictor/internal/service"
)

var (
	configFile string
	asJSON     bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.PathFromEnv(config.DefaultConfigPath), "Path to configuration file")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print the full outcome as JSON")
}

var rootCmd = &cobra.Command{
	Use:   "predict <red fighter> <blue fighter>",
	Short: "Predict the winner of a single fight",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := config.LoadSecretsFromAWS(cmd.Context(), cfg); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}

		appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		appLog.SetLevel(logrus.WarnLevel)

		client := dataset.NewRateLimitedHTTPClient(dataset.HTTPClientConfigFrom(cfg.Dataset), appLog)
		defer client.Close()

		model, err := service.LoadModel(cmd.Context(), cfg, client, appLog)
		if err != nil {
			return err
		}
		svc, err := service.NewPredictionService(model, appLog)
		if err != nil {
			return err
		}

		outcome, err := svc.PredictFight(cmd.Context(), args[0], args[1])
		if err != nil {
			var notFound *models.FighterNotFoundError
			if errors.As(err, &notFound) {
				return fmt.Errorf("fighter %q not found in the %s corner", notFound.Name, notFound.Side)
			}
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(outcome)
		}
		fmt.Println(outcome.Message)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
