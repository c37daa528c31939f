package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/recipe-finder/backend/internal/config"
	"github.com/recipe-finder/backend/internal/engine"
	"github.com/recipe-finder/backend/internal/storage"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// globalFlags override environment configuration for every command.
type globalFlags struct {
	envFile  string
	dataset  string
	logLevel string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "recipefinder",
		Short: "Ingredient-based recipe search",
		Long: `Recipe Finder loads a recipe dataset, indexes the Ingredients column with TF-IDF
and serves the ten closest recipes for a free-text ingredient query.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Path to .env file")
	cmd.PersistentFlags().StringVar(&flags.dataset, "dataset", "", "Recipe dataset (csv, tsv, json or parquet; default: $RECIPE_DATASET)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $LOG_LEVEL)")

	cmd.AddCommand(serveCmd(flags))
	cmd.AddCommand(searchCmd(flags))
	cmd.AddCommand(categoriesCmd(flags))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables, then applies flags.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	if err := config.LoadDotEnv(flags.envFile); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := config.Load()
	if flags.dataset != "" {
		cfg.Dataset.Path = flags.dataset
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	return cfg, nil
}

func newLogger(cfg config.LogConfig) (*logrus.Entry, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	return logger.WithField("service", "recipe-finder"), nil
}

// setup is shared by every command that needs a loaded index.
func setup(flags *globalFlags) (*config.Config, *logrus.Entry, *engine.Engine, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := storage.NewFileStorage(cfg.Dataset.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.WithFields(logrus.Fields{
		"path":   store.Path(),
		"format": store.Format(),
	}).Info("Loading recipe dataset")

	eng, err := engine.NewEngine(cfg, logger, store)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, eng, nil
}
