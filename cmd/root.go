package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/config"
	"github.com/spigell/ats-scorer/internal/logger"
)

const (
	app = config.App
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-scorer rates how well a résumé will pass applicant tracking systems for a job",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-scorer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
}

func initConfig() {
	// ATS_* variables from .env must be visible before viper reads the environment.
	config.LoadDotEnv()
}

// getConfig loads the configuration with the persistent flags taking precedence.
func getConfig() (*config.Config, error) {
	v := config.New(cfgFile)
	bindFlag(v, "debug")
	bindFlag(v, "json")

	return config.Load(v)
}

func bindFlag(v *viper.Viper, name string) {
	if err := v.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
		log.Fatalf("binding %s flag: %v", name, err)
	}
}

// setup loads the configuration and builds the logger shared by every command.
func setup() (*config.Config, *zap.Logger) {
	cfg, err := getConfig()
	if err != nil {
		log.Fatalf("getting a config: %s", err)
	}

	logger, err := logger.New(cfg.JSON, cfg.Debug, logger.WithName(app))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	logger.Debug("starting with config", zap.Any("config", redacted(cfg)))
	return cfg, logger
}

// redacted hides inline secrets before the config is logged.
func redacted(cfg *config.Config) config.Config {
	c := *cfg
	if c.AI != nil && c.AI.Gemini != nil && c.AI.Gemini.APIKey.Value != "" {
		ai := *c.AI
		gemini := *ai.Gemini
		gemini.APIKey.Value = "***"
		ai.Gemini = &gemini
		c.AI = &ai
	}
	return c
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
