// Package config loads ats-scorer settings from a YAML file, ATS_ environment
// variables and a .env file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/keywords"
	"github.com/spigell/ats-scorer/internal/ranking"
	"github.com/spigell/ats-scorer/internal/secrets"
	"github.com/spigell/ats-scorer/internal/sections"
)

const (
	// App is the application name used for the config file and env prefix.
	App       = "ats-scorer"
	envPrefix = "ATS"

	defaultGeminiKeyEnv = "GEMINI_API_KEY"
)

type Config struct {
	Debug    bool               `mapstructure:"debug"`
	JSON     bool               `mapstructure:"json"`
	Weights  ats.Weights        `mapstructure:"weights"`
	Keywords *KeywordsConfig    `mapstructure:"keywords" validate:"required"`
	Sections []sections.Section `mapstructure:"sections" validate:"dive"`
	NLP      *NLPConfig         `mapstructure:"nlp"`
	AI       *AIConfig          `mapstructure:"ai"`
	Ranking  ranking.Config     `mapstructure:"ranking"`
}

type KeywordsConfig struct {
	MinLength           int             `mapstructure:"min-length" validate:"gte=1"`
	SimilarityThreshold float64         `mapstructure:"similarity-threshold" validate:"gt=0,lte=1"`
	UseSimilarity       bool            `mapstructure:"use-similarity"`
	Categories          []keywords.Rule `mapstructure:"categories"`
}

type NLPConfig struct {
	ModelDir string `mapstructure:"model-dir"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       secrets.Source `mapstructure:"api-key"`
	Model        string         `mapstructure:"model"`
	MaxLogLength int            `mapstructure:"max-log-length" validate:"gte=0"`
}

// New returns a viper instance with the defaults, the ATS_ environment binding and
// the config file location set. An empty cfgFile means ats-scorer.yaml in the current
// directory, which may be absent.
func New(cfgFile string) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(App)
		v.SetConfigType("yaml")
	}

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	w := ats.DefaultWeights()
	for _, c := range ats.Components {
		v.SetDefault("weights."+string(c), w.Of(c))
	}

	v.SetDefault("keywords.min-length", keywords.DefaultMinLength)
	v.SetDefault("keywords.similarity-threshold", keywords.DefaultSimilarityThreshold)
	v.SetDefault("keywords.use-similarity", true)

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.api-key.name", "gemini api key")
	v.SetDefault("ai.gemini.api-key.env", defaultGeminiKeyEnv)
	v.SetDefault("ai.gemini.max-log-length", 2000)

	v.SetDefault("ranking.minimum-score", 0.0)
	v.SetDefault("ranking.minimum-grade", "")
	v.SetDefault("ranking.exclude-file", "")
	v.SetDefault("ranking.concurrency", ranking.DefaultConcurrency)
}

// LoadDotEnv loads environment variables from the given .env files, or ./.env. Missing
// files are ignored.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Load reads the config file if there is one, decodes it and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and that the weights sum to 1.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	known := make(map[sections.Type]bool)
	for _, t := range sections.NewExtractor(sections.ExtendedTable).Types() {
		known[t] = true
	}
	for i, s := range c.Sections {
		if strings.TrimSpace(string(s.Type)) == "" || len(s.Headers) == 0 {
			return fmt.Errorf("invalid config: section %d needs a type and headers", i)
		}
		if !known[s.Type] {
			return fmt.Errorf("invalid config: section %d has unknown type %q", i, s.Type)
		}
	}
	return nil
}
