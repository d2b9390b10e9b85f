package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option adjusts the logger built by New.
type Option func(*zap.Config)

// WithOutput sends log entries to the given zap sink paths instead of stderr.
func WithOutput(paths ...string) Option {
	return func(c *zap.Config) {
		c.OutputPaths = paths
	}
}

// WithName adds an "app" field to every entry.
func WithName(name string) Option {
	return func(c *zap.Config) {
		if c.InitialFields == nil {
			c.InitialFields = map[string]any{}
		}
		c.InitialFields["app"] = name
	}
}

// New builds the process logger. Entries go to stderr by default so that reports
// printed on stdout stay clean. Debug also turns on caller annotations.
func New(json bool, debug bool, opts ...Option) (*zap.Logger, error) {
	cfg := zap.Config{
		Encoding:          "console",
		Level:             zap.NewAtomicLevelAt(zapcore.InfoLevel),
		DisableCaller:     true,
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "msg",
			LevelKey:       "level",
			TimeKey:        "ts",
			NameKey:        "logger",
			CallerKey:      "caller",
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeName:     zapcore.FullNameEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}

	if json {
		cfg.Encoding = "json"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	}
	if debug {
		cfg.Level.SetLevel(zapcore.DebugLevel)
		cfg.DisableCaller = false
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
