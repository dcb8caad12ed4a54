// SPDX-License-Identifier: MIT

// Package logging builds the zap logger used by the command-line tool.
package logging

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrFormat indicates an output format other than "json" or "console".
var ErrFormat = errors.New("logging: unknown format")

// New returns a logger at level ("debug", "info", "warn", "error") writing
// in format ("json" or "console") to stderr.
//
// Errors: ErrFormat, or the zapcore error for an unknown level.
func New(level, format string) (*zap.Logger, error) {
	cfg, err := Config(level, format)
	if err != nil {
		return nil, err
	}

	return cfg.Build()
}

// Config returns the zap configuration New builds from.
func Config(level, format string) (zap.Config, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.Development = false
	default:
		return zap.Config{}, fmt.Errorf("%q: %w", format, ErrFormat)
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return zap.Config{}, fmt.Errorf("logging: level %q: %w", level, err)
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg, nil
}
