package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idilsaglam/todolist/internal/config"
)

// Options tune where and how much New logs.
type Options struct {
	Level string
	// File receives the log. Empty means stderr.
	File  string
	Debug bool
}

// FromConfig maps the log section of cfg onto Options.
func FromConfig(cfg *config.Config, debug bool) Options {
	return Options{Level: cfg.Log.Level, File: cfg.Log.File, Debug: debug}
}

// New builds a console zap logger. The caller owns Sync.
func New(opt Options) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if opt.Level != "" {
		l, err := zapcore.ParseLevel(opt.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	if opt.Debug {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Development = false
	zcfg.DisableStacktrace = true
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	if opt.File != "" {
		if err := os.MkdirAll(filepath.Dir(opt.File), 0o700); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
		zcfg.OutputPaths = []string{opt.File}
	}

	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}
	return l, nil
}
