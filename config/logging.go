package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process logger. It stays a no-op unless debug logging is enabled.
var Log = zap.NewNop()

// InitDebugLog points Log at <dataDir>/debug.log when INGREDI_DEBUG is set.
// The TUI owns the terminal, so debug output never goes to stderr.
func InitDebugLog(dataDir string) *zap.Logger {
	if !CheckDebug() {
		return Log
	}

	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: may contain ingredient text and backend errors
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return Log
	}
	f.Close()

	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{logPath}
	zcfg.ErrorOutputPaths = []string{logPath}
	zcfg.DisableStacktrace = true

	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not start debug log: %v\n", err)
		return Log
	}

	Log = logger
	Log.Info("debug logging started", zap.String("path", logPath), zap.String("INGREDI_DEBUG", os.Getenv("INGREDI_DEBUG")))
	return Log
}

// NewCLILogger builds the stderr logger used by headless subcommands
func NewCLILogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	Log = logger
	return logger, nil
}
