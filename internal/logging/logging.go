// Package logging builds the application logger. Diagnostics always go
// to stderr so the rendered report owns stdout.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a sugared zap logger writing to stderr at the given level.
// One-shot CLI runs use warn to keep the terminal quiet; serve mode runs
// at info.
func New(level zapcore.Level) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "@timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		// Construction only fails on invalid config; fall back to a
		// no-op logger rather than aborting the report.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
