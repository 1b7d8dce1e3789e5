// Package logging wraps zap behind the small surface the rest of the
// program uses.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a structured sugared logger.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a production JSON logger at info level, or a development
// console logger at debug level when verbose is set.
func NewLogger(verbose bool) *Logger {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return &Logger{logger.Sugar()}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

// Close flushes buffered entries. Stdout sync errors are ignored.
func (l *Logger) Close() {
	_ = l.Sync()
}
