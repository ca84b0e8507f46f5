package logger

import (
	"path/filepath"

	"github.com/giwty/quarkpad/settings"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

// Create new logger
func newLogger(dataFolder string, debug bool) {
	level := zap.NewAtomicLevelAt(zap.DebugLevel)

	// If not debug keep at info level
	if !debug {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// rotated instead of deleted on every start
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dataFolder, settings.LOG_FILENAME),
		MaxSize:    1,
		MaxBackups: 2,
	})

	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	logger = zap.New(zapcore.NewCore(encoder, sink, level), zap.AddCaller())
	zap.ReplaceGlobals(logger)
}

// Get sugared logger from logger
func GetSugar(dataFolder string, debug bool) *zap.SugaredLogger {
	if logger == nil {
		newLogger(dataFolder, debug)
	}

	return logger.Sugar()
}

// Sync on defer (call it with defer)
func Defer() {
	if logger != nil {
		_ = logger.Sync()
	}
}
