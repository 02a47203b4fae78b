package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var l = zap.Must(zap.NewProduction())

// Init replaces the default production logger according to config.
// mode "debug" switches to the development encoder and debug level.
func Init(mode string) {
	var (
		log *zap.Logger
		err error
	)
	if mode == "debug" {
		log, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		log, err = cfg.Build()
	}
	if err != nil {
		panic(err)
	}
	l = log
}

// L returns the underlying zap logger for callers that need it directly.
func L() *zap.Logger { return l }

func Debug(msg string, fields ...zap.Field) { l.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { l.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { l.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { l.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { l.Fatal(msg, fields...) }

// Sync flushes buffered entries. Called on shutdown.
func Sync() { _ = l.Sync() }
