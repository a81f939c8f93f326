package zlog

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	once   sync.Once
)

// Init configures the global logger. When logPath is empty, logs go to
// stdout only. Safe to call more than once; only the first call wins.
func Init(logPath string) {
	once.Do(func() {
		logger = build(logPath)
	})
}

func build(logPath string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel),
	}

	if logPath != "" {
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(logPath, "docuqa.log"),
			MaxSize:    64, // MB
			MaxBackups: 7,
			MaxAge:     30, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), zapcore.InfoLevel))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

func get() *zap.Logger {
	if logger == nil {
		Init("")
	}
	return logger
}

func Debug(msg string, fields ...zap.Field) {
	get().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	get().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	get().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	get().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	get().Fatal(msg, fields...)
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	_ = get().Sync()
}
