package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sanosuguru/go-movie-ticket-booking/internal/config"
)

const serviceName = "movie-ticket-booking"

var log *zap.Logger

func init() {
	log = New(config.AppConfig{Env: "development"})
}

// New は実行環境に応じたロガーを作成する
// production は JSON、それ以外はカラー付きのコンソール出力
func New(cfg config.AppConfig) *zap.Logger {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if cfg.LogLevel != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
			zc.Level = zap.NewAtomicLevelAt(level)
		}
	}

	l, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l.With(zap.String("service", serviceName))
}

func Get() *zap.Logger {
	return log
}

func Set(l *zap.Logger) {
	log = l
}

func Info(msg string, fields ...zap.Field) {
	log.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	log.Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	log.Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	log.Warn(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	log.Fatal(msg, fields...)
}

func With(fields ...zap.Field) *zap.Logger {
	return log.With(fields...)
}

func Sync() error {
	return log.Sync()
}
