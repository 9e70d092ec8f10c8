package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the production logger for one service. LOG_LEVEL overrides the
// default info level. The logger is also installed as zap's global so shared
// packages can log without plumbing.
func New(serviceName string) *zap.Logger {
	cfg := zap.NewProductionConfig()

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if level, err := zapcore.ParseLevel(lvl); err == nil {
			cfg.Level.SetLevel(level)
		}
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	log = log.With(zap.String("service", serviceName))
	zap.ReplaceGlobals(log)
	return log
}
