package dyntest

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogEnv selects the log level for registration and discovery logging.
const LogEnv = "DYNTEST_LOG"

// newLogger builds a development logger writing to w at level. An empty
// level disables logging.
func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	if level == "" {
		return zap.NewNop(), nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)

	return zap.New(core, zap.Development()).Named("dyntest"), nil
}

func logLevel(cfg *Config) string {
	if level := os.Getenv(LogEnv); level != "" {
		return level
	}

	return cfg.LogLevel
}
