package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	Output     string // comma separated: stdout, stderr and/or file paths
	TimeFormat string
	Service    string // added to every entry as "service" when set
}

// New builds the process logger. Errors carry a stack trace; console output
// is colored for local development.
func New(cfg *Config) (*zap.Logger, error) {
	sink, err := openSinks(cfg.Output)
	if err != nil {
		return nil, err
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = defaultTimeFormat
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Service != "" {
		opts = append(opts, zap.Fields(zap.String("service", cfg.Service)))
	}
	core := zapcore.NewCore(newEncoder(cfg.Format, timeFormat), sink, parseLevel(cfg.Level))
	return zap.New(core, opts...), nil
}

// parseLevel falls back to info for unknown names
func parseLevel(level string) zapcore.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func newEncoder(format, timeFormat string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	ec.EncodeDuration = zapcore.MillisDurationEncoder

	if format == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

// openSinks resolves every comma separated output; files are opened for append
func openSinks(output string) (zapcore.WriteSyncer, error) {
	var sinks []zapcore.WriteSyncer
	for _, name := range strings.Split(output, ",") {
		switch name = strings.TrimSpace(name); strings.ToLower(name) {
		case "", "stdout":
			sinks = append(sinks, zapcore.Lock(os.Stdout))
		case "stderr":
			sinks = append(sinks, zapcore.Lock(os.Stderr))
		default:
			f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return nil, fmt.Errorf("open log output %q: %w", name, err)
			}
			sinks = append(sinks, zapcore.AddSync(f))
		}
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return zapcore.NewMultiWriteSyncer(sinks...), nil
}

// Sync flushes any buffered log entries
func Sync(logger *zap.Logger) error {
	return logger.Sync()
}
