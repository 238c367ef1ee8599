// Package logging builds the zap loggers used by the commands and the
// batch runner.
package logging

import (
	"os"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls where log messages go and which are kept.
type Config struct {

	// One of debug, info, warn, error.  Empty means info.
	Level string

	// If not empty, messages are also written to files named
	// Path.YYYYmmddHH, rotated every RotationTime hours and removed after
	// MaxAge days.
	Path         string
	RotationTime int
	MaxAge       int

	// Write to stderr as well as the log file.  Always true when Path is
	// empty.
	Console bool
}

// DefaultConfig logs info and above to stderr.
func DefaultConfig() Config {
	return Config{
		Level:        "info",
		RotationTime: 24,
		MaxAge:       7,
		Console:      true,
	}
}

// ParseLevel converts a level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {

	switch strings.ToLower(s) {
	case "", "info":
		return zap.InfoLevel, nil
	case "debug":
		return zap.DebugLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return zap.InfoLevel, errors.Errorf("unknown log level %q", s)
	}
}

// New returns a named logger configured by cfg.
func New(name string, cfg Config) (*zap.SugaredLogger, error) {

	var syncers []zapcore.WriteSyncer

	if cfg.Path != "" {
		rt := cfg.RotationTime
		if rt <= 0 {
			rt = 24
		}
		age := cfg.MaxAge
		if age <= 0 {
			age = 7
		}
		rotationWriter, err := rotatelogs.New(
			cfg.Path+".%Y%m%d%H",
			rotatelogs.WithRotationTime(time.Duration(rt)*time.Hour),
			rotatelogs.WithMaxAge(time.Duration(age)*24*time.Hour),
		)
		if err != nil {
			return nil, errors.Wrap(err, "rotating log file")
		}
		syncers = append(syncers, zapcore.AddSync(rotationWriter))
	}

	if cfg.Console || cfg.Path == "" {
		syncers = append(syncers, zapcore.Lock(os.Stderr))
	}

	return newWithSyncer(name, cfg, zapcore.NewMultiWriteSyncer(syncers...))
}

func newWithSyncer(name string, cfg Config, ws zapcore.WriteSyncer) (*zap.SugaredLogger, error) {

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), ws, level)

	return zap.New(core).Named(name).Sugar(), nil
}

func encoderConfig() zapcore.EncoderConfig {

	levelEncoder := func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + level.CapitalString() + "]")
	}
	timeEncoder := func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}

	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "line",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    levelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

// NewNop returns a logger that discards everything.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
