// Package logger provides structured logging using zap.
//
// Until Setup is called every logger is a no-op, so packages can log freely from
// tests and from commands that never configure logging.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance.
var Log = zap.NewNop()

// Sugar is the sugared logger for convenient logging.
var Sugar = Log.Sugar()

// FileConfig holds file logging configuration.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns default file logging settings.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Options selects the level and the outputs.
type Options struct {
	Level string
	File  FileConfig
	// Console receives colored console output. nil disables it; the terminal
	// viewer owns the screen and must not be written to.
	Console io.Writer
}

// Init configures console logging to stderr plus an optional log file.
func Init(level, logFile string) error {
	opts := Options{Level: level, Console: os.Stderr}
	if logFile != "" {
		opts.File = DefaultFileConfig(logFile)
	}
	return Setup(opts)
}

// Setup replaces the global loggers.
func Setup(opts Options) error {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	var cores []zapcore.Core

	if opts.Console != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(
				zapcore.TimeEncoderOfLayout("15:04:05"),
				zapcore.CapitalColorLevelEncoder,
			)),
			zapcore.AddSync(opts.Console),
			lvl,
		))
	}

	if opts.File.Path != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(
				zapcore.ISO8601TimeEncoder,
				zapcore.CapitalLevelEncoder,
			)),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   opts.File.Path,
				MaxSize:    opts.File.MaxSizeMB,
				MaxBackups: opts.File.MaxBackups,
				MaxAge:     opts.File.MaxAgeDays,
				Compress:   opts.File.Compress,
				LocalTime:  true, // rotated names use local time
			}),
			lvl,
		))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	Sugar = Log.Sugar()
	return nil
}

func encoderConfig(timeEnc zapcore.TimeEncoder, levelEnc zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       timeEnc,
		EncodeLevel:      levelEnc,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	}
}

// ParseLevel accepts debug, info, warn and error. The empty string means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("logger: unknown level %q", level)
	}
}

// Named returns a child of the global logger for one component.
// Call it after Setup; the child keeps the cores it was created with.
func Named(name string) *zap.Logger {
	return Log.Named(name)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
