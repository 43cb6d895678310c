// Package logging builds the CLI logger: human readable lines on the console and JSON lines in a
// size rotated log file.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 5
)

type Options struct {
	// File is the log file path. No file is written when empty.
	File  string
	Level string
	// Console defaults to os.Stderr.
	Console    io.Writer
	MaxSizeMB  int
	MaxBackups int
}

// Logger is a zap logger that owns its log file.
type Logger struct {
	*zap.Logger
	file *lumberjack.Logger
}

func New(opts Options) (*Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleConfig := zap.NewDevelopmentEncoderConfig()
	consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if console != os.Stderr && console != os.Stdout {
		consoleConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.AddSync(console), level),
	}

	l := &Logger{}
	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    valueOr(opts.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: valueOr(opts.MaxBackups, defaultMaxBackups),
			LocalTime:  true,
		}
		fileConfig := zap.NewProductionEncoderConfig()
		fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileConfig), zapcore.AddSync(l.file), level))
	}

	l.Logger = zap.New(zapcore.NewTee(cores...))

	return l, nil
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	// Syncing a terminal fails with EINVAL on some platforms.
	_ = l.Sync()
	if l.file == nil {
		return nil
	}

	return l.file.Close()
}

func valueOr(v, fallback int) int {
	if v > 0 {
		return v
	}

	return fallback
}
