// Package logger provides the client's structured logging, adapted from
// the teacher's logrus+lumberjack logger manager and trimmed to the events
// a ledger client actually needs to report: connection lifecycle,
// registration, eviction, protocol errors, and retry/backoff. Request and
// reply payload contents are never logged.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how the client logs.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, stderr, file
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Caller     bool
}

func DefaultConfig() *Config {
	return &Config{Level: "info", Format: "text", Output: "stderr"}
}

// Manager wraps a configured logrus.Logger and supports level updates at
// runtime (driven by a config hot-reload watcher).
type Manager struct {
	logger *logrus.Logger
	config *Config
}

var instance *Manager

// Init builds the package-level logger from cfg. Safe to call once at
// client construction time.
func Init(cfg *Config) (*Manager, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		l.Warnf("invalid log level %q, using info", cfg.Level)
	}
	l.SetLevel(level)

	if err := setFormatter(l, cfg); err != nil {
		return nil, err
	}
	if err := setOutput(l, cfg); err != nil {
		return nil, err
	}
	l.SetReportCaller(cfg.Caller)

	m := &Manager{logger: l, config: cfg}
	instance = m
	return m, nil
}

func setFormatter(l *logrus.Logger, cfg *Config) error {
	timestampFormat := "2006-01-02 15:04:05.000"
	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timestampFormat})
	case "text", "":
		l.SetFormatter(&logrus.TextFormatter{TimestampFormat: timestampFormat, FullTimestamp: true})
	default:
		return fmt.Errorf("logger: unsupported format %q", cfg.Format)
	}
	return nil
}

func setOutput(l *logrus.Logger, cfg *Config) error {
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		l.SetOutput(os.Stdout)
	case "stderr", "":
		l.SetOutput(os.Stderr)
	case "file":
		if cfg.FilePath == "" {
			return fmt.Errorf("logger: file path required when output is file")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return fmt.Errorf("logger: create log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		if strings.ToLower(cfg.Level) == "debug" {
			l.SetOutput(io.MultiWriter(os.Stderr, lj))
		} else {
			l.SetOutput(lj)
		}
	default:
		return fmt.Errorf("logger: unsupported output %q", cfg.Output)
	}
	return nil
}

// SetLevel updates the log level at runtime, used by the config watcher's
// hot-reload path.
func (m *Manager) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	m.logger.SetLevel(lvl)
	m.config.Level = level
	return nil
}

func active() *logrus.Logger {
	if instance != nil {
		return instance.logger
	}
	return logrus.StandardLogger()
}

func Debugf(format string, args ...interface{}) { active().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { active().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { active().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { active().Errorf(format, args...) }

func WithField(key string, value interface{}) *logrus.Entry {
	return active().WithField(key, value)
}
