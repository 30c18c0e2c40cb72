// Package log provides a thread-safe, structured logging infrastructure with optional filesystem-based persistence.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/toumei/toumei/filesystem"
	"github.com/toumei/toumei/key"
	"github.com/toumei/toumei/where"
)

// Fields is an alias so callers do not import logrus directly.
type Fields = logrus.Fields

// Setup configures the logrus standard logger from global configuration.
// Logs always go to stderr; with logs.write a dated file in where.Logs() receives a copy.
func Setup() error {
	var out io.Writer = os.Stderr

	if viper.GetBool(key.LogsWrite) {
		filename := fmt.Sprintf("%s.log", time.Now().Format("2006-01-02"))
		path := filepath.Join(where.Logs(), filename)

		f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, f)
	}
	logrus.SetOutput(out)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

// WithFields returns an entry carrying structured context.
func WithFields(fields Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

// Severity-specific emissions proxied to the configured backend.

func Fatal(args ...interface{}) {
	logrus.Fatal(args...)
}
func Fatalf(format string, args ...interface{}) {
	logrus.Fatalf(format, args...)
}
func Error(args ...interface{}) {
	logrus.Error(args...)
}
func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}
func Warn(args ...interface{}) {
	logrus.Warn(args...)
}
func Warnf(format string, args ...interface{}) {
	logrus.Warnf(format, args...)
}
func Info(args ...interface{}) {
	logrus.Info(args...)
}
func Infof(format string, args ...interface{}) {
	logrus.Infof(format, args...)
}
func Debug(args ...interface{}) {
	logrus.Debug(args...)
}
func Debugf(format string, args ...interface{}) {
	logrus.Debugf(format, args...)
}
