// Package log writes structured diagnostics to a rotating file.
//
// Nothing is written unless logs.write is enabled.
package log

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/multitracks/multitracks/constant"
	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = discarding()

func discarding() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Setup configures the file sink from the logs.* settings.
// An unknown level falls back to info.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = discarding()
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	l := logrus.New()
	l.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(dir, constant.Multitracks+".log"),
		MaxSize:    viper.GetInt(key.LogsMaxSize),
		MaxBackups: viper.GetInt(key.LogsMaxBackups),
		LocalTime:  true,
	})

	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logger = l
	return nil
}

// WithSession returns an entry tagged with a playback session identifier.
func WithSession(id string) *logrus.Entry {
	return logger.WithField("session", id)
}

func Error(args ...any)                 { logger.Error(args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }
func Warn(args ...any)                  { logger.Warn(args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Info(args ...any)                  { logger.Info(args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Debug(args ...any)                 { logger.Debug(args...) }
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
