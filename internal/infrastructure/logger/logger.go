package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

// AppLogger wraps a logrus logger behind the IAppLogger interface.
type AppLogger struct {
	log *logrus.Logger
}

// NewAppLogger creates a logrus-backed logger. LOG_LEVEL and LOG_FORMAT
// (text|json) control verbosity and output shape.
func NewAppLogger() usecasecontract.IAppLogger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return &AppLogger{log: log}
}

// Debugf logs a debug message.
func (l *AppLogger) Debugf(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

// Infof logs an info message.
func (l *AppLogger) Infof(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

// Warnf logs a warning message.
func (l *AppLogger) Warnf(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

// Errorf logs an error message.
func (l *AppLogger) Errorf(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

// Fatalf logs a fatal message and exits.
func (l *AppLogger) Fatalf(format string, args ...interface{}) {
	l.log.Fatalf(format, args...)
}
