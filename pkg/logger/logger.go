package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// ServiceName tags request and resource scoped log lines.
const ServiceName = "fpl-proxy"

// InitLoggerWithFormat builds the process logger. logFormat "json" forces JSON output;
// empty falls back to LOG_FORMAT.
func InitLoggerWithFormat(logLevel, logFormat string, isDevelopment bool) *logrus.Logger {
	if logFormat == "" {
		logFormat = os.Getenv("LOG_FORMAT")
	}
	return initLogger(logLevel, logFormat, isDevelopment, os.Stdout)
}
func initLogger(logLevel, logFormat string, isDevelopment bool, out io.Writer) *logrus.Logger {
	log := logrus.New()

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			if isDevelopment {
				logLevel = "debug"
			} else {
				logLevel = "info"
			}
		}
	}

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}

	if !isDevelopment || strings.ToLower(logFormat) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}

	log.SetOutput(out)

	return log
}

// WithRequestContext scopes log to one HTTP request.
func WithRequestContext(log *logrus.Logger, requestID, method, path string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"service":     ServiceName,
		"request_id":  requestID,
		"http_method": method,
		"http_path":   path,
	})
}

// WithResource scopes log to one cached upstream resource.
func WithResource(log *logrus.Logger, resource string) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"service":  ServiceName,
		"resource": resource,
	})
}
