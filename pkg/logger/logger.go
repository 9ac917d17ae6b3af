package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// InitLogger initializes the structured logger with proper configuration
func InitLogger(logLevel string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()

	// Override with environment if not provided
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

	// Set formatter based on environment
	if !isDevelopment || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
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

	log.SetOutput(os.Stdout)

	return log
}

// WithComponent creates an entry scoped to one subsystem
func WithComponent(log *logrus.Logger, component string) *logrus.Entry {
	return log.WithField("component", component)
}

// WithPlayerContext creates an entry scoped to one (player, gameweek) unit of work
func WithPlayerContext(log *logrus.Logger, playerID uint, gameweek int) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"player_id": playerID,
		"gameweek":  gameweek,
	})
}

// WithRequestID creates an entry with request correlation context
func WithRequestID(log *logrus.Logger, requestID string) *logrus.Entry {
	return log.WithField("request_id", requestID)
}
