package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// L is the shared application logger.
var L = logrus.New()

// Init configures the shared logger. Debug mode switches to a human-readable
// formatter with full timestamps; otherwise JSON is emitted for log shippers.
func Init(debug bool) {
	L.SetOutput(os.Stdout)
	if debug {
		L.SetLevel(logrus.DebugLevel)
		L.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	L.SetLevel(logrus.InfoLevel)
	L.SetFormatter(&logrus.JSONFormatter{})
}

// WithFields is a convenience wrapper around the shared logger.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return L.WithFields(fields)
}
