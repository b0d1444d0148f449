// Package debug traces lexer internals when BYTESEARCH_DEBUG is set.
package debug

import (
	"os"

	"github.com/sirupsen/logrus"
)

var _, enabled = os.LookupEnv("BYTESEARCH_DEBUG")

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.DebugLevel)
	return l
}

func Enabled() bool {
	return enabled
}

// Printf logs at debug level; a no-op unless tracing is enabled.
func Printf(format string, a ...any) {
	if !enabled {
		return
	}
	logger.Debugf(format, a...)
}

// WithFields is Printf with structured fields.
func WithFields(fields logrus.Fields, format string, a ...any) {
	if !enabled {
		return
	}
	logger.WithFields(fields).Debugf(format, a...)
}
