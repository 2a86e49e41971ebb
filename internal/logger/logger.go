// Package logger configures the logrus logger used for run diagnostics.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. It writes to stderr so that tables on stdout stay clean.
var Log = New(os.Stderr)

// New creates a text logger writing to out at info level
func New(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLogLevel sets the level of the shared logger.
// Available levels: debug, info, warn, error.
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", level, err)
	}
	Log.SetLevel(lvl)
	return nil
}
