package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a text logger on stdout. Unknown levels fall back to info.
func NewLogger(level string) *logrus.Logger {
	var log = logrus.New()
	log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}
	log.Out = os.Stdout
	SetLevel(log, level)
	return log
}

// SetLevel applies a textual level such as "debug" or "warn".
func SetLevel(log *logrus.Logger, level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}
