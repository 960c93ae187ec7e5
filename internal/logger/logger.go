package logger

import (
	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logger, set up by Init
var Logger = logrus.New()

// Init configures Logger with a timestamped text formatter at the given level.
// An unknown level falls back to warn.
func Init(level string) *logrus.Logger {
	Logger = logrus.New()
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
		Logger.WithField("level", level).Warn("unknown log level, using warn")
	}
	Logger.SetLevel(lvl)

	return Logger
}
