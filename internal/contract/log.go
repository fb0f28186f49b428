package contract

import (
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// InitLogging configures the shared logrus logger. Logs go to stderr so that
// they never mix with report output on stdout.
func InitLogging(level logrus.Level) {
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

// Logger returns a logger tagged with the given component prefix.
func Logger(prefix string) *logrus.Entry {
	return logrus.WithField("prefix", prefix)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logrus.WithError(err).Fatal(msg)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	logrus.WithError(err).Warn(msg)
}
