package logutils

import "github.com/sirupsen/logrus"

var log = logrus.StandardLogger()

// SetLoggerLevel applies the requested level to the standard logger,
// falling back to info for unknown values.
func SetLoggerLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
}
