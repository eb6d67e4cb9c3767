// Package mylog provides the node's single structured logger instance.
package mylog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the package-wide logger every other internal package writes through:
// a single structured logger in place of ad-hoc log.Printf/fmt.Println calls.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}
