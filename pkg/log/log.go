// Package log provides the logging interface used throughout the core.
// It wraps logrus so callers never import it directly.
package log

import "github.com/sirupsen/logrus"

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	*logrus.Logger
}

// New returns a Logger backed by logrus, formatted the way the rest of
// this module's tooling expects: no timestamps, no field sorting, plain
// text.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
	}
	return &logger{l}
}

func (l *logger) Infof(format string, args ...interface{})  { l.Logger.Infof(format, args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.Logger.Errorf(format, args...) }
func (l *logger) Debugf(format string, args ...interface{}) { l.Logger.Debugf(format, args...) }
