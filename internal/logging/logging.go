// SPDX-License-Identifier: Unlicense OR MIT

// Package logging holds the logger shared by the hal packages.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var logger atomic.Pointer[logrus.Logger]

// Init replaces the shared logger with one configured from level,
// logFile and console. An unknown level falls back to info.
func Init(level, logFile string, console bool) error {
	l := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stderr)
	}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return err
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}
	switch len(writers) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(writers[0])
	default:
		l.SetOutput(io.MultiWriter(writers...))
	}
	logger.Store(l)
	return nil
}

// SetLogger installs l as the shared logger. A nil l restores the
// default.
func SetLogger(l *logrus.Logger) {
	logger.Store(l)
}

// Get returns the shared logger. Until configured it writes warnings
// and errors to stderr.
func Get() *logrus.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	if logger.CompareAndSwap(nil, l) {
		return l
	}
	return logger.Load()
}

// For returns an entry tagged with the subsystem name.
func For(component string) *logrus.Entry {
	return Get().WithField("component", component)
}
