//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Logger implements compiler logging facility.
type Logger struct {
	log *log.Logger
}

// NewLogger creates a new logger outputting to the argument io.Writer.
func NewLogger(out io.Writer) *Logger {
	l := log.New()
	l.SetOutput(out)
	l.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
	return &Logger{
		log: l,
	}
}

// SetVerbose enables debug level messages.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.log.SetLevel(log.DebugLevel)
	} else {
		l.log.SetLevel(log.InfoLevel)
	}
}

// Errorf logs an error message and returns it as an error.
func (l *Logger) Errorf(loc Point, format string, a ...interface{}) error {
	msg := strings.TrimRight(fmt.Sprintf(format, a...), "\n")
	if loc.Undefined() {
		msg = fmt.Sprintf("%s: %s", loc.Source, msg)
	} else {
		msg = fmt.Sprintf("%s: %s", loc, msg)
	}
	l.log.Error(msg)

	idx := strings.IndexRune(msg, '\n')
	if idx > 0 {
		msg = msg[:idx]
	}
	return errors.New(msg)
}

// Warningf logs a warning message.
func (l *Logger) Warningf(loc Point, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if loc.Undefined() {
		l.log.Warnf("%s: %s", loc.Source, msg)
	} else {
		l.log.Warnf("%s: %s", loc, msg)
	}
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, a ...interface{}) {
	l.log.Infof(format, a...)
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, a ...interface{}) {
	l.log.Debugf(format, a...)
}

// WithField returns a log entry carrying the argument field.
func (l *Logger) WithField(key string, value interface{}) *log.Entry {
	return l.log.WithField(key, value)
}
