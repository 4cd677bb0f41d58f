//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"fmt"
	"path/filepath"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// SetTrace enables trace level messages.
func (l *Logger) SetTrace(trace bool) {
	if trace {
		l.log.SetLevel(log.TraceLevel)
	}
}

// Tracef logs a trace level message prefixed with the caller's
// source position.
func (l *Logger) Tracef(format string, a ...interface{}) {
	if !l.log.IsLevelEnabled(log.TraceLevel) {
		return
	}
	msg := fmt.Sprintf(format, a...)
	_, file, line, ok := runtime.Caller(1)
	if ok {
		msg = fmt.Sprintf("%s:%d: %s", filepath.Base(file), line, msg)
	}
	l.log.Trace(msg)
}
