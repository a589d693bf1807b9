/*
 * Copyright (c) 2021 Gilles Chehade <gilles@poolp.org>
 *
 * Permission to use, copy, modify, and distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package logging

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

type Logger struct {
	enableInfo        bool
	enableDebug       bool
	enableTracing     bool
	mutraceSubsystems sync.Mutex
	traceSubsystems   map[string]bool
	stderrLogger      *log.Logger
	infoLogger        *log.Logger
	warnLogger        *log.Logger
	debugLogger       *log.Logger
	traceLogger       *log.Logger
	profileLogger     *log.Logger
}

func NewLogger(stdout io.Writer, stderr io.Writer) *Logger {
	return &Logger{
		enableInfo:      false,
		enableDebug:     false,
		enableTracing:   false,
		stderrLogger:    log.NewWithOptions(stderr, log.Options{}),
		infoLogger:      log.NewWithOptions(stdout, log.Options{Prefix: "info"}),
		warnLogger:      log.NewWithOptions(stderr, log.Options{Prefix: "warn"}),
		debugLogger:     log.NewWithOptions(stderr, log.Options{Prefix: "debug"}),
		traceLogger:     log.NewWithOptions(stderr, log.Options{Prefix: "trace"}),
		profileLogger:   log.NewWithOptions(stderr, log.Options{Prefix: "profile"}),
		traceSubsystems: make(map[string]bool),
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.enableInfo {
		l.infoLogger.Printf(format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warnLogger.Printf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.stderrLogger.Printf(format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.enableDebug {
		l.debugLogger.Printf(format, args...)
	}
}

func (l *Logger) Profile(format string, args ...interface{}) {
	l.profileLogger.Printf(format, args...)
}

func (l *Logger) Trace(subsystem string, format string, args ...interface{}) {
	if l.enableTracing {
		l.mutraceSubsystems.Lock()
		_, exists := l.traceSubsystems[subsystem]
		if !exists {
			_, exists = l.traceSubsystems["all"]
		}
		l.mutraceSubsystems.Unlock()
		if exists {
			l.traceLogger.Printf(subsystem+": "+format, args...)
		}
	}
}

func (l *Logger) EnableInfo() {
	l.enableInfo = true
}

func (l *Logger) EnableDebug() {
	l.enableDebug = true
}

// EnableTrace takes a comma-separated list of subsystems, "all" traces
// everything.
func (l *Logger) EnableTrace(traces string) {
	l.mutraceSubsystems.Lock()
	defer l.mutraceSubsystems.Unlock()

	l.enableTracing = true
	l.traceSubsystems = make(map[string]bool)
	for _, subsystem := range strings.Split(traces, ",") {
		if subsystem = strings.TrimSpace(subsystem); subsystem != "" {
			l.traceSubsystems[subsystem] = true
		}
	}
}
