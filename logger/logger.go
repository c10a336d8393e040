/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides leveled logging for mcpsql.
// Components obtain a prefixed logger with Named and share the level of
// the logger they were derived from.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level defines log levels
type Level int32

const (
	// DEBUG shows compiled SQL and plan details
	DEBUG Level = iota
	// INFO shows general information
	INFO
	// WARN shows parse warnings and recovered failures
	WARN
	// ERROR only shows errors
	ERROR
	// OFF disables logging
	OFF
)

// String returns string representation of log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name in any letter case to a Level.
// Unknown names yield INFO and false.
func ParseLevel(name string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	case "OFF", "NONE":
		return OFF, true
	default:
		return INFO, false
	}
}

// Logger interface defines basic methods for logging
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	// SetLevel sets the log level. Loggers derived with Named share it.
	SetLevel(level Level)
	// Named returns a logger that prefixes every line with component.
	Named(component string) Logger
}

// sink is the state shared by a logger and the loggers derived from it.
type sink struct {
	level  atomic.Int32
	mu     sync.Mutex
	logger *log.Logger
}

type defaultLogger struct {
	sink   *sink
	prefix string
}

// NewLogger creates a new logger
// Parameters:
//   - level: log level
//   - output: output destination, such as os.Stdout, os.Stderr, or file
//
// Returns:
//   - Logger: logger instance
//
// Example:
//
//	log := NewLogger(INFO, os.Stderr)
//	log.Named("sqlexec").Debug("compiled %s", stmt)
func NewLogger(level Level, output io.Writer) Logger {
	s := &sink{logger: log.New(output, "", 0)}
	s.level.Store(int32(level))
	return &defaultLogger{sink: s}
}

func (l *defaultLogger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

func (l *defaultLogger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

func (l *defaultLogger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

func (l *defaultLogger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

func (l *defaultLogger) SetLevel(level Level) {
	l.sink.level.Store(int32(level))
}

func (l *defaultLogger) Named(component string) Logger {
	prefix := component
	if l.prefix != "" {
		prefix = l.prefix + "." + component
	}
	return &defaultLogger{sink: l.sink, prefix: prefix}
}

func (l *defaultLogger) log(level Level, format string, args ...interface{}) {
	current := Level(l.sink.level.Load())
	if current == OFF || level < current {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)
	var line string
	if l.prefix != "" {
		line = fmt.Sprintf("[%s] [%s] [%s] %s", timestamp, level.String(), l.prefix, message)
	} else {
		line = fmt.Sprintf("[%s] [%s] %s", timestamp, level.String(), message)
	}
	l.sink.mu.Lock()
	l.sink.logger.Println(line)
	l.sink.mu.Unlock()
}

// discardLogger is a logger that discards all log output
type discardLogger struct{}

// NewDiscardLogger creates a logger that discards all logs
func NewDiscardLogger() Logger {
	return discardLogger{}
}

func (discardLogger) Debug(format string, args ...interface{}) {}
func (discardLogger) Info(format string, args ...interface{})  {}
func (discardLogger) Warn(format string, args ...interface{})  {}
func (discardLogger) Error(format string, args ...interface{}) {}
func (discardLogger) SetLevel(level Level)                     {}
func (d discardLogger) Named(component string) Logger          { return d }

var defaultInstance atomic.Value

func init() {
	defaultInstance.Store(loggerHolder{NewLogger(INFO, os.Stderr)})
}

// loggerHolder keeps atomic.Value storing one concrete type.
type loggerHolder struct{ Logger }

// SetDefault sets the global default logger
func SetDefault(logger Logger) {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	defaultInstance.Store(loggerHolder{logger})
}

// GetDefault gets the global default logger
func GetDefault() Logger {
	return defaultInstance.Load().(loggerHolder).Logger
}

// Debug uses the default logger to record debug information
func Debug(format string, args ...interface{}) {
	GetDefault().Debug(format, args...)
}

// Info uses the default logger to record information
func Info(format string, args ...interface{}) {
	GetDefault().Info(format, args...)
}

// Warn uses the default logger to record warnings
func Warn(format string, args ...interface{}) {
	GetDefault().Warn(format, args...)
}

// Error uses the default logger to record errors
func Error(format string, args ...interface{}) {
	GetDefault().Error(format, args...)
}
