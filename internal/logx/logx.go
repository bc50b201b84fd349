// Package logx provides the logging hook injected into the dashboard components.
package logx

import (
	"log"
	"os"
)

// Logger is the diagnostics side-channel. Components never write to a
// terminal stream directly; tests can substitute a recording implementation.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// StdLogger logs through the standard library logger.
type StdLogger struct {
	logger *log.Logger
}

// NewStdLogger creates a logger writing to stderr with standard flags.
func NewStdLogger() *StdLogger {
	return &StdLogger{logger: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *StdLogger) Debugf(format string, args ...interface{}) {
	l.logger.Printf("DEBUG: "+format, args...)
}

func (l *StdLogger) Infof(format string, args ...interface{}) {
	l.logger.Printf("INFO: "+format, args...)
}

func (l *StdLogger) Warnf(format string, args ...interface{}) {
	l.logger.Printf("WARN: "+format, args...)
}

func (l *StdLogger) Errorf(format string, args ...interface{}) {
	l.logger.Printf("ERROR: "+format, args...)
}

// Nop discards everything. Used as the default when no logger is injected.
type Nop struct{}

func (Nop) Debugf(string, ...interface{}) {}
func (Nop) Infof(string, ...interface{})  {}
func (Nop) Warnf(string, ...interface{})  {}
func (Nop) Errorf(string, ...interface{}) {}

var _ Logger = (*StdLogger)(nil)
var _ Logger = Nop{}
