// Package logging provides leveled, optionally colorized logging and the
// Logger interface shared across packages.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Logger defines the logging interface used throughout the application.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Noop is a Logger implementation that does nothing.
type Noop struct{}

func (Noop) Debug(format string, args ...interface{}) {}
func (Noop) Info(format string, args ...interface{})  {}
func (Noop) Warn(format string, args ...interface{})  {}
func (Noop) Error(format string, args ...interface{}) {}

// Level defines log severity levels.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Leveled writes timestamped, level-prefixed messages to an io.Writer.
type Leveled struct {
	out       io.Writer
	useColors bool
	level     Level
}

// New creates a Leveled logger. Verbose enables the debug level.
func New(out io.Writer, verbose bool, useColors bool) *Leveled {
	level := LevelInfo
	if verbose {
		level = LevelDebug
	}
	return &Leveled{
		out:       out,
		useColors: useColors,
		level:     level,
	}
}

func (l *Leveled) Debug(format string, args ...interface{}) {
	if l.level <= LevelDebug {
		l.emit("DEBUG", color.CyanString, format, args...)
	}
}

func (l *Leveled) Info(format string, args ...interface{}) {
	if l.level <= LevelInfo {
		l.emit("INFO", color.BlueString, format, args...)
	}
}

func (l *Leveled) Warn(format string, args ...interface{}) {
	if l.level <= LevelWarn {
		l.emit("WARN", color.YellowString, format, args...)
	}
}

func (l *Leveled) Error(format string, args ...interface{}) {
	if l.level <= LevelError {
		l.emit("ERROR", color.RedString, format, args...)
	}
}

func (l *Leveled) emit(prefix string, colorize func(string, ...interface{}) string, format string, args ...interface{}) {
	if l.useColors {
		prefix = colorize(prefix)
	}
	fmt.Fprintf(l.out, "[%s %s] %s\n", time.Now().Format("15:04:05.000"), prefix, fmt.Sprintf(format, args...))
}
