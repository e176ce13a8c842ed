// Package logger provides component loggers with colored prefixes.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/beka-birhanu/vinom-planner/config"
	"github.com/logrusorgru/aurora"
)

// ColorLogger writes "[PREFIX] [LEVEL] message" lines to an output.
type ColorLogger struct {
	out    *log.Logger
	au     aurora.Aurora
	prefix string
}

// Option configures a ColorLogger.
type Option func(*ColorLogger)

// WithoutColors disables ANSI colors, e.g. when the output is a file.
func WithoutColors() Option {
	return func(l *ColorLogger) {
		l.au = aurora.NewAurora(false)
	}
}

// New creates a logger named prefix whose name is printed in color.
func New(prefix string, color aurora.Color, w io.Writer, opts ...Option) (*ColorLogger, error) {
	if w == nil {
		return nil, errors.New("logger output is nil")
	}

	l := &ColorLogger{
		out: log.New(w, "", log.LstdFlags),
		au:  aurora.NewAurora(true),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.prefix = l.au.Colorize(fmt.Sprintf("[%s]", prefix), color).String()

	return l, nil
}

// Info logs an informational message.
func (l *ColorLogger) Info(msg string) {
	l.print("INFO", config.LogInfoColor, msg)
}

// Warn logs a recoverable problem.
func (l *ColorLogger) Warn(msg string) {
	l.print("WARN", config.LogWarnColor, msg)
}

// Error logs a failure.
func (l *ColorLogger) Error(msg string) {
	l.print("ERROR", config.LogErrorColor, msg)
}

func (l *ColorLogger) print(level string, color aurora.Color, msg string) {
	l.out.Printf("%s %s %s", l.prefix, l.au.Colorize("["+level+"]", color), msg)
}
