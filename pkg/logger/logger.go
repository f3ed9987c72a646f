package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var (
	// logger is the global logger instance
	logger *Logger
	once   sync.Once
)

// Logger wraps logrus with printf helpers and color accents
type Logger struct {
	*logrus.Logger
	green *color.Color
	cyan  *color.Color
}

// New returns the process-wide logger. It writes to stderr so command
// output on stdout stays machine readable.
func New() *Logger {
	once.Do(func() {
		logger = &Logger{
			Logger: logrus.New(),
			green:  color.New(color.FgGreen),
			cyan:   color.New(color.FgCyan),
		}

		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006/01/02 15:04:05",
			FullTimestamp:   true,
			DisableSorting:  true,
		})

		if os.Getenv("DEBUG") == "true" {
			logger.SetLevel(logrus.DebugLevel)
			logger.Debug("Debug logging enabled")
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}
	})
	return logger
}

// SetLevelName sets the level from its name. DEBUG=true always wins.
func (l *Logger) SetLevelName(name string) {
	if os.Getenv("DEBUG") == "true" || strings.TrimSpace(name) == "" {
		return
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		l.Warn("Ignoring unknown log level %q", name)
		return
	}
	l.SetLevel(level)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

// Success logs an info message in green
func (l *Logger) Success(format string, args ...interface{}) {
	l.Logger.Info(l.green.Sprintf(format, args...))
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, args...))
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.Logger.Fatal(fmt.Sprintf(format, args...))
}

// Highlight returns s in the accent color
func (l *Logger) Highlight(s string) string {
	return l.cyan.Sprint(s)
}

// IsDebugEnabled returns whether debug logging is enabled
func (l *Logger) IsDebugEnabled() bool {
	return l.GetLevel() >= logrus.DebugLevel
}
