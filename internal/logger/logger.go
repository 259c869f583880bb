package logger

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"

	"github.com/ConserveLee/dialogue-skip/internal/constants"
)

// LogLevel defines the severity of the log
type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelError
	LevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelDebug:
		return "DEBUG"
	default:
		return "INFO"
	}
}

// AppLogger handles application logging to the UI list and the console
type AppLogger struct {
	dataBinding binding.StringList // nil in headless mode
	console     *slog.Logger
	now         func() time.Time
}

// NewConsoleLogger returns a slog text logger on w; verbose enables debug output.
func NewConsoleLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewAppLogger creates a new logger instance. data may be nil.
func NewAppLogger(data binding.StringList, console *slog.Logger) *AppLogger {
	return &AppLogger{
		dataBinding: data,
		console:     console,
		now:         time.Now,
	}
}

// Info logs an informational message
func (l *AppLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Error logs an error message
func (l *AppLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Debug logs a debug message to the console only (to keep UI clean)
func (l *AppLogger) Debug(format string, args ...interface{}) {
	l.console.Debug(fmt.Sprintf(format, args...))
}

// Line formats a message the way it appears in the UI list
func (l *AppLogger) Line(level LogLevel, msg string) string {
	return fmt.Sprintf("[%s] %s: %s", l.now().Format("15:04:05"), level, msg)
}

// log handles the formatting and appending
func (l *AppLogger) log(level LogLevel, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	if level == LevelError {
		l.console.Error(msg)
	} else {
		l.console.Info(msg)
	}

	if l.dataBinding == nil {
		return
	}
	line := l.Line(level, msg)
	// Bindings belong to the fyne event goroutine
	fyne.Do(func() {
		l.dataBinding.Append(line)

		// Keep log size manageable
		list, _ := l.dataBinding.Get()
		if len(list) > constants.MaxLogLines {
			l.dataBinding.Set(list[len(list)-constants.MaxLogLines:])
		}
	})
}
