// Package log provides the named, leveled loggers used across the light transport packages.
// All loggers share one backend, so SetLevel and SetSink apply to the whole process.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

// ErrUnknownLevel is returned by ParseLevel for names it does not recognize
var ErrUnknownLevel = errors.New("log: unknown level")

// Level orders log messages from most to least verbose
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levels = []struct {
	name    string
	backend logging.Level
}{
	Debug:   {"debug", logging.DEBUG},
	Info:    {"info", logging.INFO},
	Notice:  {"notice", logging.NOTICE},
	Warning: {"warning", logging.WARNING},
	Error:   {"error", logging.ERROR},
}

func (l Level) String() string {
	if l < Debug || l > Error {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levels[l].name
}

// ParseLevel maps a level name such as "info" to its Level
func ParseLevel(name string) (Level, error) {
	for l, entry := range levels {
		if entry.name == name {
			return Level(l), nil
		}
	}
	return Notice, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

// Messages are prefixed with time, short level and the logger name
var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.4s} %{module}:%{color:reset} %{message}`,
)

// Logger is the subset of go-logging's logger used by this module
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

var (
	mu      sync.Mutex
	backend logging.LeveledBackend
	current = Notice
)

// New returns the logger for a component, e.g. New("photon mapper")
func New(component string) Logger {
	return logging.MustGetLogger(component)
}

// SetSink redirects every logger to sink, keeping the current level
func SetSink(sink io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(levels[current].backend, "")
	logging.SetBackend(backend)
}

// SetLevel drops messages less severe than level
func SetLevel(level Level) {
	if level < Debug || level > Error {
		level = Error
	}

	mu.Lock()
	defer mu.Unlock()

	current = level
	backend.SetLevel(levels[level].backend, "")
}

// CurrentLevel returns the level set by the last SetLevel call
func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Estimates are written to stdout, so log lines go to stderr
func init() {
	SetSink(os.Stderr)
}
