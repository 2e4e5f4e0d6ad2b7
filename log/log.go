// Package log provides a structured logger with 4 log levels. Floating point
// fields are written like C's %g.
package log

import (
	"errors"
	"fmt"
	"maps"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/datarhei/gpoint/encoding/json"
)

// Level represents a log level
type Level uint

const (
	Lsilent Level = 0
	Lerror  Level = 1
	Lwarn   Level = 2
	Linfo   Level = 3
	Ldebug  Level = 4
)

var levelNames = []string{"SILENT", "ERROR", "WARN", "INFO", "DEBUG"}

// String returns a string representing the log level.
func (level Level) String() string {
	if level > Ldebug {
		return fmt.Sprintf("LEVEL(%d)", uint(level))
	}

	return levelNames[level]
}

func (level *Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(level.String())
}

var ErrUnknownLevel = errors.New("unknown log level")

// ParseLevel returns the level for one of the names "silent", "error", "warn",
// "info" or "debug". Case is ignored.
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(n, name) {
			return Level(i), nil
		}
	}

	return Lsilent, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

type Fields map[string]interface{}

// Logger writes structured messages. All methods return a new Logger and
// leave the receiver untouched, such that a Logger can be shared and
// extended with fields at will.
//
// A message is written by the output if its level has the same or a higher
// severity than the level of the output.
type Logger interface {
	// WithOutput returns a Logger that writes to w.
	WithOutput(w Writer) Logger

	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger

	// WithError adds the error in the field "error". A nil error is ignored.
	WithError(err error) Logger

	Debug() Logger
	Info() Logger
	Warn() Logger
	Error() Logger

	// Log writes the message with the level that has been selected before,
	// debug if none. The message is formatted according to fmt.Printf if
	// args are given.
	Log(format string, args ...interface{})
}

// Event is a single message as it is handed to a Writer.
type Event struct {
	Time      time.Time
	Level     Level
	Component string
	Caller    string
	Message   string

	Data Fields
}

func (e *Event) clone() *Event {
	c := *e
	c.Data = maps.Clone(e.Data)

	return &c
}

type logger struct {
	output     Writer
	component  string
	modulePath string
	level      Level
	data       Fields
}

// New returns a Logger for the component without an output. Nothing is
// written until an output is set with WithOutput.
func New(component string) Logger {
	l := &logger{
		component: component,
		level:     Ldebug,
		data:      Fields{},
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		l.modulePath = info.Path
	}

	return l
}

func (l *logger) clone() *logger {
	c := *l
	c.data = maps.Clone(l.data)

	return &c
}

func (l *logger) WithOutput(w Writer) Logger {
	c := l.clone()
	c.output = w

	return c
}

func (l *logger) WithField(key string, value interface{}) Logger {
	c := l.clone()
	c.data[key] = value

	return c
}

func (l *logger) WithFields(f Fields) Logger {
	c := l.clone()
	maps.Copy(c.data, f)

	return c
}

func (l *logger) WithError(err error) Logger {
	if err == nil {
		return l
	}

	return l.WithField("error", err)
}

func (l *logger) withLevel(level Level) Logger {
	c := l.clone()
	c.level = level

	return c
}

func (l *logger) Debug() Logger { return l.withLevel(Ldebug) }
func (l *logger) Info() Logger  { return l.withLevel(Linfo) }
func (l *logger) Warn() Logger  { return l.withLevel(Lwarn) }
func (l *logger) Error() Logger { return l.withLevel(Lerror) }

func (l *logger) Log(format string, args ...interface{}) {
	if l.output == nil {
		return
	}

	_, file, line, _ := runtime.Caller(1)
	file = strings.TrimPrefix(file, l.modulePath)

	e := &Event{
		Time:      time.Now(),
		Level:     l.level,
		Component: l.component,
		Caller:    fmt.Sprintf("%s:%d", file, line),
		Message:   format,
		Data:      maps.Clone(l.data),
	}

	if len(args) != 0 {
		e.Message = fmt.Sprintf(format, args...)
	}

	l.output.Write(e)
}
