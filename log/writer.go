package log

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Writer receives the events of a Logger.
type Writer interface {
	Write(e *Event) error
}

// streamWriter writes every event of at least its level as one line.
type streamWriter struct {
	writer    io.Writer
	level     Level
	formatter Formatter
}

func (w *streamWriter) Write(e *Event) error {
	if w.level < e.Level || e.Level == Lsilent {
		return nil
	}

	line := append(w.formatter.Bytes(e), '\n')

	_, err := w.writer.Write(line)

	return err
}

// NewJSONWriter returns a Writer that writes each event as a JSON object on
// its own line.
func NewJSONWriter(w io.Writer, level Level) Writer {
	return newSyncWriter(&streamWriter{
		writer:    w,
		level:     level,
		formatter: NewJSONFormatter(),
	})
}

// NewConsoleWriter returns a Writer that writes each event as key=value pairs.
// Colors are only used if useColor is set and w is a terminal, or w isn't a
// file at all.
func NewConsoleWriter(w io.Writer, level Level, useColor bool) Writer {
	color := useColor

	if f, ok := w.(*os.File); ok && color {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return newSyncWriter(&streamWriter{
		writer:    w,
		level:     level,
		formatter: NewConsoleFormatter(color),
	})
}

type syncWriter struct {
	mu     sync.Mutex
	writer Writer
}

func newSyncWriter(writer Writer) Writer {
	return &syncWriter{
		writer: writer,
	}
}

func (w *syncWriter) Write(e *Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.writer.Write(e)
}
