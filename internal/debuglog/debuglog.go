// Package debuglog provides a concrete vm.Plugin that renders every VM
// event to a line-delimited sink, flushing after each write.
package debuglog

import (
	"fmt"
	"io"

	"github.com/fjoconnor/lc3vm/internal/vm"
)

// Logger writes one line per event to Sink, flushing immediately rather
// than buffering, so a log tailed live or truncated after a crash never
// loses the most recent event.
type Logger struct {
	Sink io.Writer
}

// New returns a Logger writing to sink.
func New(sink io.Writer) *Logger {
	return &Logger{Sink: sink}
}

// HandleEvent implements vm.Plugin.
func (l *Logger) HandleEvent(_ *vm.LC3, ev vm.Event) error {
	if _, err := fmt.Fprintln(l.Sink, ev.String()); err != nil {
		return err
	}

	if f, ok := l.Sink.(interface{ Flush() error }); ok {
		return f.Flush()
	}

	if f, ok := l.Sink.(interface{ Sync() error }); ok {
		return f.Sync()
	}

	return nil
}
