package debuglog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fjoconnor/lc3vm/internal/vm"
)

func TestHandleEventWritesOneLine(t *testing.T) {
	var buf bytes.Buffer

	logger := New(&buf)

	ev := vm.Event{Kind: vm.EventCharPut, Char: 'x'}

	if err := logger.HandleEvent(nil, ev); err != nil {
		t.Fatalf("HandleEvent: %s", err)
	}

	got := buf.String()
	if !strings.Contains(got, "CharPut") || !strings.Contains(got, "x") {
		t.Errorf("logged line = %q, want it to mention CharPut and the character", got)
	}

	if !strings.HasSuffix(got, "\n") {
		t.Errorf("logged line = %q, want a trailing newline", got)
	}
}

func TestHandleEventWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer

	logger := New(&buf)

	_ = logger.HandleEvent(nil, vm.Event{Kind: vm.EventRunningSet, Bool: true})
	_ = logger.HandleEvent(nil, vm.Event{Kind: vm.EventRunningSet, Bool: false})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("got %d lines, want 2", len(lines))
	}
}
