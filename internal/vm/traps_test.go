package vm

import (
	"errors"
	"testing"
)

func TestTrapGetChar(t *testing.T) {
	io := &scriptedIO{keys: []rune{'x'}}
	m := newMachine(io)

	if err := trapGetC(m); err != nil {
		t.Fatalf("trapGetC: %s", err)
	}

	if got := mustRegRead(t, m, R0); got != Register('x') {
		t.Errorf("R0 = %s, want 'x'", got)
	}
}

func TestTrapOut(t *testing.T) {
	io := &scriptedIO{}
	m := newMachine(io)
	_ = m.RegWrite(R0, Register('!'))

	if err := trapOut(m); err != nil {
		t.Fatalf("trapOut: %s", err)
	}

	if got := io.output(); got != "!" {
		t.Errorf("output = %q, want %q", got, "!")
	}
}

func TestTrapPutString(t *testing.T) {
	io := &scriptedIO{}
	m := newMachine(io)

	_ = m.RegWrite(R0, 0x4000)

	for i, ch := range "hi" {
		_ = m.MemWrite(0x4000+Word(i), Word(ch))
	}

	_ = m.MemWrite(0x4000+2, 0)

	if err := trapPutS(m); err != nil {
		t.Fatalf("trapPutS: %s", err)
	}

	if got := io.output(); got != "hi" {
		t.Errorf("output = %q, want %q", got, "hi")
	}
}

func TestTrapIn(t *testing.T) {
	io := &scriptedIO{keys: []rune{'y'}}
	m := newMachine(io)

	if err := trapIn(m); err != nil {
		t.Fatalf("trapIn: %s", err)
	}

	if got := mustRegRead(t, m, R0); got != Register('y') {
		t.Errorf("R0 = %s, want 'y'", got)
	}

	want := "Enter a character: y"
	if got := io.output(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestTrapPutByteString checks the packed-byte-string trap stops at the
// first zero byte in either half of a word, matching the source's
// half-then-half emission order.
func TestTrapPutByteString(t *testing.T) {
	io := &scriptedIO{}
	m := newMachine(io)

	_ = m.RegWrite(R0, 0x4100)
	_ = m.MemWrite(0x4100, Word('a')|Word('b')<<8)
	_ = m.MemWrite(0x4101, Word('c'))

	if err := trapPutSp(m); err != nil {
		t.Fatalf("trapPutSp: %s", err)
	}

	if got := io.output(); got != "abc" {
		t.Errorf("output = %q, want %q", got, "abc")
	}
}

func TestTrapPutByteStringStopsOnZeroHighByte(t *testing.T) {
	io := &scriptedIO{}
	m := newMachine(io)

	_ = m.RegWrite(R0, 0x4200)
	_ = m.MemWrite(0x4200, Word('a')) // high byte is zero
	_ = m.MemWrite(0x4201, Word('z'))

	if err := trapPutSp(m); err != nil {
		t.Fatalf("trapPutSp: %s", err)
	}

	if got := io.output(); got != "a" {
		t.Errorf("output = %q, want %q", got, "a")
	}
}

func TestTrapHalt(t *testing.T) {
	m := newMachine(&scriptedIO{})

	if err := trapHalt(m); err != nil {
		t.Fatalf("trapHalt: %s", err)
	}

	running, err := m.Running()
	if err != nil {
		t.Fatalf("Running: %s", err)
	}

	if running {
		t.Errorf("running = true, want false after HALT")
	}
}

func TestDispatchTrap(t *testing.T) {
	io := &scriptedIO{}
	m := newMachine(io)
	_ = m.RegWrite(R0, Register('Q'))

	ir := Instruction(0b1111_0000_0010_0001) // TRAP x21 (OUT)

	if err := dispatch(m, ir.Opcode(), ir); err != nil {
		t.Fatalf("dispatch: %s", err)
	}

	if got := io.output(); got != "Q" {
		t.Errorf("output = %q, want %q", got, "Q")
	}
}

func TestDispatchBadTrapCode(t *testing.T) {
	m := newMachine(&scriptedIO{})

	ir := Instruction(0b1111_0000_0000_0000) // TRAP x00: not a known vector

	err := dispatch(m, ir.Opcode(), ir)
	if err == nil {
		t.Fatalf("dispatch: expected error for unknown trap vector")
	}

	var lerr *LC3Error
	if !errors.As(err, &lerr) || lerr.Kind != BadTrapCode {
		t.Errorf("err = %v, want BadTrapCode", err)
	}
}
