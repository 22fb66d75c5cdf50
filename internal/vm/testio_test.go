package vm

// testio_test.go provides a deterministic IoPort double scripted with
// fixed key presses, key-down polls and an output recorder, used by the
// handler, trap, loader and run tests in this package.

// scriptedIO is a vm.IoPort double: key presses and key-down polls are
// consumed from scripted queues in order, and every emitted character is
// recorded for assertions.
type scriptedIO struct {
	keys     []rune
	keysDown []bool
	out      []rune
}

func (s *scriptedIO) GetChar() (rune, error) {
	if len(s.keys) == 0 {
		return 0, nil
	}

	ch := s.keys[0]
	s.keys = s.keys[1:]

	return ch, nil
}

func (s *scriptedIO) PutChar(ch rune) error {
	s.out = append(s.out, ch)
	return nil
}

func (s *scriptedIO) IsKeyDown() (bool, error) {
	if len(s.keysDown) == 0 {
		return false, nil
	}

	down := s.keysDown[0]
	s.keysDown = s.keysDown[1:]

	return down, nil
}

func (s *scriptedIO) output() string {
	return string(s.out)
}

// newMachine returns a fresh LC3 backed by io, with running set true so
// individual opcode handlers can be exercised directly without going
// through Run's fetch loop.
func newMachine(io *scriptedIO) *LC3 {
	m := New(io)
	_ = m.SetRunning(true)

	return m
}
