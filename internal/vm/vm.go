package vm

import (
	"github.com/fjoconnor/lc3vm/internal/log"
)

// PCStart is the fixed load address and initial program-counter value.
const PCStart Word = 0x3000

// maxProgramWords is the largest program LoadProgram will accept: the
// address space remaining after the fixed load address.
const maxProgramWords = int(addrSpace) - int(PCStart)

// LC3 is the virtual machine: register file, memory, running flag, IoPort
// capability, and plugin bus, all exclusively owned by this value.
type LC3 struct {
	reg     RegisterFile
	mem     *Memory
	io      IoPort
	running bool
	bus     bus

	log *log.Logger
}

// New creates a VM with all registers at zero, running false, and memory
// backed by the given IoPort for keyboard polling.
func New(io IoPort) *LC3 {
	return &LC3{
		mem: NewMemory(),
		io:  io,
		log: log.DefaultLogger(),
	}
}

// WithLogger overrides the VM's logger.
func (vm *LC3) WithLogger(l *log.Logger) *LC3 {
	vm.log = l
	return vm
}

// AddPlugin installs a plugin. Plugins must be installed before Run.
func (vm *LC3) AddPlugin(p Plugin) {
	vm.bus.add(p)
}

// RegRead reads register i and announces a RegGet event.
func (vm *LC3) RegRead(i GPR) (Register, error) {
	val, err := vm.reg.Read(i)
	if err != nil {
		return 0, err
	}

	if err := vm.bus.publish(vm, Event{Kind: EventRegGet, Index: i, Reg: val}); err != nil {
		return 0, err
	}

	return val, nil
}

// RegWrite writes val to register i and announces a RegSet event.
func (vm *LC3) RegWrite(i GPR, val Register) error {
	if err := vm.reg.Write(i, val); err != nil {
		return err
	}

	return vm.bus.publish(vm, Event{Kind: EventRegSet, Index: i, Reg: val})
}

// UpdateFlags sets COND from register i's current value and announces the
// resulting RegSet of COND.
func (vm *LC3) UpdateFlags(i GPR) error {
	if err := vm.reg.UpdateFlags(i); err != nil {
		return err
	}

	return vm.bus.publish(vm, Event{Kind: EventRegSet, Index: RCond, Reg: vm.reg[RCond]})
}

// MemRead reads memory at addr and announces a MemGet event. Reading KBSR
// first polls the keyboard (see pollKeyboard), so every event the poll
// triggers is announced, in order, before this read's own MemGet.
func (vm *LC3) MemRead(addr Word) (Word, error) {
	if addr == KBSRAddr {
		if err := vm.pollKeyboard(); err != nil {
			return 0, err
		}
	}

	val := vm.mem.Read(addr)

	if err := vm.bus.publish(vm, Event{Kind: EventMemGet, Addr: addr, Val: val}); err != nil {
		return 0, err
	}

	return val, nil
}

// pollKeyboard implements the KBSR/KBDR memory-mapped side effect: it polls
// IoPort.IsKeyDown and, if a key is held, sets bit 15 of KBSR and blocks on
// IoPort.GetChar to fill KBDR with the character code; if no key is held,
// it clears KBSR to zero. Each of these — the poll, the fill, and both
// register stores — goes through the VM's own event-emitting accessors, so
// a plugin observes KeyDownGet, the KBSR MemSet, CharGet, and the KBDR
// MemSet in that order, ahead of the read that triggered them.
//
// Known defect, preserved rather than silently fixed: if a key is held but
// it is not one IoPort.GetChar accepts, the blocking GetChar call here
// hangs. This mirrors the upstream behavior rather than curing it by
// treating a GetChar failure as "no key".
func (vm *LC3) pollKeyboard() error {
	down, err := vm.IsKeyDown()
	if err != nil {
		return err
	}

	if !down {
		return vm.MemWrite(KBSRAddr, 0)
	}

	if err := vm.MemWrite(KBSRAddr, 0x8000); err != nil {
		return err
	}

	ch, err := vm.GetChar()
	if err != nil {
		return err
	}

	return vm.MemWrite(KBDRAddr, Word(ch))
}

// MemWrite writes val to memory at addr and announces a MemSet event.
func (vm *LC3) MemWrite(addr, val Word) error {
	vm.mem.Write(addr, val)
	return vm.bus.publish(vm, Event{Kind: EventMemSet, Addr: addr, Val: val})
}

// GetChar blocks for a character from the IoPort and announces CharGet.
func (vm *LC3) GetChar() (rune, error) {
	ch, err := vm.io.GetChar()
	if err != nil {
		return 0, ioErrorf(err, "getchar")
	}

	if err := vm.bus.publish(vm, Event{Kind: EventCharGet, Char: ch}); err != nil {
		return 0, err
	}

	return ch, nil
}

// PutChar emits a character via the IoPort and announces CharPut.
func (vm *LC3) PutChar(ch rune) error {
	if err := vm.io.PutChar(ch); err != nil {
		return ioErrorf(err, "putchar")
	}

	return vm.bus.publish(vm, Event{Kind: EventCharPut, Char: ch})
}

// IsKeyDown polls the IoPort and announces KeyDownGet.
func (vm *LC3) IsKeyDown() (bool, error) {
	down, err := vm.io.IsKeyDown()
	if err != nil {
		return false, ioErrorf(err, "is_key_down")
	}

	if err := vm.bus.publish(vm, Event{Kind: EventKeyDownGet, Bool: down}); err != nil {
		return false, err
	}

	return down, nil
}

// Running returns the running flag and announces RunningGet.
func (vm *LC3) Running() (bool, error) {
	if err := vm.bus.publish(vm, Event{Kind: EventRunningGet, Bool: vm.running}); err != nil {
		return false, err
	}

	return vm.running, nil
}

// SetRunning sets the running flag and announces RunningSet.
func (vm *LC3) SetRunning(val bool) error {
	vm.running = val
	return vm.bus.publish(vm, Event{Kind: EventRunningSet, Bool: val})
}

// LoadProgram writes words into memory starting at PCStart. It fails with
// ProgramSize if the program does not fit in the address space remaining
// after PCStart; the running flag is not touched.
func (vm *LC3) LoadProgram(words []Word) error {
	if len(words) > maxProgramWords {
		return programTooLarge(len(words), maxProgramWords)
	}

	for i, w := range words {
		vm.mem.Write(PCStart+Word(i), w)
	}

	vm.log.Debug("loaded program", "words", len(words))

	return nil
}

// Run sets running true, PC to PCStart, then repeatedly fetches, advances
// PC, decodes, and dispatches until running is false or a handler fails. A
// handler failure propagates out of Run and leaves the VM in a consistent
// but stopped state.
func (vm *LC3) Run() error {
	if err := vm.SetRunning(true); err != nil {
		return err
	}

	if err := vm.RegWrite(RPC, Register(PCStart)); err != nil {
		return err
	}

	for {
		running, err := vm.Running()
		if err != nil {
			return err
		}

		if !running {
			return nil
		}

		pc, err := vm.RegRead(RPC)
		if err != nil {
			return err
		}

		word, err := vm.MemRead(Word(pc))
		if err != nil {
			return err
		}

		if err := vm.RegWrite(RPC, Register(WrappingAdd(Word(pc), 1))); err != nil {
			return err
		}

		ir := Instruction(word)

		if err := vm.bus.publish(vm, Event{Kind: EventCommand, Bytes: word}); err != nil {
			return err
		}

		op, err := DecodeOpcode(ir)
		if err != nil {
			return err
		}

		vm.log.Debug("dispatch", "ir", ir, "op", op)

		if err := dispatch(vm, op, ir); err != nil {
			return err
		}
	}
}
