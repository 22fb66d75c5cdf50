package vm

// exec.go holds the handler for each opcode, dispatched from a switch on
// Opcode rather than a function-pointer table. A value outside the sixteen
// known opcodes falls to the default case and reports BadOpCode.

// dispatch runs the handler for op against ir.
func dispatch(vm *LC3, op Opcode, ir Instruction) error {
	switch op {
	case OpBr:
		return execBr(vm, ir)
	case OpAdd:
		return execAdd(vm, ir)
	case OpLd:
		return execLd(vm, ir)
	case OpSt:
		return execSt(vm, ir)
	case OpJsr:
		return execJsr(vm, ir)
	case OpAnd:
		return execAnd(vm, ir)
	case OpLdr:
		return execLdr(vm, ir)
	case OpStr:
		return execStr(vm, ir)
	case OpRti:
		return internalf("attempt to execute unimplemented opcode RTI")
	case OpNot:
		return execNot(vm, ir)
	case OpLdi:
		return execLdi(vm, ir)
	case OpSti:
		return execSti(vm, ir)
	case OpJmp:
		return execJmp(vm, ir)
	case OpRes:
		return internalf("attempt to execute unimplemented opcode RES")
	case OpLea:
		return execLea(vm, ir)
	case OpTrap:
		return execTrap(vm, ir)
	default:
		return badOpCode(uint8(op))
	}
}

func execBr(vm *LC3, ir Instruction) error {
	mask, err := ir.Slice(4, 6)
	if err != nil {
		return err
	}

	cond, err := vm.RegRead(RCond)
	if err != nil {
		return err
	}

	if Word(cond)&mask == 0 {
		return nil
	}

	offBits, err := ir.Slice(7, 15)
	if err != nil {
		return err
	}

	pc, err := vm.RegRead(RPC)
	if err != nil {
		return err
	}

	newPC := WrappingAdd(Word(pc), SignExtend(offBits, 9))

	return vm.RegWrite(RPC, Register(newPC))
}

func execAdd(vm *LC3, ir Instruction) error {
	sr1, err := binOpLeft(vm, ir)
	if err != nil {
		return err
	}

	right, err := binOpRight(vm, ir)
	if err != nil {
		return err
	}

	dr := drOf(ir)
	result := WrappingAdd(Word(sr1), right)

	if err := vm.RegWrite(dr, Register(result)); err != nil {
		return err
	}

	return vm.UpdateFlags(dr)
}

func execAnd(vm *LC3, ir Instruction) error {
	sr1, err := binOpLeft(vm, ir)
	if err != nil {
		return err
	}

	right, err := binOpRight(vm, ir)
	if err != nil {
		return err
	}

	dr := drOf(ir)
	result := Word(sr1) & right

	if err := vm.RegWrite(dr, Register(result)); err != nil {
		return err
	}

	return vm.UpdateFlags(dr)
}

// binOpLeft reads SR1's value for Add/And.
func binOpLeft(vm *LC3, ir Instruction) (Register, error) {
	sr1Bits, err := ir.Slice(7, 9)
	if err != nil {
		return 0, err
	}

	return vm.RegRead(GPR(sr1Bits))
}

// binOpRight resolves the second operand for Add/And: an immediate if the
// mode bit is set, else the value in SR2.
func binOpRight(vm *LC3, ir Instruction) (Word, error) {
	modeBit, err := ir.Slice(10, 10)
	if err != nil {
		return 0, err
	}

	if modeBit == 1 {
		imm, err := ir.Slice(11, 15)
		if err != nil {
			return 0, err
		}

		return SignExtend(imm, 5), nil
	}

	sr2Bits, err := ir.Slice(13, 15)
	if err != nil {
		return 0, err
	}

	sr2, err := vm.RegRead(GPR(sr2Bits))

	return Word(sr2), err
}

func drOf(ir Instruction) GPR {
	v, _ := ir.Slice(4, 6)
	return GPR(v)
}

func pcOffset9(ir Instruction) (Word, error) {
	bits, err := ir.Slice(7, 15)
	if err != nil {
		return 0, err
	}

	return SignExtend(bits, 9), nil
}

func execLd(vm *LC3, ir Instruction) error {
	off, err := pcOffset9(ir)
	if err != nil {
		return err
	}

	pc, err := vm.RegRead(RPC)
	if err != nil {
		return err
	}

	val, err := vm.MemRead(WrappingAdd(Word(pc), off))
	if err != nil {
		return err
	}

	dr := drOf(ir)
	if err := vm.RegWrite(dr, Register(val)); err != nil {
		return err
	}

	return vm.UpdateFlags(dr)
}

func execSt(vm *LC3, ir Instruction) error {
	off, err := pcOffset9(ir)
	if err != nil {
		return err
	}

	pc, err := vm.RegRead(RPC)
	if err != nil {
		return err
	}

	sr, err := vm.RegRead(drOf(ir))
	if err != nil {
		return err
	}

	return vm.MemWrite(WrappingAdd(Word(pc), off), Word(sr))
}

func execJsr(vm *LC3, ir Instruction) error {
	pc, err := vm.RegRead(RPC)
	if err != nil {
		return err
	}

	if err := vm.RegWrite(RETP, pc); err != nil {
		return err
	}

	offsetMode, err := ir.Slice(4, 4)
	if err != nil {
		return err
	}

	var dest Word

	if offsetMode == 1 {
		bits, err := ir.Slice(5, 15)
		if err != nil {
			return err
		}

		dest = WrappingAdd(Word(pc), SignExtend(bits, 11))
	} else {
		baseBits, err := ir.Slice(7, 9)
		if err != nil {
			return err
		}

		base, err := vm.RegRead(GPR(baseBits))
		if err != nil {
			return err
		}

		dest = Word(base)
	}

	return vm.RegWrite(RPC, Register(dest))
}

func execLdr(vm *LC3, ir Instruction) error {
	baseBits, err := ir.Slice(7, 9)
	if err != nil {
		return err
	}

	base, err := vm.RegRead(GPR(baseBits))
	if err != nil {
		return err
	}

	offBits, err := ir.Slice(10, 15)
	if err != nil {
		return err
	}

	addr := WrappingAdd(Word(base), SignExtend(offBits, 6))

	val, err := vm.MemRead(addr)
	if err != nil {
		return err
	}

	dr := drOf(ir)
	if err := vm.RegWrite(dr, Register(val)); err != nil {
		return err
	}

	return vm.UpdateFlags(dr)
}

func execStr(vm *LC3, ir Instruction) error {
	baseBits, err := ir.Slice(7, 9)
	if err != nil {
		return err
	}

	base, err := vm.RegRead(GPR(baseBits))
	if err != nil {
		return err
	}

	offBits, err := ir.Slice(10, 15)
	if err != nil {
		return err
	}

	addr := WrappingAdd(Word(base), SignExtend(offBits, 6))

	sr, err := vm.RegRead(drOf(ir))
	if err != nil {
		return err
	}

	return vm.MemWrite(addr, Word(sr))
}

func execNot(vm *LC3, ir Instruction) error {
	srBits, err := ir.Slice(7, 9)
	if err != nil {
		return err
	}

	src, err := vm.RegRead(GPR(srBits))
	if err != nil {
		return err
	}

	dr := drOf(ir)
	if err := vm.RegWrite(dr, ^src); err != nil {
		return err
	}

	return vm.UpdateFlags(dr)
}

func execLdi(vm *LC3, ir Instruction) error {
	off, err := pcOffset9(ir)
	if err != nil {
		return err
	}

	pc, err := vm.RegRead(RPC)
	if err != nil {
		return err
	}

	ptr, err := vm.MemRead(WrappingAdd(Word(pc), off))
	if err != nil {
		return err
	}

	val, err := vm.MemRead(ptr)
	if err != nil {
		return err
	}

	dr := drOf(ir)
	if err := vm.RegWrite(dr, Register(val)); err != nil {
		return err
	}

	return vm.UpdateFlags(dr)
}

func execSti(vm *LC3, ir Instruction) error {
	off, err := pcOffset9(ir)
	if err != nil {
		return err
	}

	pc, err := vm.RegRead(RPC)
	if err != nil {
		return err
	}

	ptr, err := vm.MemRead(WrappingAdd(Word(pc), off))
	if err != nil {
		return err
	}

	sr, err := vm.RegRead(drOf(ir))
	if err != nil {
		return err
	}

	return vm.MemWrite(ptr, Word(sr))
}

func execJmp(vm *LC3, ir Instruction) error {
	baseBits, err := ir.Slice(7, 9)
	if err != nil {
		return err
	}

	base, err := vm.RegRead(GPR(baseBits))
	if err != nil {
		return err
	}

	return vm.RegWrite(RPC, base)
}

func execLea(vm *LC3, ir Instruction) error {
	off, err := pcOffset9(ir)
	if err != nil {
		return err
	}

	pc, err := vm.RegRead(RPC)
	if err != nil {
		return err
	}

	addr := WrappingAdd(Word(pc), off)
	dr := drOf(ir)

	if err := vm.RegWrite(dr, Register(addr)); err != nil {
		return err
	}

	return vm.UpdateFlags(dr)
}

func execTrap(vm *LC3, ir Instruction) error {
	bits, err := ir.Slice(8, 15)
	if err != nil {
		return err
	}

	code, err := DecodeTrapCode(uint8(bits))
	if err != nil {
		return err
	}

	switch code {
	case TrapGetC:
		return trapGetC(vm)
	case TrapOut:
		return trapOut(vm)
	case TrapPutS:
		return trapPutS(vm)
	case TrapIn:
		return trapIn(vm)
	case TrapPutSp:
		return trapPutSp(vm)
	case TrapHalt:
		return trapHalt(vm)
	default:
		return badTrapCode(uint8(bits))
	}
}
