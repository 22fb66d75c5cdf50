package vm

// traps.go implements the six OS trap routines as native handlers rather
// than assembled LC-3 code loaded into low memory.

func trapGetC(vm *LC3) error {
	ch, err := vm.GetChar()
	if err != nil {
		return err
	}

	return vm.RegWrite(R0, Register(ch))
}

func trapOut(vm *LC3) error {
	r0, err := vm.RegRead(R0)
	if err != nil {
		return err
	}

	return vm.PutChar(rune(byte(r0)))
}

func trapPutS(vm *LC3) error {
	addr, err := vm.RegRead(R0)
	if err != nil {
		return err
	}

	next := Word(addr)

	for {
		val, err := vm.MemRead(next)
		if err != nil {
			return err
		}

		if val == 0 {
			return nil
		}

		if err := vm.PutChar(rune(byte(val))); err != nil {
			return err
		}

		next = WrappingAdd(next, 1)
	}
}

func trapIn(vm *LC3) error {
	for _, ch := range "Enter a character: " {
		if err := vm.PutChar(ch); err != nil {
			return err
		}
	}

	ch, err := vm.GetChar()
	if err != nil {
		return err
	}

	if err := vm.RegWrite(R0, Register(ch)); err != nil {
		return err
	}

	return vm.PutChar(ch)
}

func trapPutSp(vm *LC3) error {
	addr, err := vm.RegRead(R0)
	if err != nil {
		return err
	}

	next := Word(addr)

	for {
		raw, err := vm.MemRead(next)
		if err != nil {
			return err
		}

		low := byte(raw)
		high := byte(raw >> 8)

		if low == 0 {
			return nil
		}

		if err := vm.PutChar(rune(low)); err != nil {
			return err
		}

		if high == 0 {
			return nil
		}

		if err := vm.PutChar(rune(high)); err != nil {
			return err
		}

		next = WrappingAdd(next, 1)
	}
}

func trapHalt(vm *LC3) error {
	return vm.SetRunning(false)
}
