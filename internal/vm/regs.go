package vm

import "fmt"

// GPR identifies a slot in the register file: R0..R7, PC, COND, and a
// reserved slot kept only for index alignment with the source machine.
type GPR uint8

// Register file indices. The mapping is fixed: R0..R7 = 0..7, PC = 8,
// COND = 9, COUNT = 10 (reserved; no handler reads it).
const (
	R0 GPR = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	RPC
	RCond
	RCount

	// NumGPR is the size of the register file.
	NumGPR

	// SP names the conventional stack-pointer register; the CPU itself
	// does not special-case it.
	SP = R6

	// RETP names the conventional subroutine-return register.
	RETP = R7
)

func (g GPR) String() string {
	switch {
	case g == RPC:
		return "PC"
	case g == RCond:
		return "COND"
	case g == RCount:
		return "COUNT"
	case g < NumGPR:
		return fmt.Sprintf("R%d", uint8(g))
	default:
		return fmt.Sprintf("GPR(%d)", uint8(g))
	}
}

// Condition is the three-bit N/Z/P condition code. Exactly one of the bits
// is set after any flag-updating handler runs.
type Condition Word

// Condition flags.
const (
	ConditionPositive Condition = 0b001 // P
	ConditionZero     Condition = 0b010 // Z
	ConditionNegative Condition = 0b100 // N
)

func (c Condition) String() string {
	return fmt.Sprintf("%s (N:%t Z:%t P:%t)", Word(c), c.Negative(), c.Zero(), c.Positive())
}

func (c Condition) Positive() bool { return c&ConditionPositive != 0 }
func (c Condition) Negative() bool { return c&ConditionNegative != 0 }
func (c Condition) Zero() bool     { return c&ConditionZero != 0 }

// RegisterFile is the flat, 11-slot bank of registers the CPU operates on.
// It is initialised to all zero at VM creation.
type RegisterFile [NumGPR]Register

func (rf RegisterFile) String() string {
	return fmt.Sprintf(
		"R0: %s R1: %s R2: %s R3: %s\nR4: %s R5: %s R6: %s R7: %s\nPC: %s COND: %s",
		rf[R0], rf[R1], rf[R2], rf[R3], rf[R4], rf[R5], rf[R6], rf[R7], rf[RPC], rf[RCond],
	)
}

// Read returns the value of register i. Indices beyond NumGPR-1 are fatal,
// matching the source's bounds-checked register access.
func (rf RegisterFile) Read(i GPR) (Register, error) {
	if i >= NumGPR {
		return 0, internalf("register index %d out of range", i)
	}

	return rf[i], nil
}

// Write stores val into register i. Indices beyond NumGPR-1 are fatal.
func (rf *RegisterFile) Write(i GPR, val Register) error {
	if i >= NumGPR {
		return internalf("register index %d out of range", i)
	}

	rf[i] = val

	return nil
}

// UpdateFlags sets COND from the sign of the value currently held in
// register i: zero maps to Z, bit 15 set maps to N, anything else maps to
// P. COUNT is never read by this or any other operation.
func (rf *RegisterFile) UpdateFlags(i GPR) error {
	val, err := rf.Read(i)
	if err != nil {
		return err
	}

	var cond Condition

	switch {
	case val == 0:
		cond = ConditionZero
	case val&0x8000 != 0:
		cond = ConditionNegative
	default:
		cond = ConditionPositive
	}

	rf[RCond] = Register(cond)

	return nil
}
