package vm

import "testing"

func TestDecodeOpcode(t *testing.T) {
	ir := Instruction(0b0001_000_000_0_00_000)

	op, err := DecodeOpcode(ir)
	if err != nil {
		t.Fatalf("DecodeOpcode: %s", err)
	}

	if op != OpAdd {
		t.Errorf("Opcode = %s, want ADD", op)
	}
}

func TestDecodeTrapCodeRejectsUnknownVector(t *testing.T) {
	if _, err := DecodeTrapCode(0x99); err == nil {
		t.Errorf("DecodeTrapCode(0x99): expected an error")
	}
}

func TestDecodeTrapCodeAcceptsEachKnownVector(t *testing.T) {
	for _, want := range []TrapCode{TrapGetC, TrapOut, TrapPutS, TrapIn, TrapPutSp, TrapHalt} {
		got, err := DecodeTrapCode(uint8(want))
		if err != nil {
			t.Fatalf("DecodeTrapCode(%#02x): %s", uint8(want), err)
		}

		if got != want {
			t.Errorf("DecodeTrapCode(%#02x) = %s, want %s", uint8(want), got, want)
		}
	}
}

func TestOpcodeStringUnknown(t *testing.T) {
	op := Opcode(numOpcodes)
	if op.String() == "" {
		t.Errorf("Opcode.String(): expected a non-empty fallback for an out-of-range opcode")
	}
}
