/*
Package vm implements a basic VM for executing LC3 machine code.

With the reason for the project to learn more about computer engineering, the design of the
virtual machine is meant to mimic or reflect the micro-architecture described in the text.

# CPU #

The machine's CPU is extraordinarily simple. It has:

  - a file of eleven registers: eight general-purpose registers, the program counter, the
    condition-code register, and one reserved slot kept only for index alignment
  - a fetch-decode-execute loop that reads the instruction at PC, advances PC, and dispatches
    to the handler for the decoded opcode

There is no privileged mode, no interrupt controller, and no stack-pointer special-casing: R6 is
an ordinary general-purpose register, and the handler for each opcode is free to use it as a
stack pointer the way LC-3 assembly conventionally does, but the CPU itself does not enforce that
convention.

# Memory #

Memory is a flat array of 65,536 words. Two addresses are memory-mapped: the keyboard status
register (KBSR, 0xFE00) and the keyboard data register (KBDR, 0xFE02). Reading KBSR polls the
IoPort for a pressed key and, if one is present, blocks to fill KBDR before returning. No other
address in the LC-3 address space carries device semantics in this build; there is no display,
no interrupt vector table, and no access-control distinction between system and user space.

# Traps #

The six OS trap routines (GetC, Out, PutS, In, PutSp, Halt) are implemented as native handler
functions rather than as assembled LC-3 code loaded into low memory. There is no user-replaceable
trap vector table: trap dispatch is a fixed switch on the trap code's low byte.

# Plugins #

Every observable read or write of memory, a register, the program counter, the running flag, or a
character of I/O is announced as an event to any installed plugins, in registration order, guarded
by a single "delivering" flag so that a plugin's own VM access during event handling cannot
recursively re-enter event delivery.
*/
package vm
