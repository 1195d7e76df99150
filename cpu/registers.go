package cpu

import "fmt"

// Flag bit positions within P, the packed processor status register.
// MSB to LSB: N V _ B D I Z C. Bit 5 (the unused bit) always reads as 1.
const (
	FlagC uint8 = 1 << 0 // Carry
	FlagZ uint8 = 1 << 1 // Zero
	FlagI uint8 = 1 << 2 // IRQ disable
	FlagD uint8 = 1 << 3 // Decimal mode
	FlagB uint8 = 1 << 4 // Break (only meaningful on a pushed copy of P)
	Flag1 uint8 = 1 << 5 // Unused; always 1
	FlagV uint8 = 1 << 6 // Overflow
	FlagN uint8 = 1 << 7 // Negative
)

// Registers holds the architectural register file of a 6502: the
// accumulator, the two index registers, the stack pointer, the program
// counter, and the packed status byte.
type Registers struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       uint8
}

// NewRegisters returns a Registers value in its post-reset state: A, X,
// and Y cleared, SP at the top of the stack page, the unused and
// interrupt-disable flags set, and PC at the given value.
func NewRegisters(pc uint16) Registers {
	return Registers{
		SP: 0xFF,
		PC: pc,
		P:  Flag1 | FlagI,
	}
}

// GetFlag reports whether the given flag bit is set in P.
func (r *Registers) GetFlag(flag uint8) bool {
	return r.P&flag != 0
}

// SetFlag sets or clears the given flag bit in P, leaving every other
// bit untouched.
func (r *Registers) SetFlag(flag uint8, set bool) {
	if set {
		r.P |= flag
	} else {
		r.P &^= flag
	}
}

// SetZN sets the Z and N flags from an 8-bit result: Z if it's zero, N
// from its bit 7. Shared by every load, arithmetic, logical, shift,
// rotate, increment, decrement, and pull-to-A operation.
func (r *Registers) SetZN(value uint8) {
	r.SetFlag(FlagZ, value == 0)
	r.SetFlag(FlagN, value&0x80 != 0)
}

// ClearFlags resets P to just the always-one bit, clearing every flag
// including the unused one's complement.
func (r *Registers) ClearFlags() {
	r.P = Flag1
}

// String renders the register file the way a trace log or test failure
// wants to see it, one line, hex registers and a binary status byte.
func (r Registers) String() string {
	return fmt.Sprintf("A: 0x%02X X: 0x%02X Y: 0x%02X SP: 0x%02X PC: 0x%04X P: %08b", r.A, r.X, r.Y, r.SP, r.PC, r.P)
}
