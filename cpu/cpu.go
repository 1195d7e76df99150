// Package cpu implements the MOS 6502 instruction interpreter: register
// file, opcode dispatch table, addressing modes, and the cycle-counted
// Step/Reset lifecycle. It drives an mmu.Bank for all memory access but
// has no knowledge of what's behind it.
package cpu

import (
	"io"
	"log"

	"github.com/samhill-emu/sixfiveohtwo/mmu"
)

// Bank is the subset of mmu.Bank the processor needs. Defined locally
// (rather than importing mmu.Bank directly into signatures) so a host
// can swap in any read/write memory controller, mirroring how the
// original addressing-mode resolvers only ever called mmu.read/mmu.write.
type Bank interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8) error
}

var _ Bank = (*mmu.MMU)(nil)

// Config holds the parameters for constructing a Processor, following
// the same struct-of-params shape as ChipDef in the teacher's cpu.go:
// required fields are plain, optional ones are pointers or zero-valued.
type Config struct {
	// MMU is the memory bank the processor will read and write. Required.
	MMU Bank
	// PC, if non-nil, is used as the initial program counter instead of
	// reading the RESET vector.
	PC *uint16
	// StackPage selects which page the hardware stack lives in. Zero
	// means the conventional $01.
	StackPage uint8
}

// Processor is the 6502 instruction interpreter: register file, cycle
// counter, and opcode dispatch table, driving one mmu.Bank.
type Processor struct {
	R         Registers
	mmu       Bank
	Cycles    uint64
	stackPage uint8
	trace     *log.Logger
}

// New constructs a Processor against mmu, charging the standard 7
// power-on cycles. If cfg.PC is nil, the initial PC is read from the
// RESET vector ($FFFC/$FFFD little-endian), charging 2 additional
// cycles as real hardware does fetching it.
func New(cfg Config) *Processor {
	stackPage := cfg.StackPage
	if stackPage == 0 {
		stackPage = 0x01
	}
	p := &Processor{
		mmu:       cfg.MMU,
		stackPage: stackPage,
	}
	p.Cycles = 7
	if cfg.PC != nil {
		p.R = NewRegisters(*cfg.PC)
		return p
	}
	lo := p.mmu.Read(vectorRESET)
	hi := p.mmu.Read(vectorRESET + 1)
	p.R = NewRegisters(uint16(hi)<<8 | uint16(lo))
	p.Cycles += 2
	return p
}

// Reset reinitializes the register file and reloads PC from the RESET
// vector, as if the processor had just powered on again. The cycle
// counter is not reset; callers that want a fresh count should discard
// the Processor and call New instead.
func (c *Processor) Reset() {
	lo := c.mmu.Read(vectorRESET)
	hi := c.mmu.Read(vectorRESET + 1)
	c.R = NewRegisters(uint16(hi)<<8 | uint16(lo))
}

// SetTraceOutput wires a trace logger onto w; every subsequent Step call
// emits one line with the mnemonic and resolved operand. Passing nil
// silences tracing again. Tracing is off by default.
func (c *Processor) SetTraceOutput(w io.Writer) {
	if w == nil {
		c.trace = nil
		return
	}
	c.trace = log.New(w, "", 0)
}

// rb reads the byte at PC and advances PC by one.
func (c *Processor) rb() uint8 {
	v := c.mmu.Read(c.R.PC)
	c.R.PC++
	return v
}

// rw reads two bytes little-endian starting at PC, advancing PC by two.
func (c *Processor) rw() uint16 {
	lo := c.rb()
	hi := c.rb()
	return uint16(hi)<<8 | uint16(lo)
}

// Step fetches, decodes, and executes one instruction: fetch the opcode
// at PC, look it up, resolve its operand, execute it, then add its base
// cycle count (any page-crossing or branch penalties were already added
// during resolution or execution). Returns InvalidInstructionError if
// the opcode has no table entry; the processor does not advance past it.
func (c *Processor) Step() error {
	opPC := c.R.PC
	code := c.rb()
	entry := opcodes[code]
	if entry.exec == nil {
		// Roll PC back so a caller that inspects state after the error
		// sees the instruction that actually failed to decode.
		c.R.PC = opPC
		return InvalidInstructionError{Opcode: code, PC: opPC}
	}

	op := entry.mode(c)
	if c.trace != nil {
		c.trace.Printf("%04X  %-4s  %s", opPC, entry.mnemonic, traceOperand(op))
	}
	if err := entry.exec(c, op); err != nil {
		return err
	}
	c.Cycles += entry.cycles
	return nil
}

// traceOperand renders an operand for the Step trace line, the Go
// analogue of pyemul's `print(f'{name}\t{additional_value}')`.
func traceOperand(op operand) string {
	switch op.kind {
	case operandImmediate:
		return hexByte(op.value)
	case operandAddress:
		return hexWord(op.addr)
	case operandAccumulator:
		return "A"
	default:
		return ""
	}
}

func hexByte(v uint8) string  { return "#$" + hexDigits(uint16(v), 2) }
func hexWord(v uint16) string { return "$" + hexDigits(v, 4) }

func hexDigits(v uint16, width int) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = digits[v&0xF]
		v >>= 4
	}
	return string(out)
}
