package cpu

// InterruptKind identifies one of the 6502's interrupt/reset sources;
// the four kinds share three vector slots, BRK using IRQ's. Only NMI and
// IRQ can be injected through Interrupt;
// RESET is handled by Processor.Reset and BRK only by its opcode.
type InterruptKind int

const (
	// NMI is the non-maskable interrupt vector, $FFFA/$FFFB.
	NMI InterruptKind = iota
	// IRQ is the maskable interrupt vector, $FFFE/$FFFF. BRK shares it.
	IRQ
	// BRK is an alias for IRQ's vector, listed separately because the
	// hardware calls it out as a distinct source even though it shares
	// a slot with IRQ.
	BRK
	// RESET is the power-on/reset vector, $FFFC/$FFFD.
	RESET
)

// Reserved, non-standard vector slots. No opcode in this instruction set
// consults them; they exist only so a host memory map can reserve the
// addresses.
const (
	vectorABORT = uint16(0xFFF8)
	vectorCOP   = uint16(0xFFF4)
)

const (
	vectorNMI   = uint16(0xFFFA)
	vectorRESET = uint16(0xFFFC)
	vectorIRQ   = uint16(0xFFFE) // Shared by IRQ and BRK.
)

// vectorFor returns the low-byte address of the given interrupt's
// vector in memory.
func vectorFor(kind InterruptKind) uint16 {
	switch kind {
	case NMI:
		return vectorNMI
	case RESET:
		return vectorRESET
	default: // IRQ, BRK
		return vectorIRQ
	}
}

// String renders an InterruptKind for error messages and trace output.
func (k InterruptKind) String() string {
	switch k {
	case NMI:
		return "NMI"
	case IRQ:
		return "IRQ"
	case BRK:
		return "BRK"
	case RESET:
		return "RESET"
	default:
		return "INVALID"
	}
}

// Interrupt is the extension point spec.md §9 leaves open: the source
// reserves NMI/IRQ/BRK/COP/ABORT vector slots but never implements a way
// to inject one outside of the BRK opcode. Interrupt pushes PC and P (B
// clear, since only BRK sets it), disables further IRQs, and loads PC
// from the requested vector. RESET is not accepted here; call
// Processor.Reset instead. BRK, COP, and ABORT are not accepted either:
// BRK is only reachable through its opcode and COP/ABORT are reserved
// slots consulted by no operation (spec.md §3).
func (c *Processor) Interrupt(kind InterruptKind) error {
	if kind != NMI && kind != IRQ {
		return InvalidInterruptError{Kind: kind}
	}
	if err := c.pushWord(c.R.PC); err != nil {
		return err
	}
	if err := c.push(c.R.P&^FlagB | Flag1); err != nil {
		return err
	}
	c.R.SetFlag(FlagI, true)
	vec := vectorFor(kind)
	lo := c.mmu.Read(vec)
	hi := c.mmu.Read(vec + 1)
	c.R.PC = uint16(hi)<<8 | uint16(lo)
	return nil
}
