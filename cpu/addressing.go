package cpu

// Addressing-mode resolvers. Each reads whatever operand bytes the mode
// needs from PC (advancing it) and returns a tagged operand: an
// immediate value, an effective address, the accumulator sentinel, or
// nothing. Page-crossing penalties are charged here, against Cycles,
// as soon as they're known, per spec: "may charge extra cycles for page
// crossings" during resolution.

// pageCrossed reports whether base and base+offset differ in their high
// byte, the 6502's definition of crossing a page boundary.
func pageCrossed(base, final uint16) bool {
	return base&0xFF00 != final&0xFF00
}

func modeImmediate(c *Processor) operand {
	return operand{kind: operandImmediate, value: c.rb()}
}

func modeZeroPage(c *Processor) operand {
	return operand{kind: operandAddress, addr: uint16(c.rb())}
}

func modeZeroPageX(c *Processor) operand {
	addr := uint16((c.rb() + c.R.X) & 0xFF)
	return operand{kind: operandAddress, addr: addr}
}

func modeZeroPageY(c *Processor) operand {
	addr := uint16((c.rb() + c.R.Y) & 0xFF)
	return operand{kind: operandAddress, addr: addr}
}

func modeAbsolute(c *Processor) operand {
	return operand{kind: operandAddress, addr: c.rw()}
}

func modeAbsoluteX(c *Processor) operand {
	base := c.rw()
	final := base + uint16(c.R.X)
	if pageCrossed(base, final) {
		c.Cycles++
	}
	return operand{kind: operandAddress, addr: final}
}

// modeAbsoluteY indexes by Y. The original source's _load_addr_y used X
// here instead (a documented defect, spec.md §9 defect #1); this
// implementation uses Y per spec.
func modeAbsoluteY(c *Processor) operand {
	base := c.rw()
	final := base + uint16(c.R.Y)
	if pageCrossed(base, final) {
		c.Cycles++
	}
	return operand{kind: operandAddress, addr: final}
}

// modeIndirectX resolves (zp,X): the zero-page pointer is indexed by X
// before the indirection, so it never crosses a page (zero-page wraps).
func modeIndirectX(c *Processor) operand {
	zp := (c.rb() + c.R.X) & 0xFF
	lo := c.mmu.Read(uint16(zp))
	hi := c.mmu.Read(uint16((zp + 1) & 0xFF))
	addr := uint16(hi)<<8 | uint16(lo)
	return operand{kind: operandAddress, addr: addr}
}

// modeIndirectY resolves (zp),Y: the pointer is read from zero page
// first, then indexed by Y, so the indexed addition can cross a page.
func modeIndirectY(c *Processor) operand {
	zp := c.rb()
	lo := c.mmu.Read(uint16(zp))
	hi := c.mmu.Read(uint16((zp + 1) & 0xFF))
	base := uint16(hi)<<8 | uint16(lo)
	final := base + uint16(c.R.Y)
	if pageCrossed(base, final) {
		c.Cycles++
	}
	return operand{kind: operandAddress, addr: final}
}

// modeIndirect resolves JMP's indirect operand, including the famous
// page-boundary bug: if the pointer's low byte is 0xFF, the high byte
// of the target is fetched from the start of the same page rather than
// the next page.
func modeIndirect(c *Processor) operand {
	ptr := c.rw()
	hiAddr := ptr + 1
	if ptr&0xFF == 0xFF {
		hiAddr = ptr & 0xFF00
	}
	lo := c.mmu.Read(ptr)
	hi := c.mmu.Read(hiAddr)
	return operand{kind: operandAddress, addr: uint16(hi)<<8 | uint16(lo)}
}

// modeRelative consumes the 1-byte signed branch offset unconditionally
// (spec.md §4.4: "Always consume the 1-byte signed offset") and hands it
// to the branch operation as an immediate; the operation decides whether
// to take the branch and charges the associated cycle penalties.
func modeRelative(c *Processor) operand {
	return operand{kind: operandImmediate, value: c.rb()}
}

func modeImplied(c *Processor) operand {
	return operand{kind: operandNone}
}

func modeAccumulator(c *Processor) operand {
	return operand{kind: operandAccumulator}
}
