package cpu

// Instruction operations. Each has the signature func(*Processor,
// operand) error so the opcode table can be homogeneous; most never
// fail, but anything that writes through the MMU (stores, RMW memory
// ops, stack pushes) can surface mmu.ReadOnlyError from a Bank.Write.

// writeOperand stores v back through whichever flavor of operand
// produced it: the accumulator directly, or memory through the MMU.
// Used by the shift/rotate/increment/decrement family.
func (c *Processor) writeOperand(op operand, v uint8) error {
	switch op.kind {
	case operandAccumulator:
		c.R.A = v
		return nil
	case operandAddress:
		return c.mmu.Write(op.addr, v)
	default:
		return nil
	}
}

// --- Loads / stores ---

func opLDA(c *Processor, op operand) error {
	c.R.A = c.readOperand(op)
	c.R.SetZN(c.R.A)
	return nil
}

func opLDX(c *Processor, op operand) error {
	c.R.X = c.readOperand(op)
	c.R.SetZN(c.R.X)
	return nil
}

func opLDY(c *Processor, op operand) error {
	c.R.Y = c.readOperand(op)
	c.R.SetZN(c.R.Y)
	return nil
}

func opSTA(c *Processor, op operand) error {
	return c.mmu.Write(op.addr, c.R.A)
}

func opSTX(c *Processor, op operand) error {
	return c.mmu.Write(op.addr, c.R.X)
}

func opSTY(c *Processor, op operand) error {
	return c.mmu.Write(op.addr, c.R.Y)
}

// --- Transfers ---

func opTAX(c *Processor, op operand) error { c.R.X = c.R.A; c.R.SetZN(c.R.X); return nil }
func opTAY(c *Processor, op operand) error { c.R.Y = c.R.A; c.R.SetZN(c.R.Y); return nil }
func opTXA(c *Processor, op operand) error { c.R.A = c.R.X; c.R.SetZN(c.R.A); return nil }
func opTYA(c *Processor, op operand) error { c.R.A = c.R.Y; c.R.SetZN(c.R.A); return nil }
func opTSX(c *Processor, op operand) error { c.R.X = c.R.SP; c.R.SetZN(c.R.X); return nil }

// opTXS has no flag update: its destination is SP, not one of the
// flag-observing registers (spec.md §4.4).
func opTXS(c *Processor, op operand) error { c.R.SP = c.R.X; return nil }

// --- Arithmetic ---

func opADC(c *Processor, op operand) error {
	v := c.readOperand(op)
	a := c.R.A
	carryIn := b2u8(c.R.GetFlag(FlagC))

	if c.R.GetFlag(FlagD) {
		r := fromBCD(a) + fromBCD(v) + int(carryIn)
		c.R.SetFlag(FlagC, r > 99)
		c.R.A = toBCD(mod100(r))
		c.R.SetFlag(FlagV, (^(a^v))&(a^c.R.A)&0x80 != 0)
	} else {
		r := int(a) + int(v) + int(carryIn)
		c.R.SetFlag(FlagC, r > 0xFF)
		c.R.A = uint8(r)
		c.R.SetFlag(FlagV, (^(a^v))&(a^c.R.A)&0x80 != 0)
	}
	c.R.SetZN(c.R.A)
	return nil
}

func opSBC(c *Processor, op operand) error {
	v := c.readOperand(op)
	a := c.R.A
	borrow := b2u8(!c.R.GetFlag(FlagC))

	if c.R.GetFlag(FlagD) {
		r := fromBCD(a) - fromBCD(v) - int(borrow)
		c.R.SetFlag(FlagC, r >= 0)
		c.R.A = toBCD(mod100(r))
		c.R.SetFlag(FlagV, (a^v)&(a^c.R.A)&0x80 != 0)
	} else {
		r := int(a) - int(v) - int(borrow)
		c.R.SetFlag(FlagC, r >= 0)
		result := uint8(r)
		c.R.SetFlag(FlagV, (a^v)&(a^result)&0x80 != 0)
		c.R.A = result
	}
	c.R.SetZN(c.R.A)
	return nil
}

// --- Bitwise ---

func opAND(c *Processor, op operand) error { c.R.A &= c.readOperand(op); c.R.SetZN(c.R.A); return nil }
func opORA(c *Processor, op operand) error { c.R.A |= c.readOperand(op); c.R.SetZN(c.R.A); return nil }
func opEOR(c *Processor, op operand) error { c.R.A ^= c.readOperand(op); c.R.SetZN(c.R.A); return nil }

// --- Compare ---

func compare(c *Processor, reg, v uint8) {
	r := reg - v
	c.R.SetFlag(FlagZ, r == 0)
	c.R.SetFlag(FlagC, v <= reg)
	c.R.SetFlag(FlagN, r&0x80 != 0)
}

func opCMP(c *Processor, op operand) error { compare(c, c.R.A, c.readOperand(op)); return nil }
func opCPX(c *Processor, op operand) error { compare(c, c.R.X, c.readOperand(op)); return nil }
func opCPY(c *Processor, op operand) error { compare(c, c.R.Y, c.readOperand(op)); return nil }

// --- Shifts / rotates ---

func opASL(c *Processor, op operand) error {
	v := c.readOperand(op)
	c.R.SetFlag(FlagC, v&0x80 != 0)
	result := v << 1
	c.R.SetZN(result)
	return c.writeOperand(op, result)
}

func opLSR(c *Processor, op operand) error {
	v := c.readOperand(op)
	c.R.SetFlag(FlagC, v&0x01 != 0)
	result := v >> 1
	c.R.SetZN(result)
	return c.writeOperand(op, result)
}

func opROL(c *Processor, op operand) error {
	v := c.readOperand(op)
	carryIn := b2u8(c.R.GetFlag(FlagC))
	c.R.SetFlag(FlagC, v&0x80 != 0)
	result := (v << 1) | carryIn
	c.R.SetZN(result)
	return c.writeOperand(op, result)
}

func opROR(c *Processor, op operand) error {
	v := c.readOperand(op)
	var carryIn uint8
	if c.R.GetFlag(FlagC) {
		carryIn = 0x80
	}
	c.R.SetFlag(FlagC, v&0x01 != 0)
	result := (v >> 1) | carryIn
	c.R.SetZN(result)
	return c.writeOperand(op, result)
}

// --- Increment / decrement ---

func opINC(c *Processor, op operand) error {
	result := c.readOperand(op) + 1
	c.R.SetZN(result)
	return c.writeOperand(op, result)
}

func opDEC(c *Processor, op operand) error {
	result := c.readOperand(op) - 1
	c.R.SetZN(result)
	return c.writeOperand(op, result)
}

func opINX(c *Processor, op operand) error { c.R.X++; c.R.SetZN(c.R.X); return nil }
func opINY(c *Processor, op operand) error { c.R.Y++; c.R.SetZN(c.R.Y); return nil }
func opDEX(c *Processor, op operand) error { c.R.X--; c.R.SetZN(c.R.X); return nil }
func opDEY(c *Processor, op operand) error { c.R.Y--; c.R.SetZN(c.R.Y); return nil }

// --- Bit test ---

// opBIT leaves A untouched (spec.md §9 defect #7): Z comes from A&v, N
// and V come straight from bits 7 and 6 of the operand, not of A.
func opBIT(c *Processor, op operand) error {
	v := c.readOperand(op)
	c.R.SetFlag(FlagZ, c.R.A&v == 0)
	c.R.SetFlag(FlagN, v&0x80 != 0)
	c.R.SetFlag(FlagV, v&0x40 != 0)
	return nil
}

// --- Branches ---

// branch is shared by all eight conditional branches. The offset byte
// was already consumed by modeRelative regardless of whether the branch
// is taken; only a taken branch adjusts PC and charges cycles.
func (c *Processor) branch(op operand, flag uint8, want bool) error {
	if c.R.GetFlag(flag) != want {
		return nil
	}
	offset := int8(op.value)
	base := c.R.PC
	target := uint16(int32(base) + int32(offset))
	c.Cycles++
	if pageCrossed(base, target) {
		c.Cycles++
	}
	c.R.PC = target
	return nil
}

func opBPL(c *Processor, op operand) error { return c.branch(op, FlagN, false) }
func opBMI(c *Processor, op operand) error { return c.branch(op, FlagN, true) }
func opBVC(c *Processor, op operand) error { return c.branch(op, FlagV, false) }
func opBVS(c *Processor, op operand) error { return c.branch(op, FlagV, true) }
func opBCC(c *Processor, op operand) error { return c.branch(op, FlagC, false) }
func opBCS(c *Processor, op operand) error { return c.branch(op, FlagC, true) }
func opBNE(c *Processor, op operand) error { return c.branch(op, FlagZ, false) }
func opBEQ(c *Processor, op operand) error { return c.branch(op, FlagZ, true) }

// --- Jumps / subroutine ---

func opJMP(c *Processor, op operand) error {
	c.R.PC = op.addr
	return nil
}

func opJSR(c *Processor, op operand) error {
	if err := c.pushWord(c.R.PC - 1); err != nil {
		return err
	}
	c.R.PC = op.addr
	return nil
}

func opRTS(c *Processor, op operand) error {
	c.R.PC = c.pullWord() + 1
	return nil
}

// --- Interrupts ---

// opBRK accounts for the padding byte that follows a BRK opcode (the
// addressing mode is implied and so never consumed it), pushes PC then
// P with B and the unused bit set, disables further IRQs, and loads PC
// from the shared IRQ/BRK vector.
func opBRK(c *Processor, op operand) error {
	c.R.PC++
	if err := c.pushWord(c.R.PC); err != nil {
		return err
	}
	if err := c.push(c.R.P | FlagB | Flag1); err != nil {
		return err
	}
	c.R.SetFlag(FlagI, true)
	lo := c.mmu.Read(vectorIRQ)
	hi := c.mmu.Read(vectorIRQ + 1)
	c.R.PC = uint16(hi)<<8 | uint16(lo)
	return nil
}

func opRTI(c *Processor, op operand) error {
	c.R.P = c.pull() | Flag1
	c.R.PC = c.pullWord()
	return nil
}

// --- Stack ---

func opPHA(c *Processor, op operand) error { return c.push(c.R.A) }

// opPHP always pushes with B and the unused bit set, matching real
// hardware rather than the original source's defect (spec.md §9 defect
// #6), which additionally captured the value at table-construction time
// instead of dispatch time; both are fixed here.
func opPHP(c *Processor, op operand) error { return c.push(c.R.P | FlagB | Flag1) }

func opPLA(c *Processor, op operand) error {
	c.R.A = c.pull()
	c.R.SetZN(c.R.A)
	return nil
}

func opPLP(c *Processor, op operand) error {
	c.R.P = c.pull() | Flag1
	return nil
}

// --- Flags ---

func opCLC(c *Processor, op operand) error { c.R.SetFlag(FlagC, false); return nil }
func opSEC(c *Processor, op operand) error { c.R.SetFlag(FlagC, true); return nil }
func opCLD(c *Processor, op operand) error { c.R.SetFlag(FlagD, false); return nil }
func opSED(c *Processor, op operand) error { c.R.SetFlag(FlagD, true); return nil }
func opCLI(c *Processor, op operand) error { c.R.SetFlag(FlagI, false); return nil }
func opSEI(c *Processor, op operand) error { c.R.SetFlag(FlagI, true); return nil }
func opCLV(c *Processor, op operand) error { c.R.SetFlag(FlagV, false); return nil }

// --- No-op ---

func opNOP(c *Processor, op operand) error { return nil }
