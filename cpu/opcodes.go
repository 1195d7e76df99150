package cpu

// opcodeEntry is one slot of the dense dispatch table: a mnemonic for
// tracing, the addressing-mode resolver, the operation to execute with
// the resolved operand, and the base cycle count charged after
// execution. A zero-value entry (exec == nil) marks an opcode this
// instruction set doesn't implement.
type opcodeEntry struct {
	mnemonic string
	mode     func(*Processor) operand
	exec     func(*Processor, operand) error
	cycles   uint64
}

// opcodes is indexed directly by opcode byte, giving O(1) dispatch and
// making opcode coverage statically visible (spec.md §9 design note),
// rather than the hashed map the original source used.
var opcodes [256]opcodeEntry

func set(code uint8, mnemonic string, mode func(*Processor) operand, exec func(*Processor, operand) error, cycles uint64) {
	opcodes[code] = opcodeEntry{mnemonic: mnemonic, mode: mode, exec: exec, cycles: cycles}
}

func init() {
	// ADC
	set(0x69, "ADC", modeImmediate, opADC, 2)
	set(0x65, "ADC", modeZeroPage, opADC, 3)
	set(0x75, "ADC", modeZeroPageX, opADC, 4)
	set(0x6D, "ADC", modeAbsolute, opADC, 4)
	set(0x7D, "ADC", modeAbsoluteX, opADC, 4)
	set(0x79, "ADC", modeAbsoluteY, opADC, 4)
	set(0x61, "ADC", modeIndirectX, opADC, 6)
	set(0x71, "ADC", modeIndirectY, opADC, 5)

	// AND
	set(0x29, "AND", modeImmediate, opAND, 2)
	set(0x25, "AND", modeZeroPage, opAND, 3)
	set(0x35, "AND", modeZeroPageX, opAND, 4)
	set(0x2D, "AND", modeAbsolute, opAND, 4)
	set(0x3D, "AND", modeAbsoluteX, opAND, 4)
	set(0x39, "AND", modeAbsoluteY, opAND, 4)
	set(0x21, "AND", modeIndirectX, opAND, 6)
	set(0x31, "AND", modeIndirectY, opAND, 5)

	// ASL
	set(0x0A, "ASL", modeAccumulator, opASL, 2)
	set(0x06, "ASL", modeZeroPage, opASL, 5)
	set(0x16, "ASL", modeZeroPageX, opASL, 6)
	set(0x0E, "ASL", modeAbsolute, opASL, 6)
	set(0x1E, "ASL", modeAbsoluteX, opASL, 7)

	// Branches
	set(0x10, "BPL", modeRelative, opBPL, 2)
	set(0x30, "BMI", modeRelative, opBMI, 2)
	set(0x50, "BVC", modeRelative, opBVC, 2)
	set(0x70, "BVS", modeRelative, opBVS, 2)
	set(0x90, "BCC", modeRelative, opBCC, 2)
	set(0xB0, "BCS", modeRelative, opBCS, 2)
	set(0xD0, "BNE", modeRelative, opBNE, 2)
	set(0xF0, "BEQ", modeRelative, opBEQ, 2)

	// BIT
	set(0x24, "BIT", modeZeroPage, opBIT, 3)
	set(0x2C, "BIT", modeAbsolute, opBIT, 4)

	// BRK
	set(0x00, "BRK", modeImplied, opBRK, 7)

	// Clear flags
	set(0x18, "CLC", modeImplied, opCLC, 2)
	set(0xD8, "CLD", modeImplied, opCLD, 2)
	set(0x58, "CLI", modeImplied, opCLI, 2)
	set(0xB8, "CLV", modeImplied, opCLV, 2)

	// CMP
	set(0xC9, "CMP", modeImmediate, opCMP, 2)
	set(0xC5, "CMP", modeZeroPage, opCMP, 3)
	set(0xD5, "CMP", modeZeroPageX, opCMP, 4)
	set(0xCD, "CMP", modeAbsolute, opCMP, 4)
	set(0xDD, "CMP", modeAbsoluteX, opCMP, 4)
	set(0xD9, "CMP", modeAbsoluteY, opCMP, 4)
	set(0xC1, "CMP", modeIndirectX, opCMP, 6)
	set(0xD1, "CMP", modeIndirectY, opCMP, 5)

	// CPX / CPY
	set(0xE0, "CPX", modeImmediate, opCPX, 2)
	set(0xE4, "CPX", modeZeroPage, opCPX, 3)
	set(0xEC, "CPX", modeAbsolute, opCPX, 4)
	set(0xC0, "CPY", modeImmediate, opCPY, 2)
	set(0xC4, "CPY", modeZeroPage, opCPY, 3)
	set(0xCC, "CPY", modeAbsolute, opCPY, 4)

	// DEC / DEX / DEY
	set(0xC6, "DEC", modeZeroPage, opDEC, 5)
	set(0xD6, "DEC", modeZeroPageX, opDEC, 6)
	set(0xCE, "DEC", modeAbsolute, opDEC, 6)
	set(0xDE, "DEC", modeAbsoluteX, opDEC, 7)
	set(0xCA, "DEX", modeImplied, opDEX, 2)
	set(0x88, "DEY", modeImplied, opDEY, 2)

	// EOR
	set(0x49, "EOR", modeImmediate, opEOR, 2)
	set(0x45, "EOR", modeZeroPage, opEOR, 3)
	set(0x55, "EOR", modeZeroPageX, opEOR, 4)
	set(0x4D, "EOR", modeAbsolute, opEOR, 4)
	set(0x5D, "EOR", modeAbsoluteX, opEOR, 4)
	set(0x59, "EOR", modeAbsoluteY, opEOR, 4)
	set(0x41, "EOR", modeIndirectX, opEOR, 6)
	set(0x51, "EOR", modeIndirectY, opEOR, 5)

	// INC / INX / INY
	set(0xE6, "INC", modeZeroPage, opINC, 5)
	set(0xF6, "INC", modeZeroPageX, opINC, 6)
	set(0xEE, "INC", modeAbsolute, opINC, 6)
	set(0xFE, "INC", modeAbsoluteX, opINC, 7)
	set(0xE8, "INX", modeImplied, opINX, 2)
	set(0xC8, "INY", modeImplied, opINY, 2)

	// JMP / JSR
	set(0x4C, "JMP", modeAbsolute, opJMP, 3)
	set(0x6C, "JMP", modeIndirect, opJMP, 5)
	set(0x20, "JSR", modeAbsolute, opJSR, 6)

	// LDA
	set(0xA9, "LDA", modeImmediate, opLDA, 2)
	set(0xA5, "LDA", modeZeroPage, opLDA, 3)
	set(0xB5, "LDA", modeZeroPageX, opLDA, 4)
	set(0xAD, "LDA", modeAbsolute, opLDA, 4)
	set(0xBD, "LDA", modeAbsoluteX, opLDA, 4)
	set(0xB9, "LDA", modeAbsoluteY, opLDA, 4)
	set(0xA1, "LDA", modeIndirectX, opLDA, 6)
	set(0xB1, "LDA", modeIndirectY, opLDA, 5)

	// LDX
	set(0xA2, "LDX", modeImmediate, opLDX, 2)
	set(0xA6, "LDX", modeZeroPage, opLDX, 3)
	set(0xB6, "LDX", modeZeroPageY, opLDX, 4)
	set(0xAE, "LDX", modeAbsolute, opLDX, 4)
	set(0xBE, "LDX", modeAbsoluteY, opLDX, 4)

	// LDY
	set(0xA0, "LDY", modeImmediate, opLDY, 2)
	set(0xA4, "LDY", modeZeroPage, opLDY, 3)
	set(0xB4, "LDY", modeZeroPageX, opLDY, 4)
	set(0xAC, "LDY", modeAbsolute, opLDY, 4)
	set(0xBC, "LDY", modeAbsoluteX, opLDY, 4)

	// LSR
	set(0x4A, "LSR", modeAccumulator, opLSR, 2)
	set(0x46, "LSR", modeZeroPage, opLSR, 5)
	set(0x56, "LSR", modeZeroPageX, opLSR, 6)
	set(0x4E, "LSR", modeAbsolute, opLSR, 6)
	set(0x5E, "LSR", modeAbsoluteX, opLSR, 7)

	// NOP
	set(0xEA, "NOP", modeImplied, opNOP, 2)

	// ORA
	set(0x09, "ORA", modeImmediate, opORA, 2)
	set(0x05, "ORA", modeZeroPage, opORA, 3)
	set(0x15, "ORA", modeZeroPageX, opORA, 4)
	set(0x0D, "ORA", modeAbsolute, opORA, 4)
	set(0x1D, "ORA", modeAbsoluteX, opORA, 4)
	set(0x19, "ORA", modeAbsoluteY, opORA, 4)
	set(0x01, "ORA", modeIndirectX, opORA, 6)
	set(0x11, "ORA", modeIndirectY, opORA, 5)

	// Stack
	set(0x48, "PHA", modeImplied, opPHA, 3)
	set(0x08, "PHP", modeImplied, opPHP, 3)
	set(0x68, "PLA", modeImplied, opPLA, 4)
	set(0x28, "PLP", modeImplied, opPLP, 4)

	// ROL / ROR
	set(0x2A, "ROL", modeAccumulator, opROL, 2)
	set(0x26, "ROL", modeZeroPage, opROL, 5)
	set(0x36, "ROL", modeZeroPageX, opROL, 6)
	set(0x2E, "ROL", modeAbsolute, opROL, 6)
	set(0x3E, "ROL", modeAbsoluteX, opROL, 7)
	set(0x6A, "ROR", modeAccumulator, opROR, 2)
	set(0x66, "ROR", modeZeroPage, opROR, 5)
	set(0x76, "ROR", modeZeroPageX, opROR, 6)
	set(0x6E, "ROR", modeAbsolute, opROR, 6)
	set(0x7E, "ROR", modeAbsoluteX, opROR, 7)

	// RTI / RTS
	set(0x40, "RTI", modeImplied, opRTI, 6)
	set(0x60, "RTS", modeImplied, opRTS, 6)

	// Set flags
	set(0x38, "SEC", modeImplied, opSEC, 2)
	set(0xF8, "SED", modeImplied, opSED, 2)
	set(0x78, "SEI", modeImplied, opSEI, 2)

	// SBC
	set(0xE9, "SBC", modeImmediate, opSBC, 2)
	set(0xE5, "SBC", modeZeroPage, opSBC, 3)
	set(0xF5, "SBC", modeZeroPageX, opSBC, 4)
	set(0xED, "SBC", modeAbsolute, opSBC, 4)
	set(0xFD, "SBC", modeAbsoluteX, opSBC, 4)
	set(0xF9, "SBC", modeAbsoluteY, opSBC, 4)
	set(0xE1, "SBC", modeIndirectX, opSBC, 6)
	set(0xF1, "SBC", modeIndirectY, opSBC, 5)

	// STA
	set(0x85, "STA", modeZeroPage, opSTA, 3)
	set(0x95, "STA", modeZeroPageX, opSTA, 4)
	set(0x8D, "STA", modeAbsolute, opSTA, 4)
	set(0x9D, "STA", modeAbsoluteX, opSTA, 5)
	set(0x99, "STA", modeAbsoluteY, opSTA, 5)
	set(0x81, "STA", modeIndirectX, opSTA, 6)
	set(0x91, "STA", modeIndirectY, opSTA, 6)

	// STX / STY
	set(0x86, "STX", modeZeroPage, opSTX, 3)
	set(0x96, "STX", modeZeroPageY, opSTX, 4)
	set(0x8E, "STX", modeAbsolute, opSTX, 4)
	set(0x84, "STY", modeZeroPage, opSTY, 3)
	set(0x94, "STY", modeZeroPageX, opSTY, 4)
	set(0x8C, "STY", modeAbsolute, opSTY, 4)

	// Transfers
	set(0xAA, "TAX", modeImplied, opTAX, 2)
	set(0x8A, "TXA", modeImplied, opTXA, 2)
	set(0xA8, "TAY", modeImplied, opTAY, 2)
	set(0x98, "TYA", modeImplied, opTYA, 2)
	set(0x9A, "TXS", modeImplied, opTXS, 2)
	set(0xBA, "TSX", modeImplied, opTSX, 2)
}
