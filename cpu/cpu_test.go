package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/samhill-emu/sixfiveohtwo/mmu"
)

// romAt builds an MMU with 16k of writable RAM at $0000 and a ROM
// region loaded with image starting at start, mirroring the scenarios
// in spec.md §8.
func romAt(t *testing.T, start uint16, image []byte) *mmu.MMU {
	t.Helper()
	m, err := mmu.New([]mmu.Region{
		{Start: 0x0000, Length: 0x4000, Name: "RAM"},
		{Start: start, Length: uint16(len(image)), Name: "ROM", ReadOnly: true, Initial: image},
	})
	if err != nil {
		t.Fatalf("mmu.New: %v", err)
	}
	return m
}

// withResetVector appends the reset vector to image so it ends up at
// $FFFC/$FFFD once loaded at start; start+len(image) must equal 0xFFFC.
func withResetVector(image []byte, entry uint16) []byte {
	out := make([]byte, len(image))
	copy(out, image)
	return append(out, uint8(entry), uint8(entry>>8))
}

// S1 — Reset vector boot.
func TestResetVectorBoot(t *testing.T) {
	// ROM spans $8000..$FFFD (the last two bytes are the reset vector,
	// landing exactly at $FFFC/$FFFD); $FFFE/$FFFF fall outside the
	// region and read as the unmapped default of 0.
	image := make([]byte, 0x7FFC)
	full := withResetVector(image, 0x8000)
	m := romAt(t, 0x8000, full)
	c := New(Config{MMU: m})
	if c.Cycles != 9 {
		t.Errorf("Cycles = %d, want 9", c.Cycles)
	}
	if c.R.PC != 0x8000 {
		t.Errorf("PC = 0x%04X, want 0x8000", c.R.PC)
	}
	if c.R.P != 0b00100100 {
		t.Errorf("P = %08b, want 00100100 state: %s", c.R.P, spew.Sdump(c.R))
	}
}

// S2 — Explicit PC.
func TestExplicitPC(t *testing.T) {
	image := make([]byte, 0x7FFC)
	full := withResetVector(image, 0x8000)
	m := romAt(t, 0x8000, full)
	pc := uint16(0x1000)
	c := New(Config{MMU: m, PC: &pc})
	if c.Cycles != 7 {
		t.Errorf("Cycles = %d, want 7", c.Cycles)
	}
	if c.R.PC != 0x1000 {
		t.Errorf("PC = 0x%04X, want 0x1000", c.R.PC)
	}
}

// S3 — Unknown opcode.
func TestUnknownOpcode(t *testing.T) {
	image := make([]byte, 0x7FFC)
	for i := range image {
		image[i] = 0xFF
	}
	full := withResetVector(image, 0x8000)
	m := romAt(t, 0x8000, full)
	c := New(Config{MMU: m})
	err := c.Step()
	if err == nil {
		t.Fatalf("Step() with 0xFF in ROM succeeded, want InvalidInstructionError")
	}
	if _, ok := err.(InvalidInstructionError); !ok {
		t.Errorf("Step() error type = %T, want InvalidInstructionError", err)
	}
}

func newProcessorAt(t *testing.T, pc uint16, program []byte) (*Processor, *mmu.MMU) {
	t.Helper()
	m, err := mmu.New([]mmu.Region{{Start: 0x0000, Length: 0xFFFF, Name: "RAM"}})
	if err != nil {
		t.Fatalf("mmu.New: %v", err)
	}
	for i, b := range program {
		if err := m.Write(pc+uint16(i), b); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	c := New(Config{MMU: m, PC: &pc})
	return c, m
}

// S4 — LDA immediate, zero flag.
func TestLDAImmediateZeroFlag(t *testing.T) {
	c, _ := newProcessorAt(t, 0x8000, []byte{0xA9, 0x00})
	c.R.A = 0x37
	before := c.Cycles
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.R.A != 0 {
		t.Errorf("A = 0x%02X, want 0", c.R.A)
	}
	if !c.R.GetFlag(FlagZ) {
		t.Errorf("Z flag not set")
	}
	if c.R.GetFlag(FlagN) {
		t.Errorf("N flag set, want clear")
	}
	if c.Cycles != before+2 {
		t.Errorf("Cycles = %d, want %d", c.Cycles, before+2)
	}
}

// S5 — ADC with carry in BCD mode.
func TestADCDecimalCarry(t *testing.T) {
	c, _ := newProcessorAt(t, 0x8000, []byte{0x69, 0x27})
	c.R.SetFlag(FlagD, true)
	c.R.SetFlag(FlagC, true)
	c.R.A = 0x15
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.R.A != 0x43 {
		t.Errorf("A = 0x%02X, want 0x43", c.R.A)
	}
	if c.R.GetFlag(FlagC) {
		t.Errorf("C flag set, want clear")
	}
}

// S6 — Branch page-cross.
func TestBranchPageCross(t *testing.T) {
	c, _ := newProcessorAt(t, 0x80F0, []byte{0xD0, 0x10}) // BNE +0x10
	c.R.SetFlag(FlagZ, false)
	before := c.Cycles
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.R.PC != 0x8102 {
		t.Errorf("PC = 0x%04X, want 0x8102", c.R.PC)
	}
	if got, want := c.Cycles-before, uint64(4); got != want {
		t.Errorf("Cycles charged = %d, want %d (2 base + 1 taken + 1 page-cross)", got, want)
	}
}

// S7 — JMP indirect page-wrap bug.
func TestJMPIndirectPageWrapBug(t *testing.T) {
	c, m := newProcessorAt(t, 0x8000, []byte{0x6C, 0xFF, 0x30}) // JMP ($30FF)
	if err := m.Write(0x30FF, 0x34); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := m.Write(0x3000, 0x12); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := m.Write(0x3100, 0x99); err != nil { // decoy: must NOT be consulted
		t.Fatalf("Write: %v", err)
	}
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.R.PC != 0x1234 {
		t.Errorf("PC = 0x%04X, want 0x1234", c.R.PC)
	}
}

func TestPushPullSymmetry(t *testing.T) {
	c, _ := newProcessorAt(t, 0x8000, nil)
	sp := c.R.SP
	if err := c.push(0xAB); err != nil {
		t.Fatalf("push: %v", err)
	}
	if got := c.pull(); got != 0xAB {
		t.Errorf("pull() = 0x%02X, want 0xAB", got)
	}
	if c.R.SP != sp {
		t.Errorf("SP = 0x%02X after push/pull, want unchanged 0x%02X", c.R.SP, sp)
	}
}

func TestJSRRTSReturnsToByteAfterInstruction(t *testing.T) {
	// JSR $9000 at $8000 (3 bytes); a NOP sits at $9000 and RTS at $9001.
	c, m := newProcessorAt(t, 0x8000, []byte{0x20, 0x00, 0x90})
	if err := m.Write(0x9000, 0xEA); err != nil { // NOP
		t.Fatalf("Write: %v", err)
	}
	if err := m.Write(0x9001, 0x60); err != nil { // RTS
		t.Fatalf("Write: %v", err)
	}
	if err := c.Step(); err != nil { // JSR
		t.Fatalf("Step (JSR): %v", err)
	}
	if c.R.PC != 0x9000 {
		t.Fatalf("PC after JSR = 0x%04X, want 0x9000", c.R.PC)
	}
	if err := c.Step(); err != nil { // NOP
		t.Fatalf("Step (NOP): %v", err)
	}
	if err := c.Step(); err != nil { // RTS
		t.Fatalf("Step (RTS): %v", err)
	}
	if c.R.PC != 0x8003 {
		t.Errorf("PC after RTS = 0x%04X, want 0x8003 (JSR fetch + 3)", c.R.PC)
	}
}

func TestCompareCarrySemantics(t *testing.T) {
	tests := []struct {
		reg, value uint8
		wantC      bool
	}{
		{reg: 0x10, value: 0x05, wantC: true},
		{reg: 0x10, value: 0x10, wantC: true},
		{reg: 0x10, value: 0x11, wantC: false},
	}
	for _, test := range tests {
		c, _ := newProcessorAt(t, 0x8000, []byte{0xC9, test.value}) // CMP #value
		c.R.A = test.reg
		if err := c.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if got := c.R.GetFlag(FlagC); got != test.wantC {
			t.Errorf("CMP A=0x%02X v=0x%02X: C = %t, want %t", test.reg, test.value, got, test.wantC)
		}
	}
}

func TestADCBinaryOverflowAndCarry(t *testing.T) {
	c, _ := newProcessorAt(t, 0x8000, []byte{0x69, 0x50}) // ADC #$50
	c.R.A = 0x50
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.R.A != 0xA0 {
		t.Errorf("A = 0x%02X, want 0xA0", c.R.A)
	}
	if !c.R.GetFlag(FlagV) {
		t.Errorf("V flag not set for signed overflow 0x50+0x50")
	}
	if c.R.GetFlag(FlagC) {
		t.Errorf("C flag set, want clear")
	}
}

func TestAbsoluteYIndexingUsesY(t *testing.T) {
	// Regression for the source defect (spec.md §9 #1): absolute,Y must
	// index by Y, not X.
	c, m := newProcessorAt(t, 0x8000, []byte{0xB9, 0x00, 0x20}) // LDA $2000,Y
	c.R.X = 0x11
	c.R.Y = 0x05
	if err := m.Write(0x2005, 0x77); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.R.A != 0x77 {
		t.Errorf("A = 0x%02X, want 0x77 (loaded via Y-indexed address)", c.R.A)
	}
}

func TestINCWritesBackToAddress(t *testing.T) {
	// Regression for the source defect (spec.md §9 #2): INC/DEC must
	// write to the resolved address, not drop it.
	c, m := newProcessorAt(t, 0x8000, []byte{0xE6, 0x10}) // INC $10
	if err := m.Write(0x0010, 0x7F); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := m.Read(0x0010); got != 0x80 {
		t.Errorf("mem[0x10] = 0x%02X, want 0x80", got)
	}
	if !c.R.GetFlag(FlagN) {
		t.Errorf("N flag not set after INC to 0x80")
	}
}

func TestBITPreservesA(t *testing.T) {
	c, m := newProcessorAt(t, 0x8000, []byte{0x24, 0x10}) // BIT $10
	if err := m.Write(0x0010, 0xC0); err != nil {
		t.Fatalf("Write: %v", err)
	}
	c.R.A = 0x0F
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.R.A != 0x0F {
		t.Errorf("A = 0x%02X, want unchanged 0x0F", c.R.A)
	}
	if !c.R.GetFlag(FlagZ) {
		t.Errorf("Z flag not set (0x0F & 0xC0 == 0)")
	}
	if !c.R.GetFlag(FlagN) || !c.R.GetFlag(FlagV) {
		t.Errorf("N/V flags not both set from operand bits 7/6")
	}
}

func TestTXSNoFlagUpdate(t *testing.T) {
	c, _ := newProcessorAt(t, 0x8000, []byte{0x9A}) // TXS
	c.R.X = 0x00
	c.R.SetFlag(FlagZ, false)
	c.R.SetFlag(FlagN, true)
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.R.SP != 0x00 {
		t.Errorf("SP = 0x%02X, want 0x00", c.R.SP)
	}
	if c.R.GetFlag(FlagZ) || !c.R.GetFlag(FlagN) {
		t.Errorf("flags changed by TXS, want untouched")
	}
}

func TestMMURegionReadOnlyPropagatesThroughStore(t *testing.T) {
	m, err := mmu.New([]mmu.Region{
		{Start: 0x0000, Length: 0x100, Name: "RAM"},
		{Start: 0x8000, Length: 0x100, Name: "ROM", ReadOnly: true},
	})
	if err != nil {
		t.Fatalf("mmu.New: %v", err)
	}
	if err := m.Write(0x0000, 0x85); err != nil { // STA $10
		t.Fatalf("Write: %v", err)
	}
	if err := m.Write(0x0001, 0x10); err != nil {
		t.Fatalf("Write: %v", err)
	}
	pc := uint16(0x0000)
	c := New(Config{MMU: m, PC: &pc})
	c.R.A = 0x42
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := m.Read(0x0010); got != 0x42 {
		t.Errorf("mem[0x10] = 0x%02X, want 0x42", got)
	}

	// Now target a read-only address and expect the error to surface.
	if err := m.Write(0x0000, 0x8D); err != nil { // STA $8000
		t.Fatalf("Write: %v", err)
	}
	if err := m.Write(0x0001, 0x00); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := m.Write(0x0002, 0x80); err != nil {
		t.Fatalf("Write: %v", err)
	}
	pc = 0x0000
	c2 := New(Config{MMU: m, PC: &pc})
	err = c2.Step()
	if err == nil {
		t.Fatalf("Step() writing to ROM succeeded, want ReadOnlyError")
	}
	if _, ok := err.(mmu.ReadOnlyError); !ok {
		t.Errorf("Step() error type = %T, want mmu.ReadOnlyError", err)
	}
}

func TestInterruptInjection(t *testing.T) {
	m, err := mmu.New([]mmu.Region{{Start: 0, Length: 0xFFFF, Name: "RAM"}})
	if err != nil {
		t.Fatalf("mmu.New: %v", err)
	}
	if err := m.Write(0xFFFA, 0x00); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := m.Write(0xFFFB, 0x90); err != nil {
		t.Fatalf("Write: %v", err)
	}
	pc := uint16(0x8000)
	c := New(Config{MMU: m, PC: &pc})
	c.R.P = 0b00100100
	if err := c.Interrupt(NMI); err != nil {
		t.Fatalf("Interrupt(NMI): %v", err)
	}
	if c.R.PC != 0x9000 {
		t.Errorf("PC = 0x%04X, want 0x9000 (NMI vector)", c.R.PC)
	}
	if !c.R.GetFlag(FlagI) {
		t.Errorf("I flag not set after interrupt")
	}
	pushedP := c.pull()
	pushedPC := c.pullWord()
	if pushedPC != 0x8000 {
		t.Errorf("pushed PC = 0x%04X, want 0x8000", pushedPC)
	}
	if diff := deep.Equal(pushedP, uint8(0b00100100)); diff != nil {
		t.Errorf("pushed P diff: %v state: %s", diff, spew.Sdump(c))
	}

	if err := c.Interrupt(RESET); err == nil {
		t.Errorf("Interrupt(RESET) succeeded, want InvalidInterruptError")
	}
	if err := c.Interrupt(BRK); err == nil {
		t.Errorf("Interrupt(BRK) succeeded, want InvalidInterruptError")
	}
}

func TestBRKPushesAndSetsVector(t *testing.T) {
	m, err := mmu.New([]mmu.Region{{Start: 0, Length: 0xFFFF, Name: "RAM"}})
	if err != nil {
		t.Fatalf("mmu.New: %v", err)
	}
	if err := m.Write(0xFFFE, 0x00); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := m.Write(0xFFFF, 0xA0); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := m.Write(0x8000, 0x00); err != nil { // BRK
		t.Fatalf("Write: %v", err)
	}
	pc := uint16(0x8000)
	c := New(Config{MMU: m, PC: &pc})
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.R.PC != 0xA000 {
		t.Errorf("PC = 0x%04X, want 0xA000", c.R.PC)
	}
	if !c.R.GetFlag(FlagI) {
		t.Errorf("I flag not set after BRK")
	}
	p := c.pull()
	if p&FlagB == 0 || p&Flag1 == 0 {
		t.Errorf("pushed P = %08b, want B and unused bits set", p)
	}
	retPC := c.pullWord()
	if retPC != 0x8002 {
		t.Errorf("pushed PC = 0x%04X, want 0x8002 (opcode + padding byte)", retPC)
	}
}

func TestRegistersInvariantBit5AlwaysSet(t *testing.T) {
	r := NewRegisters(0)
	if !r.GetFlag(Flag1) {
		t.Fatalf("Flag1 not set on fresh Registers")
	}
	r.ClearFlags()
	if !r.GetFlag(Flag1) {
		t.Errorf("Flag1 cleared by ClearFlags, want always set")
	}
}
