package cpu

import "fmt"

// InvalidInstructionError reports that Step's decode phase found no
// entry in the opcode table for the fetched byte. The processor does
// not advance past this point; recovery (abort, or swap in a different
// program) is the caller's choice.
type InvalidInstructionError struct {
	Opcode uint8
	PC     uint16
}

// Error implements the error interface.
func (e InvalidInstructionError) Error() string {
	return fmt.Sprintf("cpu: invalid opcode 0x%02X at PC 0x%04X", e.Opcode, e.PC)
}

// InvalidInterruptError reports a call to Processor.Interrupt with a
// kind that isn't injectable (RESET goes through Processor.Reset; BRK
// is only reachable via its opcode).
type InvalidInterruptError struct {
	Kind InterruptKind
}

// Error implements the error interface.
func (e InvalidInterruptError) Error() string {
	return fmt.Sprintf("cpu: %v is not an injectable interrupt", e.Kind)
}
