package codegen

import (
	"fmt"

	"github.com/handegar/fv1asm/base"
)

// CoefficientRangeError reports a fixed-point value outside its
// representable range. No clamping is ever applied.
type CoefficientRangeError struct {
	Value    float64
	Min, Max float64
}

func (e *CoefficientRangeError) Error() string {
	return fmt.Sprintf("coefficient %g outside [%g, %g)", e.Value, e.Min, e.Max)
}

// AddressRangeError reports a delay address beyond the delay RAM.
type AddressRangeError struct {
	Addr uint16
	Max  int
}

func (e *AddressRangeError) Error() string {
	return fmt.Sprintf("delay address %d outside 0..%d", e.Addr, e.Max-1)
}

// InvalidRegisterError reports a register code with no hardware
// register behind it.
type InvalidRegisterError struct {
	Reg base.Register
}

func (e *InvalidRegisterError) Error() string {
	return fmt.Sprintf("invalid register code 0x%02X", int(e.Reg))
}

// FieldRangeError reports an integer operand too large for its field.
type FieldRangeError struct {
	Field string
	Value int
	Max   int
}

func (e *FieldRangeError) Error() string {
	return fmt.Sprintf("%s %d exceeds %d", e.Field, e.Value, e.Max)
}

// ProgramTooLargeError reports a program over the instruction limit.
type ProgramTooLargeError struct {
	Size int
	Max  int
}

func (e *ProgramTooLargeError) Error() string {
	return fmt.Sprintf("program has %d instructions, max is %d", e.Size, e.Max)
}

// UnknownOpcodeError reports a word whose opcode tag is unassigned.
type UnknownOpcodeError struct {
	Opcode uint32
	Word   uint32
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0b%05b in word 0x%08X", e.Opcode, e.Word)
}

// InvalidFieldError reports a decodable opcode carrying a field value
// outside its table (register, skip condition or CHO mode).
type InvalidFieldError struct {
	Field string
	Bits  uint32
	Word  uint32
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s value 0x%02X in word 0x%08X", e.Field, e.Bits, e.Word)
}

// SizeError reports a raw image of the wrong byte length.
type SizeError struct {
	Size     int
	Expected int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("program image is %d bytes, expected %d", e.Size, e.Expected)
}
