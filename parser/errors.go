package parser

import (
	"fmt"

	"github.com/handegar/fv1asm/lexer"
)

// UnexpectedEOFError reports input that ends mid-statement.
type UnexpectedEOFError struct{}

func (e *UnexpectedEOFError) Error() string { return "unexpected end of input" }

// UnexpectedTokenError reports a token that does not fit the grammar
// at its position.
type UnexpectedTokenError struct {
	Expected string
	Found    string
	At       lexer.Span
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token: expected %s, found %q", e.Expected, e.Found)
}

func (e *UnexpectedTokenError) Span() lexer.Span { return e.At }

// ExpectedRegisterError reports a non-register token in a register
// operand position.
type ExpectedRegisterError struct {
	At lexer.Span
}

func (e *ExpectedRegisterError) Error() string { return "expected register" }

func (e *ExpectedRegisterError) Span() lexer.Span { return e.At }

// ExpectedNumberError reports a non-numeric token in a numeric operand
// position, or an identifier with no EQU/MEM binding.
type ExpectedNumberError struct {
	At lexer.Span
}

func (e *ExpectedNumberError) Error() string { return "expected number" }

func (e *ExpectedNumberError) Span() lexer.Span { return e.At }

// UndefinedLabelError reports a skip target that no label defines.
type UndefinedLabelError struct {
	Name string
	At   lexer.Span
}

func (e *UndefinedLabelError) Error() string {
	return fmt.Sprintf("undefined label: %s", e.Name)
}

func (e *UndefinedLabelError) Span() lexer.Span { return e.At }

// OffsetRangeError reports a skip offset outside the signed 8-bit
// range.
type OffsetRangeError struct {
	Label  string
	Offset int
	At     lexer.Span
}

func (e *OffsetRangeError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("skip offset to %q is %d, outside -128..127", e.Label, e.Offset)
	}
	return fmt.Sprintf("skip offset %d outside -128..127", e.Offset)
}

func (e *OffsetRangeError) Span() lexer.Span { return e.At }

// MemOverflowError reports MEM allocations exceeding the delay RAM.
type MemOverflowError struct {
	Name string
	Size uint16
	Free int
	At   lexer.Span
}

func (e *MemOverflowError) Error() string {
	return fmt.Sprintf("MEM %s of %d samples exceeds remaining delay RAM (%d free)",
		e.Name, e.Size, e.Free)
}

func (e *MemOverflowError) Span() lexer.Span { return e.At }
