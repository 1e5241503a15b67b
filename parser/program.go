// Package parser builds FV-1 programs from source text. Parsing is a
// single recursive-descent pass; label resolution runs as a separate
// second pass so skips may reference labels defined later.
package parser

import (
	"github.com/handegar/fv1asm/base"
)

// DirectiveKind tags the assembler directives.
type DirectiveKind int

const (
	// Equate binds a name to a numeric value (EQU name value).
	Equate DirectiveKind = iota
	// MemAlloc reserves delay RAM under a name (MEM name size).
	MemAlloc
	// SpinAsm is a compatibility marker, kept but otherwise ignored.
	SpinAsm
)

// Directive is a non-instruction assembler statement.
type Directive struct {
	Kind DirectiveKind
	Name string

	// Equate value
	Value float64

	// MemAlloc size and resolved base address
	Size uint16
	Base uint16

	// SpinAsm version text
	Version string
}

// Statement is a label declaration, an instruction, or both. A bare
// label has Instr == nil.
type Statement struct {
	Label string
	Instr base.Instruction
}

// Program is an ordered statement sequence plus the label table built
// while parsing. Labels map to instruction indices, not statement
// indices; a label with no following instruction maps to the final
// instruction count.
type Program struct {
	Directives []Directive
	Statements []Statement
	Labels     map[string]int
}

func NewProgram() *Program {
	return &Program{Labels: make(map[string]int)}
}

// AddStatement appends a statement and records its label, if any, at
// the current instruction index.
func (p *Program) AddStatement(s Statement) {
	if s.Label != "" {
		p.Labels[s.Label] = p.InstructionCount()
	}
	p.Statements = append(p.Statements, s)
}

// InstructionCount counts actual instructions, ignoring bare labels.
func (p *Program) InstructionCount() int {
	n := 0
	for _, s := range p.Statements {
		if s.Instr != nil {
			n++
		}
	}
	return n
}

// Instructions returns the instructions in program order.
func (p *Program) Instructions() []base.Instruction {
	instrs := make([]base.Instruction, 0, len(p.Statements))
	for _, s := range p.Statements {
		if s.Instr != nil {
			instrs = append(instrs, s.Instr)
		}
	}
	return instrs
}

// ResolveLabel returns the instruction index a label points at.
func (p *Program) ResolveLabel(name string) (int, bool) {
	idx, ok := p.Labels[name]
	return idx, ok
}
