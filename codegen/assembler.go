package codegen

import (
	"github.com/handegar/fv1asm/base"
	"github.com/handegar/fv1asm/parser"
)

// Assembler turns a parsed program into a program image.
type Assembler struct {
	optimize bool
}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// WithOptimization toggles the optimization pass. No pass is
// implemented; the flag is accepted for CLI compatibility.
func (a *Assembler) WithOptimization(on bool) *Assembler {
	a.optimize = on
	return a
}

// Assemble encodes every instruction of the program and pads the
// image with NOP words up to the 128-instruction capacity.
func (a *Assembler) Assemble(prog *parser.Program) (*Binary, error) {
	instrs := prog.Instructions()
	if len(instrs) > base.MaxInstructions {
		return nil, &ProgramTooLargeError{Size: len(instrs), Max: base.MaxInstructions}
	}
	b := &Binary{}
	for i, in := range instrs {
		word, err := EncodeInstruction(in)
		if err != nil {
			return nil, err
		}
		b.words[i] = word
	}
	return b, nil
}

// AssembleSource is the one-call path from source text to image.
func AssembleSource(src string) (*Binary, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return NewAssembler().Assemble(prog)
}
