// Package disasm renders program images back into canonical FV-1
// assembly. The output is deterministic: disassembling the same image
// twice yields byte-identical text, and reassembling the text yields
// the original image.
package disasm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/handegar/fv1asm/base"
	"github.com/handegar/fv1asm/codegen"
	"github.com/handegar/fv1asm/parser"
)

// Disassembler decodes a program image into instructions and renders
// them as source text.
type Disassembler struct {
	stripNops bool
}

// New returns a disassembler that strips trailing padding NOPs, the
// right default for human-facing listings.
func New() *Disassembler {
	return &Disassembler{stripNops: true}
}

// WithStripNops controls trailing-NOP stripping. Turn it off when the
// text must round-trip to the exact 128-word image.
func (d *Disassembler) WithStripNops(on bool) *Disassembler {
	d.stripNops = on
	return d
}

// Disassemble decodes every word of the image into a Program.
func (d *Disassembler) Disassemble(b *codegen.Binary) (*parser.Program, error) {
	words := b.Words()
	if d.stripNops {
		for len(words) > 0 && words[len(words)-1] == codegen.NopWord {
			words = words[:len(words)-1]
		}
	}

	prog := parser.NewProgram()
	for i, word := range words {
		instr, err := codegen.DecodeInstruction(word)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		prog.AddStatement(parser.Statement{Instr: instr})
	}
	return prog, nil
}

// DisassembleToSource decodes the image and renders the listing.
func (d *Disassembler) DisassembleToSource(b *codegen.Binary) (string, error) {
	prog, err := d.Disassemble(b)
	if err != nil {
		return "", err
	}
	return FormatProgram(prog), nil
}

// FormatProgram renders each instruction on its own line.
func FormatProgram(prog *parser.Program) string {
	var sb strings.Builder
	for _, stmt := range prog.Statements {
		if stmt.Label != "" {
			sb.WriteString(stmt.Label)
			sb.WriteString(":\n")
		}
		if stmt.Instr != nil {
			sb.WriteString(FormatInstruction(stmt.Instr))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FormatInstruction renders one instruction in canonical form:
// uppercase mnemonic padded to the operand column, operands in
// encoding order.
func FormatInstruction(in base.Instruction) string {
	switch i := in.(type) {
	case base.Rdax:
		return line3(in, i.Reg.String(), coeff(i.Coeff))
	case base.Wrax:
		return line3(in, i.Reg.String(), coeff(i.Coeff))
	case base.Rdfx:
		return line3(in, i.Reg.String(), coeff(i.Coeff))
	case base.Rdfx2:
		return line3(in, i.Reg.String(), coeff(i.Coeff))
	case base.Ldax:
		return line2(in, i.Reg.String())
	case base.Mulx:
		return line2(in, i.Reg.String())

	case base.Rda:
		return line3(in, itoa(int(i.Addr)), coeff(i.Coeff))
	case base.Wra:
		return line3(in, itoa(int(i.Addr)), coeff(i.Coeff))
	case base.Wrap:
		return line3(in, itoa(int(i.Addr)), coeff(i.Coeff))
	case base.Rmpa:
		return line2(in, coeff(i.Coeff))

	case base.Sof:
		return line3(in, coeff(i.Coeff), coeff(i.Offset))
	case base.Exp:
		return line3(in, coeff(i.Coeff), coeff(i.Offset))
	case base.Log:
		return line3(in, coeff(i.Coeff), coeff(i.Offset))

	case base.And:
		return line2(in, mask(i.Mask))
	case base.Or:
		return line2(in, mask(i.Mask))
	case base.Xor:
		return line2(in, mask(i.Mask))

	case base.Skp:
		return line3(in, i.Cond.String(), itoa(int(i.Offset)))
	case base.Wlds:
		return fmt.Sprintf("%-5s %s, %d, %d",
			strings.ToUpper(in.Mnemonic()), i.Lfo.String(), i.Freq, i.Amp)
	case base.Jam:
		return line2(in, i.Lfo.String())
	case base.Cho:
		return formatCho(i)
	}
	// bare mnemonics: ABSA, CLR, SHL, SHR, NOP
	return strings.ToUpper(in.Mnemonic())
}

func formatCho(i base.Cho) string {
	if i.Mode == base.CHO_RDAL {
		return fmt.Sprintf("%-5s %s, %s", "CHO", i.Mode.String(), i.Lfo.String())
	}
	flags := "0"
	if names := i.Flags.Names(); len(names) > 0 {
		flags = strings.Join(names, "|")
	}
	return fmt.Sprintf("%-5s %s, %s, %s, %d",
		"CHO", i.Mode.String(), i.Lfo.String(), flags, i.Addr)
}

func line2(in base.Instruction, a string) string {
	return fmt.Sprintf("%-5s %s", strings.ToUpper(in.Mnemonic()), a)
}

func line3(in base.Instruction, a, b string) string {
	return fmt.Sprintf("%-5s %s, %s", strings.ToUpper(in.Mnemonic()), a, b)
}

// coeff prints the shortest decimal that reparses to the identical
// quantized value, always with a decimal point.
func coeff(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

func mask(m uint32) string {
	return fmt.Sprintf("$%06X", m)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
