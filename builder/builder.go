// Package builder constructs programs through a fluent API with a
// runtime state machine: LFO-consuming instructions are rejected until
// the LFO they reference has been loaded.
package builder

import (
	"fmt"

	"github.com/handegar/fv1asm/base"
	"github.com/handegar/fv1asm/parser"
)

// StateError reports an instruction appended in a state that cannot
// accept it.
type StateError struct {
	Op     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Builder accumulates statements. The first error sticks: later calls
// become no-ops and Build returns it.
type Builder struct {
	prog      *parser.Program
	lfoLoaded [4]bool
	err       error
}

func New() *Builder {
	return &Builder{prog: parser.NewProgram()}
}

func (b *Builder) add(in base.Instruction) *Builder {
	if b.err != nil {
		return b
	}
	b.prog.AddStatement(parser.Statement{Instr: in})
	return b
}

func (b *Builder) fail(op, reason string) *Builder {
	if b.err == nil {
		b.err = &StateError{Op: op, Reason: reason}
	}
	return b
}

// Label marks the next instruction as a skip target.
func (b *Builder) Label(name string) *Builder {
	if b.err != nil {
		return b
	}
	b.prog.AddStatement(parser.Statement{Label: name})
	return b
}

func (b *Builder) Rdax(reg base.Register, coeff float64) *Builder {
	return b.add(base.Rdax{Reg: reg, Coeff: coeff})
}

func (b *Builder) Wrax(reg base.Register, coeff float64) *Builder {
	return b.add(base.Wrax{Reg: reg, Coeff: coeff})
}

func (b *Builder) Rdfx(reg base.Register, coeff float64) *Builder {
	return b.add(base.Rdfx{Reg: reg, Coeff: coeff})
}

func (b *Builder) Rdfx2(reg base.Register, coeff float64) *Builder {
	return b.add(base.Rdfx2{Reg: reg, Coeff: coeff})
}

func (b *Builder) Ldax(reg base.Register) *Builder {
	return b.add(base.Ldax{Reg: reg})
}

func (b *Builder) Mulx(reg base.Register) *Builder {
	return b.add(base.Mulx{Reg: reg})
}

func (b *Builder) Rda(addr uint16, coeff float64) *Builder {
	return b.add(base.Rda{Addr: addr, Coeff: coeff})
}

func (b *Builder) Wra(addr uint16, coeff float64) *Builder {
	return b.add(base.Wra{Addr: addr, Coeff: coeff})
}

func (b *Builder) Wrap(addr uint16, coeff float64) *Builder {
	return b.add(base.Wrap{Addr: addr, Coeff: coeff})
}

func (b *Builder) Rmpa(coeff float64) *Builder {
	return b.add(base.Rmpa{Coeff: coeff})
}

func (b *Builder) Sof(coeff, offset float64) *Builder {
	return b.add(base.Sof{Coeff: coeff, Offset: offset})
}

func (b *Builder) Exp(coeff, offset float64) *Builder {
	return b.add(base.Exp{Coeff: coeff, Offset: offset})
}

func (b *Builder) Log(coeff, offset float64) *Builder {
	return b.add(base.Log{Coeff: coeff, Offset: offset})
}

func (b *Builder) And(mask uint32) *Builder { return b.add(base.And{Mask: mask}) }
func (b *Builder) Or(mask uint32) *Builder  { return b.add(base.Or{Mask: mask}) }
func (b *Builder) Xor(mask uint32) *Builder { return b.add(base.Xor{Mask: mask}) }

func (b *Builder) Absa() *Builder { return b.add(base.Absa{}) }
func (b *Builder) Clr() *Builder  { return b.add(base.Clr{}) }
func (b *Builder) Shl() *Builder  { return b.add(base.Shl{}) }
func (b *Builder) Shr() *Builder  { return b.add(base.Shr{}) }
func (b *Builder) Nop() *Builder  { return b.add(base.Nop{}) }

// Skp appends a skip to a label declared before or after this point.
func (b *Builder) Skp(cond base.SkipCondition, label string) *Builder {
	return b.add(base.Skp{Cond: cond, Target: label})
}

// SkpOffset appends a skip with a literal relative offset.
func (b *Builder) SkpOffset(cond base.SkipCondition, offset int8) *Builder {
	return b.add(base.Skp{Cond: cond, Offset: offset})
}

// Wlds loads an LFO, unlocking Cho and Jam for it.
func (b *Builder) Wlds(lfo base.LFO, freq, amp uint16) *Builder {
	if b.err != nil {
		return b
	}
	if lfo < base.SIN0 || lfo > base.RMP1 {
		return b.fail("WLDS", fmt.Sprintf("no such LFO %d", int(lfo)))
	}
	b.lfoLoaded[lfo] = true
	return b.add(base.Wlds{Lfo: lfo, Freq: freq, Amp: amp})
}

func (b *Builder) Jam(lfo base.LFO) *Builder {
	if !b.requireLFO("JAM", lfo) {
		return b
	}
	return b.add(base.Jam{Lfo: lfo})
}

func (b *Builder) Cho(mode base.ChoMode, lfo base.LFO, flags base.ChoFlags, addr uint16) *Builder {
	if !b.requireLFO("CHO", lfo) {
		return b
	}
	return b.add(base.Cho{Mode: mode, Lfo: lfo, Flags: flags, Addr: addr})
}

func (b *Builder) requireLFO(op string, lfo base.LFO) bool {
	if b.err != nil {
		return false
	}
	if lfo < base.SIN0 || lfo > base.RMP1 {
		b.fail(op, fmt.Sprintf("no such LFO %d", int(lfo)))
		return false
	}
	if !b.lfoLoaded[lfo] {
		b.fail(op, fmt.Sprintf("%s used before WLDS loaded it", lfo))
		return false
	}
	return true
}

// Build resolves skip labels and returns the finished program.
func (b *Builder) Build() (*parser.Program, error) {
	if b.err != nil {
		return nil, b.err
	}
	idx := 0
	for si, stmt := range b.prog.Statements {
		if stmt.Instr == nil {
			continue
		}
		if skp, ok := stmt.Instr.(base.Skp); ok && skp.Target != "" {
			target, found := b.prog.ResolveLabel(skp.Target)
			if !found {
				return nil, &StateError{Op: "SKP", Reason: "undefined label " + skp.Target}
			}
			offset := target - (idx + 1)
			if offset < -128 || offset > 127 {
				return nil, &StateError{
					Op:     "SKP",
					Reason: fmt.Sprintf("offset %d to %s outside -128..127", offset, skp.Target),
				}
			}
			skp.Offset = int8(offset)
			b.prog.Statements[si].Instr = skp
		}
		idx++
	}
	return b.prog, nil
}
