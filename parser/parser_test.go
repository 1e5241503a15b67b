package parser

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/handegar/fv1asm/base"
)

func parse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	assert.NoError(t, err)
	return prog
}

func TestParseInstructions(t *testing.T) {
	prog := parse(t, `
		rdax adcl, 0.5
		mulx pot0
		sof -1.0, 0.25
		and $00FF00
		wrax dacl, 0.0
	`)
	instrs := prog.Instructions()
	assert.Equal(t, 5, len(instrs))
	assert.Equal(t, base.Rdax{Reg: base.ADCL, Coeff: 0.5}, instrs[0])
	assert.Equal(t, base.Mulx{Reg: base.POT0}, instrs[1])
	assert.Equal(t, base.Sof{Coeff: -1.0, Offset: 0.25}, instrs[2])
	assert.Equal(t, base.And{Mask: 0x00FF00}, instrs[3])
	assert.Equal(t, base.Wrax{Reg: base.DACL, Coeff: 0.0}, instrs[4])
}

func TestParseBareMnemonics(t *testing.T) {
	prog := parse(t, "clr\nabsa\nshl\nshr\nnop")
	instrs := prog.Instructions()
	assert.Equal(t, base.Clr{}, instrs[0])
	assert.Equal(t, base.Absa{}, instrs[1])
	assert.Equal(t, base.Shl{}, instrs[2])
	assert.Equal(t, base.Shr{}, instrs[3])
	assert.Equal(t, base.Nop{}, instrs[4])
}

func TestParseDelayInstructions(t *testing.T) {
	prog := parse(t, `
		rda 1000, 0.5
		wra 2000, -0.5
		wrap 0, 0.25
		rmpa 1.5
	`)
	instrs := prog.Instructions()
	assert.Equal(t, base.Rda{Addr: 1000, Coeff: 0.5}, instrs[0])
	assert.Equal(t, base.Wra{Addr: 2000, Coeff: -0.5}, instrs[1])
	assert.Equal(t, base.Wrap{Addr: 0, Coeff: 0.25}, instrs[2])
	assert.Equal(t, base.Rmpa{Coeff: 1.5}, instrs[3])
}

func TestParseEquSubstitution(t *testing.T) {
	prog := parse(t, `
		equ gain 0.75
		equ tap  1234
		rdax adcl, gain
		rda tap, 0.5
	`)
	instrs := prog.Instructions()
	assert.Equal(t, base.Rdax{Reg: base.ADCL, Coeff: 0.75}, instrs[0])
	assert.Equal(t, base.Rda{Addr: 1234, Coeff: 0.5}, instrs[1])
}

func TestParseEquWithSeparators(t *testing.T) {
	prog := parse(t, "equ a, 0.5\nequ b = 0.25\nsof a, b")
	assert.Equal(t, base.Sof{Coeff: 0.5, Offset: 0.25}, prog.Instructions()[0])
}

func TestParseMemAllocation(t *testing.T) {
	prog := parse(t, `
		mem del1 1000
		mem del2 500
		wra del1, 0.0
		rda del2, 0.5
	`)
	instrs := prog.Instructions()
	// sequential allocation from address 0
	assert.Equal(t, base.Wra{Addr: 0, Coeff: 0.0}, instrs[0])
	assert.Equal(t, base.Rda{Addr: 1000, Coeff: 0.5}, instrs[1])

	assert.Equal(t, 2, len(prog.Directives))
	assert.Equal(t, uint16(0), prog.Directives[0].Base)
	assert.Equal(t, uint16(1000), prog.Directives[1].Base)
}

func TestParseMemOverflow(t *testing.T) {
	_, err := Parse("mem big 32768\nmem more 1")
	assert.True(t, err != nil)
	overflow, ok := err.(*MemOverflowError)
	assert.True(t, ok)
	assert.Equal(t, "more", overflow.Name)
	assert.Equal(t, 0, overflow.Free)
}

func TestParseSkipToLabel(t *testing.T) {
	prog := parse(t, `
		skp run, done
		clr
		clr
	done:
		absa
	`)
	instrs := prog.Instructions()
	skp := instrs[0].(base.Skp)
	assert.Equal(t, base.RUN, skp.Cond)
	// label sits at index 3; offset counts from the next instruction
	assert.Equal(t, int8(2), skp.Offset)
}

func TestParseSkipBackward(t *testing.T) {
	prog := parse(t, `
	top:
		clr
		skp zro, top
	`)
	skp := prog.Instructions()[1].(base.Skp)
	assert.Equal(t, int8(-2), skp.Offset)
}

func TestParseSkipNumericOffset(t *testing.T) {
	prog := parse(t, "skp neg, 3")
	skp := prog.Instructions()[0].(base.Skp)
	assert.Equal(t, base.NEG, skp.Cond)
	assert.Equal(t, int8(3), skp.Offset)
}

func TestParseUndefinedLabel(t *testing.T) {
	_, err := Parse("skp run, nowhere")
	assert.True(t, err != nil)
	undef, ok := err.(*UndefinedLabelError)
	assert.True(t, ok)
	assert.Equal(t, "nowhere", undef.Name)
}

func TestParseLabeledInstruction(t *testing.T) {
	prog := parse(t, "loop: clr")
	assert.Equal(t, 1, len(prog.Statements))
	assert.Equal(t, "loop", prog.Statements[0].Label)
	assert.Equal(t, base.Clr{}, prog.Statements[0].Instr)

	idx, ok := prog.ResolveLabel("loop")
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestParseLFOInstructions(t *testing.T) {
	prog := parse(t, `
		wlds sin0, 100, 200
		jam rmp1
	`)
	instrs := prog.Instructions()
	assert.Equal(t, base.Wlds{Lfo: base.SIN0, Freq: 100, Amp: 200}, instrs[0])
	assert.Equal(t, base.Jam{Lfo: base.RMP1}, instrs[1])
}

func TestParseCho(t *testing.T) {
	prog := parse(t, `
		cho rda, sin0, compc|compa, 100
		cho sof, rmp0, 0, 200
		cho rdal, sin1
	`)
	instrs := prog.Instructions()
	assert.Equal(t, base.Cho{
		Mode:  base.CHO_RDA,
		Lfo:   base.SIN0,
		Flags: base.ChoFlags{Compc: true, Compa: true},
		Addr:  100,
	}, instrs[0])
	assert.Equal(t, base.Cho{Mode: base.CHO_SOF, Lfo: base.RMP0, Addr: 200}, instrs[1])
	assert.Equal(t, base.Cho{Mode: base.CHO_RDAL, Lfo: base.SIN1}, instrs[2])
}

func TestParseChoNumericFlags(t *testing.T) {
	prog := parse(t, "cho rda, sin0, %001100, 0")
	cho := prog.Instructions()[0].(base.Cho)
	assert.Equal(t, base.ChoFlags{Compc: true, Compa: true}, cho.Flags)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing operand", "rdax adcl"},
		{"number instead of register", "rdax 5, 0.5"},
		{"register instead of number", "sof adcl, 0.5"},
		{"bad condition", "skp adcl, 2"},
		{"unknown identifier operand", "rdax adcl, missing"},
		{"directive without name", "equ 5 5"},
		{"rdal outside cho", "rdal"},
		{"fractional delay address", "rda 10.5, 0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			assert.True(t, err != nil)
		})
	}
}

func TestParseSpinasmDirective(t *testing.T) {
	prog := parse(t, "spinasm v1\nclr")
	assert.Equal(t, 1, len(prog.Directives))
	assert.Equal(t, SpinAsm, prog.Directives[0].Kind)
	assert.Equal(t, "v1", prog.Directives[0].Version)
}
