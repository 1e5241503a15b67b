package codegen

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/handegar/fv1asm/base"
	"github.com/handegar/fv1asm/parser"
)

func TestAssembleSource(t *testing.T) {
	bin, err := AssembleSource("rdax adcl, 1.0\nwrax dacl, 0.0")
	assert.NoError(t, err)

	assert.Equal(t, uint32(0x02880000), bin.Word(0))
	assert.Equal(t, uint32(0x32C00000), bin.Word(1))
}

func TestAssemblePadsWithNops(t *testing.T) {
	bin, err := AssembleSource("clr")
	assert.NoError(t, err)

	words := bin.Words()
	assert.Equal(t, base.MaxInstructions, len(words))
	for i := 1; i < len(words); i++ {
		assert.Equal(t, NopWord, words[i])
	}
}

func TestAssembleCapacity(t *testing.T) {
	full := strings.Repeat("clr\n", base.MaxInstructions)
	_, err := AssembleSource(full)
	assert.NoError(t, err)

	over := full + "clr\n"
	_, err = AssembleSource(over)
	assert.True(t, err != nil)
	tooLarge, ok := err.(*ProgramTooLargeError)
	assert.True(t, ok)
	assert.Equal(t, base.MaxInstructions+1, tooLarge.Size)
	assert.Equal(t, base.MaxInstructions, tooLarge.Max)
}

func TestAssembleEncodingError(t *testing.T) {
	// parses fine, fails at encoding
	_, err := AssembleSource("rdax adcl, 3.5")
	assert.True(t, err != nil)
	_, ok := err.(*CoefficientRangeError)
	assert.True(t, ok)
}

func TestAssembleProgramWithLabels(t *testing.T) {
	bin, err := AssembleSource(`
		ldax adcl
		skp gez, out
		absa
	out:
		wrax dacl, 0.0
	`)
	assert.NoError(t, err)

	in, err := DecodeInstruction(bin.Word(1))
	assert.NoError(t, err)
	assert.Equal(t, base.Skp{Cond: base.GEZ, Offset: 1}, in)
}

func TestAssemblerWithOptimization(t *testing.T) {
	prog, err := parser.Parse("clr\nclr")
	assert.NoError(t, err)

	plain, err := NewAssembler().Assemble(prog)
	assert.NoError(t, err)
	optimized, err := NewAssembler().WithOptimization(true).Assemble(prog)
	assert.NoError(t, err)

	// the flag is accepted but changes nothing
	assert.Equal(t, plain.Words(), optimized.Words())
}
