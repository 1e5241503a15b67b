package lexer

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/handegar/fv1asm/base"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := New(src).Tokens()
	assert.NoError(t, err)
	return tokens
}

func TestLexInstructionLine(t *testing.T) {
	tokens := lexAll(t, "rdax ADCL, 0.5")

	assert.Equal(t, 4, len(tokens))
	assert.Equal(t, KindMnemonic, tokens[0].Kind)
	assert.Equal(t, "rdax", tokens[0].Text)
	assert.Equal(t, KindRegister, tokens[1].Kind)
	assert.Equal(t, base.ADCL, tokens[1].Reg)
	assert.Equal(t, KindComma, tokens[2].Kind)
	assert.Equal(t, KindFloat, tokens[3].Kind)
	assert.Equal(t, 0.5, tokens[3].Float)
}

func TestLexCaseInsensitive(t *testing.T) {
	tokens := lexAll(t, "WrAx DaCl, 0.0")
	assert.Equal(t, "wrax", tokens[0].Text)
	assert.Equal(t, base.DACL, tokens[1].Reg)
}

func TestLexComments(t *testing.T) {
	tokens := lexAll(t, "clr ; clear the accumulator\n; full line comment\nabsa")
	assert.Equal(t, 2, len(tokens))
	assert.Equal(t, "clr", tokens[0].Text)
	assert.Equal(t, "absa", tokens[1].Text)
}

func TestLexNumberForms(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
		f    float64
		i    int64
	}{
		{"1.5", KindFloat, 1.5, 0},
		{"-0.25", KindFloat, -0.25, 0},
		{"1e-3", KindFloat, 0.001, 0},
		{"42", KindInt, 0, 42},
		{"-7", KindInt, 0, -7},
		{"0x3F", KindInt, 0, 0x3F},
		{"$7FFF", KindInt, 0, 0x7FFF},
		{"%101", KindInt, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens := lexAll(t, tt.src)
			assert.Equal(t, 1, len(tokens))
			assert.Equal(t, tt.kind, tokens[0].Kind)
			if tt.kind == KindFloat {
				assert.Equal(t, tt.f, tokens[0].Float)
			} else {
				assert.Equal(t, tt.i, tokens[0].Int)
			}
		})
	}
}

func TestLexGeneralPurposeRegisters(t *testing.T) {
	tokens := lexAll(t, "reg0 REG15 reg31")
	assert.Equal(t, base.Reg(0), tokens[0].Reg)
	assert.Equal(t, base.Reg(15), tokens[1].Reg)
	assert.Equal(t, base.Reg(31), tokens[2].Reg)

	// reg32 is not a register name, it falls through to identifier
	tokens = lexAll(t, "reg32")
	assert.Equal(t, KindIdent, tokens[0].Kind)
}

func TestLexKeywordClasses(t *testing.T) {
	tokens := lexAll(t, "skp zrc, sin0 rptr2 equ")
	assert.Equal(t, KindMnemonic, tokens[0].Kind)
	assert.Equal(t, KindCondition, tokens[1].Kind)
	assert.Equal(t, int64(base.ZRC), tokens[1].Int)
	assert.Equal(t, KindComma, tokens[2].Kind)
	assert.Equal(t, KindLFO, tokens[3].Kind)
	assert.Equal(t, int64(base.SIN0), tokens[3].Int)
	assert.Equal(t, KindChoFlag, tokens[4].Kind)
	assert.Equal(t, KindDirective, tokens[5].Kind)
}

func TestLexPunctuation(t *testing.T) {
	tokens := lexAll(t, "loop: x = 1 | 2 ,")
	kinds := []Kind{KindIdent, KindColon, KindIdent, KindEquals,
		KindInt, KindPipe, KindInt, KindComma}
	assert.Equal(t, len(kinds), len(tokens))
	for i, k := range kinds {
		assert.Equal(t, k, tokens[i].Kind)
	}
}

func TestLexRejectsUnassignedPunctuation(t *testing.T) {
	for _, src := range []string{"#", "^", "&"} {
		_, err := New(src).Tokens()
		assert.True(t, err != nil)
	}
}

func TestLexSpans(t *testing.T) {
	tokens := lexAll(t, "rdax pot0, 1.0")
	assert.Equal(t, Span{Start: 0, End: 4}, tokens[0].Span)
	assert.Equal(t, Span{Start: 5, End: 9}, tokens[1].Span)
	assert.Equal(t, Span{Start: 11, End: 14}, tokens[3].Span)
}

func TestLexInvalidByte(t *testing.T) {
	_, err := New("clr\n@oops").Tokens()
	assert.True(t, err != nil)

	lexErr, ok := err.(*LexError)
	assert.True(t, ok)
	assert.Equal(t, 4, lexErr.At.Start)
}
