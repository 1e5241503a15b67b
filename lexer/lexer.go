// Package lexer turns FV-1 assembly source text into a token stream.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/handegar/fv1asm/base"
)

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

type Kind int

const (
	KindMnemonic Kind = iota
	KindRegister
	KindCondition
	KindLFO
	KindChoFlag
	KindDirective
	KindIdent
	KindFloat
	KindInt
	KindComma
	KindColon
	KindEquals
	KindPipe
)

var kindNames = map[Kind]string{
	KindMnemonic:  "mnemonic",
	KindRegister:  "register",
	KindCondition: "skip condition",
	KindLFO:       "LFO",
	KindChoFlag:   "CHO flag",
	KindDirective: "directive",
	KindIdent:     "identifier",
	KindFloat:     "float",
	KindInt:       "integer",
	KindComma:     "','",
	KindColon:     "':'",
	KindEquals:    "'='",
	KindPipe:      "'|'",
}

func (k Kind) String() string { return kindNames[k] }

// Token is a single lexeme. Text holds the matched source text,
// lowercased for keywords. The value fields are only meaningful for
// the kind that sets them.
type Token struct {
	Kind  Kind
	Text  string
	Float float64
	Int   int64
	Reg   base.Register
	Span  Span
}

// LexError reports a byte that starts no token. It is the lexer's
// only failure mode.
type LexError struct {
	At   Span
	Text string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unrecognized input %q", e.Text)
}

func (e *LexError) Span() Span { return e.At }

// Keyword tables. All matching is case-insensitive.
var mnemonics = map[string]bool{
	"rdax": true, "rda": true, "rmpa": true, "wrax": true, "wra": true,
	"wrap": true, "mulx": true, "rdfx": true, "rdfx2": true, "ldax": true,
	"absa": true, "sof": true, "and": true, "or": true, "xor": true,
	"shl": true, "shr": true, "clr": true, "nop": true, "exp": true,
	"log": true, "skp": true, "wlds": true, "jam": true, "cho": true,
	"rdal": true,
}

var registers = map[string]base.Register{
	"adcl": base.ADCL, "adcr": base.ADCR,
	"dacl": base.DACL, "dacr": base.DACR,
	"addr_ptr": base.ADDR_PTR,
	"pot0":     base.POT0, "pot1": base.POT1, "pot2": base.POT2,
	"sin0_rate": base.SIN0_RATE, "sin0_range": base.SIN0_RANGE,
	"sin1_rate": base.SIN1_RATE, "sin1_range": base.SIN1_RANGE,
	"rmp0_rate": base.RMP0_RATE, "rmp0_range": base.RMP0_RANGE,
	"rmp1_rate": base.RMP1_RATE, "rmp1_range": base.RMP1_RANGE,
}

var conditions = map[string]base.SkipCondition{
	"run": base.RUN, "neg": base.NEG, "gez": base.GEZ,
	"zro": base.ZRO, "zrc": base.ZRC,
}

var lfos = map[string]base.LFO{
	"sin0": base.SIN0, "sin1": base.SIN1,
	"rmp0": base.RMP0, "rmp1": base.RMP1,
}

var choFlags = map[string]bool{
	"rptr2": true, "na": true, "compc": true, "compa": true,
	"rptr2_sel": true,
}

var directives = map[string]bool{
	"equ": true, "mem": true, "spinasm": true,
}

// Lexer scans source text one token at a time. Whitespace and
// ';'-to-end-of-line comments never reach the caller.
type Lexer struct {
	src string
	pos int
}

func New(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token, or ok=false at end of input.
func (l *Lexer) Next() (Token, bool, error) {
	l.skipBlanks()
	if l.pos >= len(l.src) {
		return Token{}, false, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch c {
	case ',':
		return l.punct(KindComma, start), true, nil
	case ':':
		return l.punct(KindColon, start), true, nil
	case '=':
		return l.punct(KindEquals, start), true, nil
	case '|':
		return l.punct(KindPipe, start), true, nil
	case '$':
		return l.lexPrefixed(start, 16, isHexDigit)
	case '%':
		return l.lexPrefixed(start, 2, isBinDigit)
	}

	if isDigit(c) || c == '-' || c == '.' {
		return l.lexNumber(start)
	}
	if isWordStart(c) {
		return l.lexWord(start), true, nil
	}

	l.pos++
	return Token{}, false, &LexError{
		At:   Span{Start: start, End: l.pos},
		Text: l.src[start:l.pos],
	}
}

// Tokens scans the whole input. The first lexical error aborts the
// scan.
func (l *Lexer) Tokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) skipBlanks() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' {
			l.pos++
			continue
		}
		if c == ';' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		return
	}
}

func (l *Lexer) punct(kind Kind, start int) Token {
	l.pos++
	return Token{
		Kind: kind,
		Text: l.src[start:l.pos],
		Span: Span{Start: start, End: l.pos},
	}
}

// lexPrefixed handles the '$' hex and '%' binary literal forms.
func (l *Lexer) lexPrefixed(start, radix int, digit func(byte) bool) (Token, bool, error) {
	l.pos++ // prefix
	digits := l.pos
	for l.pos < len(l.src) && digit(l.src[l.pos]) {
		l.pos++
	}
	span := Span{Start: start, End: l.pos}
	if l.pos == digits {
		return Token{}, false, &LexError{At: span, Text: l.src[start:l.pos]}
	}
	n, err := strconv.ParseInt(l.src[digits:l.pos], radix, 64)
	if err != nil {
		return Token{}, false, &LexError{At: span, Text: l.src[start:l.pos]}
	}
	return Token{Kind: KindInt, Text: l.src[start:l.pos], Int: n, Span: span}, true, nil
}

func (l *Lexer) lexNumber(start int) (Token, bool, error) {
	if strings.HasPrefix(l.src[l.pos:], "0x") || strings.HasPrefix(l.src[l.pos:], "0X") {
		l.pos += 2
		digits := l.pos
		for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			l.pos++
		}
		span := Span{Start: start, End: l.pos}
		if l.pos == digits {
			return Token{}, false, &LexError{At: span, Text: l.src[start:l.pos]}
		}
		n, err := strconv.ParseInt(l.src[digits:l.pos], 16, 64)
		if err != nil {
			return Token{}, false, &LexError{At: span, Text: l.src[start:l.pos]}
		}
		return Token{Kind: KindInt, Text: l.src[start:l.pos], Int: n, Span: span}, true, nil
	}

	isFloat := false
	if l.src[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		mark := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			isFloat = true
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			// Not an exponent after all; leave it for the next token.
			l.pos = mark
		}
	}

	span := Span{Start: start, End: l.pos}
	text := l.src[start:l.pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, false, &LexError{At: span, Text: text}
		}
		return Token{Kind: KindFloat, Text: text, Float: f, Span: span}, true, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, false, &LexError{At: span, Text: text}
	}
	return Token{Kind: KindInt, Text: text, Int: n, Span: span}, true, nil
}

func (l *Lexer) lexWord(start int) Token {
	for l.pos < len(l.src) && isWordChar(l.src[l.pos]) {
		l.pos++
	}
	span := Span{Start: start, End: l.pos}
	text := l.src[start:l.pos]
	lower := strings.ToLower(text)

	switch {
	case mnemonics[lower]:
		return Token{Kind: KindMnemonic, Text: lower, Span: span}
	case directives[lower]:
		return Token{Kind: KindDirective, Text: lower, Span: span}
	case choFlags[lower]:
		return Token{Kind: KindChoFlag, Text: lower, Span: span}
	}
	if reg, ok := registers[lower]; ok {
		return Token{Kind: KindRegister, Text: lower, Reg: reg, Span: span}
	}
	if cond, ok := conditions[lower]; ok {
		return Token{Kind: KindCondition, Text: lower, Int: int64(cond), Span: span}
	}
	if lfo, ok := lfos[lower]; ok {
		return Token{Kind: KindLFO, Text: lower, Int: int64(lfo), Span: span}
	}
	if n, ok := regNumber(lower); ok {
		return Token{Kind: KindRegister, Text: lower, Reg: base.Reg(n), Span: span}
	}
	return Token{Kind: KindIdent, Text: text, Span: span}
}

// regNumber matches reg0..reg31.
func regNumber(word string) (int, bool) {
	if !strings.HasPrefix(word, "reg") || len(word) < 4 {
		return 0, false
	}
	n, err := strconv.Atoi(word[3:])
	if err != nil || n < 0 || n >= base.NumRegisters {
		return 0, false
	}
	return n, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isBinDigit(c byte) bool { return c == '0' || c == '1' }

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordChar(c byte) bool { return isWordStart(c) || isDigit(c) }
