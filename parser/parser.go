package parser

import (
	"github.com/handegar/fv1asm/base"
	"github.com/handegar/fv1asm/lexer"
)

// Parser consumes a token stream with single-token lookahead. The
// EQU/MEM symbol tables are parser-local; nothing survives between
// Parse calls.
type Parser struct {
	tokens []lexer.Token
	pos    int

	program *Program
	equates map[string]float64
	mems    map[string]uint16
	memTop  int

	// skips written as label references, rewritten by resolve()
	fixups []skpFixup
}

type skpFixup struct {
	stmtIdx  int
	instrIdx int
	target   string
	at       lexer.Span
}

// Parse builds a fully label-resolved Program from source text.
func Parse(src string) (*Program, error) {
	tokens, err := lexer.New(src).Tokens()
	if err != nil {
		return nil, err
	}
	p := &Parser{
		tokens:  tokens,
		program: NewProgram(),
		equates: make(map[string]float64),
		mems:    make(map[string]uint16),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	if err := p.resolve(); err != nil {
		return nil, err
	}
	return p.program, nil
}

func (p *Parser) run() error {
	for !p.atEnd() {
		if p.peek().Kind == lexer.KindDirective {
			if err := p.parseDirective(); err != nil {
				return err
			}
			continue
		}
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseStatement() error {
	label := ""
	if p.peek().Kind == lexer.KindIdent && p.peekNext().Kind == lexer.KindColon {
		label = p.peek().Text
		p.advance() // identifier
		p.advance() // colon

		if p.atEnd() || p.peek().Kind != lexer.KindMnemonic {
			p.program.AddStatement(Statement{Label: label})
			return nil
		}
	}

	instr, err := p.parseInstruction()
	if err != nil {
		return err
	}
	p.program.AddStatement(Statement{Label: label, Instr: instr})
	return nil
}

func (p *Parser) parseInstruction() (base.Instruction, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != lexer.KindMnemonic {
		return nil, &UnexpectedTokenError{Expected: "instruction", Found: tok.Text, At: tok.Span}
	}

	switch tok.Text {
	case "rdax":
		reg, coeff, err := p.parseRegCoeff()
		return base.Rdax{Reg: reg, Coeff: coeff}, err
	case "wrax":
		reg, coeff, err := p.parseRegCoeff()
		return base.Wrax{Reg: reg, Coeff: coeff}, err
	case "rdfx":
		reg, coeff, err := p.parseRegCoeff()
		return base.Rdfx{Reg: reg, Coeff: coeff}, err
	case "rdfx2":
		reg, coeff, err := p.parseRegCoeff()
		return base.Rdfx2{Reg: reg, Coeff: coeff}, err
	case "ldax":
		reg, err := p.parseRegister()
		return base.Ldax{Reg: reg}, err
	case "mulx":
		reg, err := p.parseRegister()
		return base.Mulx{Reg: reg}, err
	case "rda":
		addr, coeff, err := p.parseAddrCoeff()
		return base.Rda{Addr: addr, Coeff: coeff}, err
	case "wra":
		addr, coeff, err := p.parseAddrCoeff()
		return base.Wra{Addr: addr, Coeff: coeff}, err
	case "wrap":
		addr, coeff, err := p.parseAddrCoeff()
		return base.Wrap{Addr: addr, Coeff: coeff}, err
	case "rmpa":
		coeff, err := p.parseNumber()
		return base.Rmpa{Coeff: coeff}, err
	case "sof":
		coeff, offset, err := p.parseCoeffOffset()
		return base.Sof{Coeff: coeff, Offset: offset}, err
	case "exp":
		coeff, offset, err := p.parseCoeffOffset()
		return base.Exp{Coeff: coeff, Offset: offset}, err
	case "log":
		coeff, offset, err := p.parseCoeffOffset()
		return base.Log{Coeff: coeff, Offset: offset}, err
	case "and":
		mask, err := p.parseMask()
		return base.And{Mask: mask}, err
	case "or":
		mask, err := p.parseMask()
		return base.Or{Mask: mask}, err
	case "xor":
		mask, err := p.parseMask()
		return base.Xor{Mask: mask}, err
	case "shl":
		return base.Shl{}, nil
	case "shr":
		return base.Shr{}, nil
	case "clr":
		return base.Clr{}, nil
	case "nop":
		return base.Nop{}, nil
	case "absa":
		return base.Absa{}, nil
	case "skp":
		return p.parseSkp()
	case "wlds":
		return p.parseWlds()
	case "jam":
		lfo, err := p.parseLFO()
		return base.Jam{Lfo: lfo}, err
	case "cho":
		return p.parseCho()
	}
	return nil, &UnexpectedTokenError{Expected: "instruction", Found: tok.Text, At: tok.Span}
}

func (p *Parser) parseRegCoeff() (base.Register, float64, error) {
	reg, err := p.parseRegister()
	if err != nil {
		return 0, 0, err
	}
	if err := p.expect(lexer.KindComma); err != nil {
		return 0, 0, err
	}
	coeff, err := p.parseNumber()
	return reg, coeff, err
}

func (p *Parser) parseAddrCoeff() (uint16, float64, error) {
	addr, err := p.parseAddress()
	if err != nil {
		return 0, 0, err
	}
	if err := p.expect(lexer.KindComma); err != nil {
		return 0, 0, err
	}
	coeff, err := p.parseNumber()
	return addr, coeff, err
}

func (p *Parser) parseCoeffOffset() (float64, float64, error) {
	coeff, err := p.parseNumber()
	if err != nil {
		return 0, 0, err
	}
	if err := p.expect(lexer.KindComma); err != nil {
		return 0, 0, err
	}
	offset, err := p.parseNumber()
	return coeff, offset, err
}

func (p *Parser) parseSkp() (base.Instruction, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != lexer.KindCondition {
		return nil, &UnexpectedTokenError{
			Expected: "skip condition (run, gez, neg, zro, zrc)",
			Found:    tok.Text, At: tok.Span,
		}
	}
	cond := base.SkipCondition(tok.Int)
	if err := p.expect(lexer.KindComma); err != nil {
		return nil, err
	}

	target, err := p.next()
	if err != nil {
		return nil, err
	}
	switch target.Kind {
	case lexer.KindInt:
		if target.Int < -128 || target.Int > 127 {
			return nil, &OffsetRangeError{Offset: int(target.Int), At: target.Span}
		}
		return base.Skp{Cond: cond, Offset: int8(target.Int)}, nil
	case lexer.KindIdent:
		p.fixups = append(p.fixups, skpFixup{
			stmtIdx:  len(p.program.Statements),
			instrIdx: p.program.InstructionCount(),
			target:   target.Text,
			at:       target.Span,
		})
		return base.Skp{Cond: cond, Target: target.Text}, nil
	}
	return nil, &UnexpectedTokenError{
		Expected: "label or offset", Found: target.Text, At: target.Span,
	}
}

func (p *Parser) parseWlds() (base.Instruction, error) {
	lfo, err := p.parseLFO()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.KindComma); err != nil {
		return nil, err
	}
	freq, err := p.parseUint(0xFFFF, "LFO frequency")
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.KindComma); err != nil {
		return nil, err
	}
	amp, err := p.parseUint(0xFFFF, "LFO amplitude")
	if err != nil {
		return nil, err
	}
	return base.Wlds{Lfo: lfo, Freq: uint16(freq), Amp: uint16(amp)}, nil
}

func (p *Parser) parseCho() (base.Instruction, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	var mode base.ChoMode
	switch {
	case tok.Kind == lexer.KindMnemonic && tok.Text == "rda":
		mode = base.CHO_RDA
	case tok.Kind == lexer.KindMnemonic && tok.Text == "sof":
		mode = base.CHO_SOF
	case tok.Kind == lexer.KindMnemonic && tok.Text == "rdal":
		mode = base.CHO_RDAL
	default:
		return nil, &UnexpectedTokenError{
			Expected: "CHO mode (rda, sof, rdal)", Found: tok.Text, At: tok.Span,
		}
	}
	if err := p.expect(lexer.KindComma); err != nil {
		return nil, err
	}
	lfo, err := p.parseLFO()
	if err != nil {
		return nil, err
	}

	// CHO RDAL takes no flag or address operands.
	if mode == base.CHO_RDAL {
		return base.Cho{Mode: mode, Lfo: lfo}, nil
	}

	if err := p.expect(lexer.KindComma); err != nil {
		return nil, err
	}
	flags, err := p.parseChoFlags()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.KindComma); err != nil {
		return nil, err
	}
	addr, err := p.parseAddress()
	if err != nil {
		return nil, err
	}
	return base.Cho{Mode: mode, Lfo: lfo, Flags: flags, Addr: addr}, nil
}

// parseChoFlags accepts a '|'-joined flag keyword list or a numeric
// literal for the raw 6-bit field.
func (p *Parser) parseChoFlags() (base.ChoFlags, error) {
	if p.peek().Kind == lexer.KindInt {
		tok, _ := p.next()
		if tok.Int < 0 || tok.Int > 0x3F {
			return base.ChoFlags{}, &UnexpectedTokenError{
				Expected: "6-bit flag value", Found: tok.Text, At: tok.Span,
			}
		}
		return base.ChoFlagsFromBits(uint32(tok.Int)), nil
	}

	var flags base.ChoFlags
	for {
		tok, err := p.next()
		if err != nil {
			return flags, err
		}
		if tok.Kind != lexer.KindChoFlag {
			return flags, &UnexpectedTokenError{
				Expected: "CHO flag (rptr2, na, compc, compa, rptr2_sel)",
				Found:    tok.Text, At: tok.Span,
			}
		}
		switch tok.Text {
		case "rptr2":
			flags.Rptr2 = true
		case "na":
			flags.Na = true
		case "compc":
			flags.Compc = true
		case "compa":
			flags.Compa = true
		case "rptr2_sel":
			flags.Rptr2Sel = true
		}
		if p.peek().Kind != lexer.KindPipe {
			return flags, nil
		}
		p.advance() // '|'
	}
}

func (p *Parser) parseDirective() error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	switch tok.Text {
	case "equ":
		name, err := p.parseIdent()
		if err != nil {
			return err
		}
		p.skipSeparator()
		value, err := p.parseNumber()
		if err != nil {
			return err
		}
		p.equates[name] = value
		p.program.Directives = append(p.program.Directives, Directive{
			Kind: Equate, Name: name, Value: value,
		})
		return nil

	case "mem":
		name, err := p.parseIdent()
		if err != nil {
			return err
		}
		p.skipSeparator()
		sizeTok := p.peek()
		size, err := p.parseUint(0xFFFF, "allocation size")
		if err != nil {
			return err
		}
		if p.memTop+int(size) > base.DelayRAMSize {
			return &MemOverflowError{
				Name: name, Size: uint16(size),
				Free: base.DelayRAMSize - p.memTop, At: sizeTok.Span,
			}
		}
		baseAddr := uint16(p.memTop)
		p.memTop += int(size)
		p.mems[name] = baseAddr
		p.program.Directives = append(p.program.Directives, Directive{
			Kind: MemAlloc, Name: name, Size: uint16(size), Base: baseAddr,
		})
		return nil

	case "spinasm":
		version, err := p.next()
		if err != nil {
			return err
		}
		switch version.Kind {
		case lexer.KindIdent, lexer.KindFloat, lexer.KindInt:
			p.program.Directives = append(p.program.Directives, Directive{
				Kind: SpinAsm, Version: version.Text,
			})
			return nil
		}
		return &UnexpectedTokenError{
			Expected: "version", Found: version.Text, At: version.Span,
		}
	}
	return &UnexpectedTokenError{
		Expected: "directive (equ, mem, spinasm)", Found: tok.Text, At: tok.Span,
	}
}

func (p *Parser) parseRegister() (base.Register, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	if tok.Kind != lexer.KindRegister {
		return 0, &ExpectedRegisterError{At: tok.Span}
	}
	return tok.Reg, nil
}

func (p *Parser) parseLFO() (base.LFO, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	if tok.Kind != lexer.KindLFO {
		return 0, &UnexpectedTokenError{
			Expected: "LFO (sin0, sin1, rmp0, rmp1)", Found: tok.Text, At: tok.Span,
		}
	}
	return base.LFO(tok.Int), nil
}

// parseNumber accepts a literal or an identifier bound by a previous
// EQU or MEM directive.
func (p *Parser) parseNumber() (float64, error) {
	tok, err := p.next()
	if err != nil {
		return 0, err
	}
	switch tok.Kind {
	case lexer.KindFloat:
		return tok.Float, nil
	case lexer.KindInt:
		return float64(tok.Int), nil
	case lexer.KindIdent:
		if v, ok := p.equates[tok.Text]; ok {
			return v, nil
		}
		if addr, ok := p.mems[tok.Text]; ok {
			return float64(addr), nil
		}
	}
	return 0, &ExpectedNumberError{At: tok.Span}
}

// parseUint parses an integer-valued number in [0, max]. Floats with
// a fractional part are rejected, never truncated.
func (p *Parser) parseUint(max int64, what string) (int64, error) {
	tok := p.peek()
	v, err := p.parseNumber()
	if err != nil {
		return 0, err
	}
	n := int64(v)
	if float64(n) != v || n < 0 || n > max {
		return 0, &UnexpectedTokenError{Expected: what, Found: tok.Text, At: tok.Span}
	}
	return n, nil
}

func (p *Parser) parseAddress() (uint16, error) {
	n, err := p.parseUint(0xFFFF, "delay address")
	return uint16(n), err
}

func (p *Parser) parseMask() (uint32, error) {
	n, err := p.parseUint(0xFFFFFF, "24-bit mask")
	return uint32(n), err
}

func (p *Parser) parseIdent() (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	if tok.Kind != lexer.KindIdent {
		return "", &UnexpectedTokenError{Expected: "identifier", Found: tok.Text, At: tok.Span}
	}
	return tok.Text, nil
}

// skipSeparator eats the optional ',' or '=' between a directive name
// and its value. SpinASM sources use plain whitespace there.
func (p *Parser) skipSeparator() {
	if k := p.peek().Kind; k == lexer.KindComma || k == lexer.KindEquals {
		p.advance()
	}
}

func (p *Parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *Parser) peek() lexer.Token {
	if p.atEnd() {
		return lexer.Token{Kind: -1}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return lexer.Token{Kind: -1}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() { p.pos++ }

func (p *Parser) next() (lexer.Token, error) {
	if p.atEnd() {
		return lexer.Token{}, &UnexpectedEOFError{}
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, nil
}

func (p *Parser) expect(kind lexer.Kind) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != kind {
		return &UnexpectedTokenError{Expected: kind.String(), Found: tok.Text, At: tok.Span}
	}
	return nil
}
