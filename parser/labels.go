package parser

import "github.com/handegar/fv1asm/base"

// resolve rewrites label-targeted SKP instructions into concrete
// relative offsets. The offset counts from the instruction after the
// SKP, so a skip to the immediately following instruction is 0.
func (p *Parser) resolve() error {
	for _, fix := range p.fixups {
		targetIdx, ok := p.program.ResolveLabel(fix.target)
		if !ok {
			return &UndefinedLabelError{Name: fix.target, At: fix.at}
		}
		offset := targetIdx - (fix.instrIdx + 1)
		if offset < -128 || offset > 127 {
			return &OffsetRangeError{Label: fix.target, Offset: offset, At: fix.at}
		}
		skp := p.program.Statements[fix.stmtIdx].Instr.(base.Skp)
		skp.Offset = int8(offset)
		p.program.Statements[fix.stmtIdx].Instr = skp
	}
	return nil
}
