package codegen

import (
	"github.com/handegar/fv1asm/base"
)

// DecodeInstruction unpacks one 32-bit word. It is the exact inverse
// of EncodeInstruction on every word the encoder can produce.
func DecodeInstruction(word uint32) (base.Instruction, error) {
	// The all-zero word doubles as padding.
	if word == NopWord {
		return base.Nop{}, nil
	}

	op := word >> 27
	switch op {
	case opRDAX:
		return decodeRegCoeff(word, func(r base.Register, c float64) base.Instruction {
			return base.Rdax{Reg: r, Coeff: c}
		})
	case opWRAX:
		return decodeRegCoeff(word, func(r base.Register, c float64) base.Instruction {
			return base.Wrax{Reg: r, Coeff: c}
		})
	case opRDFX:
		return decodeRegCoeff(word, func(r base.Register, c float64) base.Instruction {
			return base.Rdfx{Reg: r, Coeff: c}
		})
	case opRDFX2:
		return decodeRegCoeff(word, func(r base.Register, c float64) base.Instruction {
			return base.Rdfx2{Reg: r, Coeff: c}
		})
	case opLDAX:
		reg, err := decodeReg(word)
		if err != nil {
			return nil, err
		}
		return base.Ldax{Reg: reg}, nil
	case opMULX:
		reg, err := decodeReg(word)
		if err != nil {
			return nil, err
		}
		return base.Mulx{Reg: reg}, nil

	case opRDA:
		addr, coeff, err := decodeAddrCoeff(word)
		if err != nil {
			return nil, err
		}
		return base.Rda{Addr: addr, Coeff: coeff}, nil
	case opWRA:
		addr, coeff, err := decodeAddrCoeff(word)
		if err != nil {
			return nil, err
		}
		return base.Wra{Addr: addr, Coeff: coeff}, nil
	case opWRAP:
		addr, coeff, err := decodeAddrCoeff(word)
		if err != nil {
			return nil, err
		}
		return base.Wrap{Addr: addr, Coeff: coeff}, nil
	case opRMPA:
		return base.Rmpa{Coeff: DecodeS114(word >> 5)}, nil

	case opSOF:
		return base.Sof{Coeff: DecodeS114(word >> 11), Offset: DecodeS10(word)}, nil
	case opEXP:
		return base.Exp{Coeff: DecodeS114(word >> 11), Offset: DecodeS10(word)}, nil
	case opLOG:
		return base.Log{Coeff: DecodeS114(word >> 11), Offset: DecodeS10(word)}, nil

	case opAND:
		return base.And{Mask: word & 0xFFFFFF}, nil
	case opOR:
		return base.Or{Mask: word & 0xFFFFFF}, nil
	case opXOR:
		return base.Xor{Mask: word & 0xFFFFFF}, nil

	case opABSA:
		return base.Absa{}, nil
	case opCLR:
		return base.Clr{}, nil
	case opSHL:
		return base.Shl{}, nil
	case opSHR:
		return base.Shr{}, nil

	case opSKP:
		cond := base.SkipCondition(word >> 24 & 0b111)
		if !cond.Valid() {
			return nil, &InvalidFieldError{Field: "skip condition", Bits: uint32(cond), Word: word}
		}
		return base.Skp{Cond: cond, Offset: int8(word >> 16 & 0xFF)}, nil

	case opWLDS:
		return base.Wlds{
			Lfo:  base.LFO(word >> 25 & 0b11),
			Freq: uint16(word >> 9 & 0x1FF),
			Amp:  uint16(word & 0x1FF),
		}, nil
	case opJAM:
		return base.Jam{Lfo: base.LFO(word >> 25 & 0b11)}, nil

	case opCHO:
		mode := base.ChoMode(word >> 24 & 0b11)
		if !mode.Valid() {
			return nil, &InvalidFieldError{Field: "CHO mode", Bits: uint32(mode), Word: word}
		}
		addr, err := decodeAddr(word, word&0xFFFF)
		if err != nil {
			return nil, err
		}
		return base.Cho{
			Mode:  mode,
			Lfo:   base.LFO(word >> 22 & 0b11),
			Flags: base.ChoFlagsFromBits(word >> 16 & 0x3F),
			Addr:  addr,
		}, nil
	}
	return nil, &UnknownOpcodeError{Opcode: op, Word: word}
}

func decodeReg(word uint32) (base.Register, error) {
	reg := base.Register(word >> 21 & 0x3F)
	if !reg.Valid() {
		return 0, &InvalidFieldError{Field: "register", Bits: uint32(reg), Word: word}
	}
	return reg, nil
}

func decodeRegCoeff(word uint32, build func(base.Register, float64) base.Instruction) (base.Instruction, error) {
	reg, err := decodeReg(word)
	if err != nil {
		return nil, err
	}
	return build(reg, DecodeS114(word>>5)), nil
}

// decodeAddr rejects address bits the encoder can never set; the
// delay RAM holds 32768 samples so valid addresses are 15 bits.
func decodeAddr(word, bits uint32) (uint16, error) {
	if bits >= base.DelayRAMSize {
		return 0, &InvalidFieldError{Field: "delay address", Bits: bits, Word: word}
	}
	return uint16(bits), nil
}

func decodeAddrCoeff(word uint32) (uint16, float64, error) {
	addr, err := decodeAddr(word, word>>11&0xFFFF)
	if err != nil {
		return 0, 0, err
	}
	return addr, DecodeS10(word), nil
}
