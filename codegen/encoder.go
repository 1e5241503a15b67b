package codegen

import (
	"github.com/handegar/fv1asm/base"
)

// 5-bit opcode tags, word bits 27..31.
const (
	opRDAX  uint32 = 0b00000
	opRDA   uint32 = 0b00001
	opRMPA  uint32 = 0b00010
	opLDAX  uint32 = 0b00101
	opWRAX  uint32 = 0b00110
	opWRA   uint32 = 0b00111
	opWRAP  uint32 = 0b01000
	opRDFX  uint32 = 0b01001
	opMULX  uint32 = 0b01010
	opABSA  uint32 = 0b01011
	opRDFX2 uint32 = 0b01100
	opSOF   uint32 = 0b01101
	opCLR   uint32 = 0b01110
	opAND   uint32 = 0b01111
	opOR    uint32 = 0b10000
	opXOR   uint32 = 0b10001
	opSHL   uint32 = 0b10010
	opSHR   uint32 = 0b10011
	opEXP   uint32 = 0b10100
	opLOG   uint32 = 0b10101
	opSKP   uint32 = 0b10110
	opWLDS  uint32 = 0b10111
	opJAM   uint32 = 0b11000
	opCHO   uint32 = 0b11001
)

// NopWord is the encoding of NOP and the padding word of short
// programs.
const NopWord uint32 = 0x00000000

// EncodeInstruction packs one instruction into its 32-bit word.
// Operands are validated in order: register, address, numeric range.
func EncodeInstruction(in base.Instruction) (uint32, error) {
	switch i := in.(type) {
	case base.Rdax:
		return encodeRegCoeff(opRDAX, i.Reg, i.Coeff)
	case base.Wrax:
		return encodeRegCoeff(opWRAX, i.Reg, i.Coeff)
	case base.Rdfx:
		return encodeRegCoeff(opRDFX, i.Reg, i.Coeff)
	case base.Rdfx2:
		return encodeRegCoeff(opRDFX2, i.Reg, i.Coeff)
	case base.Ldax:
		reg, err := regField(i.Reg)
		if err != nil {
			return 0, err
		}
		return opLDAX<<27 | reg<<21, nil
	case base.Mulx:
		reg, err := regField(i.Reg)
		if err != nil {
			return 0, err
		}
		return opMULX<<27 | reg<<21, nil

	case base.Rda:
		return encodeAddrCoeff(opRDA, i.Addr, i.Coeff)
	case base.Wra:
		return encodeAddrCoeff(opWRA, i.Addr, i.Coeff)
	case base.Wrap:
		return encodeAddrCoeff(opWRAP, i.Addr, i.Coeff)
	case base.Rmpa:
		c16, err := EncodeS114(i.Coeff)
		if err != nil {
			return 0, err
		}
		return opRMPA<<27 | c16<<5, nil

	case base.Sof:
		return encodeCoeffOffset(opSOF, i.Coeff, i.Offset)
	case base.Exp:
		return encodeCoeffOffset(opEXP, i.Coeff, i.Offset)
	case base.Log:
		return encodeCoeffOffset(opLOG, i.Coeff, i.Offset)

	case base.And:
		return encodeMask(opAND, i.Mask)
	case base.Or:
		return encodeMask(opOR, i.Mask)
	case base.Xor:
		return encodeMask(opXOR, i.Mask)

	case base.Absa:
		return opABSA << 27, nil
	case base.Clr:
		return opCLR << 27, nil
	case base.Shl:
		return opSHL << 27, nil
	case base.Shr:
		return opSHR << 27, nil
	case base.Nop:
		return NopWord, nil

	case base.Skp:
		if !i.Cond.Valid() {
			return 0, &FieldRangeError{Field: "skip condition", Value: int(i.Cond), Max: int(base.ZRC)}
		}
		return opSKP<<27 | uint32(i.Cond)<<24 | uint32(uint8(i.Offset))<<16, nil

	case base.Wlds:
		lfo, err := lfoField(i.Lfo)
		if err != nil {
			return 0, err
		}
		if i.Freq > 511 {
			return 0, &FieldRangeError{Field: "LFO frequency", Value: int(i.Freq), Max: 511}
		}
		if i.Amp > 511 {
			return 0, &FieldRangeError{Field: "LFO amplitude", Value: int(i.Amp), Max: 511}
		}
		return opWLDS<<27 | lfo<<25 | uint32(i.Freq)<<9 | uint32(i.Amp), nil

	case base.Jam:
		lfo, err := lfoField(i.Lfo)
		if err != nil {
			return 0, err
		}
		return opJAM<<27 | lfo<<25, nil

	case base.Cho:
		if !i.Mode.Valid() {
			return 0, &FieldRangeError{Field: "CHO mode", Value: int(i.Mode), Max: int(base.CHO_RDAL)}
		}
		lfo, err := lfoField(i.Lfo)
		if err != nil {
			return 0, err
		}
		addr, err := addrField(i.Addr)
		if err != nil {
			return 0, err
		}
		return opCHO<<27 | uint32(i.Mode)<<24 | lfo<<22 | i.Flags.Bits()<<16 | addr, nil
	}
	return 0, &FieldRangeError{Field: "instruction", Value: 0, Max: 0}
}

func encodeRegCoeff(op uint32, r base.Register, coeff float64) (uint32, error) {
	reg, err := regField(r)
	if err != nil {
		return 0, err
	}
	c16, err := EncodeS114(coeff)
	if err != nil {
		return 0, err
	}
	return op<<27 | reg<<21 | c16<<5, nil
}

func encodeAddrCoeff(op uint32, a uint16, coeff float64) (uint32, error) {
	addr, err := addrField(a)
	if err != nil {
		return 0, err
	}
	ofs, err := EncodeS10(coeff)
	if err != nil {
		return 0, err
	}
	return op<<27 | addr<<11 | ofs, nil
}

func encodeCoeffOffset(op uint32, coeff, offset float64) (uint32, error) {
	c16, err := EncodeS114(coeff)
	if err != nil {
		return 0, err
	}
	ofs, err := EncodeS10(offset)
	if err != nil {
		return 0, err
	}
	return op<<27 | c16<<11 | ofs, nil
}

func encodeMask(op uint32, mask uint32) (uint32, error) {
	if mask > 0xFFFFFF {
		return 0, &FieldRangeError{Field: "mask", Value: int(mask), Max: 0xFFFFFF}
	}
	return op<<27 | mask, nil
}

func regField(r base.Register) (uint32, error) {
	if !r.Valid() {
		return 0, &InvalidRegisterError{Reg: r}
	}
	return uint32(r), nil
}

func addrField(a uint16) (uint32, error) {
	if int(a) >= base.DelayRAMSize {
		return 0, &AddressRangeError{Addr: a, Max: base.DelayRAMSize}
	}
	return uint32(a), nil
}

func lfoField(l base.LFO) (uint32, error) {
	if l < base.SIN0 || l > base.RMP1 {
		return 0, &FieldRangeError{Field: "LFO", Value: int(l), Max: int(base.RMP1)}
	}
	return uint32(l), nil
}
