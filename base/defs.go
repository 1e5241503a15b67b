package base

// Hardware limits of the FV-1.
const (
	// Max number of instructions in a program
	MaxInstructions = 128

	// A program image is always 128 instructions of 4 bytes each
	ProgramBytes = MaxInstructions * 4

	// Delay RAM size in samples
	DelayRAMSize = 32768

	// Number of general purpose registers
	NumRegisters = 32
)

// Register is the 6-bit register address used in instruction register
// fields. The codes follow the FV-1 datasheet map.
type Register int

const (
	SIN0_RATE  Register = 0x00
	SIN0_RANGE Register = 0x01
	SIN1_RATE  Register = 0x02
	SIN1_RANGE Register = 0x03
	RMP0_RATE  Register = 0x04
	RMP0_RANGE Register = 0x05
	RMP1_RATE  Register = 0x06
	RMP1_RANGE Register = 0x07

	POT0 Register = 0x10
	POT1 Register = 0x11
	POT2 Register = 0x12

	ADCL     Register = 0x14
	ADCR     Register = 0x15
	DACL     Register = 0x16
	DACR     Register = 0x17
	ADDR_PTR Register = 0x18

	REG0 Register = 0x20
)

// Reg addresses general purpose register n. Values of n >= NumRegisters
// produce a code outside the register map which the encoder rejects.
func Reg(n int) Register {
	return REG0 + Register(n)
}

// Symbols maps register codes to their canonical names.
var Symbols = map[Register]string{
	SIN0_RATE:  "SIN0_RATE",
	SIN0_RANGE: "SIN0_RANGE",
	SIN1_RATE:  "SIN1_RATE",
	SIN1_RANGE: "SIN1_RANGE",
	RMP0_RATE:  "RMP0_RATE",
	RMP0_RANGE: "RMP0_RANGE",
	RMP1_RATE:  "RMP1_RATE",
	RMP1_RANGE: "RMP1_RANGE",
	POT0:       "POT0",
	POT1:       "POT1",
	POT2:       "POT2",
	ADCL:       "ADCL",
	ADCR:       "ADCR",
	DACL:       "DACL",
	DACR:       "DACR",
	ADDR_PTR:   "ADDR_PTR",
}

func init() {
	for i := 0; i < NumRegisters; i++ {
		Symbols[Reg(i)] = "REG" + itoa(i)
	}
}

// Valid reports whether the code addresses an actual register.
func (r Register) Valid() bool {
	_, ok := Symbols[r]
	return ok
}

func (r Register) String() string {
	if name, ok := Symbols[r]; ok {
		return name
	}
	return "REG?<" + itoa(int(r)) + ">"
}

// itoa avoids pulling fmt into the symbol tables.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// LFO identifies one of the four built-in oscillators.
type LFO int

const (
	SIN0 LFO = 0
	SIN1 LFO = 1
	RMP0 LFO = 2
	RMP1 LFO = 3
)

var lfoNames = [4]string{"SIN0", "SIN1", "RMP0", "RMP1"}

func (l LFO) String() string {
	if l < 0 || int(l) >= len(lfoNames) {
		return "LFO?"
	}
	return lfoNames[l]
}

// SkipCondition selects when a SKP instruction takes its branch. The
// values equal the 3-bit condition field encoding.
type SkipCondition int

const (
	RUN SkipCondition = 0 // unconditional
	NEG SkipCondition = 1 // ACC < 0
	GEZ SkipCondition = 2 // ACC >= 0
	ZRO SkipCondition = 3 // ACC == 0
	ZRC SkipCondition = 4 // ACC crossed zero
)

var skipConditionNames = [5]string{"RUN", "NEG", "GEZ", "ZRO", "ZRC"}

func (c SkipCondition) Valid() bool {
	return c >= RUN && c <= ZRC
}

func (c SkipCondition) String() string {
	if !c.Valid() {
		return "COND?"
	}
	return skipConditionNames[c]
}

// ChoMode is the 2-bit CHO sub-command. 0b01 is not assigned.
type ChoMode int

const (
	CHO_RDA  ChoMode = 0b00
	CHO_SOF  ChoMode = 0b10
	CHO_RDAL ChoMode = 0b11
)

func (m ChoMode) Valid() bool {
	return m == CHO_RDA || m == CHO_SOF || m == CHO_RDAL
}

func (m ChoMode) String() string {
	switch m {
	case CHO_RDA:
		return "RDA"
	case CHO_SOF:
		return "SOF"
	case CHO_RDAL:
		return "RDAL"
	}
	return "CHO?"
}

// ChoFlags are the CHO address/coefficient modifier bits.
type ChoFlags struct {
	Rptr2    bool // use the second ramp read pointer
	Na       bool // do not add the LFO to the address
	Compc    bool // complement the coefficient (1-x)
	Compa    bool // complement the address offset
	Rptr2Sel bool // select the 2nd pointer's cross-fade coefficient
}

// Bits packs the flags into the 6-bit CHO flag field.
func (f ChoFlags) Bits() uint32 {
	var bits uint32
	if f.Rptr2 {
		bits |= 0b100000
	}
	if f.Na {
		bits |= 0b010000
	}
	if f.Compc {
		bits |= 0b001000
	}
	if f.Compa {
		bits |= 0b000100
	}
	if f.Rptr2Sel {
		bits |= 0b000010
	}
	return bits
}

// ChoFlagsFromBits is the inverse of Bits.
func ChoFlagsFromBits(bits uint32) ChoFlags {
	return ChoFlags{
		Rptr2:    bits&0b100000 != 0,
		Na:       bits&0b010000 != 0,
		Compc:    bits&0b001000 != 0,
		Compa:    bits&0b000100 != 0,
		Rptr2Sel: bits&0b000010 != 0,
	}
}

// Names returns the set flags by canonical name, in field-bit order.
func (f ChoFlags) Names() []string {
	var names []string
	if f.Rptr2 {
		names = append(names, "RPTR2")
	}
	if f.Na {
		names = append(names, "NA")
	}
	if f.Compc {
		names = append(names, "COMPC")
	}
	if f.Compa {
		names = append(names, "COMPA")
	}
	if f.Rptr2Sel {
		names = append(names, "RPTR2_SEL")
	}
	return names
}
