package base

// Instruction is the closed set of FV-1 operations. Each variant
// carries exactly the operands its binary encoding stores, nothing
// more, so the encoder is total over well-formed values.
type Instruction interface {
	Mnemonic() string
	op()
}

// Rdax reads a register into ACC: ACC = ACC + [REG] * C
type Rdax struct {
	Reg   Register
	Coeff float64
}

// Rda reads delay RAM: ACC = ACC + [ADDR] * C
type Rda struct {
	Addr  uint16
	Coeff float64
}

// Rmpa reads delay RAM at ADDR_PTR: ACC = ACC + [ADDR_PTR] * C
type Rmpa struct {
	Coeff float64
}

// Wrax writes ACC to a register: [REG] = ACC, ACC = ACC * C
type Wrax struct {
	Reg   Register
	Coeff float64
}

// Wra writes ACC to delay RAM: [ADDR] = ACC, ACC = ACC * C
type Wra struct {
	Addr  uint16
	Coeff float64
}

// Wrap writes ACC with cross-fade: [ADDR] = ACC, ACC = ACC*C + LR
type Wrap struct {
	Addr  uint16
	Coeff float64
}

// Mulx multiplies ACC by a register: ACC = ACC * [REG]
type Mulx struct {
	Reg Register
}

// Rdfx is the filter primitive: ACC = (ACC - [REG]) * C + [REG]
type Rdfx struct {
	Reg   Register
	Coeff float64
}

// Rdfx2 is the single-pole lowpass variant of Rdfx.
type Rdfx2 struct {
	Reg   Register
	Coeff float64
}

// Ldax loads a register into ACC.
type Ldax struct {
	Reg Register
}

// Absa replaces ACC with its absolute value.
type Absa struct{}

// Sof scales and offsets ACC: ACC = ACC * C + D
type Sof struct {
	Coeff  float64
	Offset float64
}

// And masks ACC with a 24-bit constant. A zero mask clears ACC.
type And struct {
	Mask uint32
}

// Or sets ACC bits from a 24-bit constant.
type Or struct {
	Mask uint32
}

// Xor inverts ACC bits from a 24-bit constant.
type Xor struct {
	Mask uint32
}

// Shl shifts ACC left one bit.
type Shl struct{}

// Shr shifts ACC right one bit.
type Shr struct{}

// Clr zeroes ACC.
type Clr struct{}

// Nop does nothing. Its encoded word (all zeros) doubles as the
// binary padding value.
type Nop struct{}

// Exp computes ACC = C * 2^ACC + D
type Exp struct {
	Coeff  float64
	Offset float64
}

// Log computes ACC = C * log2(|ACC|) + D
type Log struct {
	Coeff  float64
	Offset float64
}

// Skp conditionally skips Offset instructions forward or backward,
// relative to the post-increment program counter. Target holds an
// unresolved label name until label resolution rewrites it into
// Offset; the encoder only ever sees resolved instructions.
type Skp struct {
	Cond   SkipCondition
	Offset int8
	Target string
}

// Wlds loads an LFO with a frequency and amplitude (9 bits each).
type Wlds struct {
	Lfo  LFO
	Freq uint16
	Amp  uint16
}

// Jam resets a ramp LFO to its start position.
type Jam struct {
	Lfo LFO
}

// Cho reads delay RAM (or ACC) modulated by an LFO.
type Cho struct {
	Mode  ChoMode
	Lfo   LFO
	Flags ChoFlags
	Addr  uint16
}

func (Rdax) Mnemonic() string  { return "RDAX" }
func (Rda) Mnemonic() string   { return "RDA" }
func (Rmpa) Mnemonic() string  { return "RMPA" }
func (Wrax) Mnemonic() string  { return "WRAX" }
func (Wra) Mnemonic() string   { return "WRA" }
func (Wrap) Mnemonic() string  { return "WRAP" }
func (Mulx) Mnemonic() string  { return "MULX" }
func (Rdfx) Mnemonic() string  { return "RDFX" }
func (Rdfx2) Mnemonic() string { return "RDFX2" }
func (Ldax) Mnemonic() string  { return "LDAX" }
func (Absa) Mnemonic() string  { return "ABSA" }
func (Sof) Mnemonic() string   { return "SOF" }
func (And) Mnemonic() string   { return "AND" }
func (Or) Mnemonic() string    { return "OR" }
func (Xor) Mnemonic() string   { return "XOR" }
func (Shl) Mnemonic() string   { return "SHL" }
func (Shr) Mnemonic() string   { return "SHR" }
func (Clr) Mnemonic() string   { return "CLR" }
func (Nop) Mnemonic() string   { return "NOP" }
func (Exp) Mnemonic() string   { return "EXP" }
func (Log) Mnemonic() string   { return "LOG" }
func (Skp) Mnemonic() string   { return "SKP" }
func (Wlds) Mnemonic() string  { return "WLDS" }
func (Jam) Mnemonic() string   { return "JAM" }
func (Cho) Mnemonic() string   { return "CHO" }

func (Rdax) op()  {}
func (Rda) op()   {}
func (Rmpa) op()  {}
func (Wrax) op()  {}
func (Wra) op()   {}
func (Wrap) op()  {}
func (Mulx) op()  {}
func (Rdfx) op()  {}
func (Rdfx2) op() {}
func (Ldax) op()  {}
func (Absa) op()  {}
func (Sof) op()   {}
func (And) op()   {}
func (Or) op()    {}
func (Xor) op()   {}
func (Shl) op()   {}
func (Shr) op()   {}
func (Clr) op()   {}
func (Nop) op()   {}
func (Exp) op()   {}
func (Log) op()   {}
func (Skp) op()   {}
func (Wlds) op()  {}
func (Jam) op()   {}
func (Cho) op()   {}
