package cpu

// Register is a single 8-bit CPU register.
type Register = uint8

// RegisterPair addresses two registers as a single big-endian 16-bit
// value: High is the most significant byte, Low the least. Storing pairs
// as pointers into the individual registers (rather than duplicating
// state) keeps BC/DE/HL/AF and B/C/D/E/H/L always in sync, the same
// approach the teacher's cpu.go uses.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the pair's value as a single big-endian word.
func (p *RegisterPair) Uint16() uint16 {
	return uint16(*p.High)<<8 | uint16(*p.Low)
}

// SetUint16 stores v across the pair's two registers.
func (p *RegisterPair) SetUint16(v uint16) {
	*p.High = uint8(v >> 8)
	*p.Low = uint8(v)
}

// Registers is the LR35902 register file: eight 8-bit registers and the
// four register-pair views over them.
type Registers struct {
	A, F Register
	B, C Register
	D, E Register
	H, L Register

	AF, BC, DE, HL *RegisterPair
}

// NewRegisters returns a Registers with its pair views wired up and the
// documented post-boot power-on values.
func NewRegisters() *Registers {
	r := &Registers{}
	r.AF = &RegisterPair{&r.A, &r.F}
	r.BC = &RegisterPair{&r.B, &r.C}
	r.DE = &RegisterPair{&r.D, &r.E}
	r.HL = &RegisterPair{&r.H, &r.L}
	return r
}

// register indices as encoded in the low 3 bits of most 8-bit opcodes:
// 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.
const (
	regB = iota
	regC
	regD
	regE
	regH
	regL
	regHLInd
	regA
)

// get8 reads the register (or memory byte, for index 6) named by index.
func (c *CPU) get8(index uint8) uint8 {
	switch index {
	case regB:
		return c.B
	case regC:
		return c.C
	case regD:
		return c.D
	case regE:
		return c.E
	case regH:
		return c.H
	case regL:
		return c.L
	case regHLInd:
		return c.readByte(c.HL.Uint16())
	case regA:
		return c.A
	}
	panic("cpu: invalid register index")
}

// set8 writes value to the register (or memory byte, for index 6) named
// by index.
func (c *CPU) set8(index uint8, value uint8) {
	switch index {
	case regB:
		c.B = value
	case regC:
		c.C = value
	case regD:
		c.D = value
	case regE:
		c.E = value
	case regH:
		c.H = value
	case regL:
		c.L = value
	case regHLInd:
		c.writeByte(c.HL.Uint16(), value)
	case regA:
		c.A = value
	default:
		panic("cpu: invalid register index")
	}
}

// pair returns the register-pair addressed by the 2-bit rr field used by
// LD rr,nn / INC rr / DEC rr / ADD HL,rr (0=BC 1=DE 2=HL 3=SP is handled
// by the caller since SP has no RegisterPair view).
func (c *CPU) pair(index uint8) *RegisterPair {
	switch index {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	}
	panic("cpu: invalid register pair index")
}
