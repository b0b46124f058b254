package cpu

import "github.com/thelolagemann/gomeboy/pkg/bits"

// Flag bit positions within F. The low nibble of F is unused and must
// always read back as zero.
const (
	FlagCarry     = bits.Bit4
	FlagHalfCarry = bits.Bit5
	FlagSubtract  = bits.Bit6
	FlagZero      = bits.Bit7
)

func (c *CPU) isFlagSet(flag uint8) bool { return c.F&flag != 0 }

func (c *CPU) setFlag(flag uint8)   { c.F |= flag }
func (c *CPU) clearFlag(flag uint8) { c.F &^= flag }

// setFlags writes all four flags at once and masks the unused low
// nibble, the one invariant that must hold after every instruction.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	if zero {
		f |= FlagZero
	}
	if subtract {
		f |= FlagSubtract
	}
	if halfCarry {
		f |= FlagHalfCarry
	}
	if carry {
		f |= FlagCarry
	}
	c.F = f
}

func (c *CPU) shouldZeroFlag(value uint8) {
	if value == 0 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
}
