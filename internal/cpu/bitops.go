package cpu

import "github.com/thelolagemann/gomeboy/pkg/bits"

// The CB-prefixed page: rotates, shifts, swap, and the BIT/RES/SET
// family. Each operates on an 8-bit value and returns the transformed
// value; the caller (instructions.go) is responsible for reading the
// operand via get8 and writing the result back via set8.

func (c *CPU) rlc(value uint8) uint8 {
	carry := value & bits.Bit7
	result := value<<1 | carry>>7
	c.setFlags(result == 0, false, false, carry != 0)
	return result
}

func (c *CPU) rrc(value uint8) uint8 {
	carry := value & bits.Bit0
	result := value>>1 | carry<<7
	c.setFlags(result == 0, false, false, carry != 0)
	return result
}

func (c *CPU) rl(value uint8) uint8 {
	var carryIn uint8
	if c.isFlagSet(FlagCarry) {
		carryIn = 1
	}
	carryOut := value & bits.Bit7
	result := value<<1 | carryIn
	c.setFlags(result == 0, false, false, carryOut != 0)
	return result
}

func (c *CPU) rr(value uint8) uint8 {
	var carryIn uint8
	if c.isFlagSet(FlagCarry) {
		carryIn = bits.Bit7
	}
	carryOut := value & bits.Bit0
	result := value>>1 | carryIn
	c.setFlags(result == 0, false, false, carryOut != 0)
	return result
}

func (c *CPU) sla(value uint8) uint8 {
	carry := value & bits.Bit7
	result := value << 1
	c.setFlags(result == 0, false, false, carry != 0)
	return result
}

func (c *CPU) sra(value uint8) uint8 {
	carry := value & bits.Bit0
	result := value>>1 | value&bits.Bit7
	c.setFlags(result == 0, false, false, carry != 0)
	return result
}

func (c *CPU) srl(value uint8) uint8 {
	carry := value & bits.Bit0
	result := value >> 1
	c.setFlags(result == 0, false, false, carry != 0)
	return result
}

func (c *CPU) swap(value uint8) uint8 {
	result := value<<4 | value>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// testBit sets Z to the complement of bit n of value, clears N, sets H,
// and leaves C untouched.
func (c *CPU) testBit(value, n uint8) {
	c.shouldZeroFlag(value & (1 << n))
	c.clearFlag(FlagSubtract)
	c.setFlag(FlagHalfCarry)
}

func resetBit(value, n uint8) uint8 { return value &^ (1 << n) }
func setBitAt(value, n uint8) uint8 { return value | (1 << n) }
