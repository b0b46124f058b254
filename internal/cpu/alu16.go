package cpu

// 16-bit ALU helpers: INC/DEC rr, ADD HL,rr, ADD SP,e and the shared
// signed-offset addition used by both ADD SP,e and LD HL,SP+e.

// incrementPair increments a register pair; flags are unaffected.
func (c *CPU) incrementPair(p *RegisterPair) {
	p.SetUint16(p.Uint16() + 1)
	c.internalDelay()
}

// decrementPair decrements a register pair; flags are unaffected.
func (c *CPU) decrementPair(p *RegisterPair) {
	p.SetUint16(p.Uint16() - 1)
	c.internalDelay()
}

// addHL adds value to HL. Flags: Z unaffected, N reset, H set on carry
// out of bit 11, C set on carry out of bit 15.
func (c *CPU) addHL(value uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(value)
	c.clearFlag(FlagSubtract)
	if (hl&0xFFF)+(value&0xFFF) > 0xFFF {
		c.setFlag(FlagHalfCarry)
	} else {
		c.clearFlag(FlagHalfCarry)
	}
	if sum > 0xFFFF {
		c.setFlag(FlagCarry)
	} else {
		c.clearFlag(FlagCarry)
	}
	c.HL.SetUint16(uint16(sum))
	c.internalDelay()
}

// addSignedToSP computes sp + int8(offset), with the H and C flags
// defined (per spec.md's open question) as if adding the unsigned byte
// offset to the low byte of SP: H set on carry out of bit 3, C set on
// carry out of bit 7 of that 8-bit addition. This is the documented
// behaviour shared by ADD SP,e and LD HL,SP+e.
func (c *CPU) addSignedToSP(offset uint8) uint16 {
	sp := c.SP
	result := uint16(int32(sp) + int32(int8(offset)))
	c.setFlags(false, false, (sp&0xF)+uint16(offset&0xF) > 0xF, (sp&0xFF)+uint16(offset) > 0xFF)
	return result
}
