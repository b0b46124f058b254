package cpu

// instruction pairs a mnemonic (used only for logging/debugging) with the
// closure that executes it. Building the dispatch tables with an init()
// loop over the opcode space's regular encodings, rather than typing out
// 256+256 cases by hand, keeps the irregular opcodes — the ones that
// actually need individual attention — visible instead of buried in
// repetition.
type instruction struct {
	name string
	fn   func(*CPU)
}

var instructionSet [256]instruction
var instructionSetCB [256]instruction

func init() {
	installRegularLoads()
	installRegularALU()
	installIrregular()
	installCB()
}

// installRegularLoads fills in LD r,r' (0x40-0x7F, except 0x76=HALT),
// LD r,d8 (0x06+8r), INC r (0x04+8r), and DEC r (0x05+8r).
func installRegularLoads() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x40 + dst*8 + src
			if op == 0x76 {
				continue // HALT, defined in installIrregular
			}
			d, s := dst, src
			instructionSet[op] = instruction{"LD r,r'", func(c *CPU) {
				c.set8(d, c.get8(s))
			}}
		}

		d := dst
		instructionSet[0x06+8*d] = instruction{"LD r,d8", func(c *CPU) {
			c.set8(d, c.fetch8())
		}}
		instructionSet[0x04+8*d] = instruction{"INC r", func(c *CPU) {
			c.set8(d, c.increment(c.get8(d)))
		}}
		instructionSet[0x05+8*d] = instruction{"DEC r", func(c *CPU) {
			c.set8(d, c.decrement(c.get8(d)))
		}}
	}
}

// installRegularALU fills in the ALU A,r block (0x80-0xBF) and its
// immediate counterparts (0xC6+8*op).
func installRegularALU() {
	ops := [8]func(*CPU, uint8){
		(*CPU).add,
		(*CPU).adc,
		(*CPU).subtract,
		(*CPU).sbc,
		(*CPU).and,
		(*CPU).xor,
		(*CPU).or,
		(*CPU).compare,
	}
	names := [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}

	for op := uint8(0); op < 8; op++ {
		f := ops[op]
		for src := uint8(0); src < 8; src++ {
			s := src
			instructionSet[0x80+op*8+s] = instruction{names[op] + " A,r", func(c *CPU) {
				f(c, c.get8(s))
			}}
		}
		instructionSet[0xC6+op*8] = instruction{names[op] + " A,d8", func(c *CPU) {
			f(c, c.fetch8())
		}}
	}
}

// installIrregular defines every opcode whose encoding doesn't fall out
// of a simple formula: 16-bit loads, stack ops, the A-indirect forms,
// control flow, and the single-byte miscellaneous instructions.
func installIrregular() {
	// LD rr,nn / INC rr / DEC rr / ADD HL,rr, rr in {BC,DE,HL,SP}
	for i := uint8(0); i < 4; i++ {
		idx := i
		instructionSet[0x01+idx*0x10] = instruction{"LD rr,nn", func(c *CPU) {
			v := c.fetch16()
			if idx == 3 {
				c.SP = v
			} else {
				c.pair(idx).SetUint16(v)
			}
		}}
		instructionSet[0x03+idx*0x10] = instruction{"INC rr", func(c *CPU) {
			if idx == 3 {
				c.SP++
				c.internalDelay()
			} else {
				c.incrementPair(c.pair(idx))
			}
		}}
		instructionSet[0x0B+idx*0x10] = instruction{"DEC rr", func(c *CPU) {
			if idx == 3 {
				c.SP--
				c.internalDelay()
			} else {
				c.decrementPair(c.pair(idx))
			}
		}}
		instructionSet[0x09+idx*0x10] = instruction{"ADD HL,rr", func(c *CPU) {
			if idx == 3 {
				c.addHL(c.SP)
			} else {
				c.addHL(c.pair(idx).Uint16())
			}
		}}
	}

	// PUSH/POP rr, rr in {BC,DE,HL,AF}
	pushPop := [4]func(*CPU) *RegisterPair{
		func(c *CPU) *RegisterPair { return c.BC },
		func(c *CPU) *RegisterPair { return c.DE },
		func(c *CPU) *RegisterPair { return c.HL },
		func(c *CPU) *RegisterPair { return c.AF },
	}
	for i := uint8(0); i < 4; i++ {
		get := pushPop[i]
		instructionSet[0xC1+i*0x10] = instruction{"POP rr", func(c *CPU) {
			v := c.pop()
			if get(c) == c.AF {
				v &^= 0x000F
			}
			get(c).SetUint16(v)
		}}
		instructionSet[0xC5+i*0x10] = instruction{"PUSH rr", func(c *CPU) {
			c.internalDelay()
			c.push(get(c).Uint16())
		}}
	}

	// A-indirect loads.
	instructionSet[0x02] = instruction{"LD (BC),A", func(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) }}
	instructionSet[0x12] = instruction{"LD (DE),A", func(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) }}
	instructionSet[0x0A] = instruction{"LD A,(BC)", func(c *CPU) { c.A = c.readByte(c.BC.Uint16()) }}
	instructionSet[0x1A] = instruction{"LD A,(DE)", func(c *CPU) { c.A = c.readByte(c.DE.Uint16()) }}

	instructionSet[0x22] = instruction{"LD (HL+),A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() + 1)
	}}
	instructionSet[0x32] = instruction{"LD (HL-),A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() - 1)
	}}
	instructionSet[0x2A] = instruction{"LD A,(HL+)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	}}
	instructionSet[0x3A] = instruction{"LD A,(HL-)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	}}

	instructionSet[0xEA] = instruction{"LD (nn),A", func(c *CPU) { c.writeByte(c.fetch16(), c.A) }}
	instructionSet[0xFA] = instruction{"LD A,(nn)", func(c *CPU) { c.A = c.readByte(c.fetch16()) }}
	instructionSet[0xE0] = instruction{"LD (FF00+n),A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.fetch8()), c.A)
	}}
	instructionSet[0xF0] = instruction{"LD A,(FF00+n)", func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.fetch8()))
	}}
	instructionSet[0xE2] = instruction{"LD (FF00+C),A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.C), c.A)
	}}
	instructionSet[0xF2] = instruction{"LD A,(FF00+C)", func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.C))
	}}

	instructionSet[0x08] = instruction{"LD (nn),SP", func(c *CPU) {
		addr := c.fetch16()
		c.writeByte(addr, uint8(c.SP))
		c.writeByte(addr+1, uint8(c.SP>>8))
	}}
	instructionSet[0xF9] = instruction{"LD SP,HL", func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.internalDelay()
	}}
	instructionSet[0xF8] = instruction{"LD HL,SP+e", func(c *CPU) {
		c.HL.SetUint16(c.addSignedToSP(c.fetch8()))
		c.internalDelay()
	}}
	instructionSet[0xE8] = instruction{"ADD SP,e", func(c *CPU) {
		c.SP = c.addSignedToSP(c.fetch8())
		c.internalDelay()
		c.internalDelay()
	}}

	// Control flow. Operands are always fetched regardless of whether the
	// branch is taken; the internal delay that comes with jumpAbsolute/
	// jumpRelative/call is paid only on the taken path, matching real
	// hardware's cycle counts for the untaken forms.
	instructionSet[0xC3] = instruction{"JP nn", func(c *CPU) { c.jumpAbsolute(c.fetch16()) }}
	instructionSet[0xE9] = instruction{"JP HL", func(c *CPU) { c.PC = c.HL.Uint16() }}
	instructionSet[0x18] = instruction{"JR e", func(c *CPU) { c.jumpRelative(c.fetch8()) }}
	instructionSet[0xCD] = instruction{"CALL nn", func(c *CPU) { c.call(c.fetch16()) }}
	instructionSet[0xC9] = instruction{"RET", func(c *CPU) { c.ret() }}
	instructionSet[0xD9] = instruction{"RETI", func(c *CPU) {
		c.ret()
		c.irq.IME = true
	}}

	for cc := uint8(0); cc < 4; cc++ {
		condCode := cc
		instructionSet[0xC2+cc*0x08] = instruction{"JP cc,nn", func(c *CPU) {
			addr := c.fetch16()
			if c.condition(condCode) {
				c.jumpAbsolute(addr)
			}
			// not taken: fetch16 already left PC past the operand
		}}
		instructionSet[0x20+cc*0x08] = instruction{"JR cc,e", func(c *CPU) {
			offset := c.fetch8()
			if c.condition(condCode) {
				c.jumpRelative(offset)
			}
		}}
		instructionSet[0xC4+cc*0x08] = instruction{"CALL cc,nn", func(c *CPU) {
			addr := c.fetch16()
			if c.condition(condCode) {
				c.call(addr)
			}
		}}
		instructionSet[0xC0+cc*0x08] = instruction{"RET cc", func(c *CPU) {
			c.internalDelay() // condition check, paid whether or not taken
			if c.condition(condCode) {
				c.ret()
			}
		}}
	}

	for i := uint8(0); i < 8; i++ {
		addr := uint16(i) * 8
		instructionSet[0xC7+i*0x08] = instruction{"RST", func(c *CPU) { c.rst(addr) }}
	}

	// Single-byte miscellaneous instructions.
	instructionSet[0x00] = instruction{"NOP", func(c *CPU) {}}
	instructionSet[0x76] = instruction{"HALT", func(c *CPU) {
		if !c.irq.IME && c.irq.Pending() {
			c.mode = modeHaltBug
		} else {
			c.mode = modeHalt
		}
	}}
	instructionSet[0x10] = instruction{"STOP", func(c *CPU) {
		c.fetch8() // STOP is followed by an ignored byte on DMG
		c.mode = modeStop
	}}
	instructionSet[0xF3] = instruction{"DI", func(c *CPU) { c.irq.IME = false }}
	instructionSet[0xFB] = instruction{"EI", func(c *CPU) { c.mode = modeEnableIME }}

	instructionSet[0x27] = instruction{"DAA", func(c *CPU) { c.daa() }}
	instructionSet[0x2F] = instruction{"CPL", func(c *CPU) {
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	}}
	instructionSet[0x37] = instruction{"SCF", func(c *CPU) {
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
		c.setFlag(FlagCarry)
	}}
	instructionSet[0x3F] = instruction{"CCF", func(c *CPU) {
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
		if c.isFlagSet(FlagCarry) {
			c.clearFlag(FlagCarry)
		} else {
			c.setFlag(FlagCarry)
		}
	}}

	instructionSet[0x07] = instruction{"RLCA", func(c *CPU) {
		result := c.rlc(c.A)
		c.A = result
		c.clearFlag(FlagZero)
	}}
	instructionSet[0x0F] = instruction{"RRCA", func(c *CPU) {
		result := c.rrc(c.A)
		c.A = result
		c.clearFlag(FlagZero)
	}}
	instructionSet[0x17] = instruction{"RLA", func(c *CPU) {
		result := c.rl(c.A)
		c.A = result
		c.clearFlag(FlagZero)
	}}
	instructionSet[0x1F] = instruction{"RRA", func(c *CPU) {
		result := c.rr(c.A)
		c.A = result
		c.clearFlag(FlagZero)
	}}

	// 0xCB is dispatched specially in runNext and never indexed here.
	// The eleven reserved bytes are simply left with a nil fn, which
	// runNext turns into a Fault.
}

// daa adjusts A after a BCD addition or subtraction, per the flag state
// N/H/C left by the preceding ADD/ADC/SUB/SBC.
func (c *CPU) daa() {
	a := c.A
	var correction uint8
	carry := false

	if c.isFlagSet(FlagHalfCarry) || (!c.isFlagSet(FlagSubtract) && a&0xF > 9) {
		correction |= 0x06
	}
	if c.isFlagSet(FlagCarry) || (!c.isFlagSet(FlagSubtract) && a > 0x99) {
		correction |= 0x60
		carry = true
	}

	if c.isFlagSet(FlagSubtract) {
		a -= correction
	} else {
		a += correction
	}

	c.A = a
	c.shouldZeroFlag(c.A)
	c.clearFlag(FlagHalfCarry)
	if carry {
		c.setFlag(FlagCarry)
	} else {
		c.clearFlag(FlagCarry)
	}
}

// installCB fills the CB-prefixed page: rotate/shift/swap (0x00-0x3F),
// BIT (0x40-0x7F), RES (0x80-0xBF), SET (0xC0-0xFF), each over the same
// 8-register operand field used by the regular page.
func installCB() {
	rotateShift := [8]func(*CPU, uint8) uint8{
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
	}
	names := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

	for op := uint8(0); op < 8; op++ {
		f := rotateShift[op]
		for r := uint8(0); r < 8; r++ {
			reg := r
			instructionSetCB[op*8+reg] = instruction{names[op], func(c *CPU) {
				c.set8(reg, f(c, c.get8(reg)))
			}}
		}
	}

	for n := uint8(0); n < 8; n++ {
		bit := n
		for r := uint8(0); r < 8; r++ {
			reg := r
			instructionSetCB[0x40+bit*8+reg] = instruction{"BIT n,r", func(c *CPU) {
				c.testBit(c.get8(reg), bit)
			}}
			instructionSetCB[0x80+bit*8+reg] = instruction{"RES n,r", func(c *CPU) {
				c.set8(reg, resetBit(c.get8(reg), bit))
			}}
			instructionSetCB[0xC0+bit*8+reg] = instruction{"SET n,r", func(c *CPU) {
				c.set8(reg, setBitAt(c.get8(reg), bit))
			}}
		}
	}
}
