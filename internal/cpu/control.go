package cpu

// condition evaluates one of the four branch conditions encoded in the
// 2-bit cc field: 0=NZ 1=Z 2=NC 3=C.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	case 3:
		return c.isFlagSet(FlagCarry)
	}
	panic("cpu: invalid condition code")
}

func (c *CPU) jumpAbsolute(addr uint16) {
	c.PC = addr
	c.internalDelay()
}

func (c *CPU) jumpRelative(offset uint8) {
	c.PC = uint16(int32(c.PC) + int32(int8(offset)))
	c.internalDelay()
}

func (c *CPU) call(addr uint16) {
	c.internalDelay()
	c.push(c.PC)
	c.PC = addr
}

func (c *CPU) ret() {
	c.PC = c.pop()
	c.internalDelay()
}

func (c *CPU) rst(addr uint16) {
	c.internalDelay()
	c.push(c.PC)
	c.PC = addr
}
