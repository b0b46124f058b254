// Package cpu implements the LR35902 fetch-decode-execute core: the
// register file, flags, the full documented opcode space (including the
// CB-prefixed bit-operations page), and the HALT/STOP/EI/DI mode
// machinery that ties into the interrupt controller.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy/internal/interrupt"
	"github.com/thelolagemann/gomeboy/internal/memory"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

// mode tracks the CPU's run state across Step calls, grounded on the
// teacher's ModeNormal/ModeHalt/.../ModeHaltBug state machine.
type mode uint8

const (
	modeNormal mode = iota
	modeHalt
	modeStop
	modeHaltBug   // HALT executed with IME=0 and a pending interrupt: next opcode byte is re-fetched
	modeEnableIME // EI was executed; IME becomes true after the following instruction
)

// Fault is returned by Step when the fetched opcode has no defined
// behaviour (either genuinely undefined, or one of the eleven bytes the
// LR35902 reserves and never dispatches).
type Fault struct {
	Opcode uint8
	PC     uint16
}

func (f *Fault) Error() string {
	return fmt.Sprintf("cpu: undefined opcode %#02x at %#04x", f.Opcode, f.PC)
}

// CPU is the Game Boy's LR35902-family core.
type CPU struct {
	*Registers
	SP, PC uint16

	bus *memory.Bus
	irq *interrupt.Controller
	log log.Logger

	mode mode
	tick uint8 // clock cycles (T-states, 4 per machine cycle) consumed by the instruction currently executing
}

// New returns a CPU with the documented post-boot register values,
// observing bus and dispatching through irq.
func New(bus *memory.Bus, irq *interrupt.Controller, logger log.Logger) *CPU {
	c := &CPU{
		Registers: NewRegisters(),
		SP:        0xFFFE,
		PC:        0x0100,
		bus:       bus,
		irq:       irq,
		log:       logger,
	}
	return c
}

// readByte reads a byte from the bus, accounting one machine cycle.
func (c *CPU) readByte(addr uint16) uint8 {
	c.tick += 4
	return c.bus.Read(addr)
}

// writeByte writes a byte to the bus, accounting one machine cycle.
func (c *CPU) writeByte(addr uint16, value uint8) {
	c.tick += 4
	c.bus.Write(addr, value)
}

// fetch8 reads the byte at PC and advances PC past it.
func (c *CPU) fetch8() uint8 {
	v := c.readByte(c.PC)
	c.PC++
	return v
}

// internalDelay accounts one machine cycle of internal computation with
// no bus access, such as the extra cycle 16-bit ALU ops and taken
// branches spend after their operands are already in hand.
func (c *CPU) internalDelay() {
	c.tick += 4
}

// fetch16 reads the little-endian word at PC, PC+1 and advances PC past
// both bytes.
func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch8())
	hi := uint16(c.fetch8())
	return hi<<8 | lo
}

// Step executes exactly one opcode (or one HALT/STOP tick, or one
// pending-interrupt dispatch) and returns the number of clock cycles
// (T-states) it consumed. A Fault is returned, and PC left pointing at the
// offending opcode, when an undefined or disallowed opcode is fetched.
func (c *CPU) Step() (uint8, error) {
	c.tick = 0

	var err error
	switch c.mode {
	case modeNormal:
		err = c.runNext()
	case modeHalt, modeStop:
		c.tick += 4
		if c.irq.Pending() {
			c.mode = modeNormal
		}
	case modeHaltBug:
		// HALT executed with IME clear while an interrupt was already
		// pending: the instruction immediately following HALT runs
		// normally, but PC fails to advance past it afterwards, so the
		// next Step re-fetches and re-executes that same instruction.
		err = c.runNext()
		c.PC--
		c.mode = modeNormal
	case modeEnableIME:
		c.irq.IME = true
		c.mode = modeNormal
		err = c.runNext()
	}
	if err != nil {
		return c.tick, err
	}

	if c.irq.Ready() {
		c.serviceInterrupt()
	}

	return c.tick, nil
}

// runNext fetches and executes the instruction at PC.
func (c *CPU) runNext() error {
	opPC := c.PC
	opcode := c.fetch8()

	var ins instruction
	if opcode == 0xCB {
		cb := c.fetch8()
		ins = instructionSetCB[cb]
		if ins.fn == nil {
			c.log.Errorf("undefined CB opcode %#02x at %#04x", cb, opPC+1)
			c.PC = opPC + 1
			return &Fault{Opcode: cb, PC: opPC + 1}
		}
	} else {
		ins = instructionSet[opcode]
		if ins.fn == nil {
			c.log.Errorf("undefined opcode %#02x at %#04x", opcode, opPC)
			c.PC = opPC
			return &Fault{Opcode: opcode, PC: opPC}
		}
	}

	c.log.Debugf("%#04x: %s", opPC, ins.name)
	ins.fn(c)
	return nil
}

// serviceInterrupt pushes PC, clears IME, and jumps to the
// highest-priority pending-and-enabled interrupt's vector. It must only
// run when irq.Ready() is true, and never recurses: IME is cleared
// before the jump, so a freshly-dispatched vector cannot itself be
// re-entered until the handler explicitly re-enables interrupts.
func (c *CPU) serviceInterrupt() {
	vector := c.irq.Vector()

	c.SP--
	c.writeByte(c.SP, uint8(c.PC>>8))
	c.SP--
	c.writeByte(c.SP, uint8(c.PC))

	c.irq.IME = false
	c.PC = vector
	c.tick += 4

	c.mode = modeNormal
}

// RequestInterrupt sets the given interrupt's IF bit through the
// interrupt controller. The timer and LCD units request their interrupts
// on the controller directly rather than through this method.
func (c *CPU) RequestInterrupt(flag uint8) {
	c.irq.Request(flag)
}
