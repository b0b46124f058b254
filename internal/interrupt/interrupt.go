// Package interrupt implements the Game Boy's interrupt dispatcher: the
// IME master-enable flag, the IF/IE bitmasks mirrored in the bus's I/O
// region, and the fixed-priority vector dispatch.
package interrupt

import "github.com/thelolagemann/gomeboy/internal/memory"

// Flag bits within IF/IE, lowest bit highest priority.
const (
	VBlank = 1 << iota
	LCD
	Timer
	Serial
	Joypad
)

var vectors = [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}

// Controller owns the IME flag and mirrors the IF/IE bytes that live in
// the bus's I/O region. It does not touch the stack or PC itself — that's
// the CPU's job in serviceInterrupt, which keeps the bus/CPU ownership boundary
// from spec.md §5 intact.
type Controller struct {
	IME bool

	bus *memory.Bus
}

// New returns a Controller observing the given bus.
func New(bus *memory.Bus) *Controller {
	return &Controller{bus: bus}
}

// Request sets the given interrupt's bit in IF.
func (c *Controller) Request(flag uint8) {
	c.bus.SetIF(c.bus.IF() | flag)
}

// Pending reports whether any interrupt is both requested and enabled,
// irrespective of IME. HALT wakes on this condition even with IME clear.
func (c *Controller) Pending() bool {
	return c.bus.IF()&c.bus.IE()&0x1F != 0
}

// Ready reports whether an interrupt should be serviced on this step
// boundary: IME set and at least one requested-and-enabled interrupt.
func (c *Controller) Ready() bool {
	return c.IME && c.Pending()
}

// Vector clears the highest-priority pending-and-enabled interrupt's IF
// bit and returns its vector address. It must only be called when Ready
// is true.
func (c *Controller) Vector() uint16 {
	pending := c.bus.IF() & c.bus.IE() & 0x1F
	for i := 0; i < 5; i++ {
		bit := uint8(1 << i)
		if pending&bit != 0 {
			c.bus.SetIF(c.bus.IF() &^ bit)
			return vectors[i]
		}
	}
	return 0
}
