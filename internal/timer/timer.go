// Package timer implements the Game Boy's DIV/TIMA timer, driven by the
// number of machine cycles the CPU reports consuming each step. The
// accumulator model here is the one spec.md §4.3 describes, grounded on
// the reference emulator's update_divider/update_timers routines: two
// free-running cycle accumulators, one for DIV (fixed 256-cycle period)
// and one for TIMA (a period selected by TAC's frequency bits).
package timer

import (
	"github.com/thelolagemann/gomeboy/internal/interrupt"
	"github.com/thelolagemann/gomeboy/internal/memory"
)

// periods maps TAC's two frequency-select bits to the number of CPU
// cycles per TIMA tick.
var periods = [4]uint16{1024, 16, 64, 256}

const divPeriod = 256

// Controller drives DIV and TIMA from elapsed cycle counts.
type Controller struct {
	bus *memory.Bus
	irq *interrupt.Controller

	divAcc  uint16
	timaAcc uint16
	period  uint16
}

// New returns a Controller observing bus and requesting Timer interrupts
// through irq.
func New(bus *memory.Bus, irq *interrupt.Controller) *Controller {
	return &Controller{bus: bus, irq: irq, period: periods[0]}
}

// Step advances the timer by cycles CPU clock cycles (T-states).
func (c *Controller) Step(cycles uint8) {
	c.stepDiv(cycles)

	if newPeriod := periods[c.bus.TAC()&0x3]; newPeriod != c.period {
		c.period = newPeriod
		c.timaAcc = 0
	}

	if c.bus.TAC()&0x4 == 0 {
		return
	}

	c.timaAcc += uint16(cycles)
	for c.timaAcc >= c.period {
		c.timaAcc -= c.period
		c.tick()
	}
}

func (c *Controller) stepDiv(cycles uint8) {
	c.divAcc += uint16(cycles)
	for c.divAcc >= divPeriod {
		c.divAcc -= divPeriod
		c.bus.SetDIV(c.bus.DIV() + 1)
	}
}

// tick fires a single TIMA increment, reloading from TMA and requesting
// the Timer interrupt on overflow.
func (c *Controller) tick() {
	if c.bus.TIMA() == 0xFF {
		c.bus.SetTIMA(c.bus.TMA())
		c.irq.Request(interrupt.Timer)
	} else {
		c.bus.SetTIMA(c.bus.TIMA() + 1)
	}
}
