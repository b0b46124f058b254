// Package lcd implements the Game Boy's LCD status subsystem: the
// scanline counter, LY/LYC coincidence, the mode 0/1/2/3 state machine,
// and the LCDC/STAT-driven interrupts. Pixel rasterization itself is an
// external collaborator — this unit only tracks timing and fires the
// draw_scanline hook at the right moment.
package lcd

import (
	"github.com/thelolagemann/gomeboy/internal/interrupt"
	"github.com/thelolagemann/gomeboy/internal/memory"
	"github.com/thelolagemann/gomeboy/pkg/bits"
)

// Mode is one of the four PPU modes encoded in STAT bits 1-0.
type Mode uint8

const (
	HBlank Mode = 0
	VBlank Mode = 1
	OAMScan Mode = 2
	Transfer Mode = 3
)

const scanlineCycles = 456

// ScanlineFunc is invoked with the line number whenever mode 3 ends on a
// visible scanline (LY < 144). It is the contract with the external
// rasterizer described in spec.md §6.
type ScanlineFunc func(line uint8)

// Controller drives LY, STAT and their interrupts from elapsed cycle
// counts, grounded on the reference emulator's set_lcd_status/
// update_scanline routines.
type Controller struct {
	bus *memory.Bus
	irq *interrupt.Controller

	counter    int32
	draw       ScanlineFunc
	lastMode   Mode
}

// New returns a Controller observing bus and requesting LCD/VBlank
// interrupts through irq. draw may be nil, in which case scanline
// completion is simply not reported.
func New(bus *memory.Bus, irq *interrupt.Controller, draw ScanlineFunc) *Controller {
	return &Controller{bus: bus, irq: irq, counter: scanlineCycles, draw: draw}
}

func (c *Controller) enabled() bool {
	return bits.Test(c.bus.LCDC(), 7)
}

// Step advances the LCD unit by cycles CPU clock cycles (T-states).
func (c *Controller) Step(cycles uint8) {
	if !c.enabled() {
		c.bus.SetLY(0)
		c.setModeBits(uint8(VBlank))
		c.counter = scanlineCycles
		c.lastMode = VBlank
		return
	}

	wasDrawing := c.currentMode() == Transfer
	c.counter -= int32(cycles)
	c.updateMode()
	c.updateCoincidence()

	if wasDrawing && c.currentMode() != Transfer && c.draw != nil && c.bus.LY() < 144 {
		c.draw(c.bus.LY())
	}

	if c.counter <= 0 {
		c.counter += scanlineCycles
		c.advanceLine()
		c.updateMode()
		c.updateCoincidence()
	}
}

// advanceLine increments LY, wrapping 153->0, and requests V-Blank on
// entry to line 144.
func (c *Controller) advanceLine() {
	line := c.bus.LY() + 1
	if line > 153 {
		line = 0
	}
	c.bus.SetLY(line)
	if line == 144 {
		c.irq.Request(interrupt.VBlank)
	}
}

// currentMode returns the mode implied by LY and the scanline counter,
// without mutating any state.
func (c *Controller) currentMode() Mode {
	ly := c.bus.LY()
	if ly >= 144 {
		return VBlank
	}
	elapsed := scanlineCycles - c.counter
	switch {
	case elapsed < 80:
		return OAMScan
	case elapsed < 80+172:
		return Transfer
	default:
		return HBlank
	}
}

// updateMode recomputes the current mode, updates STAT's mode bits, and
// requests the LCDC interrupt when entering a mode whose STAT source bit
// is enabled.
func (c *Controller) updateMode() {
	mode := c.currentMode()
	c.setModeBits(uint8(mode))

	if mode == c.lastMode {
		return
	}
	c.lastMode = mode

	var sourceBit uint8
	switch mode {
	case HBlank:
		sourceBit = bits.Bit3
	case VBlank:
		sourceBit = bits.Bit4
	case OAMScan:
		sourceBit = bits.Bit5
	case Transfer:
		return // mode 3 never requests
	}
	if c.bus.STAT()&sourceBit != 0 {
		c.irq.Request(interrupt.LCD)
	}
}

func (c *Controller) setModeBits(mode uint8) {
	c.bus.SetSTAT((c.bus.STAT() &^ 0x03) | (mode & 0x03))
}

// updateCoincidence sets or clears STAT bit 2 depending on LY==LYC, and
// requests the LCDC interrupt on a match when STAT bit 6 is enabled.
func (c *Controller) updateCoincidence() {
	stat := c.bus.STAT()
	if c.bus.LY() == c.bus.LYC() {
		stat = bits.Set(stat, 2)
		if bits.Test(stat, 6) {
			c.irq.Request(interrupt.LCD)
		}
	} else {
		stat = bits.Reset(stat, 2)
	}
	c.bus.SetSTAT(stat)
}
