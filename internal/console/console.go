// Package console wires the CPU, memory bus, timer, LCD status unit, and
// interrupt controller together into a single steppable Game Boy core,
// following the teacher's GameBoy/GameBoyOpt construction pattern.
package console

import (
	"github.com/thelolagemann/gomeboy/internal/cpu"
	"github.com/thelolagemann/gomeboy/internal/interrupt"
	"github.com/thelolagemann/gomeboy/internal/lcd"
	"github.com/thelolagemann/gomeboy/internal/memory"
	"github.com/thelolagemann/gomeboy/internal/timer"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

const (
	// ClockSpeed is the DMG's clock speed in Hz.
	ClockSpeed = 4194304
	// CyclesPerFrame is the number of T-states in one 59.7Hz video frame.
	CyclesPerFrame = 70224
)

// Console is a complete, steppable Game Boy core: CPU, memory map, timer
// and LCD status unit, and the interrupt controller binding them
// together. It does not perform pixel rasterization or audio synthesis —
// those remain external collaborators, invoked through the scanline hook
// supplied via WithScanlineHook.
type Console struct {
	CPU       *cpu.CPU
	Bus       *memory.Bus
	Timer     *timer.Controller
	LCD       *lcd.Controller
	Interrupt *interrupt.Controller

	log log.Logger
}

// Opt configures a Console at construction time.
type Opt func(*Console)

// WithLogger overrides the default null logger.
func WithLogger(l log.Logger) Opt {
	return func(c *Console) { c.log = l }
}

// WithScanlineHook registers fn to be called with the line number whenever
// the LCD status unit finishes rendering a visible scanline.
func WithScanlineHook(fn lcd.ScanlineFunc) Opt {
	return func(c *Console) {
		c.LCD = lcd.New(c.Bus, c.Interrupt, fn)
	}
}

// New assembles a Console around the given cartridge ROM image.
func New(rom []byte, opts ...Opt) *Console {
	logger := log.NewNullLogger()

	bus := memory.New(rom, logger)
	irq := interrupt.New(bus)
	tim := timer.New(bus, irq)
	lcdCtl := lcd.New(bus, irq, nil)
	core := cpu.New(bus, irq, logger)

	c := &Console{
		CPU:       core,
		Bus:       bus,
		Timer:     tim,
		LCD:       lcdCtl,
		Interrupt: irq,
		log:       logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Step executes exactly one CPU instruction (or interrupt dispatch, or
// halted tick) and advances the timer and LCD status unit by the same
// number of cycles, preserving the fixed ordering: CPU executes, then
// the timer observes the elapsed cycles, then the LCD unit observes
// them, then any newly pending interrupt is left for the next Step to
// dispatch. It returns the number of T-states consumed.
func (c *Console) Step() (uint8, error) {
	cycles, err := c.CPU.Step()
	if err != nil {
		c.log.Errorf("console: step failed: %v", err)
		return cycles, err
	}

	c.Timer.Step(cycles)
	c.LCD.Step(cycles)

	return cycles, nil
}

// RunFrame steps the console until at least CyclesPerFrame T-states have
// elapsed, returning early with the Fault if the CPU hits an undefined
// opcode partway through.
func (c *Console) RunFrame() error {
	var elapsed uint32
	for elapsed < CyclesPerFrame {
		cycles, err := c.Step()
		if err != nil {
			return err
		}
		elapsed += uint32(cycles)
	}
	return nil
}
