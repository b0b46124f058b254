package timer

import (
	"testing"

	"github.com/thelolagemann/gomeboy/internal/interrupt"
	"github.com/thelolagemann/gomeboy/internal/memory"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

func newTimer() (*Controller, *memory.Bus, *interrupt.Controller) {
	bus := memory.New(nil, log.NewNullLogger())
	irq := interrupt.New(bus)
	return New(bus, irq), bus, irq
}

func TestDIVIncrementsEvery256Cycles(t *testing.T) {
	c, bus, _ := newTimer()
	c.Step(255)
	if bus.DIV() != 0 {
		t.Fatalf("DIV = %d after 255 cycles, want 0", bus.DIV())
	}
	c.Step(1)
	if bus.DIV() != 1 {
		t.Fatalf("DIV = %d after 256 cycles, want 1", bus.DIV())
	}
}

func TestTIMADoesNotTickWhenDisabled(t *testing.T) {
	c, bus, _ := newTimer()
	bus.SetTAC(0x01) // enabled bit (0x04) clear, select bits = 01 (period 16)
	c.Step(16)
	if bus.TIMA() != 0 {
		t.Errorf("TIMA = %d, want 0 (timer not enabled)", bus.TIMA())
	}
}

func TestTIMAOverflowReloadsFromTMAAndRequestsInterrupt(t *testing.T) {
	c, bus, irq := newTimer()
	bus.Write(0xFFFF, interrupt.Timer)
	bus.SetTAC(0x05) // enabled, period 16
	bus.Write(0xFF06, 0x10) // TMA
	bus.SetTIMA(0xFF)

	c.Step(16)

	if bus.TIMA() != 0x10 {
		t.Errorf("TIMA = 0x%02x after overflow, want TMA (0x10)", bus.TIMA())
	}
	if !irq.Pending() {
		t.Error("expected Timer interrupt to be pending after TIMA overflow")
	}
}

func TestChangingTACPeriodResetsAccumulator(t *testing.T) {
	c, bus, _ := newTimer()
	bus.SetTAC(0x04) // enabled, period 1024
	c.Step(1000)
	bus.SetTAC(0x05) // switch to period 16; accumulator must not carry stale progress
	c.Step(15)
	if bus.TIMA() != 0 {
		t.Errorf("TIMA = %d, want 0 (accumulator should have reset on period change)", bus.TIMA())
	}
}
