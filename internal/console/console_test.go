package console

import "testing"

func TestStepAdvancesTimerAndLCDByCPUCycles(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x0100] = 0x00 // NOP

	c := New(rom)

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	// a single NOP costs 4 T-states; the timer's DIV accumulator should
	// have observed exactly that many.
	if c.Bus.DIV() != 0 {
		t.Errorf("DIV = %d, want 0 after only 4 cycles", c.Bus.DIV())
	}
}

func TestRunFrameStopsOnFault(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x0100] = 0xD3 // reserved opcode

	c := New(rom)

	if err := c.RunFrame(); err == nil {
		t.Fatal("expected RunFrame to return the undefined-opcode Fault")
	}
}

func TestScanlineHookWiredThroughOption(t *testing.T) {
	rom := make([]byte, 0x8000)
	var seen []uint8

	c := New(rom, WithScanlineHook(func(line uint8) { seen = append(seen, line) }))

	for i := 0; i < CyclesPerFrame/4; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatalf("Step() error = %v", err)
		}
	}

	if len(seen) == 0 {
		t.Error("expected the scanline hook to have fired at least once across a full frame")
	}
}
