package memory

import (
	"testing"

	"github.com/thelolagemann/gomeboy/pkg/log"
)

func newBus(rom []byte) *Bus {
	return New(rom, log.NewNullLogger())
}

func TestReadWriteWRAM(t *testing.T) {
	b := newBus(nil)
	b.Write(0xC000, 0x42)
	if got := b.Read(0xC000); got != 0x42 {
		t.Errorf("Read(0xC000) = 0x%02x, want 0x42", got)
	}
}

func TestEchoRAMAliasesWRAM(t *testing.T) {
	b := newBus(nil)
	b.Write(0xC010, 0x99)
	if got := b.Read(0xE010); got != 0x99 {
		t.Errorf("Read(0xE010) = 0x%02x, want 0x99 (echo of WRAM)", got)
	}
}

func TestROMWritesAreIgnored(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0] = 0xAB
	b := newBus(rom)
	b.Write(0x0000, 0xFF)
	if got := b.Read(0x0000); got != 0xAB {
		t.Errorf("Read(0x0000) = 0x%02x, want 0xAB (ROM write should be dropped)", got)
	}
}

func TestReadBeyondROMLengthReturnsOpenBus(t *testing.T) {
	rom := []byte{0x01, 0x02}
	b := newBus(rom)
	if got := b.Read(0x7FFF); got != 0xFF {
		t.Errorf("Read(0x7FFF) = 0x%02x, want 0xFF", got)
	}
}

func TestDIVWriteResetsToZero(t *testing.T) {
	b := newBus(nil)
	for i := 0; i < 5; i++ {
		b.SetDIV(b.DIV() + 1)
	}
	if b.DIV() == 0 {
		t.Fatal("expected DIV to be nonzero before the test write")
	}
	b.Write(0xFF04, 0x37)
	if got := b.DIV(); got != 0 {
		t.Errorf("DIV after write = 0x%02x, want 0x00", got)
	}
}

func TestPostBootDefaults(t *testing.T) {
	b := newBus(nil)
	if got := b.LCDC(); got != 0x91 {
		t.Errorf("LCDC = 0x%02x, want 0x91", got)
	}
}

func TestUnusableRegionReadsZero(t *testing.T) {
	b := newBus(nil)
	if got := b.Read(0xFEA0); got != 0 {
		t.Errorf("Read(0xFEA0) = 0x%02x, want 0x00", got)
	}
}
