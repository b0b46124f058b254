// Package memory implements the Game Boy's unified 16-bit address space:
// cartridge ROM, VRAM, external RAM, working RAM (and its echo), OAM, and
// the I/O + high RAM region that holds the MMIO registers the timer, LCD
// and interrupt units observe.
//
// The Bus itself is deliberately naive about hardware semantics — it
// routes reads and writes to the right byte and nothing else. The one
// exception is the DIV register, which hardware resets to zero on any
// write regardless of the value written; that behaviour lives here
// because it's a property of the address, not of any one subsystem.
package memory

import "github.com/thelolagemann/gomeboy/pkg/log"

// MMIO register offsets within the I/O region (0xFF00 + offset).
const (
	DIV  = 0x04
	TIMA = 0x05
	TMA  = 0x06
	TAC  = 0x07
	IF   = 0x0F
	LCDC = 0x40
	STAT = 0x41
	SCY  = 0x42
	SCX  = 0x43
	LY   = 0x44
	LYC  = 0x45
	BGP  = 0x47
	OBP0 = 0x48
	OBP1 = 0x49
	WY   = 0x4A
	WX   = 0x4B
	IE   = 0xFF // 0xFFFF
)

const (
	vramSize = 0x2000
	eramSize = 0x2000
	wramSize = 0x2000
	oamSize  = 0xA0
	ioSize   = 0x100
)

// Bus is the Game Boy's 64kB address space. It owns every RAM region the
// core is responsible for; the cartridge ROM is supplied by the caller and
// treated as immutable.
type Bus struct {
	rom  []byte
	vram [vramSize]byte
	eram [eramSize]byte
	wram [wramSize]byte
	oam  [oamSize]byte
	io   [ioSize]byte // 0xFF00-0xFFFF, IE lives at io[0xFF]

	Log log.Logger
}

// New returns a Bus with the given cartridge ROM and the documented
// post-boot MMIO defaults, as if the boot ROM had already run.
func New(rom []byte, logger log.Logger) *Bus {
	b := &Bus{rom: rom, Log: logger}
	b.io[LCDC] = 0x91
	b.io[BGP] = 0xFC
	b.io[OBP0] = 0xFF
	b.io[OBP1] = 0xFF
	b.io[TIMA] = 0x00
	b.io[TMA] = 0x00
	b.io[TAC] = 0x00
	b.io[IE] = 0x00
	return b
}

// Read returns the byte at addr, dispatching on the region it falls in.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x7FFF:
		return b.readROM(addr)
	case addr <= 0x9FFF:
		return b.vram[addr&0x1FFF]
	case addr <= 0xBFFF:
		return b.eram[addr&0x1FFF]
	case addr <= 0xFDFF:
		return b.wram[addr&0x1FFF] // 0xC000-0xDFFF, with 0xE000-0xFDFF as the echo alias
	case addr <= 0xFE9F:
		return b.oam[addr-0xFE00]
	case addr <= 0xFEFF:
		return 0 // unusable
	default:
		return b.io[addr-0xFF00] // 0xFF00-0xFFFF, IE at io[0xFF]
	}
}

// Write stores value at addr, silently dropping writes to ROM and to the
// unusable region, and honouring the DIV-reset-on-write rule.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr <= 0x7FFF:
		// cartridge ROM is read-only
	case addr <= 0x9FFF:
		b.vram[addr&0x1FFF] = value
	case addr <= 0xBFFF:
		b.eram[addr&0x1FFF] = value
	case addr <= 0xFDFF:
		b.wram[addr&0x1FFF] = value
	case addr <= 0xFE9F:
		b.oam[addr-0xFE00] = value
	case addr <= 0xFEFF:
		// unusable, writes ignored
	case addr == 0xFF00+DIV:
		b.io[DIV] = 0
	default:
		b.io[addr-0xFF00] = value
	}
}

// readROM returns the cartridge byte at addr, or 0xFF (open-bus) if addr
// falls beyond the supplied ROM image.
func (b *Bus) readROM(addr uint16) uint8 {
	if int(addr) < len(b.rom) {
		return b.rom[addr]
	}
	return 0xFF
}

// Register accessors used by the timer, LCD and interrupt units. These are
// plain reads/writes of the same bytes Read/Write would produce for the
// corresponding address — they exist for callers who want the MMIO
// register by name instead of by address.

func (b *Bus) reg(offset uint16) uint8       { return b.io[offset] }
func (b *Bus) setReg(offset uint16, v uint8) { b.io[offset] = v }

func (b *Bus) DIV() uint8         { return b.reg(DIV) }
func (b *Bus) SetDIV(v uint8)     { b.setReg(DIV, v) }
func (b *Bus) TIMA() uint8        { return b.reg(TIMA) }
func (b *Bus) SetTIMA(v uint8)    { b.setReg(TIMA, v) }
func (b *Bus) TMA() uint8         { return b.reg(TMA) }
func (b *Bus) TAC() uint8         { return b.reg(TAC) }
func (b *Bus) SetTAC(v uint8)     { b.setReg(TAC, v) }
func (b *Bus) IF() uint8          { return b.reg(IF) }
func (b *Bus) SetIF(v uint8)      { b.setReg(IF, v) }
func (b *Bus) IE() uint8          { return b.reg(IE) }
func (b *Bus) LCDC() uint8        { return b.reg(LCDC) }
func (b *Bus) STAT() uint8        { return b.reg(STAT) }
func (b *Bus) SetSTAT(v uint8)    { b.setReg(STAT, v) }
func (b *Bus) LY() uint8          { return b.reg(LY) }
func (b *Bus) SetLY(v uint8)      { b.setReg(LY, v) }
func (b *Bus) LYC() uint8         { return b.reg(LYC) }
