package cpu

import (
	"testing"

	"github.com/thelolagemann/gomeboy/internal/interrupt"
	"github.com/thelolagemann/gomeboy/internal/memory"
	"github.com/thelolagemann/gomeboy/pkg/log"
)

// newCPU returns a CPU over a ROM image whose bytes are the given
// program, starting execution at 0x0100 as the hardware does.
func newCPU(program ...uint8) (*CPU, *memory.Bus, *interrupt.Controller) {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], program)

	bus := memory.New(rom, log.NewNullLogger())
	irq := interrupt.New(bus)
	c := New(bus, irq, log.NewNullLogger())
	return c, bus, irq
}

func TestAND_0xE6(t *testing.T) {
	c, _, _ := newCPU(0xE6, 0x0F) // AND A,0x0F
	c.A = 0xFC

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	if c.A != 0x0C {
		t.Errorf("A = 0x%02x, want 0x0C", c.A)
	}
	if !c.isFlagSet(FlagHalfCarry) {
		t.Error("AND must always set the half-carry flag")
	}
	if c.isFlagSet(FlagSubtract) || c.isFlagSet(FlagCarry) {
		t.Error("AND must clear N and C")
	}
}

func TestADD_0x80(t *testing.T) {
	c, _, _ := newCPU(0x80) // ADD A,B
	c.A = 0x3A
	c.B = 0xC6

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	if c.A != 0x00 {
		t.Errorf("A = 0x%02x, want 0x00", c.A)
	}
	if !c.isFlagSet(FlagZero) || !c.isFlagSet(FlagCarry) || !c.isFlagSet(FlagHalfCarry) {
		t.Errorf("F = 0x%02x, want Z, H and C all set", c.F)
	}
}

func TestSUB_0xD6(t *testing.T) {
	c, _, _ := newCPU(0xD6, 0x01) // SUB A,0x01
	c.A = 0x00

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	if c.A != 0xFF {
		t.Errorf("A = 0x%02x, want 0xFF", c.A)
	}
	if !c.isFlagSet(FlagSubtract) || !c.isFlagSet(FlagCarry) || !c.isFlagSet(FlagHalfCarry) {
		t.Errorf("F = 0x%02x, want N, H and C all set", c.F)
	}
}

func TestDEC_0x35_MemoryOperand(t *testing.T) {
	c, bus, _ := newCPU(0x35) // DEC (HL)
	c.HL.SetUint16(0xC000)
	bus.Write(0xC000, 0x01)

	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if cycles != 12 {
		t.Errorf("cycles = %d, want 12", cycles)
	}
	if got := bus.Read(0xC000); got != 0x00 {
		t.Errorf("(HL) = 0x%02x, want 0x00", got)
	}
	if !c.isFlagSet(FlagZero) {
		t.Error("expected Z set when DEC (HL) reaches zero")
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	c, _, _ := newCPU(0xC5, 0xD1) // PUSH BC ; POP DE
	c.BC.SetUint16(0xBEEF)
	c.SP = 0xFFFE

	if _, err := c.Step(); err != nil { // PUSH BC
		t.Fatalf("PUSH BC: %v", err)
	}
	if _, err := c.Step(); err != nil { // POP DE
		t.Fatalf("POP DE: %v", err)
	}

	if c.DE.Uint16() != 0xBEEF {
		t.Errorf("DE = 0x%04x, want 0xBEEF", c.DE.Uint16())
	}
	if c.SP != 0xFFFE {
		t.Errorf("SP = 0x%04x, want 0xFFFE (balanced push/pop)", c.SP)
	}
}

func TestPopAFMasksLowNibble(t *testing.T) {
	c, _, _ := newCPU(0xF1) // POP AF
	c.SP = 0xFFFC
	c.push(0x12FF) // low byte would set every F bit if not masked

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	if c.F&0x0F != 0 {
		t.Errorf("F = 0x%02x, low nibble must always read zero", c.F)
	}
}

func TestUndefinedOpcodeReturnsFault(t *testing.T) {
	c, _, _ := newCPU(0xD3) // reserved, never dispatched
	_, err := c.Step()
	if err == nil {
		t.Fatal("expected a Fault for opcode 0xD3")
	}
	fault, ok := err.(*Fault)
	if !ok {
		t.Fatalf("error type = %T, want *Fault", err)
	}
	if fault.Opcode != 0xD3 {
		t.Errorf("Fault.Opcode = 0x%02x, want 0xD3", fault.Opcode)
	}
}

func TestHaltBugExecutesFollowingInstructionTwice(t *testing.T) {
	// HALT with IME=0 and an interrupt already pending runs the
	// instruction immediately after HALT normally, but PC fails to
	// advance past it afterwards, so the next Step re-executes the same
	// instruction a second time.
	c, bus, irq := newCPU(0x76, 0x3C) // HALT ; INC A
	bus.Write(0xFFFF, interrupt.Timer)
	irq.Request(interrupt.Timer)
	irq.IME = false

	if _, err := c.Step(); err != nil { // executes HALT, detects the bug condition
		t.Fatalf("HALT step: %v", err)
	}
	if c.mode != modeHaltBug {
		t.Fatalf("mode = %d, want modeHaltBug", c.mode)
	}

	before := c.A
	if _, err := c.Step(); err != nil { // first execution of INC A
		t.Fatalf("bugged step: %v", err)
	}
	if c.A != before+1 {
		t.Errorf("A = %d, want %d after the first execution", c.A, before+1)
	}
	if c.PC != 0x0101 {
		t.Errorf("PC = 0x%04x, want 0x0101 (left pointing at INC A again)", c.PC)
	}

	if _, err := c.Step(); err != nil { // duplicate execution of INC A
		t.Fatalf("duplicate step: %v", err)
	}
	if c.A != before+2 {
		t.Errorf("A = %d, want %d after the duplicate execution", c.A, before+2)
	}
	if c.PC != 0x0102 {
		t.Errorf("PC = 0x%04x, want 0x0102", c.PC)
	}
}

func TestEIDelaysIMEByOneInstruction(t *testing.T) {
	c, bus, irq := newCPU(0xFB, 0x00, 0x00) // EI ; NOP ; NOP
	bus.Write(0xFFFF, interrupt.Timer)

	if _, err := c.Step(); err != nil { // EI
		t.Fatalf("EI step: %v", err)
	}
	if irq.IME {
		t.Error("IME should not be set immediately after EI")
	}

	irq.Request(interrupt.Timer)
	if _, err := c.Step(); err != nil { // NOP: IME goes live, then the pending Timer interrupt dispatches immediately
		t.Fatalf("NOP step: %v", err)
	}
	if c.PC != 0x0050 {
		t.Errorf("PC = 0x%04x, want 0x0050 (Timer interrupt should dispatch once IME goes live)", c.PC)
	}
	if irq.IME {
		t.Error("IME should have been cleared again by the interrupt dispatch")
	}
}

func TestCondBranchNotTakenSkipsOperand(t *testing.T) {
	c, _, _ := newCPU(0xC2, 0x00, 0x02, 0x3C) // JP NZ,0x0200 ; INC A
	c.setFlag(FlagZero)                       // NZ is false

	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if cycles != 12 {
		t.Errorf("cycles = %d, want 12 for a not-taken JP cc,nn", cycles)
	}
	if c.PC != 0x0103 {
		t.Errorf("PC = 0x%04x, want 0x0103 (should fall through to the next instruction)", c.PC)
	}
}

func TestCondBranchTakenPaysExtraCycle(t *testing.T) {
	c, _, _ := newCPU(0xC2, 0x00, 0x02) // JP NZ,0x0200
	c.clearFlag(FlagZero)

	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if cycles != 16 {
		t.Errorf("cycles = %d, want 16 for a taken JP cc,nn", cycles)
	}
	if c.PC != 0x0200 {
		t.Errorf("PC = 0x%04x, want 0x0200", c.PC)
	}
}
