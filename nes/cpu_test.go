package nes

import "testing"

// buildNROM assembles a minimal valid iNES image: one 16 KiB PRG-ROM
// bank (mapped at $8000-$BFFF and mirrored at $C000-$FFFF by mapper
// 0), CHR-RAM, horizontal mirroring. program is placed at the start
// of the bank and the reset vector points at it.
func buildNROM(program []byte) []byte {
	prg := make([]byte, prgROMSizeUnit)
	copy(prg, program)
	prg[0xFFFC-0xC000] = 0x00
	prg[0xFFFD-0xC000] = 0x80
	header := []byte{'N', 'E', 'S', MSDOSEOF, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	return append(header, prg...)
}

// newTestCPU builds a CPU wired to a synthetic NROM cartridge holding
// program at $8000, reset vector included.
func newTestCPU(t *testing.T, program []byte) *CPU {
	t.Helper()
	cartridge, err := NewCartridge(buildNROM(program))
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	mapper, err := NewMapper(cartridge)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	controller := NewController()
	ppuBus := NewPPUBus(NewRAM(), mapper)
	ppu := NewPPU(ppuBus, DefaultOptions())
	apu := NewAPU()
	cpuBus := NewCPUBus(NewRAM(), ppu, apu, mapper, controller)
	apu.SetMemoryReader(cpuBus.read)
	return NewCPU(cpuBus)
}

// run steps the CPU n instructions, failing the test if it halts
// (JAM/KIL) first.
func run(t *testing.T, c *CPU, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if c.Halted() {
			t.Fatalf("CPU halted after %d of %d steps, PC=0x%04x", i, n, c.PC)
		}
		c.Do()
	}
}

func TestCPUReset(t *testing.T) {
	c := newTestCPU(t, []byte{0xEA}) // NOP
	if c.PC != 0x8000 {
		t.Errorf("PC = 0x%04x, want 0x8000", c.PC)
	}
	if c.S != 0xFD {
		t.Errorf("S = 0x%02x, want 0xFD", c.S)
	}
	if !c.P.I {
		t.Errorf("I flag should be set after reset")
	}
}

func TestLDAImmediateSetsZN(t *testing.T) {
	c := newTestCPU(t, []byte{0xA9, 0x00, 0xA9, 0x80, 0xA9, 0x05})
	run(t, c, 1)
	if c.A != 0x00 || !c.P.Z || c.P.N {
		t.Fatalf("LDA #$00: A=0x%02x Z=%v N=%v", c.A, c.P.Z, c.P.N)
	}
	run(t, c, 1)
	if c.A != 0x80 || c.P.Z || !c.P.N {
		t.Fatalf("LDA #$80: A=0x%02x Z=%v N=%v", c.A, c.P.Z, c.P.N)
	}
	run(t, c, 1)
	if c.A != 0x05 || c.P.Z || c.P.N {
		t.Fatalf("LDA #$05: A=0x%02x Z=%v N=%v", c.A, c.P.Z, c.P.N)
	}
}

// TestCompareCarrySemantics checks the register>=value carry rule for
// CMP, which is easy to get backwards (carry is set on >=, not just >).
func TestCompareCarrySemantics(t *testing.T) {
	c := newTestCPU(t, []byte{
		0xA9, 0x05, // LDA #$05
		0xC9, 0x05, // CMP #$05 (equal)
		0xC9, 0x0A, // CMP #$0A (A < value)
		0xC9, 0x01, // CMP #$01 (A > value)
	})
	run(t, c, 2)
	if !c.P.C || !c.P.Z {
		t.Fatalf("CMP equal: C=%v Z=%v, want both true", c.P.C, c.P.Z)
	}
	run(t, c, 1)
	if c.P.C {
		t.Fatalf("CMP A<value: C=%v, want false", c.P.C)
	}
	run(t, c, 1)
	if !c.P.C || c.P.Z {
		t.Fatalf("CMP A>value: C=%v Z=%v, want C=true Z=false", c.P.C, c.P.Z)
	}
}

// TestINCIncrementsNotDecrements guards against a direction swap
// between INC/DEC at the zero page.
func TestINCIncrementsNotDecrements(t *testing.T) {
	c := newTestCPU(t, []byte{
		0xA9, 0x10, // LDA #$10
		0x85, 0x00, // STA $00
		0xE6, 0x00, // INC $00
	})
	run(t, c, 3)
	if got := c.bus.read(0x00); got != 0x11 {
		t.Fatalf("$00 = 0x%02x, want 0x11", got)
	}
}

// TestADCOverflowFlag checks the signed-overflow formula: adding two
// positives that produce a negative result sets V.
func TestADCOverflowFlag(t *testing.T) {
	c := newTestCPU(t, []byte{
		0x18,       // CLC
		0xA9, 0x7F, // LDA #$7F (+127)
		0x69, 0x01, // ADC #$01 -> 0x80, signed overflow
	})
	run(t, c, 3)
	if c.A != 0x80 {
		t.Fatalf("A = 0x%02x, want 0x80", c.A)
	}
	if !c.P.V {
		t.Fatalf("V flag not set on signed overflow")
	}
	if !c.P.N {
		t.Fatalf("N flag not set for 0x80 result")
	}
}

// TestSBCBorrow checks SBC's carry-as-not-borrow convention.
func TestSBCBorrow(t *testing.T) {
	c := newTestCPU(t, []byte{
		0x38,       // SEC (no borrow going in)
		0xA9, 0x05, // LDA #$05
		0xE9, 0x01, // SBC #$01 -> 4, C set (no borrow out)
		0xE9, 0x05, // SBC #$05 -> underflow, C clear (borrow out)
	})
	run(t, c, 3)
	if c.A != 0x04 || !c.P.C {
		t.Fatalf("5-1: A=0x%02x C=%v, want A=0x04 C=true", c.A, c.P.C)
	}
	run(t, c, 1)
	if c.P.C {
		t.Fatalf("4-5: C=%v, want false (borrow)", c.P.C)
	}
}

// TestIndirectXDoubleIndirection checks (zp,X) addressing: the zero
// page pointer wraps within page zero, and the 16-bit target is then
// read from that wrapped location.
func TestIndirectXDoubleIndirection(t *testing.T) {
	c := newTestCPU(t, []byte{
		0xA2, 0x01, // LDX #$01
		0xA1, 0xFF, // LDA ($FF,X) -> pointer at (0xFF+1)&0xFF = 0x00
	})
	c.bus.write(0x00, 0x00) // target low byte
	c.bus.write(0x01, 0x60) // target high byte -> $6000 (PRG-RAM)
	c.bus.write(0x6000, 0x42)
	run(t, c, 2)
	if c.A != 0x42 {
		t.Fatalf("A = 0x%02x, want 0x42", c.A)
	}
}

// TestIndirectYAddsYAfterPointer checks (zp),Y: the 16-bit base is
// read through the zero page pointer first and Y is added to that
// base, whereas (zp,X) adds X to the zero page pointer itself.
func TestIndirectYAddsYAfterPointer(t *testing.T) {
	c := newTestCPU(t, []byte{
		0xA0, 0x05, // LDY #$05
		0xB1, 0x10, // LDA ($10),Y
	})
	c.bus.write(0x10, 0x00) // base low
	c.bus.write(0x11, 0x60) // base high -> $6000 (PRG-RAM)
	c.bus.write(0x6005, 0x55)
	run(t, c, 2)
	if c.A != 0x55 {
		t.Fatalf("A = 0x%02x, want 0x55", c.A)
	}
}

// TestJMPIndirectPageWrapBug reproduces the famous 6502 bug: JMP
// ($xxFF) fetches the high byte from $xx00 instead of crossing into
// the next page.
func TestJMPIndirectPageWrapBug(t *testing.T) {
	c := newTestCPU(t, []byte{
		0x6C, 0xFF, 0x02, // JMP ($02FF)
	})
	c.bus.write(0x02FF, 0x34) // low byte of target
	c.bus.write(0x0200, 0x12) // high byte, per the hardware bug (not $0300)
	c.bus.write(0x0300, 0xFF) // decoy: must not be used
	run(t, c, 1)
	if c.PC != 0x1234 {
		t.Fatalf("PC = 0x%04x, want 0x1234 (page-wrap bug)", c.PC)
	}
}

// TestBranchCycleAccounting checks that a taken branch costs an extra
// cycle over a not-taken one.
func TestBranchCycleAccounting(t *testing.T) {
	c := newTestCPU(t, []byte{
		0xA9, 0x01, // LDA #$01 (Z clear)
		0xF0, 0x10, // BEQ +16, not taken
	})
	run(t, c, 1)
	if cycles := c.Do(); cycles != 2 {
		t.Fatalf("not-taken BEQ cost %d cycles, want 2", cycles)
	}

	c = newTestCPU(t, []byte{
		0xA9, 0x01, // LDA #$01 (Z clear)
		0xD0, 0x02, // BNE +2, taken, stays on page $80
	})
	run(t, c, 1)
	if cycles := c.Do(); cycles != 3 {
		t.Fatalf("same-page taken BNE cost %d cycles, want 3", cycles)
	}
}

// TestPageCrossPenalty checks that absolute,X reads pay an extra
// cycle only when the effective address crosses a page boundary.
func TestPageCrossPenalty(t *testing.T) {
	c := newTestCPU(t, []byte{
		0xA2, 0x01, // LDX #$01
		0xBD, 0x00, 0x81, // LDA $8100,X -> $8101, no page cross
	})
	run(t, c, 1)
	if cycles := c.Do(); cycles != 4 {
		t.Fatalf("no-page-cross absolute,X cost %d cycles, want 4", cycles)
	}

	c = newTestCPU(t, []byte{
		0xA2, 0xFF, // LDX #$FF
		0xBD, 0x02, 0x81, // LDA $8102,X -> $8201, page cross
	})
	run(t, c, 1)
	if cycles := c.Do(); cycles != 5 {
		t.Fatalf("page-cross absolute,X cost %d cycles, want 5", cycles)
	}
}

// TestIRQMaskedByIFlag checks that an asserted IRQ line is ignored
// while the I flag is set, and serviced once it's cleared.
func TestIRQMaskedByIFlag(t *testing.T) {
	c := newTestCPU(t, []byte{
		0xEA, // NOP, I flag still set from reset
		0x58, // CLI
		0xEA, // NOP, IRQ should preempt this
	})
	prg := c.bus.mapper.(*mapper0).prgROM // vectors live in PRG-ROM, which the bus won't write
	prg[0xFFFE-0xC000] = 0x00
	prg[0xFFFF-0xC000] = 0x90 // IRQ vector -> $9000
	c.SetIRQLine(true)

	run(t, c, 1) // NOP, I still set: IRQ must not fire
	if c.PC == 0x9000 {
		t.Fatalf("IRQ fired while I flag set")
	}
	run(t, c, 1) // CLI
	if c.P.I {
		t.Fatalf("I flag still set after CLI")
	}
	c.Do() // services the IRQ instead of the second NOP
	if c.PC != 0x9000 {
		t.Fatalf("PC = 0x%04x after IRQ, want 0x9000", c.PC)
	}
}

// TestNMITakesPriorityOverIRQ checks that a pending NMI is serviced
// ahead of a simultaneously-asserted IRQ.
func TestNMITakesPriorityOverIRQ(t *testing.T) {
	c := newTestCPU(t, []byte{0xEA})
	prg := c.bus.mapper.(*mapper0).prgROM // vectors live in PRG-ROM, which the bus won't write
	prg[0xFFFA-0xC000] = 0x00
	prg[0xFFFB-0xC000] = 0xA0 // NMI vector -> $A000
	prg[0xFFFE-0xC000] = 0x00
	prg[0xFFFF-0xC000] = 0xB0 // IRQ vector -> $B000
	c.P.I = false
	c.SetIRQLine(true)
	c.nmiTriggered = true
	c.Do()
	if c.PC != 0xA000 {
		t.Fatalf("PC = 0x%04x, want 0xA000 (NMI should win)", c.PC)
	}
}

// TestUnofficialLAX checks the combined LDA+LDX unofficial opcode.
func TestUnofficialLAX(t *testing.T) {
	c := newTestCPU(t, []byte{
		0xA9, 0x77, // LDA #$77
		0x85, 0x10, // STA $10
		0xA7, 0x10, // LAX $10
	})
	run(t, c, 3)
	if c.A != 0x77 || c.X != 0x77 {
		t.Fatalf("LAX: A=0x%02x X=0x%02x, want both 0x77", c.A, c.X)
	}
}

// TestUnofficialSAX checks that SAX stores A&X.
func TestUnofficialSAX(t *testing.T) {
	c := newTestCPU(t, []byte{
		0xA9, 0xF0, // LDA #$F0
		0xA2, 0x0F, // LDX #$0F
		0x87, 0x20, // SAX $20 -> stores A&X = 0x00
	})
	run(t, c, 3)
	if got := c.bus.read(0x20); got != 0x00 {
		t.Fatalf("SAX stored 0x%02x, want 0x00", got)
	}
}

// TestUnofficialDCP checks DEC-then-CMP fused into one opcode.
func TestUnofficialDCP(t *testing.T) {
	c := newTestCPU(t, []byte{
		0xA9, 0x05, // LDA #$05
		0x85, 0x30, // STA $30 (mem = 5)
		0xC7, 0x30, // DCP $30 -> mem becomes 4, CMP A(5) vs 4
	})
	run(t, c, 3)
	if got := c.bus.read(0x30); got != 0x04 {
		t.Fatalf("$30 = 0x%02x, want 0x04", got)
	}
	if !c.P.C || c.P.Z {
		t.Fatalf("DCP flags: C=%v Z=%v, want C=true Z=false", c.P.C, c.P.Z)
	}
}

// TestJAMHaltsCPU checks that an unofficial JAM/KIL opcode locks the
// CPU up: Do() stops advancing PC or executing further instructions.
func TestJAMHaltsCPU(t *testing.T) {
	c := newTestCPU(t, []byte{0x02}) // JAM
	c.Do()
	if !c.Halted() {
		t.Fatalf("CPU not halted after JAM opcode")
	}
	pc := c.PC
	c.Do()
	if c.PC != pc {
		t.Fatalf("PC advanced after halt: 0x%04x -> 0x%04x", pc, c.PC)
	}
}
