package nes

import "testing"

func newTestConsole(t *testing.T, program []byte) Console {
	t.Helper()
	cartridge, err := NewCartridge(buildNROM(program))
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	console, err := NewConsole(cartridge, false, DefaultOptions())
	if err != nil {
		t.Fatalf("NewConsole: %v", err)
	}
	if err := console.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return console
}

func TestNewConsoleDebugModeReturnsDebugConsole(t *testing.T) {
	cartridge, err := NewCartridge(buildNROM([]byte{0xEA}))
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	console, err := NewConsole(cartridge, true, DefaultOptions())
	if err != nil {
		t.Fatalf("NewConsole: %v", err)
	}
	if _, ok := console.(*DebugConsole); !ok {
		t.Fatalf("NewConsole(debug=true) returned %T, want *DebugConsole", console)
	}
}

func TestConsoleStepAdvancesAndAccountsCycles(t *testing.T) {
	console := newTestConsole(t, []byte{0xEA, 0xEA, 0xEA}) // NOP NOP NOP
	cycles, err := console.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if cycles != 2 {
		t.Fatalf("Step() cycles = %d, want 2 for a NOP", cycles)
	}
}

func TestConsoleHaltedOnJAM(t *testing.T) {
	console := newTestConsole(t, []byte{0x02}) // JAM
	if console.Halted() {
		t.Fatal("console halted before any Step")
	}
	if _, err := console.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !console.Halted() {
		t.Fatal("console not halted after stepping a JAM opcode")
	}
}

func TestConsoleSaveRAMNilWithoutBattery(t *testing.T) {
	console := newTestConsole(t, []byte{0xEA})
	if sram := console.SaveRAM(); sram != nil {
		t.Fatalf("SaveRAM() = %v, want nil for a battery-less cartridge", sram)
	}
}
