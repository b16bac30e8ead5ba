// Package integration exercises a full nes.Console end to end against
// a synthetic cartridge, without relying on any external ROM or image
// fixtures.
package integration

import (
	"testing"

	"github.com/jyane/gnes/nes"
)

// buildNROM assembles a minimal one-bank iNES image with program
// placed at $8000 and the reset vector pointing at it.
func buildNROM(program []byte) []byte {
	const prgBankSize = 0x4000
	prg := make([]byte, prgBankSize)
	copy(prg, program)
	prg[0xFFFC-0xC000] = 0x00
	prg[0xFFFD-0xC000] = 0x80
	header := []byte{'N', 'E', 'S', 0x1A, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	return append(header, prg...)
}

// TestConsoleRendersAFrame drives a console running a program that
// sets the PPU backdrop color and then spins forever, and checks that
// a complete 256x240 frame eventually comes out. Pixel colors are not
// checked.
func TestConsoleRendersAFrame(t *testing.T) {
	program := []byte{
		0xA9, 0x3F, // LDA #$3F
		0x8D, 0x06, 0x20, // STA $2006 (PPUADDR high byte, $3F00 = backdrop)
		0xA9, 0x00, // LDA #$00
		0x8D, 0x06, 0x20, // STA $2006 (PPUADDR low byte)
		0xA9, 0x16, // LDA #$16 (a palette index)
		0x8D, 0x07, 0x20, // STA $2007 (PPUDATA, writes the backdrop entry)
		0xA9, 0x1E, // LDA #$1E (enable background + sprites, PPUMASK)
		0x8D, 0x01, 0x20, // STA $2001
		0x4C, 0x14, 0x80, // JMP $8014 (spin)
	}
	cartridge, err := nes.NewCartridge(buildNROM(program))
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	console, err := nes.NewConsole(cartridge, false, nes.DefaultOptions())
	if err != nil {
		t.Fatalf("NewConsole: %v", err)
	}
	if err := console.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	const maxInstructions = 400000
	for i := 0; i < maxInstructions; i++ {
		if console.Halted() {
			t.Fatalf("console halted unexpectedly after %d instructions", i)
		}
		if _, err := console.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if frame, ok := console.Frame(); ok {
			if frame == nil {
				t.Fatalf("Frame reported ready but returned a nil image")
			}
			size := frame.Rect.Size()
			if size.X != 256 || size.Y != 240 {
				t.Fatalf("frame size = %v, want 256x240", size)
			}
			return
		}
	}
	t.Fatalf("no frame rendered within %d instructions", maxInstructions)
}

// TestConsoleSaveRAMWithoutBattery checks that a cartridge with no
// battery reports no save RAM to persist.
func TestConsoleSaveRAMWithoutBattery(t *testing.T) {
	cartridge, err := nes.NewCartridge(buildNROM([]byte{0xEA}))
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	console, err := nes.NewConsole(cartridge, false, nes.DefaultOptions())
	if err != nil {
		t.Fatalf("NewConsole: %v", err)
	}
	if sram := console.SaveRAM(); sram != nil {
		t.Fatalf("SaveRAM() = %v, want nil for a battery-less cartridge", sram)
	}
}
