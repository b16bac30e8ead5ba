package nes

import "testing"

func newTestPPU(t *testing.T) *PPU {
	t.Helper()
	header := iNESHeader(1, 0, 0, 0) // CHR-RAM, horizontal mirroring
	data := append(header, make([]byte, prgROMSizeUnit)...)
	cartridge, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	mapper, err := NewMapper(cartridge)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	bus := NewPPUBus(NewRAM(), mapper)
	return NewPPU(bus, DefaultOptions())
}

// writePPUADDRFull issues the two $2006 writes real code does: high
// byte then low byte.
func writePPUADDRFull(p *PPU, address uint16) {
	p.writePPUADDR(byte(address >> 8))
	p.writePPUADDR(byte(address))
}

func TestPPUPaletteRAMWriteReadRoundTrip(t *testing.T) {
	p := newTestPPU(t)
	writePPUADDRFull(p, 0x3F00)
	if err := p.writePPUDATA(0x16); err != nil {
		t.Fatalf("writePPUDATA: %v", err)
	}
	writePPUADDRFull(p, 0x3F00)
	got, err := p.readPPUDATA()
	if err != nil {
		t.Fatalf("readPPUDATA: %v", err)
	}
	if got != 0x16 {
		t.Fatalf("palette readback = 0x%02x, want 0x16 (palette reads aren't buffered like other PPUDATA reads)", got)
	}
}

func TestPPUDATAReadIsBufferedForNonPalette(t *testing.T) {
	p := newTestPPU(t)
	writePPUADDRFull(p, 0x2000)
	if err := p.writePPUDATA(0xAB); err != nil {
		t.Fatalf("writePPUDATA: %v", err)
	}
	writePPUADDRFull(p, 0x2000)
	first, err := p.readPPUDATA()
	if err != nil {
		t.Fatalf("readPPUDATA: %v", err)
	}
	if first == 0xAB {
		t.Fatalf("first non-palette PPUDATA read returned the fresh value 0x%02x immediately; it should return the stale buffered byte first", first)
	}
	second, err := p.readPPUDATA()
	if err != nil {
		t.Fatalf("readPPUDATA: %v", err)
	}
	if second != 0xAB {
		t.Fatalf("second PPUDATA read = 0x%02x, want 0xAB (now caught up to the buffer)", second)
	}
}

func TestPPUDATAVRAMIncrement(t *testing.T) {
	p := newTestPPU(t)
	p.writePPUCTRL(0) // vramIncrementFlag = 0 -> +1 per access
	writePPUADDRFull(p, 0x2000)
	p.writePPUDATA(0x01)
	if p.v != 0x2001 {
		t.Fatalf("v = 0x%04x after a +1-increment write, want 0x2001", p.v)
	}

	p.writePPUCTRL(0x04) // bit 2 -> +32 per access
	writePPUADDRFull(p, 0x2000)
	p.writePPUDATA(0x01)
	if p.v != 0x2020 {
		t.Fatalf("v = 0x%04x after a +32-increment write, want 0x2020", p.v)
	}
}

func TestPPU8x16SpriteAddressing(t *testing.T) {
	p := newTestPPU(t)
	p.writePPUCTRL(0x20)  // sprite size flag -> 8x16
	p.writePPUMASK(0x10)  // show sprites
	for i := 4; i < len(p.primaryOAM); i += 4 {
		p.primaryOAM[i] = 0xFF // park the other 63 sprites below the screen
	}
	p.primaryOAM[0] = 10  // y
	p.primaryOAM[1] = 0x05 // tile: odd -> pattern table 1, tile number 0x04
	p.primaryOAM[2] = 0    // attribute: no flip
	p.primaryOAM[3] = 20   // x
	p.scanline = 11        // h = scanline - y = 1, within the top half of the tile
	p.cycle = 21            // x = cycle-1 = 20, lands on the sprite's first column

	// tileNum=0x04 * 16 bytes/tile + table offset 0x1000 + h=1.
	const wantAddress = 0x1000 + 0x04*16 + 1
	if err := p.bus.write(wantAddress, 0xFF); err != nil {
		t.Fatalf("priming low tile byte: %v", err)
	}
	if err := p.bus.write(wantAddress+8, 0x00); err != nil {
		t.Fatalf("priming high tile byte: %v", err)
	}

	p.evaluateSprite()
	if p.secondaryNum != 1 {
		t.Fatalf("secondaryNum = %d, want 1 (8x16 sprite should be in range for this scanline)", p.secondaryNum)
	}
	_, pixel, err := p.renderSpritePixel()
	if err != nil {
		t.Fatalf("renderSpritePixel: %v", err)
	}
	if pixel != 1 {
		t.Fatalf("pixel = %d, want 1 (low tile byte's top bit set, high clear, at the sprite's leftmost column)", pixel)
	}
}

func TestPPUSTATUSReadClearsVBlankAndWriteLatch(t *testing.T) {
	p := newTestPPU(t)
	p.writePPUADDR(0x12) // sets the write latch
	p.oldNMI = true       // simulate a pending, not-yet-read vblank flag
	status := p.readPPUSTATUS()
	if status&0x80 == 0 {
		t.Fatalf("PPUSTATUS = 0x%02x, want vblank bit set", status)
	}
	if p.w {
		t.Fatalf("write latch still set after a PPUSTATUS read")
	}
	// Vblank bit is cleared by the read itself.
	second := p.readPPUSTATUS()
	if second&0x80 != 0 {
		t.Fatalf("PPUSTATUS = 0x%02x, want vblank bit cleared on the second read", second)
	}
}
