package nes

import "testing"

func nromCartridge(t *testing.T) *Cartridge {
	t.Helper()
	header := iNESHeader(1, 1, 0, 0)
	data := append(header, make([]byte, prgROMSizeUnit+chrROMSizeUnit)...)
	c, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	return c
}

func TestNewMapperUnsupportedID(t *testing.T) {
	header := iNESHeader(1, 1, 0xF0, 0xF0) // mapper id 255
	data := append(header, make([]byte, prgROMSizeUnit+chrROMSizeUnit)...)
	c, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	_, err = NewMapper(c)
	if err == nil {
		t.Fatal("expected an error for an unsupported mapper id")
	}
	if _, ok := err.(*UnsupportedMapperError); !ok {
		t.Fatalf("error type = %T, want *UnsupportedMapperError", err)
	}
}

func TestMapper0PRGMirroringFor16KiB(t *testing.T) {
	c := nromCartridge(t)
	c.prgROM[0] = 0x11
	m, err := NewMapper(c)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	lo, err := m.ReadFromCPU(0x8000)
	if err != nil {
		t.Fatalf("ReadFromCPU($8000): %v", err)
	}
	hi, err := m.ReadFromCPU(0xC000)
	if err != nil {
		t.Fatalf("ReadFromCPU($C000): %v", err)
	}
	if lo != 0x11 || hi != 0x11 {
		t.Fatalf("$8000=0x%02x $C000=0x%02x, want both 0x11 (16 KiB NROM mirrors into the upper bank)", lo, hi)
	}
}

func TestMapper0RejectsPRGROMWrite(t *testing.T) {
	c := nromCartridge(t)
	m, err := NewMapper(c)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	if err := m.WriteFromCPU(0x8000, 0xFF); err == nil {
		t.Fatal("expected an error writing to PRG-ROM")
	}
}

func TestMapperSaveRAMRoundTrip(t *testing.T) {
	c := nromCartridge(t)
	m, err := NewMapper(c)
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	if err := m.WriteFromCPU(0x6000, 0x42); err != nil {
		t.Fatalf("WriteFromCPU($6000): %v", err)
	}
	saved := m.SaveRAM()
	if saved[0] != 0x42 {
		t.Fatalf("SaveRAM()[0] = 0x%02x, want 0x42", saved[0])
	}

	m2, err := NewMapper(nromCartridge(t))
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	if err := m2.LoadSaveRAM(saved); err != nil {
		t.Fatalf("LoadSaveRAM: %v", err)
	}
	got, err := m2.ReadFromCPU(0x6000)
	if err != nil {
		t.Fatalf("ReadFromCPU($6000): %v", err)
	}
	if got != 0x42 {
		t.Fatalf("restored PRG-RAM[0] = 0x%02x, want 0x42", got)
	}
}

func TestMapperLoadSaveRAMSizeMismatch(t *testing.T) {
	m, err := NewMapper(nromCartridge(t))
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	err = m.LoadSaveRAM(make([]byte, 1))
	if err == nil {
		t.Fatal("expected an error for a mismatched SRAM size")
	}
	if _, ok := err.(*SRAMSizeMismatchError); !ok {
		t.Fatalf("error type = %T, want *SRAMSizeMismatchError", err)
	}
}
