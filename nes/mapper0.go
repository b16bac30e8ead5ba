package nes

import "fmt"

// mapper0 implements NROM: https://www.nesdev.org/wiki/NROM
// No bank switching; PRG-ROM is 16 or 32 KiB, mirrored if 16.
type mapper0 struct {
	mapperBase
	prgROM   []byte
	chrROM   []byte
	chrIsRAM bool
}

func newMapper0(cartridge *Cartridge) *mapper0 {
	return &mapper0{
		mapperBase: newMapperBase(cartridge),
		prgROM:     cartridge.prgROM,
		chrROM:     cartridge.chrROM,
		chrIsRAM:   cartridge.ChrIsRAM(),
	}
}

func (m *mapper0) ReadFromCPU(address uint16) (byte, error) {
	switch {
	case address >= 0x8000:
		// CPU $C000-$FFFF: Last 16 KB of ROM (NROM-256) or mirror of $8000-$BFFF (NROM-128).
		mod := uint16(len(m.prgROM))
		return m.prgROM[(address-0x8000)%mod], nil
	case address >= 0x6000:
		return m.readPRGRAM(address), nil
	}
	return 0, fmt.Errorf("mapper0: read from unmapped CPU address 0x%04x", address)
}

func (m *mapper0) WriteFromCPU(address uint16, data byte) error {
	switch {
	case address >= 0x8000:
		return fmt.Errorf("mapper0: write to PRG-ROM not allowed: address=0x%04x, data=0x%02x", address, data)
	case address >= 0x6000:
		m.writePRGRAM(address, data)
		return nil
	}
	return fmt.Errorf("mapper0: write to unmapped CPU address 0x%04x, data=0x%02x", address, data)
}

func (m *mapper0) ReadFromPPU(address uint16) (byte, error) {
	return m.chrROM[address], nil
}

func (m *mapper0) WriteFromPPU(address uint16, data byte) error {
	if m.chrIsRAM {
		m.chrROM[address] = data
		return nil
	}
	return fmt.Errorf("mapper0: write to CHR-ROM not allowed, address=0x%04x, data=0x%02x", address, data)
}
