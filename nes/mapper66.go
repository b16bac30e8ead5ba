package nes

import "fmt"

// mapper66 implements GxROM: https://www.nesdev.org/wiki/GxROM
// A single write register at $8000-$FFFF selects both a 32 KiB PRG
// bank (bits 4-5) and an 8 KiB CHR bank (bits 0-1).
type mapper66 struct {
	mapperBase
	prgROM   []byte
	chrROM   []byte
	prgBanks int
	chrBanks int
	prgBank  int
	chrBank  int
}

func newMapper66(cartridge *Cartridge) *mapper66 {
	return &mapper66{
		mapperBase: newMapperBase(cartridge),
		prgROM:     cartridge.prgROM,
		chrROM:     cartridge.chrROM,
		prgBanks:   len(cartridge.prgROM) / (2 * prgROMSizeUnit),
		chrBanks:   len(cartridge.chrROM) / chrROMSizeUnit,
	}
}

func (m *mapper66) ReadFromCPU(address uint16) (byte, error) {
	switch {
	case address >= 0x8000:
		i := m.prgBank*2*prgROMSizeUnit + int(address-0x8000)
		return m.prgROM[i], nil
	case address >= 0x6000:
		return m.readPRGRAM(address), nil
	}
	return 0, fmt.Errorf("mapper66: read from unmapped CPU address 0x%04x", address)
}

func (m *mapper66) WriteFromCPU(address uint16, data byte) error {
	switch {
	case address >= 0x8000:
		if m.prgBanks > 0 {
			m.prgBank = int(data>>4&0x03) % m.prgBanks
		}
		if m.chrBanks > 0 {
			m.chrBank = int(data&0x03) % m.chrBanks
		}
		return nil
	case address >= 0x6000:
		m.writePRGRAM(address, data)
		return nil
	}
	return fmt.Errorf("mapper66: write to unmapped CPU address 0x%04x = 0x%02x", address, data)
}

func (m *mapper66) ReadFromPPU(address uint16) (byte, error) {
	i := m.chrBank*chrROMSizeUnit + int(address)
	return m.chrROM[i], nil
}

func (m *mapper66) WriteFromPPU(address uint16, data byte) error {
	return fmt.Errorf("mapper66: write to CHR-ROM not allowed, address=0x%04x, data=0x%02x", address, data)
}
