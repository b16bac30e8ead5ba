package nes

import "fmt"

// mapper2 implements UxROM: https://www.nesdev.org/wiki/UxROM
// $8000-$BFFF is switchable, $C000-$FFFF is fixed to the last bank.
// CHR is always RAM (8 KiB) on this board.
type mapper2 struct {
	mapperBase
	banks       int
	currentBank int
	prgROM      []byte
	chrRAM      []byte
}

func newMapper2(cartridge *Cartridge) *mapper2 {
	return &mapper2{
		mapperBase: newMapperBase(cartridge),
		banks:      len(cartridge.prgROM) / prgROMSizeUnit,
		prgROM:     cartridge.prgROM,
		chrRAM:     make([]byte, chrROMSizeUnit),
	}
}

func (m *mapper2) ReadFromCPU(address uint16) (byte, error) {
	switch {
	case address >= 0xC000:
		// fixed to the last bank
		i := (m.banks-1)*prgROMSizeUnit + int(address-0xC000)
		return m.prgROM[i], nil
	case address >= 0x8000:
		i := m.currentBank*prgROMSizeUnit + int(address-0x8000)
		return m.prgROM[i], nil
	case address >= 0x6000:
		return m.readPRGRAM(address), nil
	}
	return 0, fmt.Errorf("mapper2: read from unmapped CPU address 0x%04x", address)
}

func (m *mapper2) WriteFromCPU(address uint16, data byte) error {
	switch {
	case address >= 0x8000:
		m.currentBank = int(data) % m.banks
		return nil
	case address >= 0x6000:
		m.writePRGRAM(address, data)
		return nil
	}
	return fmt.Errorf("mapper2: write to unmapped CPU address 0x%04x = 0x%02x", address, data)
}

func (m *mapper2) ReadFromPPU(address uint16) (byte, error) {
	return m.chrRAM[address], nil
}

func (m *mapper2) WriteFromPPU(address uint16, data byte) error {
	m.chrRAM[address] = data
	return nil
}
