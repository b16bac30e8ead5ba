package nes

import "fmt"

// mapper7 implements AxROM: https://www.nesdev.org/wiki/AxROM
// 32 KiB PRG-ROM bank switching, single-screen nametable mirroring
// selected by bit 4 of the bank register. CHR is always 8 KiB RAM.
type mapper7 struct {
	mapperBase
	prgROM      []byte
	chrRAM      []byte
	banks       int
	currentBank int
}

func newMapper7(cartridge *Cartridge) *mapper7 {
	return &mapper7{
		mapperBase: newMapperBase(cartridge),
		prgROM:     cartridge.prgROM,
		chrRAM:     make([]byte, chrROMSizeUnit),
		banks:      len(cartridge.prgROM) / (2 * prgROMSizeUnit),
	}
}

func (m *mapper7) ReadFromCPU(address uint16) (byte, error) {
	switch {
	case address >= 0x8000:
		i := m.currentBank*2*prgROMSizeUnit + int(address-0x8000)
		return m.prgROM[i], nil
	case address >= 0x6000:
		return m.readPRGRAM(address), nil
	}
	return 0, fmt.Errorf("mapper7: read from unmapped CPU address 0x%04x", address)
}

func (m *mapper7) WriteFromCPU(address uint16, data byte) error {
	switch {
	case address >= 0x8000:
		if m.banks > 0 {
			m.currentBank = int(data&0x07) % m.banks
		}
		if data&0x10 != 0 {
			m.mirroring = MirrorSingleB
		} else {
			m.mirroring = MirrorSingleA
		}
		return nil
	case address >= 0x6000:
		m.writePRGRAM(address, data)
		return nil
	}
	return fmt.Errorf("mapper7: write to unmapped CPU address 0x%04x = 0x%02x", address, data)
}

func (m *mapper7) ReadFromPPU(address uint16) (byte, error) {
	return m.chrRAM[address], nil
}

func (m *mapper7) WriteFromPPU(address uint16, data byte) error {
	m.chrRAM[address] = data
	return nil
}
