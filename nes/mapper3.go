package nes

import "fmt"

// mapper3 implements CNROM: https://www.nesdev.org/wiki/CNROM
// PRG-ROM is fixed (16 or 32 KiB, mirrored like NROM); any write to
// $8000-$FFFF selects one of up to four 8 KiB CHR-ROM banks.
type mapper3 struct {
	mapperBase
	prgROM      []byte
	chrROM      []byte
	chrBanks    int
	currentBank int
}

func newMapper3(cartridge *Cartridge) *mapper3 {
	return &mapper3{
		mapperBase: newMapperBase(cartridge),
		prgROM:     cartridge.prgROM,
		chrROM:     cartridge.chrROM,
		chrBanks:   len(cartridge.chrROM) / chrROMSizeUnit,
	}
}

func (m *mapper3) ReadFromCPU(address uint16) (byte, error) {
	switch {
	case address >= 0x8000:
		mod := uint16(len(m.prgROM))
		return m.prgROM[(address-0x8000)%mod], nil
	case address >= 0x6000:
		return m.readPRGRAM(address), nil
	}
	return 0, fmt.Errorf("mapper3: read from unmapped CPU address 0x%04x", address)
}

func (m *mapper3) WriteFromCPU(address uint16, data byte) error {
	switch {
	case address >= 0x8000:
		if m.chrBanks > 0 {
			m.currentBank = int(data) % m.chrBanks
		}
		return nil
	case address >= 0x6000:
		m.writePRGRAM(address, data)
		return nil
	}
	return fmt.Errorf("mapper3: write to unmapped CPU address 0x%04x = 0x%02x", address, data)
}

func (m *mapper3) ReadFromPPU(address uint16) (byte, error) {
	i := m.currentBank*chrROMSizeUnit + int(address)
	return m.chrROM[i], nil
}

func (m *mapper3) WriteFromPPU(address uint16, data byte) error {
	return fmt.Errorf("mapper3: write to CHR-ROM not allowed, address=0x%04x, data=0x%02x", address, data)
}
