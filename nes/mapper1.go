package nes

import "fmt"

// mapper1 implements MMC1 (SxROM): https://www.nesdev.org/wiki/MMC1
//
// The CPU loads a 5-bit serial shift register one bit per write (LSB
// first); the fifth write commits the accumulated value into one of
// four internal registers selected by the address of that fifth
// write. A write with bit 7 set resets the shift register immediately
// and forces PRG mode 3 (16 KiB fixed at $C000, switchable at $8000).
type mapper1 struct {
	mapperBase

	prgROM []byte
	chrROM []byte
	chrRAM bool

	prgBanks int
	chrBanks int

	shift      byte
	shiftCount int

	control byte
	chrBank0 byte
	chrBank1 byte
	prgBank  byte
}

func newMapper1(cartridge *Cartridge) *mapper1 {
	m := &mapper1{
		mapperBase: newMapperBase(cartridge),
		prgROM:     cartridge.prgROM,
		chrRAM:     cartridge.ChrIsRAM(),
		prgBanks:   len(cartridge.prgROM) / prgROMSizeUnit,
		control:    0x0C, // power-on: PRG mode 3, CHR mode 0
	}
	if m.chrRAM {
		m.chrROM = make([]byte, chrROMSizeUnit*2)
		m.chrBanks = 2
	} else {
		m.chrROM = cartridge.chrROM
		m.chrBanks = len(cartridge.chrROM) / 0x1000
	}
	return m
}

func (m *mapper1) ReadFromCPU(address uint16) (byte, error) {
	switch {
	case address >= 0x8000:
		return m.prgROM[m.prgOffset(address)], nil
	case address >= 0x6000:
		return m.readPRGRAM(address), nil
	}
	return 0, fmt.Errorf("mapper1: read from unmapped CPU address 0x%04x", address)
}

func (m *mapper1) prgOffset(address uint16) int {
	mode := (m.control >> 2) & 0x03
	bank := int(m.prgBank & 0x0F)
	switch mode {
	case 0, 1:
		// 32 KiB switch, ignoring the low bit of the bank number.
		base := (bank &^ 1) * prgROMSizeUnit
		return base + int(address-0x8000)
	case 2:
		// fix first bank at $8000, switch 16 KiB at $C000
		if address < 0xC000 {
			return int(address - 0x8000)
		}
		return bank*prgROMSizeUnit + int(address-0xC000)
	default:
		// fix last bank at $C000, switch 16 KiB at $8000
		if address < 0xC000 {
			return bank*prgROMSizeUnit + int(address-0x8000)
		}
		last := m.prgBanks - 1
		return last*prgROMSizeUnit + int(address-0xC000)
	}
}

func (m *mapper1) WriteFromCPU(address uint16, data byte) error {
	switch {
	case address >= 0x8000:
		m.shiftWrite(address, data)
		return nil
	case address >= 0x6000:
		m.writePRGRAM(address, data)
		return nil
	}
	return fmt.Errorf("mapper1: write to unmapped CPU address 0x%04x = 0x%02x", address, data)
}

func (m *mapper1) shiftWrite(address uint16, data byte) {
	if data&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		return
	}
	m.shift |= (data & 1) << uint(m.shiftCount)
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}
	value := m.shift
	m.shift = 0
	m.shiftCount = 0
	switch {
	case address < 0xA000:
		m.control = value
	case address < 0xC000:
		m.chrBank0 = value
	case address < 0xE000:
		m.chrBank1 = value
	default:
		m.prgBank = value
	}
}

func (m *mapper1) ReadFromPPU(address uint16) (byte, error) {
	return m.chrROM[m.chrOffset(address)], nil
}

func (m *mapper1) WriteFromPPU(address uint16, data byte) error {
	if !m.chrRAM {
		return fmt.Errorf("mapper1: write to CHR-ROM not allowed, address=0x%04x, data=0x%02x", address, data)
	}
	m.chrROM[m.chrOffset(address)] = data
	return nil
}

func (m *mapper1) chrOffset(address uint16) int {
	fourKiB := m.control&0x10 != 0
	if !fourKiB {
		bank := int(m.chrBank0&0x1E) % maxInt(m.chrBanks, 1)
		return bank*0x1000 + int(address)
	}
	if address < 0x1000 {
		return int(m.chrBank0)%maxInt(m.chrBanks, 1)*0x1000 + int(address)
	}
	return int(m.chrBank1)%maxInt(m.chrBanks, 1)*0x1000 + int(address-0x1000)
}

func (m *mapper1) Mirroring() Mirroring {
	switch m.control & 0x03 {
	case 0:
		return MirrorSingleA
	case 1:
		return MirrorSingleB
	case 2:
		return MirrorVertical
	default:
		return MirrorHorizontal
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
