package nes

import "fmt"

// mapper4 implements MMC3 (TxROM): https://www.nesdev.org/wiki/MMC3
//
// Eight bank registers (R0-R7) are loaded through a bank-select/
// bank-data register pair. PRG-ROM is windowed in two swappable 8 KiB
// pages plus two pages fixed to the second-to-last/last bank (which
// pair is fixed depends on the PRG mode bit). CHR-ROM is windowed as
// two 2 KiB pages and four 1 KiB pages, with the halves swapped by
// the CHR A12-inversion bit. A scanline counter, clocked by rising
// edges of PPU address bit 12, drives the mapper's IRQ line.
type mapper4 struct {
	mapperBase

	prgROM []byte
	chrROM []byte
	chrRAM bool

	prgBanks int

	bankSelect byte // last value written to $8000
	regs       [8]byte

	mirrorHorizontal bool

	irqLatch   byte
	irqCounter byte
	irqReload  bool
	irqEnabled bool
	irqPending bool

	lastA12 bool
}

func newMapper4(cartridge *Cartridge) *mapper4 {
	m := &mapper4{
		mapperBase: newMapperBase(cartridge),
		prgROM:     cartridge.prgROM,
		chrRAM:     cartridge.ChrIsRAM(),
		prgBanks:   len(cartridge.prgROM) / 0x2000,
	}
	if m.chrRAM {
		m.chrROM = make([]byte, chrROMSizeUnit)
	} else {
		m.chrROM = cartridge.chrROM
	}
	return m
}

func (m *mapper4) ReadFromCPU(address uint16) (byte, error) {
	switch {
	case address >= 0x8000:
		return m.prgROM[m.prgOffset(address)], nil
	case address >= 0x6000:
		return m.readPRGRAM(address), nil
	}
	return 0, fmt.Errorf("mapper4: read from unmapped CPU address 0x%04x", address)
}

func (m *mapper4) prgOffset(address uint16) int {
	const pageSize = 0x2000
	page := int(address-0x8000) / pageSize
	offset := int(address-0x8000) % pageSize

	r6 := int(m.regs[6]) % m.prgBanks
	r7 := int(m.regs[7]) % m.prgBanks
	secondLast := m.prgBanks - 2
	last := m.prgBanks - 1

	var bank int
	if m.bankSelect&0x40 == 0 {
		// mode 0: $8000=R6, $A000=R7, $C000=fixed(-2), $E000=fixed(-1)
		switch page {
		case 0:
			bank = r6
		case 1:
			bank = r7
		case 2:
			bank = secondLast
		default:
			bank = last
		}
	} else {
		// mode 1: $8000=fixed(-2), $A000=R7, $C000=R6, $E000=fixed(-1)
		switch page {
		case 0:
			bank = secondLast
		case 1:
			bank = r7
		case 2:
			bank = r6
		default:
			bank = last
		}
	}
	return bank*pageSize + offset
}

func (m *mapper4) WriteFromCPU(address uint16, data byte) error {
	switch {
	case address >= 0x8000 && address <= 0x9FFF:
		if address&1 == 0 {
			m.bankSelect = data
		} else {
			m.regs[m.bankSelect&0x07] = data
		}
		return nil
	case address >= 0xA000 && address <= 0xBFFF:
		if address&1 == 0 {
			m.mirrorHorizontal = data&0x01 != 0
		}
		// odd: PRG-RAM protect, not modeled
		return nil
	case address >= 0xC000 && address <= 0xDFFF:
		if address&1 == 0 {
			m.irqLatch = data
		} else {
			m.irqReload = true
		}
		return nil
	case address >= 0xE000:
		if address&1 == 0 {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
		return nil
	case address >= 0x6000:
		m.writePRGRAM(address, data)
		return nil
	}
	return fmt.Errorf("mapper4: write to unmapped CPU address 0x%04x = 0x%02x", address, data)
}

func (m *mapper4) ReadFromPPU(address uint16) (byte, error) {
	return m.chrROM[m.chrOffset(address)], nil
}

func (m *mapper4) WriteFromPPU(address uint16, data byte) error {
	if !m.chrRAM {
		return fmt.Errorf("mapper4: write to CHR-ROM not allowed, address=0x%04x, data=0x%02x", address, data)
	}
	m.chrROM[m.chrOffset(address)&(chrROMSizeUnit-1)] = data
	return nil
}

func (m *mapper4) chrOffset(address uint16) int {
	r := func(i int) int { return int(m.regs[i]) }
	inverted := m.bankSelect&0x80 != 0

	if !inverted {
		switch {
		case address < 0x0800:
			return (r(0)&0xFE)*0x400 + int(address)
		case address < 0x1000:
			return (r(1)&0xFE)*0x400 + int(address-0x0800)
		case address < 0x1400:
			return r(2)*0x400 + int(address-0x1000)
		case address < 0x1800:
			return r(3)*0x400 + int(address-0x1400)
		case address < 0x1C00:
			return r(4)*0x400 + int(address-0x1800)
		default:
			return r(5)*0x400 + int(address-0x1C00)
		}
	}
	switch {
	case address < 0x0400:
		return r(2)*0x400 + int(address)
	case address < 0x0800:
		return r(3)*0x400 + int(address-0x0400)
	case address < 0x0C00:
		return r(4)*0x400 + int(address-0x0800)
	case address < 0x1000:
		return r(5)*0x400 + int(address-0x0C00)
	case address < 0x1800:
		return (r(0)&0xFE)*0x400 + int(address-0x1000)
	default:
		return (r(1)&0xFE)*0x400 + int(address-0x1800)
	}
}

func (m *mapper4) Mirroring() Mirroring {
	if m.mirrorHorizontal {
		return MirrorHorizontal
	}
	return MirrorVertical
}

// NotifyPPUA12 clocks the scanline IRQ counter on the rising edge of
// PPU address bit 12, which happens roughly once per visible
// scanline as the background and sprite pattern tables are fetched
// from opposite halves of CHR space.
func (m *mapper4) NotifyPPUA12(addr uint16) {
	a12 := addr&0x1000 != 0
	if a12 && !m.lastA12 {
		m.clockIRQCounter()
	}
	m.lastA12 = a12
}

func (m *mapper4) clockIRQCounter() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mapper4) PollIRQ() bool {
	return m.irqPending
}
