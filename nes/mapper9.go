package nes

import "fmt"

// mapper9 implements MMC2 (PxROM): https://www.nesdev.org/wiki/MMC2
//
// Built for Punch-Out!!, MMC2's distinguishing feature is CHR bank
// latching: each 4 KiB pattern-table half has two candidate banks,
// and the PPU's own tile fetches -- reading tile $FD or $FE near the
// end of a pattern table -- flip a latch that selects between them.
// PRG-ROM is a single switchable 8 KiB window at $8000, with the
// remaining three 8 KiB windows fixed to the cartridge's last three
// banks.
type mapper9 struct {
	mapperBase

	prgROM []byte
	chrROM []byte

	prgBanks int
	prgBank  byte

	chrBank0FD byte
	chrBank0FE byte
	chrBank1FD byte
	chrBank1FE byte

	latch0 byte // 0xFD or 0xFE
	latch1 byte

	mirrorHorizontal bool
}

func newMapper9(cartridge *Cartridge) *mapper9 {
	return &mapper9{
		mapperBase: newMapperBase(cartridge),
		prgROM:     cartridge.prgROM,
		chrROM:     cartridge.chrROM,
		prgBanks:   len(cartridge.prgROM) / 0x2000,
		latch0:     0xFE,
		latch1:     0xFE,
	}
}

func (m *mapper9) ReadFromCPU(address uint16) (byte, error) {
	switch {
	case address >= 0x8000 && address < 0xA000:
		bank := int(m.prgBank) % m.prgBanks
		return m.prgROM[bank*0x2000+int(address-0x8000)], nil
	case address >= 0xA000:
		// three 8 KiB windows fixed to the last three banks
		windowFromEnd := 3 - int((address-0xA000)/0x2000)
		bank := m.prgBanks - windowFromEnd
		return m.prgROM[bank*0x2000+int(address-0xA000)%0x2000], nil
	case address >= 0x6000:
		return m.readPRGRAM(address), nil
	}
	return 0, fmt.Errorf("mapper9: read from unmapped CPU address 0x%04x", address)
}

func (m *mapper9) WriteFromCPU(address uint16, data byte) error {
	switch {
	case address >= 0xA000 && address < 0xB000:
		m.prgBank = data & 0x0F
	case address >= 0xB000 && address < 0xC000:
		m.chrBank0FD = data & 0x1F
	case address >= 0xC000 && address < 0xD000:
		m.chrBank0FE = data & 0x1F
	case address >= 0xD000 && address < 0xE000:
		m.chrBank1FD = data & 0x1F
	case address >= 0xE000 && address < 0xF000:
		m.chrBank1FE = data & 0x1F
	case address >= 0xF000:
		m.mirrorHorizontal = data&0x01 != 0
	case address >= 0x6000:
		m.writePRGRAM(address, data)
	default:
		return fmt.Errorf("mapper9: write to unmapped CPU address 0x%04x = 0x%02x", address, data)
	}
	return nil
}

func (m *mapper9) ReadFromPPU(address uint16) (byte, error) {
	var value byte
	if address < 0x1000 {
		bank := m.chrBank0FE
		if m.latch0 == 0xFD {
			bank = m.chrBank0FD
		}
		value = m.chrROM[int(bank)*0x1000+int(address)]
	} else {
		bank := m.chrBank1FE
		if m.latch1 == 0xFD {
			bank = m.chrBank1FD
		}
		value = m.chrROM[int(bank)*0x1000+int(address-0x1000)]
	}
	m.updateLatch(address)
	return value, nil
}

// updateLatch replicates the PPU's tile-fetch side effect: reading
// one of the two reserved tile indices near the end of a pattern
// table flips that half's latch for subsequent fetches.
func (m *mapper9) updateLatch(address uint16) {
	switch {
	case address == 0x0FD8:
		m.latch0 = 0xFD
	case address == 0x0FE8:
		m.latch0 = 0xFE
	case address >= 0x1FD8 && address <= 0x1FDF:
		m.latch1 = 0xFD
	case address >= 0x1FE8 && address <= 0x1FEF:
		m.latch1 = 0xFE
	}
}

func (m *mapper9) WriteFromPPU(address uint16, data byte) error {
	return fmt.Errorf("mapper9: write to CHR-ROM not allowed, address=0x%04x, data=0x%02x", address, data)
}

func (m *mapper9) Mirroring() Mirroring {
	if m.mirrorHorizontal {
		return MirrorHorizontal
	}
	return MirrorVertical
}
