package nes

import "fmt"

// PPUBus is the PPU's view of the world: pattern tables live on the
// cartridge (via mapper), nametables live in the console's 2 KiB of
// internal VRAM, mirrored according to the mapper's current
// arrangement (which AxROM/MMC1/MMC3 can change at runtime).
type PPUBus struct {
	vram   *RAM
	mapper Mapper
}

// NewPPUBus creates a new Bus for PPU
func NewPPUBus(vram *RAM, mapper Mapper) *PPUBus {
	return &PPUBus{vram, mapper}
}

func (b *PPUBus) mirrorAddress(address uint16) uint16 {
	table := (address - 0x2000) / 0x0400 // 0..3
	offset := (address - 0x2000) % 0x0400
	var physical uint16
	switch b.mapper.Mirroring() {
	case MirrorVertical:
		physical = uint16(table % 2)
	case MirrorHorizontal:
		physical = uint16(table / 2)
	case MirrorSingleA:
		physical = 0
	case MirrorSingleB:
		physical = 1
	default: // four-screen: the table index is used as is; with only 2 KiB of VRAM, the callers' % 2048 folds tables 2-3 onto 0-1
		physical = table
	}
	return physical*0x0400 + offset
}

// read reads data.
// Address        Size	  Description
// -------------------------------------
// $0000-$0FFF	  $1000	  Pattern table 0
// $1000-$1FFF	  $1000	  Pattern table 1
// $2000-$23FF	  $0400	  Nametable 0
// $2400-$27FF	  $0400	  Nametable 1
// $2800-$2BFF	  $0400	  Nametable 2
// $2C00-$2FFF	  $0400	  Nametable 3
// $3000-$3EFF	  $0F00	  Mirrors of $2000-$2EFF
// $3F00-$3F1F	  $0020	  Palette RAM indexes
// $3F20-$3FFF	  $00E0	  Mirrors of $3F00-$3F1F
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
func (b *PPUBus) read(address uint16) (byte, error) {
	b.mapper.NotifyPPUA12(address)
	switch {
	case address < 0x2000:
		return b.mapper.ReadFromPPU(address)
	case address < 0x3000:
		return b.vram.read(b.mirrorAddress(address) % 2048), nil
	case address < 0x3F00:
		// Mirror
		return b.vram.read(b.mirrorAddress(address-0x1000) % 2048), nil
	default:
		return 0, fmt.Errorf("Unknown PPU bus read: 0x%04x", address)
	}
}

// write writes data.
// Reference: https://www.nesdev.org/wiki/PPU_memory_map
func (b *PPUBus) write(address uint16, data byte) error {
	b.mapper.NotifyPPUA12(address)
	switch {
	case address < 0x2000:
		return b.mapper.WriteFromPPU(address, data)
	case address < 0x3000:
		b.vram.write(b.mirrorAddress(address)%2048, data)
	case address < 0x3F00:
		// Mirror
		b.vram.write(b.mirrorAddress(address-0x1000)%2048, data)
	default:
		return fmt.Errorf("Unknown PPU bus write: address=0x%04x, data=0x%02x", address, data)
	}
	return nil
}
