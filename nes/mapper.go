package nes

// Mapper abstracts cartridge bus circuitry: PRG/CHR bank switching,
// nametable mirroring (which can change at runtime on some boards),
// cartridge-driven IRQs, and battery-backed save RAM.
type Mapper interface {
	ReadFromCPU(uint16) (byte, error)
	WriteFromCPU(uint16, byte) error
	ReadFromPPU(uint16) (byte, error)
	WriteFromPPU(uint16, byte) error

	// Mirroring returns the current nametable mirroring arrangement.
	// Most mappers return the cartridge's fixed power-on value;
	// AxROM/MMC1/MMC3 can change it.
	Mirroring() Mirroring

	// NotifyPPUA12 is called whenever the PPU address bus drives A12
	// (bit 12 of a PPU memory access), used by MMC3 to count scanlines.
	NotifyPPUA12(addr uint16)

	// PollIRQ reports whether the mapper currently asserts its IRQ
	// line. Level-sensitive: the CPU samples it on every interrupt
	// check, the mapper does not need to "consume" the request.
	PollIRQ() bool

	// SaveRAM/LoadSaveRAM expose battery-backed PRG-RAM, when present.
	SaveRAM() []byte
	LoadSaveRAM([]byte) error
}

// NewMapper constructs the Mapper implementation for a cartridge's
// mapper id, or an UnsupportedMapperError if gnes has none.
func NewMapper(cartridge *Cartridge) (Mapper, error) {
	switch cartridge.MapperID() {
	case 0:
		return newMapper0(cartridge), nil
	case 1:
		return newMapper1(cartridge), nil
	case 2:
		return newMapper2(cartridge), nil
	case 3:
		return newMapper3(cartridge), nil
	case 4:
		return newMapper4(cartridge), nil
	case 7:
		return newMapper7(cartridge), nil
	case 9:
		return newMapper9(cartridge), nil
	case 66:
		return newMapper66(cartridge), nil
	default:
		return nil, &UnsupportedMapperError{ID: cartridge.MapperID()}
	}
}

// mapperBase holds the fields and no-op behavior shared by every
// mapper: fixed mirroring (overridden by the boards that can change
// it), no cartridge IRQ, and a PRG-RAM-backed save.
type mapperBase struct {
	mirroring Mirroring
	prgRAM    []byte
}

func newMapperBase(cartridge *Cartridge) mapperBase {
	return mapperBase{
		mirroring: cartridge.Mirroring(),
		prgRAM:    make([]byte, prgRAMSizeUnit),
	}
}

func (m *mapperBase) Mirroring() Mirroring       { return m.mirroring }
func (m *mapperBase) NotifyPPUA12(addr uint16)   {}
func (m *mapperBase) PollIRQ() bool              { return false }
func (m *mapperBase) SaveRAM() []byte            { return m.prgRAM }
func (m *mapperBase) LoadSaveRAM(data []byte) error {
	if len(data) != len(m.prgRAM) {
		return &SRAMSizeMismatchError{Got: len(data), Want: len(m.prgRAM)}
	}
	copy(m.prgRAM, data)
	return nil
}

// readPRGRAM/writePRGRAM are the shared $6000-$7FFF handlers almost
// every mapper exposes identically.
func (m *mapperBase) readPRGRAM(addr uint16) byte {
	return m.prgRAM[addr-0x6000]
}

func (m *mapperBase) writePRGRAM(addr uint16, value byte) {
	m.prgRAM[addr-0x6000] = value
}
