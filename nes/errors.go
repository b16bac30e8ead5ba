package nes

import "fmt"

// UnsupportedMapperError is returned by NewMapper (and so NewConsole)
// when the cartridge names a mapper id gnes has no implementation for.
type UnsupportedMapperError struct {
	ID uint16
}

func (e *UnsupportedMapperError) Error() string {
	return fmt.Sprintf("unsupported mapper id %d", e.ID)
}

// MalformedROMError is returned by NewCartridge when the ROM image
// fails the iNES magic check or is truncated relative to its header.
type MalformedROMError struct {
	Reason string
}

func (e *MalformedROMError) Error() string {
	return fmt.Sprintf("malformed cartridge: %s", e.Reason)
}

// SRAMSizeMismatchError is returned by LoadSaveRAM when the supplied
// buffer doesn't match the cartridge's battery-RAM size.
type SRAMSizeMismatchError struct {
	Got, Want int
}

func (e *SRAMSizeMismatchError) Error() string {
	return fmt.Sprintf("sram size mismatch: got %d bytes, want %d", e.Got, e.Want)
}
