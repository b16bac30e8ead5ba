package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iNESHeader(prgBanks, chrBanks, flags6, flags7 byte) []byte {
	return []byte{'N', 'E', 'S', MSDOSEOF, prgBanks, chrBanks, flags6, flags7, 0, 0, 0, 0, 0, 0, 0, 0}
}

func TestNewCartridgeRejectsBadMagic(t *testing.T) {
	data := append([]byte{'X', 'E', 'S', MSDOSEOF, 1, 1, 0, 0}, make([]byte, 16)...)
	_, err := NewCartridge(data)
	require.Error(t, err)
	assert.IsType(t, &MalformedROMError{}, err)
}

func TestNewCartridgeRejectsTruncatedPRG(t *testing.T) {
	data := append(iNESHeader(2, 1, 0, 0), make([]byte, prgROMSizeUnit)...) // claims 2 banks, supplies 1
	_, err := NewCartridge(data)
	require.Error(t, err)
}

func TestNewCartridgeDecodesMapperIDFromBothFlagBytes(t *testing.T) {
	// flags6 high nibble = low bits of mapper id, flags7 high nibble = high bits.
	header := iNESHeader(1, 1, 0x10, 0x40) // 0001 | (0100 << 4) = 0x41 = 65
	data := append(header, make([]byte, prgROMSizeUnit+chrROMSizeUnit)...)
	c, err := NewCartridge(data)
	require.NoError(t, err)
	assert.EqualValues(t, 65, c.MapperID())
}

func TestNewCartridgeMirroringAndBattery(t *testing.T) {
	header := iNESHeader(1, 1, 0x03, 0) // vertical mirroring (bit0) + battery (bit1)
	data := append(header, make([]byte, prgROMSizeUnit+chrROMSizeUnit)...)
	c, err := NewCartridge(data)
	require.NoError(t, err)
	assert.Equal(t, MirrorVertical, c.Mirroring())
	assert.True(t, c.HasBattery())
}

func TestNewCartridgeFourScreenOverridesMirroringBit(t *testing.T) {
	header := iNESHeader(1, 1, 0x09, 0) // four-screen (bit3) + vertical (bit0): four-screen wins
	data := append(header, make([]byte, prgROMSizeUnit+chrROMSizeUnit)...)
	c, err := NewCartridge(data)
	require.NoError(t, err)
	assert.Equal(t, MirrorFourScreen, c.Mirroring())
}

func TestNewCartridgeZeroCHRBanksMeansCHRRAM(t *testing.T) {
	header := iNESHeader(1, 0, 0, 0)
	data := append(header, make([]byte, prgROMSizeUnit)...)
	c, err := NewCartridge(data)
	require.NoError(t, err)
	assert.True(t, c.ChrIsRAM())
	assert.Len(t, c.chrROM, chrROMSizeUnit)
}

func TestNewCartridgeSkipsTrainer(t *testing.T) {
	header := iNESHeader(1, 1, 0x04, 0) // trainer present (bit2)
	prg := make([]byte, prgROMSizeUnit)
	prg[0] = 0xAB
	data := append(header, make([]byte, trainerSizeBytes)...)
	data = append(data, prg...)
	data = append(data, make([]byte, chrROMSizeUnit)...)
	c, err := NewCartridge(data)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), c.prgROM[0], "trainer bytes should be skipped, not counted as PRG-ROM")
}
