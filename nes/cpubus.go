package nes

import "github.com/golang/glog"

type CPUBus struct {
	wram       *RAM
	ppu        *PPU
	apu        *APU
	mapper     Mapper
	controller *Controller
}

// NewCPUBus creates a new Bus for CPU.
// CPU memory map
// 0x0000 - 0x07FF	WRAM
// 0x0800 - 0x1FFF	WRAM Mirror
// 0x2000 - 0x2007	PPU Registers
// 0x2008 - 0x3FFF	PPU Registers Mirror
// 0x4000 - 0x4013	APU Registers
// 0x4014		OAMDMA
// 0x4015		APU Status
// 0x4016		Controller 1
// 0x4017		Controller 2 / APU Frame Counter
// 0x4020 - 0x5FFF	Extended RAM (unused by the boards this core supports)
// 0x6000 - 0x7FFF	Battery Backup / Work RAM (mapper)
// 0x8000 - 0xFFFF	PRG-ROM (mapper)
func NewCPUBus(wram *RAM, ppu *PPU, apu *APU, mapper Mapper, controller *Controller) *CPUBus {
	return &CPUBus{wram, ppu, apu, mapper, controller}
}

// writeOAMDMA writes OAMDATA to PPU, this will be called by CPU.
func (b *CPUBus) writeOAMDMA(data [256]byte) {
	b.ppu.writeOAMDMA(data)
}

func (b *CPUBus) readPPURegister(address uint16) byte {
	switch address {
	case 0x2002:
		return b.ppu.readPPUSTATUS()
	case 0x2004:
		return b.ppu.readOAMDATA()
	case 0x2007:
		data, err := b.ppu.readPPUDATA()
		if err != nil {
			glog.Infof("%v", err)
		}
		return data
	default:
		glog.Infof("Write-only PPU register read: 0x%04x\n", address)
	}
	return 0
}

// read reads a byte.
func (b *CPUBus) read(address uint16) byte {
	switch {
	case address < 0x2000:
		return b.wram.read(address % 0x0800)
	case address < 0x4000:
		return b.readPPURegister(0x2000 + (address-0x2000)%8)
	case address == 0x4015:
		return b.apu.readStatus()
	case address == 0x4016:
		return b.controller.read()
	case address == 0x4017:
		return 0
	case address < 0x4020:
		glog.V(1).Infof("Unimplemented CPU bus read: address=0x%04x\n", address)
	case address < 0x6000:
		glog.V(1).Infof("Unmapped CPU bus read: address=0x%04x\n", address)
	case 0x6000 <= address:
		v, err := b.mapper.ReadFromCPU(address)
		if err != nil {
			glog.Fatalf("%v", err)
		}
		return v
	default:
		glog.Fatalf("Unknown CPU bus read: 0x%04x\n", address)
	}
	return 0
}

// read16 reads 2 bytes.
func (b *CPUBus) read16(address uint16) uint16 {
	l := uint16(b.read(address))
	h := uint16(b.read(address+1)) << 8
	return h | l
}

// writeToPPURegisters writes data to PPU registers.
func (b *CPUBus) writeToPPURegisters(address uint16, data byte) {
	switch address {
	case 0x2000:
		b.ppu.writePPUCTRL(data)
	case 0x2001:
		b.ppu.writePPUMASK(data)
	case 0x2003:
		b.ppu.writeOAMADDR(data)
	case 0x2004:
		b.ppu.writeOAMDATA(data)
	case 0x2005:
		b.ppu.writePPUSCROLL(data)
	case 0x2006:
		b.ppu.writePPUADDR(data)
	case 0x2007:
		b.ppu.writePPUDATA(data)
	default:
		glog.Infof("Read-only PPU register write: address=0x%04x, data=0x%02x\n", address, data)
	}
}

// writeToAPURegisters routes $4000-$4013 and $4017 to the matching
// APU channel/frame-counter register.
func (b *CPUBus) writeToAPURegisters(address uint16, data byte) {
	switch address {
	case 0x4000:
		b.apu.pulse1.writeControl(data)
	case 0x4001:
		b.apu.pulse1.writeSweep(data)
	case 0x4002:
		b.apu.pulse1.writeTimerLow(data)
	case 0x4003:
		b.apu.pulse1.writeTimerHigh(data)
	case 0x4004:
		b.apu.pulse2.writeControl(data)
	case 0x4005:
		b.apu.pulse2.writeSweep(data)
	case 0x4006:
		b.apu.pulse2.writeTimerLow(data)
	case 0x4007:
		b.apu.pulse2.writeTimerHigh(data)
	case 0x4008:
		b.apu.triangle.writeLinearCounter(data)
	case 0x400A:
		b.apu.triangle.writeTimerLow(data)
	case 0x400B:
		b.apu.triangle.writeTimerHigh(data)
	case 0x400C:
		b.apu.noise.writeControl(data)
	case 0x400E:
		b.apu.noise.writePeriod(data)
	case 0x400F:
		b.apu.noise.writeLength(data)
	case 0x4010:
		b.apu.dmc.writeControl(data)
	case 0x4011:
		b.apu.dmc.writeDirectLoad(data)
	case 0x4012:
		b.apu.dmc.writeSampleAddress(data)
	case 0x4013:
		b.apu.dmc.writeSampleLength(data)
	case 0x4015:
		b.apu.writeStatus(data)
	case 0x4017:
		b.apu.writeFrameCounter(data)
	}
}

// write writes a byte.
func (b *CPUBus) write(address uint16, data byte) {
	switch {
	case address < 0x2000:
		b.wram.write(address%0x0800, data)
	case address < 0x4000:
		b.writeToPPURegisters(0x2000+(address-0x2000)%8, data)
	case address == 0x4014:
		// Implemented on CPU since OAMDMA stalls the CPU itself.
		glog.Fatalf("CPU bus write was probably illegally called. (Here is for writing oamdma $4014)")
	case address == 0x4016:
		b.controller.write(data)
	case address < 0x4018:
		b.writeToAPURegisters(address, data)
	case address < 0x4020:
		glog.V(1).Infof("Unimplemented CPU bus write: address=0x%04x, data=0x%02x\n", address, data)
	case address < 0x6000:
		glog.V(1).Infof("Unmapped CPU bus write: address=0x%04x, data=0x%02x\n", address, data)
	case 0x6000 <= address:
		if err := b.mapper.WriteFromCPU(address, data); err != nil {
			glog.Infof("%v", err)
		}
	default:
		glog.Fatalf("Unknown CPU bus write: address=0x%04x, data=0x%02x\n", address, data)
	}
}
