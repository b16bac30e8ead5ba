package nes

import "image"

// Console is the public interface to a running emulation: advance it
// one CPU instruction at a time, pull frames and audio samples, and
// feed it controller input.
type Console interface {
	Reset() error
	Step() (int, error)
	Frame() (*image.RGBA, bool)
	SetAudioOut(chan float32)
	SetButtons([8]bool)
	Halted() bool
	SaveRAM() []byte
	LoadSaveRAM([]byte) error
}

type NesConsole struct {
	cpu          *CPU
	ppu          *PPU
	apu          *APU
	mapper       Mapper
	controller   *Controller
	hasBattery   bool
	lastFrame    uint64
	currentFrame uint64
	buffer       *image.RGBA
}

// NewConsole creates a console from a parsed cartridge. If debug is
// true, this creates a debug console driven from stdin.
func NewConsole(cartridge *Cartridge, debug bool, opts Options) (Console, error) {
	mapper, err := NewMapper(cartridge)
	if err != nil {
		return nil, err
	}
	controller := NewController()
	ppuBus := NewPPUBus(NewRAM(), mapper)
	ppu := NewPPU(ppuBus, opts)
	apu := NewAPU()
	cpuBus := NewCPUBus(NewRAM(), ppu, apu, mapper, controller)
	apu.SetMemoryReader(cpuBus.read)
	cpu := NewCPU(cpuBus)
	console := &NesConsole{
		cpu: cpu, ppu: ppu, apu: apu, mapper: mapper, controller: controller,
		hasBattery: cartridge.HasBattery(),
	}
	if debug {
		return &DebugConsole{NesConsole: console}, nil
	}
	return console, nil
}

func (c *NesConsole) Reset() error {
	c.currentFrame = 0
	c.lastFrame = 0
	c.cpu.Reset()
	c.ppu.Reset()
	return nil
}

// Step executes one CPU instruction (or stall/interrupt cycle) and
// returns how many CPU cycles it consumed, stepping the PPU 3x and
// the APU 1x per CPU cycle and OR-ing every IRQ source into the CPU's
// interrupt line before the next instruction is fetched.
func (c *NesConsole) Step() (int, error) {
	cycles := c.cpu.Do()
	for i := 0; i < cycles; i++ {
		c.apu.Step()
	}
	// PPU's clock is exactly 3x faster than CPU's.
	for i := 0; i < cycles*3; i++ {
		nmi, err := c.ppu.Step()
		if err != nil {
			return cycles, err
		}
		if nmi {
			c.cpu.nmiTriggered = true
		}
		ok, f := c.ppu.Frame()
		if ok {
			c.currentFrame++
			c.buffer = f
		}
	}
	c.cpu.SetIRQLine(c.apu.PollIRQ() || c.mapper.PollIRQ())
	return cycles, nil
}

// Frame returns the most recently completed frame, and whether a new
// one has finished since the last call.
func (c *NesConsole) Frame() (*image.RGBA, bool) {
	if c.lastFrame < c.currentFrame {
		c.lastFrame = c.currentFrame
		return c.buffer, true
	}
	return c.buffer, false
}

func (c *NesConsole) SetAudioOut(channel chan float32) {
	c.apu.SetAudioOut(channel)
}

func (c *NesConsole) SetButtons(buttons [8]bool) {
	c.controller.Set(buttons)
}

// Halted reports whether the CPU has executed an unofficial JAM/KIL
// opcode and locked up.
func (c *NesConsole) Halted() bool {
	return c.cpu.Halted()
}

// SaveRAM returns the cartridge's battery-backed PRG-RAM, for
// persisting a save file. Returns nil if the cartridge has no battery.
func (c *NesConsole) SaveRAM() []byte {
	if !c.hasBattery {
		return nil
	}
	return c.mapper.SaveRAM()
}

// LoadSaveRAM restores battery-backed PRG-RAM from a previously saved
// SaveRAM() dump.
func (c *NesConsole) LoadSaveRAM(data []byte) error {
	return c.mapper.LoadSaveRAM(data)
}
