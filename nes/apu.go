package nes

// APU emulates the NES's 2A03 audio unit: two pulse channels, a
// triangle channel, a noise channel, a delta-modulation (DMC) sample
// channel, and the frame counter that clocks their envelope/sweep/
// length units and can itself raise an IRQ.
// Reference: https://www.nesdev.org/wiki/APU
type APU struct {
	pulse1   pulse
	pulse2   pulse
	triangle triangleChannel
	noise    noiseChannel
	dmc      dmcChannel

	frameCounter     uint16
	fiveStepMode     bool
	frameIRQInhibit  bool
	frameIRQFlag     bool

	enabled [5]bool // pulse1, pulse2, triangle, noise, dmc

	// readMemory lets the DMC channel fetch sample bytes from CPU
	// address space, wired up by the console at construction time.
	readMemory func(uint16) byte

	out              chan float32
	cycleAccumulator float64
	sampleRate       float64
}

const apuSampleRate = 44100.0

func NewAPU() *APU {
	a := &APU{sampleRate: apuSampleRate, frameIRQInhibit: true}
	a.noise.shiftRegister = 1
	a.dmc.sampleBufferEmpty = true
	return a
}

// SetMemoryReader wires the callback the DMC channel uses to fetch
// sample bytes from CPU address space.
func (a *APU) SetMemoryReader(read func(uint16) byte) {
	a.readMemory = read
}

func (a *APU) SetAudioOut(c chan float32) {
	a.out = c
}

// PollIRQ reports whether the frame counter or the DMC channel is
// currently asserting its IRQ line; the console ORs this together
// with the mapper's IRQ line into the CPU.
func (a *APU) PollIRQ() bool {
	return a.frameIRQFlag || a.dmc.irqFlag
}

// Step advances the APU by one CPU cycle.
func (a *APU) Step() {
	a.frameCounter++
	if a.fiveStepMode {
		switch a.frameCounter {
		case 7457, 22371:
			a.clockEnvelopesAndLinear()
		case 14913:
			a.clockEnvelopesAndLinear()
			a.clockLengthAndSweep()
		case 37281:
			a.clockEnvelopesAndLinear()
			a.clockLengthAndSweep()
			a.frameCounter = 0
		}
	} else {
		switch a.frameCounter {
		case 7457, 22371:
			a.clockEnvelopesAndLinear()
		case 14913:
			a.clockEnvelopesAndLinear()
			a.clockLengthAndSweep()
		case 29829:
			a.clockEnvelopesAndLinear()
			a.clockLengthAndSweep()
			if !a.frameIRQInhibit {
				a.frameIRQFlag = true
			}
			a.frameCounter = 0
		}
	}

	if a.enabled[0] {
		a.pulse1.stepTimer()
	}
	if a.enabled[1] {
		a.pulse2.stepTimer()
	}
	a.triangle.stepTimer() // the triangle's timer always runs, even when muted
	if a.enabled[3] {
		a.noise.stepTimer()
	}
	if a.enabled[4] {
		a.dmc.stepTimer(a.readMemory)
	}

	a.generateSample()
}

func (a *APU) clockEnvelopesAndLinear() {
	a.pulse1.clockEnvelope()
	a.pulse2.clockEnvelope()
	a.noise.clockEnvelope()
	a.triangle.clockLinearCounter()
}

func (a *APU) clockLengthAndSweep() {
	a.pulse1.clockLength()
	a.pulse1.clockSweep(true)
	a.pulse2.clockLength()
	a.pulse2.clockSweep(false)
	a.triangle.clockLength()
	a.noise.clockLength()
}

func (a *APU) generateSample() {
	a.cycleAccumulator += a.sampleRate / CPUFrequency
	if a.cycleAccumulator < 1.0 {
		return
	}
	a.cycleAccumulator -= 1.0

	p1 := float64(a.pulse1.output())
	p2 := float64(a.pulse2.output())
	tri := float64(a.triangle.output())
	n := float64(a.noise.output())
	d := float64(a.dmc.output)

	var pulseOut float64
	if p1+p2 != 0 {
		pulseOut = 95.88 / ((8128.0 / (p1 + p2)) + 100.0)
	}
	var tndOut float64
	tnd := tri/8227.0 + n/12241.0 + d/22638.0
	if tnd != 0 {
		tndOut = 159.79 / ((1.0 / tnd) + 100.0)
	}
	sample := float32(pulseOut + tndOut)

	if a.out == nil {
		return
	}
	select {
	case a.out <- sample: // l
	default:
	}
	select {
	case a.out <- sample: // r
	default:
	}
}

// readStatus reads $4015: each channel's length-counter-nonzero bit
// plus the two IRQ flags. Reading clears the frame IRQ flag.
func (a *APU) readStatus() byte {
	var v byte
	if a.pulse1.lengthCounter > 0 {
		v |= 0x01
	}
	if a.pulse2.lengthCounter > 0 {
		v |= 0x02
	}
	if a.triangle.lengthCounter > 0 {
		v |= 0x04
	}
	if a.noise.lengthCounter > 0 {
		v |= 0x08
	}
	if a.dmc.bytesRemaining > 0 {
		v |= 0x10
	}
	if a.frameIRQFlag {
		v |= 0x40
	}
	if a.dmc.irqFlag {
		v |= 0x80
	}
	a.frameIRQFlag = false
	return v
}

// writeStatus writes $4015, enabling/disabling each channel.
// Disabling a channel silences it immediately by zeroing its length
// counter; disabling the DMC stops sample playback.
func (a *APU) writeStatus(data byte) {
	a.enabled[0] = data&0x01 != 0
	a.enabled[1] = data&0x02 != 0
	a.enabled[2] = data&0x04 != 0
	a.enabled[3] = data&0x08 != 0
	a.enabled[4] = data&0x10 != 0
	if !a.enabled[0] {
		a.pulse1.lengthCounter = 0
	}
	if !a.enabled[1] {
		a.pulse2.lengthCounter = 0
	}
	if !a.enabled[2] {
		a.triangle.lengthCounter = 0
	}
	if !a.enabled[3] {
		a.noise.lengthCounter = 0
	}
	if !a.enabled[4] {
		a.dmc.bytesRemaining = 0
	} else if a.dmc.bytesRemaining == 0 {
		a.dmc.restart()
	}
	a.dmc.irqFlag = false
}

// writeFrameCounter writes $4017: selects 4-step/5-step sequencer
// mode and the frame IRQ inhibit flag. Selecting 5-step mode clocks
// every unit immediately.
func (a *APU) writeFrameCounter(data byte) {
	a.fiveStepMode = data&0x80 != 0
	a.frameIRQInhibit = data&0x40 != 0
	if a.frameIRQInhibit {
		a.frameIRQFlag = false
	}
	a.frameCounter = 0
	if a.fiveStepMode {
		a.clockEnvelopesAndLinear()
		a.clockLengthAndSweep()
	}
}

var lengthTable = [32]byte{
	10, 254, 20, 2, 40, 4, 80, 6,
	160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 8, 48, 6, 96, 4,
	192, 2, 72, 16, 28, 32, 52, 2,
}

var dutyTable = [4][8]byte{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

var triangleSequence = [32]byte{
	15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
}

var noisePeriodTable = [16]uint16{
	4, 8, 16, 32, 64, 96, 128, 160,
	202, 254, 380, 508, 762, 1016, 2034, 4068,
}

var dmcRateTable = [16]uint16{
	428, 380, 340, 320, 286, 254, 226, 214,
	190, 160, 142, 128, 106, 84, 72, 54,
}

// pulse is one of the APU's two pulse-wave channels. They're
// identical except for how their sweep unit negates (pulse 1 uses
// one's complement, pulse 2 two's complement).
type pulse struct {
	dutyCycle    byte
	lengthHalt   bool
	constantVol  bool
	volume       byte
	sequencerPos byte

	sweepEnable  bool
	sweepPeriod  byte
	sweepNegate  bool
	sweepShift   byte
	sweepReload  bool
	sweepCounter byte

	timer        uint16
	timerCounter uint16

	lengthCounter byte

	envelopeStart   bool
	envelopeCounter byte
	envelopeDivider byte
}

func (p *pulse) writeControl(data byte) {
	p.dutyCycle = (data >> 6) & 0x03
	p.lengthHalt = data&0x20 != 0
	p.constantVol = data&0x10 != 0
	p.volume = data & 0x0F
}

func (p *pulse) writeSweep(data byte) {
	p.sweepEnable = data&0x80 != 0
	p.sweepPeriod = (data >> 4) & 0x07
	p.sweepNegate = data&0x08 != 0
	p.sweepShift = data & 0x07
	p.sweepReload = true
}

func (p *pulse) writeTimerLow(data byte) {
	p.timer = (p.timer & 0xFF00) | uint16(data)
}

func (p *pulse) writeTimerHigh(data byte) {
	p.timer = (p.timer & 0x00FF) | (uint16(data&0x07) << 8)
	p.lengthCounter = lengthTable[data>>3]
	p.envelopeStart = true
	p.sequencerPos = 0
}

func (p *pulse) stepTimer() {
	if p.timerCounter == 0 {
		p.timerCounter = p.timer
		p.sequencerPos = (p.sequencerPos + 1) & 0x07
	} else {
		p.timerCounter--
	}
}

func (p *pulse) clockEnvelope() {
	if p.envelopeStart {
		p.envelopeStart = false
		p.envelopeCounter = 15
		p.envelopeDivider = p.volume
		return
	}
	if p.envelopeDivider == 0 {
		p.envelopeDivider = p.volume
		if p.envelopeCounter > 0 {
			p.envelopeCounter--
		} else if p.lengthHalt {
			p.envelopeCounter = 15
		}
	} else {
		p.envelopeDivider--
	}
}

func (p *pulse) clockLength() {
	if !p.lengthHalt && p.lengthCounter > 0 {
		p.lengthCounter--
	}
}

// clockSweep adjusts the timer period; isPulse1 selects one's vs
// two's complement negation, the one documented hardware asymmetry
// between the two pulse channels.
func (p *pulse) clockSweep(isPulse1 bool) {
	if p.sweepCounter == 0 && p.sweepEnable && p.sweepShift > 0 && !p.sweepMuted() {
		change := p.timer >> p.sweepShift
		if p.sweepNegate {
			if isPulse1 {
				p.timer -= change + 1
			} else {
				p.timer -= change
			}
		} else {
			p.timer += change
		}
	}
	if p.sweepCounter == 0 || p.sweepReload {
		p.sweepCounter = p.sweepPeriod
		p.sweepReload = false
	} else {
		p.sweepCounter--
	}
}

func (p *pulse) sweepMuted() bool {
	return p.timer < 8 || p.timer > 0x7FF
}

func (p *pulse) output() byte {
	if p.lengthCounter == 0 || p.sweepMuted() || dutyTable[p.dutyCycle][p.sequencerPos] == 0 {
		return 0
	}
	if p.constantVol {
		return p.volume
	}
	return p.envelopeCounter
}

// triangleChannel produces the 32-step triangle waveform; it has no
// volume control, only a linear counter gating whether it plays.
type triangleChannel struct {
	lengthHalt     bool
	linearReload   byte
	linearCounter  byte
	reloadLinear   bool
	timer          uint16
	timerCounter   uint16
	lengthCounter  byte
	sequencerPos   byte
}

func (t *triangleChannel) writeLinearCounter(data byte) {
	t.lengthHalt = data&0x80 != 0
	t.linearReload = data & 0x7F
}

func (t *triangleChannel) writeTimerLow(data byte) {
	t.timer = (t.timer & 0xFF00) | uint16(data)
}

func (t *triangleChannel) writeTimerHigh(data byte) {
	t.timer = (t.timer & 0x00FF) | (uint16(data&0x07) << 8)
	t.lengthCounter = lengthTable[data>>3]
	t.reloadLinear = true
}

func (t *triangleChannel) stepTimer() {
	if t.timerCounter == 0 {
		t.timerCounter = t.timer
		if t.lengthCounter > 0 && t.linearCounter > 0 {
			t.sequencerPos = (t.sequencerPos + 1) & 0x1F
		}
	} else {
		t.timerCounter--
	}
}

func (t *triangleChannel) clockLinearCounter() {
	if t.reloadLinear {
		t.linearCounter = t.linearReload
	} else if t.linearCounter > 0 {
		t.linearCounter--
	}
	if !t.lengthHalt {
		t.reloadLinear = false
	}
}

func (t *triangleChannel) clockLength() {
	if !t.lengthHalt && t.lengthCounter > 0 {
		t.lengthCounter--
	}
}

func (t *triangleChannel) output() byte {
	if t.lengthCounter == 0 || t.linearCounter == 0 {
		return 0
	}
	return triangleSequence[t.sequencerPos]
}

// noiseChannel produces pseudo-random noise from a 15-bit LFSR.
type noiseChannel struct {
	lengthHalt  bool
	constantVol bool
	volume      byte

	mode         bool
	periodIndex  byte
	timerCounter uint16

	lengthCounter byte

	envelopeStart   bool
	envelopeCounter byte
	envelopeDivider byte

	shiftRegister uint16
}

func (n *noiseChannel) writeControl(data byte) {
	n.lengthHalt = data&0x20 != 0
	n.constantVol = data&0x10 != 0
	n.volume = data & 0x0F
}

func (n *noiseChannel) writePeriod(data byte) {
	n.mode = data&0x80 != 0
	n.periodIndex = data & 0x0F
}

func (n *noiseChannel) writeLength(data byte) {
	n.lengthCounter = lengthTable[data>>3]
	n.envelopeStart = true
}

func (n *noiseChannel) stepTimer() {
	if n.timerCounter == 0 {
		n.timerCounter = noisePeriodTable[n.periodIndex]
		var feedback uint16
		if n.mode {
			feedback = (n.shiftRegister ^ (n.shiftRegister >> 6)) & 1
		} else {
			feedback = (n.shiftRegister ^ (n.shiftRegister >> 1)) & 1
		}
		n.shiftRegister = (n.shiftRegister >> 1) | (feedback << 14)
	} else {
		n.timerCounter--
	}
}

func (n *noiseChannel) clockEnvelope() {
	if n.envelopeStart {
		n.envelopeStart = false
		n.envelopeCounter = 15
		n.envelopeDivider = n.volume
		return
	}
	if n.envelopeDivider == 0 {
		n.envelopeDivider = n.volume
		if n.envelopeCounter > 0 {
			n.envelopeCounter--
		} else if n.lengthHalt {
			n.envelopeCounter = 15
		}
	} else {
		n.envelopeDivider--
	}
}

func (n *noiseChannel) clockLength() {
	if !n.lengthHalt && n.lengthCounter > 0 {
		n.lengthCounter--
	}
}

func (n *noiseChannel) output() byte {
	if n.lengthCounter == 0 || n.shiftRegister&1 != 0 {
		return 0
	}
	if n.constantVol {
		return n.volume
	}
	return n.envelopeCounter
}

// dmcChannel plays back 1-bit delta-encoded samples fetched directly
// from CPU address space, biasing a 7-bit DAC up or down per bit.
type dmcChannel struct {
	irqEnable bool
	loop      bool
	rateIndex byte

	output byte

	sampleAddress uint16
	sampleLength  uint16

	currentAddress    uint16
	bytesRemaining    uint16
	sampleBuffer      byte
	sampleBufferBits  byte
	sampleBufferEmpty bool

	timerCounter uint16

	irqFlag bool
}

func (d *dmcChannel) writeControl(data byte) {
	d.irqEnable = data&0x80 != 0
	d.loop = data&0x40 != 0
	d.rateIndex = data & 0x0F
	if !d.irqEnable {
		d.irqFlag = false
	}
}

func (d *dmcChannel) writeDirectLoad(data byte) {
	d.output = data & 0x7F
}

func (d *dmcChannel) writeSampleAddress(data byte) {
	d.sampleAddress = 0xC000 + uint16(data)<<6
}

func (d *dmcChannel) writeSampleLength(data byte) {
	d.sampleLength = uint16(data)<<4 + 1
}

func (d *dmcChannel) restart() {
	d.currentAddress = d.sampleAddress
	d.bytesRemaining = d.sampleLength
	d.sampleBufferEmpty = true
}

// stepTimer clocks the DMC's output unit. When the sample buffer runs
// dry it fetches the next byte through readMemory, the callback the
// console wires to the CPU bus; real hardware steals CPU cycles to do
// this, which this core does not model.
func (d *dmcChannel) stepTimer(readMemory func(uint16) byte) {
	if d.timerCounter != 0 {
		d.timerCounter--
		return
	}
	d.timerCounter = dmcRateTable[d.rateIndex]

	if d.sampleBufferEmpty && d.bytesRemaining > 0 && readMemory != nil {
		d.sampleBuffer = readMemory(d.currentAddress)
		d.sampleBufferBits = 8
		d.sampleBufferEmpty = false
		d.currentAddress++
		if d.currentAddress == 0 {
			d.currentAddress = 0x8000
		}
		d.bytesRemaining--
		if d.bytesRemaining == 0 {
			if d.loop {
				d.restart()
			} else if d.irqEnable {
				d.irqFlag = true
			}
		}
	}

	if d.sampleBufferEmpty || d.sampleBufferBits == 0 {
		return
	}
	if d.sampleBuffer&0x01 != 0 {
		if d.output <= 125 {
			d.output += 2
		}
	} else {
		if d.output >= 2 {
			d.output -= 2
		}
	}
	d.sampleBuffer >>= 1
	d.sampleBufferBits--
	if d.sampleBufferBits == 0 {
		d.sampleBufferEmpty = true
	}
}
