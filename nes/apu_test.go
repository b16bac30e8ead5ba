package nes

import "testing"

func TestAPUWriteStatusEnablesAndSilencesChannels(t *testing.T) {
	a := NewAPU()
	a.pulse1.lengthCounter = 5
	a.writeStatus(0x01) // enable only pulse1
	if !a.enabled[0] {
		t.Fatalf("pulse1 not enabled after writeStatus(0x01)")
	}
	if a.enabled[1] {
		t.Fatalf("pulse2 should not be enabled")
	}

	a.pulse2.lengthCounter = 5
	a.writeStatus(0x00) // disable everything
	if a.pulse1.lengthCounter != 0 || a.pulse2.lengthCounter != 0 {
		t.Fatalf("disabling a channel must zero its length counter immediately")
	}
}

func TestAPUReadStatusReportsLengthCountersAndClearsFrameIRQ(t *testing.T) {
	a := NewAPU()
	a.pulse1.lengthCounter = 1
	a.noise.lengthCounter = 1
	a.frameIRQFlag = true
	status := a.readStatus()
	if status&0x01 == 0 {
		t.Fatalf("status = 0x%02x, want pulse1 length bit set", status)
	}
	if status&0x08 == 0 {
		t.Fatalf("status = 0x%02x, want noise length bit set", status)
	}
	if status&0x40 == 0 {
		t.Fatalf("status = 0x%02x, want frame IRQ bit set on this read", status)
	}
	if a.frameIRQFlag {
		t.Fatalf("reading $4015 should clear the frame IRQ flag")
	}
}

func TestAPUFrameCounterIRQIn4StepMode(t *testing.T) {
	a := NewAPU()
	a.writeFrameCounter(0x00) // 4-step mode, IRQ enabled (inhibit bit clear)
	if a.PollIRQ() {
		t.Fatalf("IRQ asserted before the frame counter has run a full sequence")
	}
	for i := 0; i < 29829; i++ {
		a.Step()
	}
	if !a.PollIRQ() {
		t.Fatalf("frame counter should assert IRQ at the end of a 4-step sequence")
	}
}

func TestAPUFrameCounterIRQInhibited(t *testing.T) {
	a := NewAPU()
	a.writeFrameCounter(0x40) // 4-step mode, IRQ inhibited
	for i := 0; i < 29829; i++ {
		a.Step()
	}
	if a.PollIRQ() {
		t.Fatalf("frame counter IRQ should stay clear when inhibited")
	}
}

func TestAPUWriteFrameCounter5StepModeClocksImmediately(t *testing.T) {
	a := NewAPU()
	a.pulse1.lengthCounter = 5
	a.enabled[0] = true
	a.pulse1.lengthHalt = false
	a.writeFrameCounter(0x80) // 5-step mode clocks length/sweep immediately
	if a.pulse1.lengthCounter != 4 {
		t.Fatalf("pulse1 length counter = %d, want 4 (clocked once by selecting 5-step mode)", a.pulse1.lengthCounter)
	}
}

func TestAPUDMCFetchesAndOutputsFirstSampleByte(t *testing.T) {
	a := NewAPU()
	a.SetMemoryReader(func(uint16) byte { return 0xFF })
	a.dmc.writeSampleAddress(0x00) // $C000
	a.dmc.writeSampleLength(0x00)  // 1 byte
	a.writeStatus(0x10)            // enable DMC, triggers restart() since bytesRemaining was 0

	if !a.dmc.sampleBufferEmpty {
		t.Fatalf("sampleBufferEmpty should be true immediately after restart(), before any fetch")
	}

	a.dmc.stepTimer(a.readMemory)

	if a.dmc.sampleBufferEmpty {
		t.Fatalf("DMC never fetched its first sample byte; sampleBufferEmpty stuck true forever silences the channel")
	}
	if a.dmc.bytesRemaining != 0 {
		t.Fatalf("bytesRemaining = %d, want 0 after fetching the only byte", a.dmc.bytesRemaining)
	}
	if a.dmc.output != 2 {
		t.Fatalf("output = %d, want 2 (sample byte 0xFF's bit 0 is set, nudging output up by 2)", a.dmc.output)
	}
}
