package nes

// Options configures behavior left ambiguous by the hardware or
// deliberately out of scope (see the Open Questions in SPEC_FULL.md §9).
type Options struct {
	// EmulateSpriteOverflowBug selects an alternate overflow check in
	// PPU.evaluateSprite that re-tests sprites past the eighth with
	// 8-bit arithmetic. The PPU's buggy diagonal scan is not modeled,
	// and the alternate check flags the same sprites as the default
	// one, so the overflow result does not change. Off by default.
	EmulateSpriteOverflowBug bool
}

// DefaultOptions returns the zero Options (every option off), as
// passed to NewConsole by cmd/gnes and the tests.
func DefaultOptions() Options {
	return Options{}
}
