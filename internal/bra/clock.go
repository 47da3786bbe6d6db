package bra

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze the boundary year
// via SetClock. Production code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// qualityForYear marks statistics for the current year and later as
// preliminary; BRÅ revises those until the final release.
func qualityForYear(year int) DataQuality {
	if year >= clock.Now().Year() {
		return QualityPreliminary
	}
	return QualityFinal
}
