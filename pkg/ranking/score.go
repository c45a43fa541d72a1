package ranking

import "github.com/gathertime/gathertime/pkg/event"

// GreatWeight is the score of a single "great" mark.
const GreatWeight = 1.0

// DefaultIfNeededWeight applies when an event does not set its own weight.
const DefaultIfNeededWeight = 0.75

// scoreEpsilon absorbs float rounding when comparing scores built from different counts.
const scoreEpsilon = 1e-9

// Score combines the marks of one slot. An "if needed" mark is worth
// ifNeededWeight of a "great" mark.
func Score(greatCount int, ifNeededCount int, ifNeededWeight float64) float64 {
	return float64(greatCount)*GreatWeight + float64(ifNeededCount)*(ifNeededWeight*GreatWeight)
}

// Weight returns the "if needed" weight used to score e: zero when "if needed"
// is disabled, otherwise the event's weight clamped to [0, 1].
func Weight(e event.Event) float64 {
	if e.DisableIfNeeded {
		return 0
	}
	if e.IfNeededWeight == nil {
		return DefaultIfNeededWeight
	}
	w := *e.IfNeededWeight
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
