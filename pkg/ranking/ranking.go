package ranking

import (
	"math"
	"sort"

	"github.com/gathertime/gathertime/pkg/event"
	"github.com/gathertime/gathertime/pkg/slot"
)

type RankedSlot struct {
	Slot              slot.Slot
	Score             float64
	GreatCount        int
	IfNeededCount     int
	AvailableCount    int
	TotalParticipants int
}

// ComputeRanking returns the topN best slots of the event. Slots nobody marked are
// never candidates. Ties on score fall back to available count, then great count,
// then the canonical slot id ascending. The result is never nil.
func ComputeRanking(e event.EventWithAvailability, topN int) []RankedSlot {
	if len(e.Availability) == 0 || topN <= 0 {
		return []RankedSlot{}
	}
	ranked := rankAll(TallySlots(e), Weight(e.Event))
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func rankAll(tallies []Tally, weight float64) []RankedSlot {
	ranked := make([]RankedSlot, 0, len(tallies))
	for _, t := range tallies {
		if t.AvailableCount() == 0 {
			continue
		}
		ranked = append(ranked, RankedSlot{
			Slot:              t.Slot,
			Score:             Score(t.GreatCount(), t.IfNeededCount(), weight),
			GreatCount:        t.GreatCount(),
			IfNeededCount:     t.IfNeededCount(),
			AvailableCount:    t.AvailableCount(),
			TotalParticipants: t.TotalParticipants,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankedBefore(ranked[i], ranked[j])
	})
	return ranked
}

func rankedBefore(a, b RankedSlot) bool {
	if math.Abs(a.Score-b.Score) > scoreEpsilon {
		return a.Score > b.Score
	}
	if a.AvailableCount != b.AvailableCount {
		return a.AvailableCount > b.AvailableCount
	}
	if a.GreatCount != b.GreatCount {
		return a.GreatCount > b.GreatCount
	}
	return slot.Less(a.Slot, b.Slot)
}
