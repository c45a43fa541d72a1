package ranking

import (
	"github.com/gathertime/gathertime/pkg/event"
)

// SlotHeat is the position of a marked slot between the worst (0) and best (1)
// marked slots of its event.
type SlotHeat struct {
	Tally
	Score float64
	Heat  float64
}

// HeatMap normalizes the score of every slot that has at least one mark. When all
// of them score the same, every slot gets 1.
func HeatMap(e event.EventWithAvailability) []SlotHeat {
	return heatOf(TallySlots(e), Weight(e.Event))
}

func heatOf(tallies []Tally, weight float64) []SlotHeat {
	heat := make([]SlotHeat, 0, len(tallies))
	for _, t := range tallies {
		if t.AvailableCount() == 0 {
			continue
		}
		heat = append(heat, SlotHeat{Tally: t, Score: Score(t.GreatCount(), t.IfNeededCount(), weight)})
	}
	if len(heat) == 0 {
		return heat
	}

	lowest, highest := heat[0].Score, heat[0].Score
	for _, h := range heat[1:] {
		lowest = min(lowest, h.Score)
		highest = max(highest, h.Score)
	}
	spread := highest - lowest
	for i := range heat {
		if spread <= scoreEpsilon {
			heat[i].Heat = 1
			continue
		}
		heat[i].Heat = (heat[i].Score - lowest) / spread
	}
	return heat
}
