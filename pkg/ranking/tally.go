package ranking

import (
	"github.com/gathertime/gathertime/pkg/event"
	"github.com/gathertime/gathertime/pkg/slot"
)

// Tally holds the marks of every participant for one slot.
type Tally struct {
	Slot              slot.Slot
	Great             []string // participant names, in response order
	IfNeeded          []string
	TotalParticipants int
}

func (t Tally) GreatCount() int {
	return len(t.Great)
}

func (t Tally) IfNeededCount() int {
	return len(t.IfNeeded)
}

func (t Tally) AvailableCount() int {
	return len(t.Great) + len(t.IfNeeded)
}

// TallySlots counts marks for every slot of the event grid, in grid order.
// A slot in both sets of one participant counts as "great".
func TallySlots(e event.EventWithAvailability) []Tally {
	universe := slot.Universe(e.Dates, e.StartHour, e.EndHour)
	tallies := make([]Tally, len(universe))
	index := make(map[string]int, len(universe))
	for i, s := range universe {
		tallies[i] = Tally{Slot: s, TotalParticipants: len(e.Availability)}
		index[s.String()] = i
	}

	for _, a := range e.Availability {
		great := make(map[string]struct{}, len(a.Slots))
		for _, id := range a.Slots {
			if i, ok := index[id]; ok {
				if _, seen := great[id]; !seen {
					great[id] = struct{}{}
					tallies[i].Great = append(tallies[i].Great, a.ParticipantName)
				}
			}
		}
		ifNeeded := make(map[string]struct{}, len(a.SlotsIfNeeded))
		for _, id := range a.SlotsIfNeeded {
			if _, isGreat := great[id]; isGreat {
				continue
			}
			if i, ok := index[id]; ok {
				if _, seen := ifNeeded[id]; !seen {
					ifNeeded[id] = struct{}{}
					tallies[i].IfNeeded = append(tallies[i].IfNeeded, a.ParticipantName)
				}
			}
		}
	}
	return tallies
}
