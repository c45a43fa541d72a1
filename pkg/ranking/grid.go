package ranking

import (
	"errors"
	"fmt"

	"github.com/gathertime/gathertime/pkg/event"
	"github.com/gathertime/gathertime/pkg/slot"
)

var ErrUnknownMode = errors.New("unknown grid mode")

// Mode discriminates the two grid variants.
type Mode string

const (
	// ModeInput is one participant's own grid, for painting marks.
	ModeInput Mode = "input"
	// ModeView is the read-only group grid.
	ModeView Mode = "view"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeInput, ModeView:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Grid is a rendered availability grid. Exactly one of Input and View is set,
// matching Mode.
type Grid struct {
	Mode  Mode
	Dates []string
	Hours []int
	Input *InputGrid
	View  *ViewGrid
}

type InputGrid struct {
	ParticipantName string
	Cells           []InputCell
}

type InputCell struct {
	Slot slot.Slot
	Mark event.Mark
	// OthersAvailable counts other participants with any mark on the slot.
	OthersAvailable int
}

type ViewGrid struct {
	Participants []string
	Cells        []ViewCell
}

type ViewCell struct {
	Slot     slot.Slot
	Great    []string
	IfNeeded []string
	Score    float64
	// Heat is the normalized score in [0, 1]; zero for slots nobody marked.
	Heat float64
}

// GridOptions selects the variant to build.
type GridOptions struct {
	Mode        Mode
	Participant string // ModeInput only
	// ShowOthers includes the other participants' counts in an input grid.
	ShowOthers bool
}

func BuildGrid(e event.EventWithAvailability, options GridOptions) (Grid, error) {
	grid := Grid{
		Mode:  options.Mode,
		Dates: slot.SortDates(e.Dates),
		Hours: hoursOf(e.StartHour, e.EndHour),
	}
	switch options.Mode {
	case ModeView:
		grid.View = buildViewGrid(e)
	case ModeInput:
		grid.Input = buildInputGrid(e, options.Participant, options.ShowOthers)
	default:
		return Grid{}, fmt.Errorf("%w: %q", ErrUnknownMode, options.Mode)
	}
	return grid, nil
}

func buildViewGrid(e event.EventWithAvailability) *ViewGrid {
	tallies := TallySlots(e)
	heat := make(map[string]SlotHeat)
	for _, h := range heatOf(tallies, Weight(e.Event)) {
		heat[h.Slot.String()] = h
	}

	cells := make([]ViewCell, 0, len(tallies))
	for _, t := range tallies {
		cell := ViewCell{Slot: t.Slot, Great: nonNil(t.Great), IfNeeded: nonNil(t.IfNeeded)}
		if h, ok := heat[t.Slot.String()]; ok {
			cell.Score = h.Score
			cell.Heat = h.Heat
		}
		cells = append(cells, cell)
	}
	return &ViewGrid{Participants: e.ParticipantNames(), Cells: cells}
}

func buildInputGrid(e event.EventWithAvailability, participant string, showOthers bool) *InputGrid {
	selection := event.NewSelection()
	if own, ok := e.FindAvailability(participant); ok {
		selection = event.SelectionOf(own.Slots, own.SlotsIfNeeded)
	}

	tallies := TallySlots(e)
	cells := make([]InputCell, 0, len(tallies))
	for _, t := range tallies {
		mark := selection.MarkOf(t.Slot.String())
		cell := InputCell{Slot: t.Slot, Mark: mark}
		if showOthers {
			cell.OthersAvailable = t.AvailableCount()
			if mark != event.MarkUnavailable {
				cell.OthersAvailable--
			}
		}
		cells = append(cells, cell)
	}
	return &InputGrid{ParticipantName: participant, Cells: cells}
}

func hoursOf(startHour int, endHour int) []int {
	hours := make([]int, 0, max(endHour-startHour, 0))
	for h := startHour; h < endHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
