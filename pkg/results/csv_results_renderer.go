package results

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/gathertime/gathertime/pkg/event"
	"github.com/gathertime/gathertime/pkg/ranking"
	"github.com/gathertime/gathertime/pkg/slot"
	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	RenderResults(e event.EventWithAvailability, viewerZone string) (string, error)
}

type CsvResultsRendererImpl struct {
}

func NewCsvResultsRenderer() *CsvResultsRendererImpl {
	return &CsvResultsRendererImpl{}
}

// RenderResults writes one row per grid slot and one column per participant,
// followed by the slot's counts and score.
func (r *CsvResultsRendererImpl) RenderResults(e event.EventWithAvailability, viewerZone string) (string, error) {
	participants := e.ParticipantNames()
	header := make([]string, 0, len(participants)+5)
	header = append(header, "Slot", "Time")
	header = append(header, participants...)
	header = append(header, "Great", "If needed", "Score")

	selections := make([]*event.Selection, 0, len(e.Availability))
	for _, a := range e.Availability {
		selections = append(selections, event.SelectionOf(a.Slots, a.SlotsIfNeeded))
	}
	weight := ranking.Weight(e.Event)

	tallies := ranking.TallySlots(e)
	data := make([][]string, 0, len(tallies)+1)
	data = append(data, header)
	for _, t := range tallies {
		row := make([]string, 0, len(header))
		row = append(row, t.Slot.String(), slot.LabelOrRaw(t.Slot, e.Timezone, viewerZone))
		for _, selection := range selections {
			row = append(row, markToString(selection.MarkOf(t.Slot.String())))
		}
		row = append(row,
			strconv.Itoa(t.GreatCount()),
			strconv.Itoa(t.IfNeededCount()),
			strconv.FormatFloat(ranking.Score(t.GreatCount(), t.IfNeededCount(), weight), 'f', 2, 64),
		)
		data = append(data, row)
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func markToString(mark event.Mark) string {
	switch mark {
	case event.MarkGreat:
		return "great"
	case event.MarkIfNeeded:
		return "if needed"
	default:
		return ""
	}
}
