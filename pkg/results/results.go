package results

import (
	"errors"

	"github.com/gathertime/gathertime/pkg/event"
	"github.com/gathertime/gathertime/pkg/ranking"
)

var ErrResultsHidden = errors.New("results are hidden until the event expires")

// Ranking is the ordered list of best slots of one event.
type Ranking struct {
	Event          event.Event
	Participants   int
	IfNeededWeight float64
	Slots          []ranking.RankedSlot
}

// GridView is a rendered grid together with the event it belongs to, so callers
// can label slots in the event timezone.
type GridView struct {
	Event event.Event
	Grid  ranking.Grid
}
