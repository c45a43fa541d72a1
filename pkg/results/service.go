package results

import (
	"context"
	"fmt"
	"slices"

	"github.com/gathertime/gathertime/internal/event_bus"
	"github.com/gathertime/gathertime/internal/utils"
	"github.com/gathertime/gathertime/pkg/event"
	"github.com/gathertime/gathertime/pkg/ranking"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// GetRanking returns the topN best slots. It fails with ErrResultsHidden while
	// the event hides its results.
	GetRanking(ctx context.Context, eventId string, topN int) (Ranking, error)
	// GetGrid renders the group view or one participant's input grid. Input grids
	// stay available while results are hidden, without the other participants' counts.
	GetGrid(ctx context.Context, eventId string, options ranking.GridOptions) (GridView, error)
	// ExportCsv renders every slot against every participant, labelled in viewerZone.
	ExportCsv(ctx context.Context, eventId string, viewerZone string) (string, error)
}

type ServiceImpl struct {
	events   event.Service
	clock    utils.Clock
	renderer Renderer
	cache    *rankingCache
}

// NewService creates the results service. When eventBus is not nil, cached rankings
// are dropped as soon as a new response is stored.
func NewService(events event.Service, clock utils.Clock, renderer Renderer, eventBus *event_bus.EventBus) *ServiceImpl {
	s := &ServiceImpl{
		events:   events,
		clock:    clock,
		renderer: renderer,
		cache:    newRankingCache(),
	}
	if eventBus != nil {
		event_bus.SubscribeTyped(eventBus, event_bus.AvailabilitySubmittedType,
			func(e event_bus.EventT[event_bus.AvailabilitySubmitted]) error {
				log.Debugf("dropping cached ranking of event %s", e.Data.EventId)
				s.cache.evict(e.Data.EventId)
				return nil
			})
	}
	return s
}

func (s *ServiceImpl) GetRanking(ctx context.Context, eventId string, topN int) (Ranking, error) {
	e, err := s.visibleEvent(ctx, eventId)
	if err != nil {
		return Ranking{}, err
	}

	ranked := s.cache.rank(e)
	if topN < 0 {
		topN = 0
	}
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return Ranking{
		Event:          e.Event,
		Participants:   len(e.Availability),
		IfNeededWeight: ranking.Weight(e.Event),
		Slots:          slices.Clone(ranked),
	}, nil
}

func (s *ServiceImpl) GetGrid(ctx context.Context, eventId string, options ranking.GridOptions) (GridView, error) {
	e, err := s.events.GetEvent(ctx, eventId)
	if err != nil {
		return GridView{}, err
	}

	visible := e.ResultsVisible(s.clock.Now())
	switch options.Mode {
	case ranking.ModeView:
		if !visible {
			return GridView{}, fmt.Errorf("%w: event %s", ErrResultsHidden, eventId)
		}
	case ranking.ModeInput:
		options.ShowOthers = visible
	}

	grid, err := ranking.BuildGrid(e, options)
	if err != nil {
		return GridView{}, err
	}
	return GridView{Event: e.Event, Grid: grid}, nil
}

func (s *ServiceImpl) ExportCsv(ctx context.Context, eventId string, viewerZone string) (string, error) {
	e, err := s.visibleEvent(ctx, eventId)
	if err != nil {
		return "", err
	}
	csv, err := s.renderer.RenderResults(e, viewerZone)
	if err != nil {
		return "", fmt.Errorf("failed to render results of event %s: %w", eventId, err)
	}
	return csv, nil
}

func (s *ServiceImpl) visibleEvent(ctx context.Context, eventId string) (event.EventWithAvailability, error) {
	e, err := s.events.GetEvent(ctx, eventId)
	if err != nil {
		return event.EventWithAvailability{}, err
	}
	if !e.ResultsVisible(s.clock.Now()) {
		return event.EventWithAvailability{}, fmt.Errorf("%w: event %s", ErrResultsHidden, eventId)
	}
	return e, nil
}
