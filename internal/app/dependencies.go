package app

import (
	"github.com/gathertime/gathertime/internal/config"
	"github.com/gathertime/gathertime/internal/event_bus"
	"github.com/gathertime/gathertime/internal/utils"
	"github.com/gathertime/gathertime/pkg/event"
	"github.com/gathertime/gathertime/pkg/results"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Store    Store
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	EventService event.Service
	EventHandler *event.Handler

	CsvResultsRenderer *results.CsvResultsRendererImpl
	ResultsService     *results.ServiceImpl
	ResultsHandler     *results.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(store Store, cfg config.Application) *Dependencies {
	deps := &Dependencies{Store: store}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	defaultWeight := cfg.Ranking.IfNeededWeight
	deps.EventService = event.NewService(store.Repository, deps.Clock, deps.EventBus, &defaultWeight)
	deps.EventHandler = event.NewHandler(deps.EventService, deps.Clock)

	deps.CsvResultsRenderer = results.NewCsvResultsRenderer()
	deps.ResultsService = results.NewService(deps.EventService, deps.Clock, deps.CsvResultsRenderer, deps.EventBus)
	deps.ResultsHandler = results.NewHandler(deps.ResultsService, cfg.Ranking.TopN)

	return deps
}
