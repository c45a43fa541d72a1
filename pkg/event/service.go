package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gathertime/gathertime/internal/event_bus"
	"github.com/gathertime/gathertime/internal/utils"
	"github.com/gathertime/gathertime/pkg/slot"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	CreateEvent(ctx context.Context, newEvent NewEvent) (EventWithAvailability, error)
	GetEvent(ctx context.Context, id string) (EventWithAvailability, error)
	// SubmitAvailability replaces the participant's previous response, if any.
	// It returns ErrEventExpired once the event stopped accepting responses.
	SubmitAvailability(ctx context.Context, id string, submission Availability) (EventWithAvailability, error)
}

type ServiceImpl struct {
	repo          Repository
	clock         utils.Clock
	eventBus      *event_bus.EventBus
	defaultWeight *float64
}

// NewService creates the event service. defaultWeight, when not nil, is stored on
// new events that do not choose an "if needed" weight themselves.
func NewService(repo Repository, clock utils.Clock, eventBus *event_bus.EventBus, defaultWeight *float64) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock, eventBus: eventBus, defaultWeight: defaultWeight}
}

func (s *ServiceImpl) CreateEvent(ctx context.Context, newEvent NewEvent) (EventWithAvailability, error) {
	if err := ValidateNewEvent(newEvent); err != nil {
		return EventWithAvailability{}, err
	}
	weight := newEvent.IfNeededWeight
	if weight == nil && s.defaultWeight != nil {
		w := *s.defaultWeight
		weight = &w
	}

	e := EventWithAvailability{
		Event: Event{
			Id:                         uuid.NewString(),
			Name:                       strings.TrimSpace(newEvent.Name),
			Dates:                      slot.SortDates(newEvent.Dates),
			StartHour:                  newEvent.StartHour,
			EndHour:                    newEvent.EndHour,
			Timezone:                   newEvent.Timezone,
			DisableIfNeeded:            newEvent.DisableIfNeeded,
			IfNeededWeight:             weight,
			ExpiresAt:                  newEvent.ExpiresAt,
			HideResultsUntilExpiration: newEvent.HideResultsUntilExpiration,
			CreatedAt:                  s.clock.Now(),
		},
		Availability: []Availability{},
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return EventWithAvailability{}, fmt.Errorf("failed to create event: %w", err)
	}
	log.Debugf("created event %s with %d dates", e.Id, len(e.Dates))

	s.publish(ctx, event_bus.EventCreatedType, event_bus.EventCreated{
		EventId:   e.Id,
		Name:      e.Name,
		Dates:     e.Dates,
		CreatedAt: e.CreatedAt,
	})
	return e, nil
}

func (s *ServiceImpl) GetEvent(ctx context.Context, id string) (EventWithAvailability, error) {
	e, err := s.repo.Load(ctx, id)
	if err != nil {
		return EventWithAvailability{}, fmt.Errorf("failed to load event: %w", err)
	}
	return e, nil
}

func (s *ServiceImpl) SubmitAvailability(ctx context.Context, id string, submission Availability) (EventWithAvailability, error) {
	submission.ParticipantName = strings.TrimSpace(submission.ParticipantName)
	if err := ValidateSubmission(submission); err != nil {
		return EventWithAvailability{}, err
	}

	replaced := false
	updated, err := s.repo.Update(ctx, id, func(current EventWithAvailability) (EventWithAvailability, error) {
		if current.IsExpired(s.clock.Now()) {
			return EventWithAvailability{}, fmt.Errorf("%w: expired at %s", ErrEventExpired, current.ExpiresAt.Format(time.RFC3339))
		}
		_, replaced = current.FindAvailability(submission.ParticipantName)
		return MergeAvailability(current, submission), nil
	})
	if err != nil {
		return EventWithAvailability{}, fmt.Errorf("failed to submit availability: %w", err)
	}
	log.Debugf("stored availability of %q for event %s (replaced: %t)", submission.ParticipantName, id, replaced)

	s.publish(ctx, event_bus.AvailabilitySubmittedType, event_bus.AvailabilitySubmitted{
		EventId:           id,
		ParticipantName:   submission.ParticipantName,
		Replaced:          replaced,
		TotalParticipants: len(updated.Availability),
	})
	return updated, nil
}

// publish notifies subscribers. The record is already stored, so failures are only logged.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Warnf("failed to publish %s: %v", eventType, err)
	}
}
