package event_bus

import "time"

const (
	EventCreatedType          EventType = "event.created"
	AvailabilitySubmittedType EventType = "availability.submitted"
)

type EventCreated struct {
	EventId   string
	Name      string
	Dates     []string
	CreatedAt time.Time
}

type AvailabilitySubmitted struct {
	EventId         string
	ParticipantName string
	// Replaced is true when the participant had answered before.
	Replaced          bool
	TotalParticipants int
}
