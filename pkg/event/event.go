package event

import (
	"time"
)

type Event struct {
	Id        string
	Name      string
	Dates     []string // ISO dates, sorted ascending
	StartHour int
	EndHour   int // exclusive
	// Timezone is the IANA zone the grid is defined in. Empty means the grid is
	// timezone-naive and every viewer reads it as their own wall clock.
	Timezone        string
	DisableIfNeeded bool
	// IfNeededWeight is the value of an "if needed" mark relative to a "great" one, in [0, 1].
	IfNeededWeight             *float64
	ExpiresAt                  *time.Time
	HideResultsUntilExpiration bool
	CreatedAt                  time.Time
}

type Availability struct {
	ParticipantName       string
	Timezone              string
	Slots                 []string // marked "great"
	SlotsIfNeeded         []string // marked "if needed", disjoint from Slots
	OtherAvailabilityNote string
}

type EventWithAvailability struct {
	Event
	Availability []Availability
}

// NewEvent carries the creator's input for a new event.
type NewEvent struct {
	Name                       string
	Dates                      []string
	StartHour                  int
	EndHour                    int
	Timezone                   string
	DisableIfNeeded            bool
	IfNeededWeight             *float64
	ExpiresAt                  *time.Time
	HideResultsUntilExpiration bool
}

// IsExpired reports whether new responses must be rejected at now.
func (e Event) IsExpired(now time.Time) bool {
	return e.ExpiresAt != nil && !now.Before(*e.ExpiresAt)
}

// ResultsVisible reports whether group results may be shown at now.
func (e Event) ResultsVisible(now time.Time) bool {
	return !e.HideResultsUntilExpiration || e.IsExpired(now)
}

func (e EventWithAvailability) ParticipantNames() []string {
	names := make([]string, 0, len(e.Availability))
	for _, a := range e.Availability {
		names = append(names, a.ParticipantName)
	}
	return names
}

// FindAvailability returns the entry submitted under name.
func (e EventWithAvailability) FindAvailability(name string) (Availability, bool) {
	for _, a := range e.Availability {
		if a.ParticipantName == name {
			return a, true
		}
	}
	return Availability{}, false
}
