package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/gathertime/gathertime/pkg/slot"
)

// ValidateNewEvent checks the creator's input before anything is stored.
func ValidateNewEvent(e NewEvent) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(e.Dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}
	for _, d := range e.Dates {
		if _, err := time.Parse(slot.DateLayout, d); err != nil {
			return fmt.Errorf("%w: date %q must be in YYYY-MM-DD format", ErrInvalidInput, d)
		}
	}
	if e.StartHour < 0 || e.StartHour > 23 || e.EndHour < 0 || e.EndHour > 23 {
		return fmt.Errorf("%w: hours must be between 0 and 23", ErrInvalidInput)
	}
	if e.StartHour >= e.EndHour {
		return fmt.Errorf("%w: startHour must be before endHour", ErrInvalidInput)
	}
	if e.Timezone != "" {
		if _, err := slot.LoadLocation(e.Timezone); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	if e.IfNeededWeight != nil && (*e.IfNeededWeight < 0 || *e.IfNeededWeight > 1) {
		return fmt.Errorf("%w: ifNeededWeight must be between 0 and 1", ErrInvalidInput)
	}
	return nil
}

// ValidateSubmission checks a participant's response. Slots outside the event
// grid are accepted and simply never counted.
func ValidateSubmission(a Availability) error {
	if strings.TrimSpace(a.ParticipantName) == "" {
		return fmt.Errorf("%w: participantName is required", ErrInvalidInput)
	}
	for _, id := range a.Slots {
		if _, err := slot.Parse(id); err != nil {
			return fmt.Errorf("%w: slots: %w", ErrInvalidInput, err)
		}
	}
	for _, id := range a.SlotsIfNeeded {
		if _, err := slot.Parse(id); err != nil {
			return fmt.Errorf("%w: slotsIfNeeded: %w", ErrInvalidInput, err)
		}
	}
	if a.Timezone != "" {
		if _, err := slot.LoadLocation(a.Timezone); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	return nil
}
