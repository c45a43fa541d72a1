package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// recordVersion is the current shape of a stored event document.
// Version 1 documents (no version field) called the "if needed" set "slotsPrefer".
const recordVersion = 2

type storedRecord struct {
	Version                    int                  `json:"version,omitempty"`
	Id                         string               `json:"id"`
	Name                       string               `json:"name"`
	Dates                      []string             `json:"dates"`
	StartHour                  int                  `json:"startHour"`
	EndHour                    int                  `json:"endHour"`
	EventTimezone              string               `json:"eventTimezone,omitempty"`
	DisableIfNeeded            bool                 `json:"disableIfNeeded,omitempty"`
	IfNeededWeight             *float64             `json:"ifNeededWeight,omitempty"`
	ExpiresAt                  *time.Time           `json:"expiresAt,omitempty"`
	HideResultsUntilExpiration bool                 `json:"hideResultsUntilExpiration,omitempty"`
	CreatedAt                  time.Time            `json:"createdAt"`
	Availability               []storedAvailability `json:"availability"`
}

type storedAvailability struct {
	ParticipantName       string   `json:"participantName"`
	Timezone              string   `json:"timezone,omitempty"`
	Slots                 []string `json:"slots"`
	SlotsIfNeeded         []string `json:"slotsIfNeeded,omitempty"`
	SlotsPrefer           []string `json:"slotsPrefer,omitempty"`
	OtherAvailabilityNote string   `json:"otherAvailabilityNote,omitempty"`
}

// EncodeRecord serializes an event in the current document version.
func EncodeRecord(e EventWithAvailability) ([]byte, error) {
	record := storedRecord{
		Version:                    recordVersion,
		Id:                         e.Id,
		Name:                       e.Name,
		Dates:                      e.Dates,
		StartHour:                  e.StartHour,
		EndHour:                    e.EndHour,
		EventTimezone:              e.Timezone,
		DisableIfNeeded:            e.DisableIfNeeded,
		IfNeededWeight:             e.IfNeededWeight,
		ExpiresAt:                  e.ExpiresAt,
		HideResultsUntilExpiration: e.HideResultsUntilExpiration,
		CreatedAt:                  e.CreatedAt,
		Availability:               make([]storedAvailability, 0, len(e.Availability)),
	}
	for _, a := range e.Availability {
		record.Availability = append(record.Availability, storedAvailability{
			ParticipantName:       a.ParticipantName,
			Timezone:              a.Timezone,
			Slots:                 nonNil(a.Slots),
			SlotsIfNeeded:         a.SlotsIfNeeded,
			OtherAvailabilityNote: a.OtherAvailabilityNote,
		})
	}
	return json.Marshal(record)
}

// DecodeRecord reads a stored document of any known version and returns the
// canonical shape with every availability entry normalized.
func DecodeRecord(data []byte) (EventWithAvailability, error) {
	var record storedRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return EventWithAvailability{}, fmt.Errorf("could not decode event record: %w", err)
	}
	if record.Version > recordVersion {
		return EventWithAvailability{}, fmt.Errorf("unsupported event record version %d", record.Version)
	}

	e := EventWithAvailability{
		Event: Event{
			Id:                         record.Id,
			Name:                       record.Name,
			Dates:                      nonNil(record.Dates),
			StartHour:                  record.StartHour,
			EndHour:                    record.EndHour,
			Timezone:                   record.EventTimezone,
			DisableIfNeeded:            record.DisableIfNeeded,
			IfNeededWeight:             record.IfNeededWeight,
			ExpiresAt:                  record.ExpiresAt,
			HideResultsUntilExpiration: record.HideResultsUntilExpiration,
			CreatedAt:                  record.CreatedAt,
		},
		Availability: make([]Availability, 0, len(record.Availability)),
	}
	for _, a := range record.Availability {
		ifNeeded := a.SlotsIfNeeded
		if len(a.SlotsPrefer) > 0 {
			ifNeeded = append(append([]string{}, ifNeeded...), a.SlotsPrefer...)
		}
		e.Availability = append(e.Availability, Normalize(Availability{
			ParticipantName:       a.ParticipantName,
			Timezone:              a.Timezone,
			Slots:                 a.Slots,
			SlotsIfNeeded:         ifNeeded,
			OtherAvailabilityNote: a.OtherAvailabilityNote,
		}))
	}
	return e, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
