package slot

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownTimezone = errors.New("unknown timezone")
var ErrNotAligned = errors.New("instant is not aligned to a half-hour slot")

// LoadLocation resolves an IANA zone id. Empty and "Local" are rejected so that
// results never depend on the server's own zone.
func LoadLocation(zone string) (*time.Location, error) {
	if zone == "" || zone == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, zone)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, zone, err)
	}
	return loc, nil
}

// ToInstant returns the absolute instant at which the wall clock in zone shows the slot.
//
// Wall-clock times skipped by a forward DST transition resolve to the first instant
// after the gap. Wall-clock times repeated by a backward transition resolve to the
// earlier of the two instants.
func ToInstant(s Slot, zone string) (time.Time, error) {
	loc, err := LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	date, err := time.Parse(DateLayout, s.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: bad date", ErrInvalidSlot, s.String())
	}
	return resolveWallClock(date.Year(), date.Month(), date.Day(), s.Hour, s.Minute(), loc), nil
}

func resolveWallClock(year int, month time.Month, day int, hour int, minute int, loc *time.Location) time.Time {
	wall := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)

	// Every zone offset is within a day, so the offsets in force a day either side
	// of the naive UTC reading bracket any transition affecting this wall time.
	before := offsetAt(wall.Add(-24*time.Hour), loc)
	after := offsetAt(wall.Add(24*time.Hour), loc)

	offsets := []int{before}
	if after != before {
		offsets = append(offsets, after)
	}

	var resolved []time.Time
	for _, offset := range offsets {
		candidate := wall.Add(-time.Duration(offset) * time.Second)
		if offsetAt(candidate, loc) == offset {
			resolved = append(resolved, candidate)
		}
	}

	switch len(resolved) {
	case 1:
		return resolved[0].In(loc)
	case 2:
		if resolved[1].Before(resolved[0]) {
			return resolved[1].In(loc)
		}
		return resolved[0].In(loc)
	}

	// gap: the reading under the later offset still falls in the earlier zone period,
	// whose end is the transition instant
	preGap := wall.Add(-time.Duration(after) * time.Second).In(loc)
	_, end := preGap.ZoneBounds()
	if end.IsZero() {
		return wall.Add(-time.Duration(before) * time.Second).In(loc)
	}
	return end.In(loc)
}

func offsetAt(t time.Time, loc *time.Location) int {
	_, offset := t.In(loc).Zone()
	return offset
}

// FromInstant maps an absolute instant to the slot shown by the wall clock in zone.
func FromInstant(t time.Time, zone string) (Slot, error) {
	loc, err := LoadLocation(zone)
	if err != nil {
		return Slot{}, err
	}
	local := t.In(loc)
	if local.Second() != 0 || local.Nanosecond() != 0 || local.Minute()%30 != 0 {
		return Slot{}, fmt.Errorf("%w: %s in %s", ErrNotAligned, local.Format(time.RFC3339), zone)
	}
	return Slot{
		Date: local.Format(DateLayout),
		Hour: local.Hour(),
		Half: local.Minute() / 30,
	}, nil
}

// Convert re-expresses a wall-clock slot of one zone as the wall-clock slot of another.
func Convert(s Slot, fromZone string, toZone string) (Slot, error) {
	instant, err := ToInstant(s, fromZone)
	if err != nil {
		return Slot{}, err
	}
	return FromInstant(instant, toZone)
}
