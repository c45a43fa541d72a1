package slot

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// DateLayout is the ISO calendar date format used for event dates.
const DateLayout = "2006-01-02"

var ErrInvalidSlot = errors.New("invalid slot")

// Slot is a single half-hour cell of the availability grid. It is a wall-clock
// value relative to the event's timezone.
type Slot struct {
	Date string // "2025-03-15"
	Hour int    // 0-23
	Half int    // 0 -> :00, 1 -> :30
}

func New(date string, hour int, half int) Slot {
	return Slot{Date: date, Hour: hour, Half: half}
}

// String returns the canonical identifier, e.g. "2025-03-15T09:30".
func (s Slot) String() string {
	minute := "00"
	if s.Half == 1 {
		minute = "30"
	}
	return fmt.Sprintf("%sT%02d:%s", s.Date, s.Hour, minute)
}

func (s Slot) Minute() int {
	return s.Half * 30
}

// Parse converts a canonical identifier back into a Slot.
func Parse(id string) (Slot, error) {
	// 2025-03-15T09:30
	if len(id) != 16 || id[10] != 'T' || id[13] != ':' {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidSlot, id)
	}
	date := id[:10]
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Slot{}, fmt.Errorf("%w: %q: bad date", ErrInvalidSlot, id)
	}
	hour, err := strconv.Atoi(id[11:13])
	if err != nil || hour < 0 || hour > 23 {
		return Slot{}, fmt.Errorf("%w: %q: bad hour", ErrInvalidSlot, id)
	}
	var half int
	switch id[14:] {
	case "00":
		half = 0
	case "30":
		half = 1
	default:
		return Slot{}, fmt.Errorf("%w: %q: minutes must be 00 or 30", ErrInvalidSlot, id)
	}
	return Slot{Date: date, Hour: hour, Half: half}, nil
}

// Universe enumerates every slot of the grid: each date (sorted ascending)
// crossed with every half hour in [startHour, endHour).
func Universe(dates []string, startHour int, endHour int) []Slot {
	if endHour <= startHour || len(dates) == 0 {
		return []Slot{}
	}
	sorted := SortDates(dates)
	slots := make([]Slot, 0, len(sorted)*(endHour-startHour)*2)
	for _, date := range sorted {
		for hour := startHour; hour < endHour; hour++ {
			slots = append(slots, Slot{date, hour, 0}, Slot{date, hour, 1})
		}
	}
	return slots
}

// SortDates returns a sorted copy of dates without duplicates.
func SortDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	sorted := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)
	return sorted
}

// Less orders slots by their canonical identifier.
func Less(a, b Slot) bool {
	return a.String() < b.String()
}
