package slot

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const labelLayout = "Mon, Jan 2 3:04 PM"
const zonedLabelLayout = "Mon, Jan 2 3:04 PM MST"

// Label renders the slot as a wall-clock label without any zone conversion.
func Label(s Slot) string {
	date, err := time.Parse(DateLayout, s.Date)
	if err != nil {
		return s.String()
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), s.Hour, s.Minute(), 0, 0, time.UTC)
	return t.Format(labelLayout)
}

// FormatInTimezone renders the slot, defined in eventZone, as seen by a viewer in viewerZone.
// Events without a zone are timezone-naive and render unchanged. An empty viewerZone
// means the viewer uses the event zone.
func FormatInTimezone(s Slot, eventZone string, viewerZone string) (string, error) {
	if eventZone == "" {
		return Label(s), nil
	}
	if viewerZone == "" {
		viewerZone = eventZone
	}
	viewer, err := LoadLocation(viewerZone)
	if err != nil {
		return "", err
	}
	instant, err := ToInstant(s, eventZone)
	if err != nil {
		return "", err
	}
	return instant.In(viewer).Format(zonedLabelLayout), nil
}

// LabelOrRaw is FormatInTimezone falling back to the raw label when a zone cannot be resolved.
func LabelOrRaw(s Slot, eventZone string, viewerZone string) string {
	label, err := FormatInTimezone(s, eventZone, viewerZone)
	if err != nil {
		log.Warnf("cannot convert slot %s from %q to %q: %v", s, eventZone, viewerZone, err)
		return Label(s)
	}
	return label
}

// HourLabel renders a grid row header such as "9 AM".
func HourLabel(hour int) string {
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d %s", h, ampm)
}

// DateHeader renders a grid column header such as "Sat, Mar 15".
func DateHeader(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Mon, Jan 2")
}
