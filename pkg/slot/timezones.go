package slot

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type TimezoneOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Major US zones first, then common global ones.
var curatedTimezones = []string{
	"America/Los_Angeles",
	"America/Denver",
	"America/Chicago",
	"America/New_York",
	"America/Anchorage",
	"Pacific/Honolulu",
	"UTC",
	"Europe/London",
	"Europe/Paris",
	"Europe/Berlin",
	"Asia/Dubai",
	"Asia/Kolkata",
	"Asia/Shanghai",
	"Asia/Tokyo",
	"Australia/Sydney",
	"Pacific/Auckland",
	"America/Sao_Paulo",
	"America/Toronto",
	"Europe/Moscow",
}

// TimezoneOptions lists the curated zones labelled with their abbreviation at now.
// A valid current zone missing from the list is put first.
func TimezoneOptions(now time.Time, current string) []TimezoneOption {
	options := make([]TimezoneOption, 0, len(curatedTimezones)+1)
	current = strings.TrimSpace(current)
	if current != "" && !slices.Contains(curatedTimezones, current) {
		if _, err := LoadLocation(current); err == nil {
			options = append(options, TimezoneOption{Value: current, Label: timezoneLabel(now, current)})
		}
	}
	for _, zone := range curatedTimezones {
		options = append(options, TimezoneOption{Value: zone, Label: timezoneLabel(now, zone)})
	}
	return options
}

func timezoneLabel(now time.Time, zone string) string {
	loc, err := LoadLocation(zone)
	if err != nil {
		return zone
	}
	abbrev, _ := now.In(loc).Zone()
	if abbrev == "" {
		return zone
	}
	return fmt.Sprintf("%s (%s)", zone, abbrev)
}
