package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInstant(t *testing.T) {
	testCases := []struct {
		name     string
		slot     Slot
		zone     string
		expected time.Time
	}{
		{
			name:     "winter time in Warsaw",
			slot:     New("2025-01-15", 9, 0),
			zone:     "Europe/Warsaw",
			expected: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "summer time in Warsaw",
			slot:     New("2025-07-15", 9, 1),
			zone:     "Europe/Warsaw",
			expected: time.Date(2025, 7, 15, 7, 30, 0, 0, time.UTC),
		},
		{
			name:     "half hour offset zone",
			slot:     New("2025-03-15", 10, 0),
			zone:     "Asia/Kolkata",
			expected: time.Date(2025, 3, 15, 4, 30, 0, 0, time.UTC),
		},
		{
			name:     "spring forward gap resolves to end of gap",
			slot:     New("2025-03-09", 2, 1),
			zone:     "America/New_York",
			expected: time.Date(2025, 3, 9, 7, 0, 0, 0, time.UTC),
		},
		{
			name:     "fall back overlap resolves to earlier instant",
			slot:     New("2025-11-02", 1, 1),
			zone:     "America/New_York",
			expected: time.Date(2025, 11, 2, 5, 30, 0, 0, time.UTC),
		},
		{
			name:     "UTC",
			slot:     New("2025-03-15", 23, 1),
			zone:     "UTC",
			expected: time.Date(2025, 3, 15, 23, 30, 0, 0, time.UTC),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			instant, err := ToInstant(tc.slot, tc.zone)

			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(instant), "expected %s, got %s", tc.expected, instant.UTC())
		})
	}
}

func TestToInstant_Errors(t *testing.T) {
	t.Run("should reject unknown zone", func(t *testing.T) {
		_, err := ToInstant(New("2025-03-15", 9, 0), "Mars/Olympus_Mons")

		assert.ErrorIs(t, err, ErrUnknownTimezone)
	})

	t.Run("should reject empty zone", func(t *testing.T) {
		_, err := ToInstant(New("2025-03-15", 9, 0), "")

		assert.ErrorIs(t, err, ErrUnknownTimezone)
	})

	t.Run("should reject bad date", func(t *testing.T) {
		_, err := ToInstant(New("15.03.2025", 9, 0), "UTC")

		assert.ErrorIs(t, err, ErrInvalidSlot)
	})
}

func TestRoundTrip(t *testing.T) {
	zones := []string{"America/Los_Angeles", "Europe/London", "Asia/Kolkata", "Australia/Sydney", "Pacific/Auckland"}
	dates := []string{"2025-01-15", "2025-05-20", "2025-08-01", "2025-12-24"}
	for _, zone := range zones {
		for _, date := range dates {
			for _, s := range Universe([]string{date}, 0, 24) {
				instant, err := ToInstant(s, zone)
				require.NoError(t, err)

				back, err := FromInstant(instant, zone)
				require.NoError(t, err)
				assert.Equal(t, s, back, "zone %s", zone)
			}
		}
	}
}

func TestConvert(t *testing.T) {
	t.Run("should move slot between zones", func(t *testing.T) {
		converted, err := Convert(New("2025-03-15", 9, 0), "America/New_York", "Europe/Berlin")

		require.NoError(t, err)
		// New York is on EDT (UTC-4) after 9 March, Berlin still on CET (UTC+1)
		assert.Equal(t, New("2025-03-15", 14, 0), converted)
	})

	t.Run("should cross the date line", func(t *testing.T) {
		converted, err := Convert(New("2025-06-01", 20, 1), "America/Los_Angeles", "Asia/Tokyo")

		require.NoError(t, err)
		assert.Equal(t, New("2025-06-02", 12, 1), converted)
	})

	t.Run("should report zones that do not align to half hours", func(t *testing.T) {
		_, err := Convert(New("2025-03-15", 9, 0), "UTC", "Asia/Kathmandu")

		assert.ErrorIs(t, err, ErrNotAligned)
	})
}

func TestFormatInTimezone(t *testing.T) {
	t.Run("should render in viewer zone", func(t *testing.T) {
		label, err := FormatInTimezone(New("2025-03-15", 9, 0), "America/New_York", "America/Los_Angeles")

		require.NoError(t, err)
		assert.Equal(t, "Sat, Mar 15 6:00 AM PDT", label)
	})

	t.Run("should render in event zone when viewer zone is empty", func(t *testing.T) {
		label, err := FormatInTimezone(New("2025-03-15", 9, 1), "UTC", "")

		require.NoError(t, err)
		assert.Equal(t, "Sat, Mar 15 9:30 AM UTC", label)
	})

	t.Run("should render naive events without conversion", func(t *testing.T) {
		label, err := FormatInTimezone(New("2025-03-15", 9, 0), "", "Asia/Tokyo")

		require.NoError(t, err)
		assert.Equal(t, "Sat, Mar 15 9:00 AM", label)
	})

	t.Run("should surface unknown viewer zone", func(t *testing.T) {
		_, err := FormatInTimezone(New("2025-03-15", 9, 0), "UTC", "Nowhere/Special")

		assert.ErrorIs(t, err, ErrUnknownTimezone)
	})

	t.Run("should fall back to raw label", func(t *testing.T) {
		label := LabelOrRaw(New("2025-03-15", 9, 0), "Nowhere/Special", "UTC")

		assert.Equal(t, "Sat, Mar 15 9:00 AM", label)
	})
}

func TestTimezoneOptions(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("should list curated zones with abbreviations", func(t *testing.T) {
		options := TimezoneOptions(now, "")

		require.Len(t, options, len(curatedTimezones))
		assert.Equal(t, TimezoneOption{Value: "America/Los_Angeles", Label: "America/Los_Angeles (PST)"}, options[0])
	})

	t.Run("should prepend a current zone missing from the list", func(t *testing.T) {
		options := TimezoneOptions(now, "Europe/Warsaw")

		require.Len(t, options, len(curatedTimezones)+1)
		assert.Equal(t, "Europe/Warsaw", options[0].Value)
		assert.Equal(t, "Europe/Warsaw (CET)", options[0].Label)
	})

	t.Run("should not duplicate a listed current zone", func(t *testing.T) {
		options := TimezoneOptions(now, "Asia/Tokyo")

		assert.Len(t, options, len(curatedTimezones))
	})

	t.Run("should ignore invalid current zone", func(t *testing.T) {
		options := TimezoneOptions(now, "Not/AZone")

		assert.Len(t, options, len(curatedTimezones))
	})
}
