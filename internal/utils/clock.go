package utils

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock reports the current time in UTC.
type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

func (m *MockClock) Advance(d time.Duration) {
	m.FixedNow = m.FixedNow.Add(d)
}
