package ranking

import (
	"testing"

	"github.com/gathertime/gathertime/pkg/event"
	"github.com/gathertime/gathertime/pkg/slot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weightPtr(w float64) *float64 {
	return &w
}

func testEvent(availability ...event.Availability) event.EventWithAvailability {
	return event.EventWithAvailability{
		Event: event.Event{
			Id:             "event-1",
			Name:           "Team sync",
			Dates:          []string{"2025-03-15"},
			StartHour:      9,
			EndHour:        11,
			IfNeededWeight: weightPtr(0.75),
		},
		Availability: availability,
	}
}

func slotIds(ranked []RankedSlot) []string {
	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.Slot.String())
	}
	return ids
}

func TestScore(t *testing.T) {
	t.Run("should weigh if needed marks", func(t *testing.T) {
		assert.InDelta(t, 1.75, Score(1, 1, 0.75), 1e-12)
		assert.InDelta(t, 3.0, Score(3, 5, 0), 1e-12)
		assert.InDelta(t, 0.0, Score(0, 0, 0.5), 1e-12)
	})

	t.Run("should be monotonic and never value if needed above great", func(t *testing.T) {
		for _, w := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
			for g := 0; g <= 10; g++ {
				for i := 0; i <= 10; i++ {
					assert.GreaterOrEqual(t, Score(g+1, i, w), Score(g, i, w))
					assert.GreaterOrEqual(t, Score(g, i+1, w), Score(g, i, w))
					if g > 0 {
						assert.GreaterOrEqual(t, Score(g, 0, w), Score(g-1, 1, w))
					}
				}
			}
		}
	})
}

func TestWeight(t *testing.T) {
	assert.Equal(t, DefaultIfNeededWeight, Weight(event.Event{}))
	assert.Equal(t, 0.4, Weight(event.Event{IfNeededWeight: weightPtr(0.4)}))
	assert.Equal(t, 0.0, Weight(event.Event{IfNeededWeight: weightPtr(0.4), DisableIfNeeded: true}))
	assert.Equal(t, 1.0, Weight(event.Event{IfNeededWeight: weightPtr(3)}))
	assert.Equal(t, 0.0, Weight(event.Event{IfNeededWeight: weightPtr(-1)}))
}

func TestComputeRanking(t *testing.T) {
	alice := event.Availability{
		ParticipantName: "Alice",
		Slots:           []string{"2025-03-15T09:00", "2025-03-15T09:30"},
	}
	bob := event.Availability{
		ParticipantName: "Bob",
		Slots:           []string{"2025-03-15T10:00"},
		SlotsIfNeeded:   []string{"2025-03-15T09:00"},
	}

	t.Run("should rank the two participant scenario", func(t *testing.T) {
		ranked := ComputeRanking(testEvent(alice, bob), 3)

		require.Len(t, ranked, 3)
		assert.Equal(t, []string{"2025-03-15T09:00", "2025-03-15T09:30", "2025-03-15T10:00"}, slotIds(ranked))
		assert.InDelta(t, 1.75, ranked[0].Score, 1e-12)
		assert.Equal(t, 2, ranked[0].AvailableCount)
		assert.Equal(t, 1, ranked[0].GreatCount)
		assert.Equal(t, 1, ranked[0].IfNeededCount)
		assert.Equal(t, 2, ranked[0].TotalParticipants)
		assert.InDelta(t, 1.0, ranked[1].Score, 1e-12)
		assert.Equal(t, 1, ranked[1].AvailableCount)
		assert.InDelta(t, 1.0, ranked[2].Score, 1e-12)
	})

	t.Run("should return empty non-nil result without responses", func(t *testing.T) {
		ranked := ComputeRanking(testEvent(), 3)

		assert.NotNil(t, ranked)
		assert.Empty(t, ranked)
	})

	t.Run("should return empty result for zero top", func(t *testing.T) {
		assert.Empty(t, ComputeRanking(testEvent(alice), 0))
	})

	t.Run("should handle events without dates", func(t *testing.T) {
		e := testEvent(alice)
		e.Dates = nil

		assert.Empty(t, ComputeRanking(e, 3))
	})

	t.Run("should exclude slots nobody marked", func(t *testing.T) {
		ranked := ComputeRanking(testEvent(alice, bob), 10)

		assert.Len(t, ranked, 3)
		assert.NotContains(t, slotIds(ranked), "2025-03-15T10:30")
	})

	t.Run("should ignore slots outside the grid", func(t *testing.T) {
		outside := event.Availability{
			ParticipantName: "Carol",
			Slots:           []string{"2025-03-15T08:30", "2025-03-16T09:00", "2025-03-15T11:00"},
		}

		ranked := ComputeRanking(testEvent(outside), 10)

		assert.Empty(t, ranked)
	})

	t.Run("should give great precedence when a slot is in both sets", func(t *testing.T) {
		both := event.Availability{
			ParticipantName: "Dave",
			Slots:           []string{"2025-03-15T09:00"},
			SlotsIfNeeded:   []string{"2025-03-15T09:00"},
		}

		ranked := ComputeRanking(testEvent(both), 3)

		require.Len(t, ranked, 1)
		assert.Equal(t, 1, ranked[0].GreatCount)
		assert.Equal(t, 0, ranked[0].IfNeededCount)
		assert.InDelta(t, 1.0, ranked[0].Score, 1e-12)
	})

	t.Run("should not score if needed marks when disabled", func(t *testing.T) {
		e := testEvent(alice, bob)
		e.DisableIfNeeded = true
		e.IfNeededWeight = weightPtr(1)

		ranked := ComputeRanking(e, 10)

		require.Len(t, ranked, 3)
		// 09:00 still leads on available count, with the score of its single great mark
		assert.Equal(t, "2025-03-15T09:00", ranked[0].Slot.String())
		for _, r := range ranked {
			assert.InDelta(t, 1.0, r.Score, 1e-12)
		}
	})

	t.Run("should rank only if needed slots below great ones", func(t *testing.T) {
		carol := event.Availability{ParticipantName: "Carol", SlotsIfNeeded: []string{"2025-03-15T10:30"}}

		ranked := ComputeRanking(testEvent(alice, bob, carol), 10)

		require.Len(t, ranked, 4)
		assert.Equal(t, "2025-03-15T10:30", ranked[3].Slot.String())
		assert.InDelta(t, 0.75, ranked[3].Score, 1e-12)
	})

	t.Run("should break score ties on available count then great count", func(t *testing.T) {
		// weight 0.5: one great (1.0) ties with two if needed (1.0)
		e := testEvent(
			event.Availability{ParticipantName: "A", Slots: []string{"2025-03-15T09:00"}},
			event.Availability{ParticipantName: "B", SlotsIfNeeded: []string{"2025-03-15T10:00"}},
			event.Availability{ParticipantName: "C", SlotsIfNeeded: []string{"2025-03-15T10:00"}},
		)
		e.IfNeededWeight = weightPtr(0.5)

		ranked := ComputeRanking(e, 3)

		assert.Equal(t, []string{"2025-03-15T10:00", "2025-03-15T09:00"}, slotIds(ranked))
	})

	t.Run("should be deterministic", func(t *testing.T) {
		e := testEvent(alice, bob)
		e.Dates = []string{"2025-03-17", "2025-03-15", "2025-03-16"}
		e.Availability = append(e.Availability, event.Availability{
			ParticipantName: "Carol",
			Slots:           []string{"2025-03-17T09:00", "2025-03-16T09:00", "2025-03-15T10:30"},
		})

		first := ComputeRanking(e, 10)
		second := ComputeRanking(e, 10)

		assert.Equal(t, first, second)
		assert.Equal(t, []string{
			"2025-03-15T09:00",
			"2025-03-15T09:30",
			"2025-03-15T10:00",
			"2025-03-15T10:30",
			"2025-03-16T09:00",
			"2025-03-17T09:00",
		}, slotIds(first))
	})

	t.Run("should not depend on response order", func(t *testing.T) {
		forward := ComputeRanking(testEvent(alice, bob), 10)
		backward := ComputeRanking(testEvent(bob, alice), 10)

		assert.Equal(t, slotIds(forward), slotIds(backward))
	})
}

func TestRankAll_BreaksTiesOnSlotOrder(t *testing.T) {
	tallies := TallySlots(testEvent(
		event.Availability{ParticipantName: "A", Slots: []string{"2025-03-15T09:00", "2025-03-15T10:00"}, SlotsIfNeeded: []string{"2025-03-15T09:30"}},
		event.Availability{ParticipantName: "B", SlotsIfNeeded: []string{"2025-03-15T09:00", "2025-03-15T10:30"}},
		event.Availability{ParticipantName: "C", Slots: []string{"2025-03-15T10:30"}},
	))

	base := rankAll(tallies, 0.75)

	assert.Equal(t, []string{"2025-03-15T09:00", "2025-03-15T10:30", "2025-03-15T10:00", "2025-03-15T09:30"}, slotIds(base))
}

func TestTallySlots(t *testing.T) {
	e := testEvent(
		event.Availability{ParticipantName: "Alice", Slots: []string{"2025-03-15T09:00", "2025-03-15T09:00"}},
		event.Availability{ParticipantName: "Bob", SlotsIfNeeded: []string{"2025-03-15T09:00"}},
	)

	tallies := TallySlots(e)

	require.Len(t, tallies, 4)
	assert.Equal(t, slot.New("2025-03-15", 9, 0), tallies[0].Slot)
	assert.Equal(t, []string{"Alice"}, tallies[0].Great)
	assert.Equal(t, []string{"Bob"}, tallies[0].IfNeeded)
	assert.Equal(t, 2, tallies[0].TotalParticipants)
	assert.Equal(t, 0, tallies[1].AvailableCount())
}
