package ranking

import (
	"testing"

	"github.com/gathertime/gathertime/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("view")
	require.NoError(t, err)
	assert.Equal(t, ModeView, mode)

	mode, err = ParseMode("input")
	require.NoError(t, err)
	assert.Equal(t, ModeInput, mode)

	_, err = ParseMode("edit")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestBuildGrid(t *testing.T) {
	e := testEvent(
		event.Availability{ParticipantName: "Alice", Slots: []string{"2025-03-15T09:00", "2025-03-15T09:30"}},
		event.Availability{ParticipantName: "Bob", Slots: []string{"2025-03-15T10:00"}, SlotsIfNeeded: []string{"2025-03-15T09:00"}},
	)
	e.Dates = []string{"2025-03-16", "2025-03-15"}

	t.Run("should build the group view", func(t *testing.T) {
		grid, err := BuildGrid(e, GridOptions{Mode: ModeView})

		require.NoError(t, err)
		assert.Equal(t, ModeView, grid.Mode)
		assert.Nil(t, grid.Input)
		require.NotNil(t, grid.View)
		assert.Equal(t, []string{"2025-03-15", "2025-03-16"}, grid.Dates)
		assert.Equal(t, []int{9, 10}, grid.Hours)
		assert.Equal(t, []string{"Alice", "Bob"}, grid.View.Participants)
		require.Len(t, grid.View.Cells, 8)

		first := grid.View.Cells[0]
		assert.Equal(t, "2025-03-15T09:00", first.Slot.String())
		assert.Equal(t, []string{"Alice"}, first.Great)
		assert.Equal(t, []string{"Bob"}, first.IfNeeded)
		assert.InDelta(t, 1.75, first.Score, 1e-12)
		assert.InDelta(t, 1.0, first.Heat, 1e-12)

		empty := grid.View.Cells[7]
		assert.Equal(t, "2025-03-16T10:30", empty.Slot.String())
		assert.Equal(t, []string{}, empty.Great)
		assert.Equal(t, []string{}, empty.IfNeeded)
		assert.Equal(t, 0.0, empty.Heat)
	})

	t.Run("should build a participant's input grid", func(t *testing.T) {
		grid, err := BuildGrid(e, GridOptions{Mode: ModeInput, Participant: "Bob", ShowOthers: true})

		require.NoError(t, err)
		assert.Nil(t, grid.View)
		require.NotNil(t, grid.Input)
		assert.Equal(t, "Bob", grid.Input.ParticipantName)
		require.Len(t, grid.Input.Cells, 8)

		assert.Equal(t, event.MarkIfNeeded, grid.Input.Cells[0].Mark)
		assert.Equal(t, 1, grid.Input.Cells[0].OthersAvailable)
		assert.Equal(t, event.MarkUnavailable, grid.Input.Cells[1].Mark)
		assert.Equal(t, 1, grid.Input.Cells[1].OthersAvailable)
		assert.Equal(t, event.MarkGreat, grid.Input.Cells[2].Mark)
		assert.Equal(t, 0, grid.Input.Cells[2].OthersAvailable)
	})

	t.Run("should hide others in the input grid when asked", func(t *testing.T) {
		grid, err := BuildGrid(e, GridOptions{Mode: ModeInput, Participant: "Bob"})

		require.NoError(t, err)
		for _, cell := range grid.Input.Cells {
			assert.Equal(t, 0, cell.OthersAvailable)
		}
	})

	t.Run("should build an empty input grid for a new participant", func(t *testing.T) {
		grid, err := BuildGrid(e, GridOptions{Mode: ModeInput, Participant: "Carol", ShowOthers: true})

		require.NoError(t, err)
		assert.Equal(t, event.MarkUnavailable, grid.Input.Cells[0].Mark)
		assert.Equal(t, 2, grid.Input.Cells[0].OthersAvailable)
	})

	t.Run("should reject an unknown mode", func(t *testing.T) {
		_, err := BuildGrid(e, GridOptions{Mode: "edit"})

		assert.ErrorIs(t, err, ErrUnknownMode)
	})
}
