package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcapelli/chrono/internal/models"
)

func gridBlock(start, end string) *models.TimeBlock {
	return &models.TimeBlock{
		ID:        "b",
		Title:     "b",
		StartTime: start,
		EndTime:   end,
		Date:      "2026-03-07",
	}
}

func TestTopOffset(t *testing.T) {
	g := NewGrid()

	off, err := g.TopOffset(gridBlock("06:00", "07:00"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, off)

	off, err = g.TopOffset(gridBlock("09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, 3*DefaultRowHeight, off)

	off, err = g.TopOffset(gridBlock("09:30", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, 3.5*DefaultRowHeight, off)

	_, err = g.TopOffset(gridBlock("oops", "10:00"))
	assert.Error(t, err)
}

func TestBlockHeight(t *testing.T) {
	g := NewGrid()

	h, err := g.BlockHeight(gridBlock("09:00", "10:30"))
	require.NoError(t, err)
	assert.Equal(t, 1.5*DefaultRowHeight, h)

	// Very short blocks are floored to the minimum visual height.
	h, err = g.BlockHeight(gridBlock("09:00", "09:05"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMinHeight, h)
}

func TestNowLine(t *testing.T) {
	g := NewGrid()

	at := func(hour, min int) time.Time {
		return time.Date(2026, time.March, 7, hour, min, 0, 0, time.Local)
	}

	off, visible := g.NowLine(at(6, 0))
	assert.True(t, visible)
	assert.Equal(t, 0.0, off)

	off, visible = g.NowLine(at(12, 30))
	assert.True(t, visible)
	assert.Equal(t, 6.5*DefaultRowHeight, off)

	_, visible = g.NowLine(at(5, 59))
	assert.False(t, visible, "before the visible range")

	off, visible = g.NowLine(at(23, 59))
	assert.True(t, visible)
	assert.InDelta(t, 17.983*DefaultRowHeight, off, 0.1)
}

func TestHoursAndCurrentHour(t *testing.T) {
	g := NewGrid()
	hours := g.Hours()
	require.Len(t, hours, 18)
	assert.Equal(t, 6, hours[0])
	assert.Equal(t, 23, hours[len(hours)-1])

	noon := time.Date(2026, time.March, 7, 12, 15, 0, 0, time.Local)
	assert.True(t, g.IsCurrentHour(12, noon))
	assert.False(t, g.IsCurrentHour(13, noon))
}
