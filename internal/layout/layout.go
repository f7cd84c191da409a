// Package layout maps planned block times onto a vertical day grid: a fixed
// visible hour range divided into hourly rows of a fixed unit height. The
// coordinates are screen-independent; the renderer decides what a unit is.
package layout

import (
	"time"

	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/timeutil"
)

const (
	// DefaultStartHour and DefaultEndHour bound the visible range [6:00, 24:00).
	DefaultStartHour = 6
	DefaultEndHour   = 24
	// DefaultRowHeight is the unit height of one hour row.
	DefaultRowHeight = 64.0
	// DefaultMinHeight keeps very short blocks visible.
	DefaultMinHeight = 16.0
)

// Grid describes the visible day grid.
type Grid struct {
	StartHour int
	EndHour   int
	RowHeight float64
	MinHeight float64
}

// NewGrid returns the standard 6:00-24:00 grid.
func NewGrid() Grid {
	return Grid{
		StartHour: DefaultStartHour,
		EndHour:   DefaultEndHour,
		RowHeight: DefaultRowHeight,
		MinHeight: DefaultMinHeight,
	}
}

// Hours lists the hour rows of the grid, top to bottom.
func (g Grid) Hours() []int {
	hours := make([]int, 0, g.EndHour-g.StartHour)
	for h := g.StartHour; h < g.EndHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// TopOffset returns the vertical position of a block's planned start time.
func (g Grid) TopOffset(b *models.TimeBlock) (float64, error) {
	start, err := timeutil.TimeToMinutes(b.StartTime)
	if err != nil {
		return 0, err
	}
	return g.offsetForMinutes(start), nil
}

// BlockHeight returns the vertical extent of a block's planned range,
// floored to the minimum visual height. Blocks are not repositioned to
// avoid overlap; simultaneous blocks collide and that is accepted.
func (g Grid) BlockHeight(b *models.TimeBlock) (float64, error) {
	start, err := timeutil.TimeToMinutes(b.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := timeutil.TimeToMinutes(b.EndTime)
	if err != nil {
		return 0, err
	}
	h := float64(end-start) / 60 * g.RowHeight
	if h < g.MinHeight {
		h = g.MinHeight
	}
	return h, nil
}

// NowLine returns the offset for the current-time marker and whether it is
// inside the visible range at all.
func (g Grid) NowLine(now time.Time) (float64, bool) {
	minutes := timeutil.MinuteOfDay(now)
	if minutes < g.StartHour*60 || minutes >= g.EndHour*60 {
		return 0, false
	}
	return g.offsetForMinutes(minutes), true
}

// IsCurrentHour reports whether the given hour row contains now.
func (g Grid) IsCurrentHour(hour int, now time.Time) bool {
	return now.Hour() == hour
}

func (g Grid) offsetForMinutes(minutes int) float64 {
	return float64(minutes-g.StartHour*60) / 60 * g.RowHeight
}
