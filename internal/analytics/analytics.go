// Package analytics derives read-side aggregates from the block history:
// category distribution, planned-vs-actual comparison, completion rate,
// subtask trend and the weekly focus heatmap. Everything here is pure and
// recomputed from scratch; block counts are personal-scale.
package analytics

import (
	"math"
	"time"

	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/timeutil"
)

// Window selects how far back the aggregates look.
type Window int

const (
	WindowToday Window = iota
	WindowWeek         // trailing 7 days, today included
	WindowMonth        // trailing 30 days, today included
)

// Days returns how many trailing calendar days the window covers.
func (w Window) Days() int {
	switch w {
	case WindowWeek:
		return 7
	case WindowMonth:
		return 30
	default:
		return 1
	}
}

// Range returns the inclusive [from, to] date strings for a window ending
// today, ready for a store ByRange query.
func (w Window) Range(today time.Time) (from, to string) {
	to = timeutil.FormatDate(today)
	from = timeutil.FormatDate(today.AddDate(0, 0, -(w.Days() - 1)))
	return from, to
}

// Filter keeps the blocks whose date falls inside the window ending today.
func Filter(blocks []models.TimeBlock, w Window, today time.Time) []models.TimeBlock {
	from, to := w.Range(today)
	out := make([]models.TimeBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.Date >= from && b.Date <= to {
			out = append(out, b)
		}
	}
	return out
}

// CategoryTotal is one slice of the time distribution.
type CategoryTotal struct {
	Category models.Category
	Name     string
	Color    string
	Minutes  int
}

// CategoryDistribution sums time per category in minutes, preferring the
// actual recorded interval and falling back to the planned range when the
// block was never timed. Categories with a zero total are omitted; output
// order follows the fixed category set.
func CategoryDistribution(blocks []models.TimeBlock) []CategoryTotal {
	totals := make(map[models.Category]int)
	for _, b := range blocks {
		totals[b.Category] += blockMinutes(&b)
	}
	var out []CategoryTotal
	for _, info := range models.Categories {
		if totals[info.ID] <= 0 {
			continue
		}
		out = append(out, CategoryTotal{
			Category: info.ID,
			Name:     info.Name,
			Color:    info.Color,
			Minutes:  totals[info.ID],
		})
	}
	return out
}

// PlannedActual compares scheduled and recorded hours for one category.
type PlannedActual struct {
	Category     models.Category
	Name         string
	PlannedHours float64
	ActualHours  float64
}

// PlannedVsActual sums planned and actual minutes per category and converts
// both to hours with one floor-rounded decimal. Categories where both sums
// are zero are omitted.
func PlannedVsActual(blocks []models.TimeBlock) []PlannedActual {
	planned := make(map[models.Category]int)
	actual := make(map[models.Category]int)
	for _, b := range blocks {
		planned[b.Category] += plannedMinutes(&b)
		actual[b.Category] += actualMinutes(&b)
	}
	var out []PlannedActual
	for _, info := range models.Categories {
		p, a := planned[info.ID], actual[info.ID]
		if p == 0 && a == 0 {
			continue
		}
		out = append(out, PlannedActual{
			Category:     info.ID,
			Name:         info.Name,
			PlannedHours: floorHours(p),
			ActualHours:  floorHours(a),
		})
	}
	return out
}

// CompletionRate returns the percentage of completed blocks, 0 for an empty
// window.
func CompletionRate(blocks []models.TimeBlock) float64 {
	if len(blocks) == 0 {
		return 0
	}
	completed := 0
	for _, b := range blocks {
		if b.Completed() {
			completed++
		}
	}
	return float64(completed) / float64(len(blocks)) * 100
}

// SubTaskStats counts subtasks across the filtered blocks.
type SubTaskStats struct {
	Total     int
	Completed int
}

// SubTasks tallies subtask totals across the given blocks.
func SubTasks(blocks []models.TimeBlock) SubTaskStats {
	var stats SubTaskStats
	for _, b := range blocks {
		total, completed := b.SubTaskCounts()
		stats.Total += total
		stats.Completed += completed
	}
	return stats
}

// TrendPoint is one day of the subtask completion trend.
type TrendPoint struct {
	Date      string
	Completed int
}

// SubTaskTrend counts completed subtasks per day over the trailing 7
// calendar days, oldest first. It always spans the trailing week regardless
// of the selected window, so pass the unfiltered history.
func SubTaskTrend(blocks []models.TimeBlock, today time.Time) []TrendPoint {
	perDay := make(map[string]int)
	for _, b := range blocks {
		_, completed := b.SubTaskCounts()
		perDay[b.Date] += completed
	}
	points := make([]TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		date := timeutil.FormatDate(today.AddDate(0, 0, -i))
		points = append(points, TrendPoint{Date: date, Completed: perDay[date]})
	}
	return points
}

// HeatmapHours is the number of hourly buckets per day, 6:00 through 23:00.
const HeatmapHours = 18

// Heatmap is the weekly focus intensity grid: trailing 7 days (oldest
// first) by hourly buckets, each cell in [0, 1].
type Heatmap struct {
	Days  []string
	Cells [][HeatmapHours]float64
}

// FocusHeatmap distributes recorded focus time over the day-by-hour grid.
// Only blocks carrying both actual timestamps contribute. A block adds its
// per-hour overlap minutes to every bucket it touches; each cell is capped
// at a full hour before normalizing. The overlap test is deliberately
// coarse: a 9:50-10:10 interval lights up both the 9 and 10 o'clock buckets.
func FocusHeatmap(blocks []models.TimeBlock, today time.Time) Heatmap {
	hm := Heatmap{
		Days:  make([]string, 0, 7),
		Cells: make([][HeatmapHours]float64, 7),
	}
	dayIndex := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		date := timeutil.FormatDate(today.AddDate(0, 0, -i))
		dayIndex[date] = len(hm.Days)
		hm.Days = append(hm.Days, date)
	}

	minutes := make([][HeatmapHours]int, 7)
	for _, b := range blocks {
		day, ok := dayIndex[b.Date]
		if !ok || b.ActualStartTime == nil || b.ActualEndTime == nil {
			continue
		}
		startMin := timeutil.MinuteOfDay(*b.ActualStartTime)
		endMin := timeutil.MinuteOfDay(*b.ActualEndTime)
		for h := DefaultStartHour; h < DefaultStartHour+HeatmapHours; h++ {
			overlap := min(endMin, (h+1)*60) - max(startMin, h*60)
			if overlap <= 0 {
				continue
			}
			minutes[day][h-DefaultStartHour] += overlap
		}
	}

	for day := range minutes {
		for h, m := range minutes[day] {
			if m > 60 {
				m = 60
			}
			hm.Cells[day][h] = float64(m) / 60
		}
	}
	return hm
}

// DefaultStartHour mirrors the layout grid's first visible hour.
const DefaultStartHour = 6

// blockMinutes prefers the actual recorded interval and falls back to the
// planned range.
func blockMinutes(b *models.TimeBlock) int {
	if m := actualMinutes(b); m > 0 {
		return m
	}
	return plannedMinutes(b)
}

func actualMinutes(b *models.TimeBlock) int {
	if b.ActualStartTime == nil || b.ActualEndTime == nil {
		return 0
	}
	m := int(b.ActualEndTime.Sub(*b.ActualStartTime).Minutes())
	if m < 0 {
		return 0
	}
	return m
}

func plannedMinutes(b *models.TimeBlock) int {
	start, err := timeutil.TimeToMinutes(b.StartTime)
	if err != nil {
		return 0
	}
	end, err := timeutil.TimeToMinutes(b.EndTime)
	if err != nil {
		return 0
	}
	if end < start {
		return 0
	}
	return end - start
}

func floorHours(minutes int) float64 {
	return math.Floor(float64(minutes)/60*10) / 10
}
