package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcapelli/chrono/internal/models"
)

var testToday = time.Date(2026, time.March, 7, 12, 0, 0, 0, time.Local)

func timedBlock(id string, cat models.Category, date, start, end string) models.TimeBlock {
	return models.TimeBlock{
		ID:        id,
		Title:     id,
		Category:  cat,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    models.StatusPlanned,
	}
}

func withActual(b models.TimeBlock, date string, start, end string) models.TimeBlock {
	day, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	parse := func(hhmm string) time.Time {
		t, _ := time.ParseInLocation("15:04", hhmm, time.Local)
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.Local)
	}
	s, e := parse(start), parse(end)
	b.ActualStartTime = &s
	b.ActualEndTime = &e
	b.Status = models.StatusCompleted
	return b
}

func TestWindowRange(t *testing.T) {
	from, to := WindowToday.Range(testToday)
	assert.Equal(t, "2026-03-07", from)
	assert.Equal(t, "2026-03-07", to)

	from, to = WindowWeek.Range(testToday)
	assert.Equal(t, "2026-03-01", from)
	assert.Equal(t, "2026-03-07", to)

	from, _ = WindowMonth.Range(testToday)
	assert.Equal(t, "2026-02-06", from)
}

func TestFilter(t *testing.T) {
	blocks := []models.TimeBlock{
		timedBlock("today", models.CategoryWork, "2026-03-07", "09:00", "10:00"),
		timedBlock("old", models.CategoryWork, "2026-02-01", "09:00", "10:00"),
		timedBlock("week", models.CategoryWork, "2026-03-02", "09:00", "10:00"),
	}

	today := Filter(blocks, WindowToday, testToday)
	require.Len(t, today, 1)
	assert.Equal(t, "today", today[0].ID)

	week := Filter(blocks, WindowWeek, testToday)
	assert.Len(t, week, 2)
}

func TestCategoryDistribution(t *testing.T) {
	blocks := []models.TimeBlock{
		withActual(timedBlock("w", models.CategoryWork, "2026-03-07", "09:00", "11:00"), "2026-03-07", "09:00", "10:00"),
		withActual(timedBlock("s", models.CategoryStudy, "2026-03-07", "10:00", "12:00"), "2026-03-07", "10:00", "10:30"),
	}

	dist := CategoryDistribution(blocks)
	require.Len(t, dist, 2, "categories with no blocks are absent")
	assert.Equal(t, models.CategoryWork, dist[0].Category)
	assert.Equal(t, 60, dist[0].Minutes, "actual duration wins over planned")
	assert.Equal(t, models.CategoryStudy, dist[1].Category)
	assert.Equal(t, 30, dist[1].Minutes)
}

func TestCategoryDistributionPlannedFallback(t *testing.T) {
	blocks := []models.TimeBlock{
		timedBlock("h", models.CategoryHealth, "2026-03-07", "07:00", "07:45"),
	}
	dist := CategoryDistribution(blocks)
	require.Len(t, dist, 1)
	assert.Equal(t, 45, dist[0].Minutes)
}

func TestPlannedVsActual(t *testing.T) {
	blocks := []models.TimeBlock{
		// Planned 2h, actual 1h35m -> 2.0 vs floor(1.5833*10)/10 = 1.5.
		withActual(timedBlock("w", models.CategoryWork, "2026-03-07", "09:00", "11:00"), "2026-03-07", "09:00", "10:35"),
		// Never timed: planned only.
		timedBlock("p", models.CategoryPersonal, "2026-03-07", "14:00", "14:30"),
	}

	rows := PlannedVsActual(blocks)
	require.Len(t, rows, 2)
	assert.Equal(t, models.CategoryWork, rows[0].Category)
	assert.Equal(t, 2.0, rows[0].PlannedHours)
	assert.Equal(t, 1.5, rows[0].ActualHours, "hours are floor-rounded to one decimal")
	assert.Equal(t, models.CategoryPersonal, rows[1].Category)
	assert.Equal(t, 0.5, rows[1].PlannedHours)
	assert.Equal(t, 0.0, rows[1].ActualHours)
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRate(nil), "empty window must not divide by zero")

	blocks := []models.TimeBlock{
		timedBlock("a", models.CategoryWork, "2026-03-07", "09:00", "10:00"),
		withActual(timedBlock("b", models.CategoryWork, "2026-03-07", "10:00", "11:00"), "2026-03-07", "10:00", "11:00"),
		withActual(timedBlock("c", models.CategoryWork, "2026-03-07", "11:00", "12:00"), "2026-03-07", "11:00", "12:00"),
		timedBlock("d", models.CategoryWork, "2026-03-07", "12:00", "13:00"),
	}
	assert.Equal(t, 50.0, CompletionRate(blocks))
}

func TestSubTasks(t *testing.T) {
	b := timedBlock("a", models.CategoryWork, "2026-03-07", "09:00", "10:00")
	b.SubTasks = []models.SubTask{
		{ID: "1", Title: "x", Completed: true},
		{ID: "2", Title: "y"},
		{ID: "3", Title: "z", Completed: true},
	}
	stats := SubTasks([]models.TimeBlock{b})
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Completed)
}

func TestSubTaskTrend(t *testing.T) {
	dayBlock := func(date string, completed int) models.TimeBlock {
		b := timedBlock("b-"+date, models.CategoryWork, date, "09:00", "10:00")
		for i := 0; i < completed; i++ {
			b.SubTasks = append(b.SubTasks, models.SubTask{ID: date + string(rune('a'+i)), Title: "t", Completed: true})
		}
		return b
	}
	blocks := []models.TimeBlock{
		dayBlock("2026-03-07", 2),
		dayBlock("2026-03-05", 1),
		dayBlock("2026-02-20", 4), // outside the trailing week
	}

	trend := SubTaskTrend(blocks, testToday)
	require.Len(t, trend, 7)
	assert.Equal(t, "2026-03-01", trend[0].Date, "oldest day first")
	assert.Equal(t, "2026-03-07", trend[6].Date)
	assert.Equal(t, 2, trend[6].Completed)
	assert.Equal(t, 1, trend[4].Completed)
	assert.Equal(t, 0, trend[0].Completed)
}

func TestFocusHeatmap(t *testing.T) {
	blocks := []models.TimeBlock{
		withActual(timedBlock("a", models.CategoryWork, "2026-03-07", "09:00", "10:30"), "2026-03-07", "09:00", "10:30"),
	}

	hm := FocusHeatmap(blocks, testToday)
	require.Len(t, hm.Days, 7)
	assert.Equal(t, "2026-03-07", hm.Days[6])

	// 09:00-10:30 fills hour 9 entirely and half of hour 10.
	assert.Equal(t, 1.0, hm.Cells[6][9-DefaultStartHour])
	assert.Equal(t, 0.5, hm.Cells[6][10-DefaultStartHour])
	assert.Equal(t, 0.0, hm.Cells[6][11-DefaultStartHour])
}

func TestFocusHeatmapCoarseOverlap(t *testing.T) {
	// A 9:50-10:10 interval touches both the 9 and 10 o'clock buckets.
	blocks := []models.TimeBlock{
		withActual(timedBlock("a", models.CategoryWork, "2026-03-07", "09:50", "10:10"), "2026-03-07", "09:50", "10:10"),
	}
	hm := FocusHeatmap(blocks, testToday)
	assert.Greater(t, hm.Cells[6][9-DefaultStartHour], 0.0)
	assert.Greater(t, hm.Cells[6][10-DefaultStartHour], 0.0)
}

func TestFocusHeatmapIgnoresUntimedBlocks(t *testing.T) {
	blocks := []models.TimeBlock{
		timedBlock("a", models.CategoryWork, "2026-03-07", "09:00", "10:00"),
	}
	hm := FocusHeatmap(blocks, testToday)
	for day := range hm.Cells {
		for _, cell := range hm.Cells[day] {
			assert.Equal(t, 0.0, cell)
		}
	}
}

func TestFocusHeatmapCapsAtFullHour(t *testing.T) {
	// Two overlapping recorded intervals in the same hour cap at 1.0.
	blocks := []models.TimeBlock{
		withActual(timedBlock("a", models.CategoryWork, "2026-03-07", "09:00", "10:00"), "2026-03-07", "09:00", "10:00"),
		withActual(timedBlock("b", models.CategoryStudy, "2026-03-07", "09:00", "10:00"), "2026-03-07", "09:15", "09:45"),
	}
	hm := FocusHeatmap(blocks, testToday)
	assert.Equal(t, 1.0, hm.Cells[6][9-DefaultStartHour])
}
