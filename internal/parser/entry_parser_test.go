package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcapelli/chrono/internal/models"
)

var parserToday = time.Date(2026, time.March, 7, 12, 0, 0, 0, time.Local)

func TestParseEntryFull(t *testing.T) {
	e := ParseEntry("Deep work 09:00-10:30 @work on:2026-03-09", parserToday)
	assert.Empty(t, e.Errors)
	assert.Equal(t, "Deep work", e.Title)
	assert.Equal(t, "09:00", e.StartTime)
	assert.Equal(t, "10:30", e.EndTime)
	assert.Equal(t, models.CategoryWork, e.Category)
	assert.Equal(t, "2026-03-09", e.Date)
}

func TestParseEntryDefaults(t *testing.T) {
	e := ParseEntry("Morning run 7:00-7:45", parserToday)
	assert.Empty(t, e.Errors)
	assert.Equal(t, "Morning run", e.Title)
	assert.Equal(t, "07:00", e.StartTime, "times are normalized to zero-padded HH:mm")
	assert.Equal(t, models.CategoryOther, e.Category)
	assert.Equal(t, "2026-03-07", e.Date, "date defaults to today")
}

func TestParseEntryErrors(t *testing.T) {
	e := ParseEntry("Just a title", parserToday)
	assert.NotEmpty(t, e.Errors)

	e = ParseEntry("Yoga 18:00-19:00 @gym", parserToday)
	assert.Len(t, e.Errors, 1)
	assert.Contains(t, e.Errors[0], "Unknown category")
	assert.Equal(t, models.CategoryOther, e.Category)

	e = ParseEntry("Meet 10:00-11:00 on:tomorrow", parserToday)
	assert.Len(t, e.Errors, 1)
	assert.Contains(t, e.Errors[0], "Invalid date")
}
