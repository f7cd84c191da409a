package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/timeutil"
)

// ParsedEntry represents a time block parsed from a quick-add line.
type ParsedEntry struct {
	Title     string
	StartTime string
	EndTime   string
	Category  models.Category
	Date      string
	Errors    []string
}

var (
	rangeRegex = regexp.MustCompile(`\b(\d{1,2}:\d{2})-(\d{1,2}:\d{2})\b`)
	catRegex   = regexp.MustCompile(`@([a-zA-Z]+)`)
	dateRegex  = regexp.MustCompile(`\bon:(\S+)\b`)
)

// ParseEntry extracts schedule metadata from a quick-add line using natural
// syntax: "Deep work 09:00-10:30 @work on:2026-03-09". Missing pieces fall
// back to category other and today's date.
func ParseEntry(input string, today time.Time) ParsedEntry {
	result := ParsedEntry{
		Category: models.CategoryOther,
		Date:     timeutil.FormatDate(today),
		Errors:   []string{},
	}

	// Extract the planned time range (09:00-10:30)
	if m := rangeRegex.FindStringSubmatch(input); len(m) == 3 {
		start, err1 := timeutil.TimeToMinutes(m[1])
		end, err2 := timeutil.TimeToMinutes(m[2])
		if err1 != nil || err2 != nil {
			result.Errors = append(result.Errors, "Invalid time range: "+m[0])
		} else {
			result.StartTime = timeutil.MinutesToTime(start)
			result.EndTime = timeutil.MinutesToTime(end)
		}
		input = rangeRegex.ReplaceAllString(input, "")
	} else {
		result.Errors = append(result.Errors, "Missing time range. Use: HH:mm-HH:mm")
	}

	// Extract the category (@work)
	if m := catRegex.FindStringSubmatch(input); len(m) == 2 {
		cat := models.Category(strings.ToLower(m[1]))
		if models.ValidCategory(cat) {
			result.Category = cat
		} else {
			result.Errors = append(result.Errors, "Unknown category '"+m[1]+"'. Use: work, study, personal, health, other")
		}
		input = catRegex.ReplaceAllString(input, "")
	}

	// Extract an explicit date (on:2026-03-09)
	if m := dateRegex.FindStringSubmatch(input); len(m) == 2 {
		if _, err := timeutil.ParseDate(m[1]); err != nil {
			result.Errors = append(result.Errors, "Invalid date '"+m[1]+"'. Use: YYYY-MM-DD")
		} else {
			result.Date = m[1]
		}
		input = dateRegex.ReplaceAllString(input, "")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")
	if result.Title == "" {
		result.Errors = append(result.Errors, "Missing title")
	}

	return result
}
