package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/timeutil"
)

// ICSPrefix namespaces imported ICS event ids.
const ICSPrefix = "ics-"

// ICSImporter reads an ICS subscription feed and maps the requested day's
// timed events to external blocks.
type ICSImporter struct {
	URL    string
	Client *http.Client
}

// NewICSImporter returns an importer for the given feed URL.
func NewICSImporter(feedURL string) *ICSImporter {
	return &ICSImporter{
		URL:    feedURL,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Events fetches and parses the feed, keeping events whose local start day
// matches date. All-day and zero-length events are skipped; recurring
// events contribute only their stored occurrence.
func (i *ICSImporter) Events(ctx context.Context, date string) ([]models.TimeBlock, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.URL, nil)
	if err != nil {
		return nil, err
	}
	client := i.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ics fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ics fetch failed: %s", resp.Status)
	}

	cal, err := ical.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ics parse failed: %w", err)
	}
	return i.blocksForDay(cal, date)
}

func (i *ICSImporter) blocksForDay(cal *ical.Calendar, date string) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	for _, ev := range cal.Events() {
		uidProp := ev.GetProperty(ical.ComponentPropertyUniqueId)
		if uidProp == nil || uidProp.Value == "" {
			continue
		}
		start, err := ev.GetStartAt()
		if err != nil {
			continue
		}
		end, err := ev.GetEndAt()
		if err != nil {
			continue
		}
		start, end = start.Local(), end.Local()
		if timeutil.FormatDate(start) != date || !end.After(start) {
			continue
		}

		summary := ""
		if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary = p.Value
		}
		blocks = append(blocks, externalBlock(
			ICSPrefix, uidProp.Value, summary, date,
			timeutil.FormatTime(start), timeutil.FormatTime(end),
		))
	}
	return blocks, nil
}
