package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/timeutil"
)

const (
	defaultGoogleBaseURL = "https://www.googleapis.com/calendar/v3"

	// GooglePrefix namespaces imported Google event ids.
	GooglePrefix = "gcal-"
)

// GoogleImporter reads one day of the primary Google Calendar through the
// REST API with a caller-supplied OAuth access token. Token acquisition is
// outside this package.
type GoogleImporter struct {
	Token   string
	Client  *http.Client
	BaseURL string // overridable for tests
}

// NewGoogleImporter returns an importer with a 15 second request timeout.
func NewGoogleImporter(token string) *GoogleImporter {
	return &GoogleImporter{
		Token:  token,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

type googleEventTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

type googleEvent struct {
	ID      string          `json:"id"`
	Summary string          `json:"summary"`
	Start   googleEventTime `json:"start"`
	End     googleEventTime `json:"end"`
}

type googleEventList struct {
	Items []googleEvent `json:"items"`
}

// Events fetches the day's events, expanded to single instances and ordered
// by start time, and maps the timed ones to external blocks. All-day events
// carry no wall-clock range and are skipped.
func (g *GoogleImporter) Events(ctx context.Context, date string) ([]models.TimeBlock, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, err
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	base := g.BaseURL
	if base == "" {
		base = defaultGoogleBaseURL
	}
	q := url.Values{}
	q.Set("timeMin", dayStart.Format(time.RFC3339))
	q.Set("timeMax", dayEnd.Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/calendars/primary/events?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.Token)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google calendar API error: %s", resp.Status)
	}

	var list googleEventList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("google calendar response decode failed: %w", err)
	}

	blocks := make([]models.TimeBlock, 0, len(list.Items))
	for _, ev := range list.Items {
		start, ok := parseGoogleTime(ev.Start)
		if !ok {
			continue
		}
		end, ok := parseGoogleTime(ev.End)
		if !ok {
			continue
		}
		blocks = append(blocks, externalBlock(
			GooglePrefix, ev.ID, ev.Summary, date,
			timeutil.FormatTime(start), timeutil.FormatTime(end),
		))
	}
	return blocks, nil
}

func parseGoogleTime(t googleEventTime) (time.Time, bool) {
	if t.DateTime == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339, t.DateTime)
	if err != nil {
		return time.Time{}, false
	}
	return parsed.Local(), true
}
