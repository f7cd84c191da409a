package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/store"
)

func TestGoogleImporterEvents(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{
					"id": "ev1",
					"summary": "Team standup",
					"start": {"dateTime": "2026-03-07T09:00:00Z"},
					"end": {"dateTime": "2026-03-07T09:30:00Z"}
				},
				{
					"id": "ev2",
					"start": {"date": "2026-03-07"},
					"end": {"date": "2026-03-08"}
				}
			]
		}`))
	}))
	defer srv.Close()

	imp := NewGoogleImporter("tok-123")
	imp.BaseURL = srv.URL

	blocks, err := imp.Events(context.Background(), "2026-03-07")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)

	require.Len(t, blocks, 1, "all-day events are skipped")
	b := blocks[0]
	assert.Equal(t, "gcal-ev1", b.ID)
	assert.Equal(t, "ev1", b.ExternalID)
	assert.Equal(t, "Team standup", b.Title)
	assert.True(t, b.ExternalEvent)
	assert.Equal(t, models.CategoryOther, b.Category)
	assert.Equal(t, models.StatusPlanned, b.Status)
	assert.Empty(t, b.SubTasks)
}

func TestGoogleImporterAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	imp := NewGoogleImporter("bad-token")
	imp.BaseURL = srv.URL
	_, err := imp.Events(context.Background(), "2026-03-07")
	assert.Error(t, err)
}

func TestGoogleImporterUntitledFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"id":"x","start":{"dateTime":"2026-03-07T10:00:00Z"},"end":{"dateTime":"2026-03-07T11:00:00Z"}}]}`))
	}))
	defer srv.Close()

	imp := NewGoogleImporter("tok")
	imp.BaseURL = srv.URL
	blocks, err := imp.Events(context.Background(), "2026-03-07")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Untitled event", blocks[0].Title)
}

const sampleICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:meeting-1
SUMMARY:Design review
DTSTART:20260307T110000Z
DTEND:20260307T120000Z
END:VEVENT
BEGIN:VEVENT
UID:meeting-2
SUMMARY:Other day
DTSTART:20260308T110000Z
DTEND:20260308T120000Z
END:VEVENT
END:VCALENDAR
`

func TestICSImporterEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		w.Write([]byte(sampleICS))
	}))
	defer srv.Close()

	imp := NewICSImporter(srv.URL)
	blocks, err := imp.Events(context.Background(), "2026-03-07")
	require.NoError(t, err)

	require.Len(t, blocks, 1, "only the requested day is kept")
	b := blocks[0]
	assert.Equal(t, "ics-meeting-1", b.ID)
	assert.Equal(t, "Design review", b.Title)
	assert.True(t, b.ExternalEvent)
}

func TestSyncDayIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleICS))
	}))
	defer srv.Close()

	st, err := store.OpenMemory()
	require.NoError(t, err)
	defer st.Close()

	imp := NewICSImporter(srv.URL)
	added, err := SyncDay(context.Background(), st, imp, "2026-03-07")
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	added, err = SyncDay(context.Background(), st, imp, "2026-03-07")
	require.NoError(t, err)
	assert.Equal(t, 0, added, "re-syncing the same day adds nothing")

	blocks, err := st.ByDate("2026-03-07")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].ExternalEvent)
}
