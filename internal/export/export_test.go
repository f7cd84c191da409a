package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/store"
)

func sampleBlocks() []models.TimeBlock {
	end := time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)
	start := end.Add(-time.Hour)
	return []models.TimeBlock{
		{
			ID:        "b1",
			Title:     "Deep work",
			StartTime: "09:00",
			EndTime:   "10:00",
			Category:  models.CategoryWork,
			Date:      "2026-03-07",
			Status:    models.StatusCompleted,
			SubTasks: []models.SubTask{
				{ID: "st1", Title: "outline", Completed: true},
			},
			ActualStartTime: &start,
			ActualEndTime:   &end,
		},
		{
			ID:        "b2",
			Title:     "Reading",
			StartTime: "20:00",
			EndTime:   "21:00",
			Category:  models.CategoryStudy,
			Date:      "2026-03-07",
			Status:    models.StatusPlanned,
		},
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleBlocks()))

	// The legacy completed flag is present and derived from status.
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, true, raw[0]["completed"])
	assert.Equal(t, false, raw[1]["completed"])
	assert.Equal(t, "09:00", raw[0]["start_time"])

	blocks, err := Import(&buf)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "Deep work", blocks[0].Title)
	assert.Equal(t, models.StatusCompleted, blocks[0].Status)
	require.Len(t, blocks[0].SubTasks, 1)
	require.NotNil(t, blocks[0].ActualStartTime)
}

func TestImportRejectsNonArray(t *testing.T) {
	_, err := Import(strings.NewReader(`{"id":"b1"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, -1, verr.Index)
}

func TestImportRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing id", `[{"title":"x","date":"2026-03-07","start_time":"09:00","end_time":"10:00","category":"work","status":"planned"}]`},
		{"bad date", `[{"id":"a","title":"x","date":"tomorrow","start_time":"09:00","end_time":"10:00","category":"work","status":"planned"}]`},
		{"bad time", `[{"id":"a","title":"x","date":"2026-03-07","start_time":"9am","end_time":"10:00","category":"work","status":"planned"}]`},
		{"unknown category", `[{"id":"a","title":"x","date":"2026-03-07","start_time":"09:00","end_time":"10:00","category":"gym","status":"planned"}]`},
		{"unknown status", `[{"id":"a","title":"x","date":"2026-03-07","start_time":"09:00","end_time":"10:00","category":"work","status":"later"}]`},
		{"duplicate subtask ids", `[{"id":"a","title":"x","date":"2026-03-07","start_time":"09:00","end_time":"10:00","category":"work","status":"planned","sub_tasks":[{"id":"s","title":"1"},{"id":"s","title":"2"}]}]`},
		{"record not an object", `[42]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.payload))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, 0, verr.Index)
		})
	}
}

func TestImportMigratesLegacyCompletedFlag(t *testing.T) {
	payload := `[{"id":"old","title":"legacy","date":"2026-03-07","start_time":"09:00","end_time":"10:00","category":"work","completed":true}]`
	blocks, err := Import(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, models.StatusCompleted, blocks[0].Status)
}

func TestImportIntoSkipsDuplicates(t *testing.T) {
	st, err := store.OpenMemory()
	require.NoError(t, err)
	defer st.Close()

	existing := sampleBlocks()[0]
	require.NoError(t, st.Add(&existing))

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleBlocks()))

	added, skipped, err := ImportInto(st, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, skipped)
}

func TestImportIntoNoPartialEffectsOnMalformedPayload(t *testing.T) {
	st, err := store.OpenMemory()
	require.NoError(t, err)
	defer st.Close()

	_, _, err = ImportInto(st, strings.NewReader(`{"not":"an array"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	blocks, err := st.All()
	require.NoError(t, err)
	assert.Empty(t, blocks, "nothing may be inserted from a rejected payload")
}
