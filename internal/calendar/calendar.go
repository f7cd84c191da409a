// Package calendar imports external calendar events as read-only time
// blocks. Imported blocks carry a namespaced id, the catch-all category and
// the externalEvent flag; the store enforces their immutability from there.
package calendar

import (
	"context"

	"github.com/mcapelli/chrono/internal/applog"
	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/store"
)

// Importer turns one external calendar day into time blocks.
type Importer interface {
	Events(ctx context.Context, date string) ([]models.TimeBlock, error)
}

// externalBlock builds the common shape of an imported block. The id prefix
// namespaces external ids away from user-created ones.
func externalBlock(prefix, eventID, title, date, start, end string) models.TimeBlock {
	if title == "" {
		title = "Untitled event"
	}
	return models.TimeBlock{
		ID:            prefix + eventID,
		Title:         title,
		StartTime:     start,
		EndTime:       end,
		Category:      models.CategoryOther,
		Date:          date,
		Status:        models.StatusPlanned,
		SubTasks:      []models.SubTask{},
		ExternalEvent: true,
		ExternalID:    eventID,
	}
}

// SyncDay imports the given day through the importer and feeds the results
// into the store. Events already imported are skipped, so syncing is
// idempotent. Returns how many new blocks were added.
func SyncDay(ctx context.Context, st *store.Store, imp Importer, date string) (int, error) {
	blocks, err := imp.Events(ctx, date)
	if err != nil {
		return 0, err
	}
	added := 0
	for i := range blocks {
		inserted, err := st.ImportExternal(&blocks[i])
		if err != nil {
			return added, err
		}
		if inserted {
			added++
		}
	}
	applog.Info("calendar sync completed", "date", date, "fetched", len(blocks), "added", added)
	return added, nil
}
