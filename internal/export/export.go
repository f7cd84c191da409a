// Package export serializes the block collection to JSON and validates
// imported payloads before they touch the store. The wire shape is the
// canonical snake_case representation, with the legacy completed flag kept
// as a projection of status for older backups.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/store"
	"github.com/mcapelli/chrono/internal/timeutil"
)

// ValidationError reports a malformed import payload. Index is -1 when the
// payload as a whole is rejected.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return "invalid import payload: " + e.Reason
	}
	return fmt.Sprintf("invalid import record %d: %s", e.Index, e.Reason)
}

// blockJSON wraps a TimeBlock with the derived completed flag so backups
// round-trip through older versions of the format.
type blockJSON struct {
	models.TimeBlock
	Completed bool `json:"completed"`
}

// Export writes the blocks as an indented JSON array.
func Export(w io.Writer, blocks []models.TimeBlock) error {
	out := make([]blockJSON, len(blocks))
	for i, b := range blocks {
		if b.SubTasks == nil {
			b.SubTasks = []models.SubTask{}
		}
		out[i] = blockJSON{TimeBlock: b, Completed: b.Completed()}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Import parses and validates a JSON payload. The top level must be an
// array and every record must look like a time block; nothing is considered
// importable until the whole payload passes, so a malformed backup has no
// partial effects.
func Import(r io.Reader) ([]models.TimeBlock, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &ValidationError{Index: -1, Reason: "payload is not a JSON array"}
	}

	blocks := make([]models.TimeBlock, 0, len(records))
	for i, raw := range records {
		var rec blockJSON
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, &ValidationError{Index: i, Reason: "record is not an object"}
		}
		b := rec.TimeBlock
		// Older backups carry only the completed flag.
		if b.Status == "" {
			if rec.Completed {
				b.Status = models.StatusCompleted
			} else {
				b.Status = models.StatusPlanned
			}
		}
		if err := validateBlock(&b); err != nil {
			return nil, &ValidationError{Index: i, Reason: err.Error()}
		}
		if b.SubTasks == nil {
			b.SubTasks = []models.SubTask{}
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// ImportInto validates the payload and adds each block to the store.
// Records whose id is already present are skipped rather than overwritten.
func ImportInto(st *store.Store, r io.Reader) (added, skipped int, err error) {
	blocks, err := Import(r)
	if err != nil {
		return 0, 0, err
	}
	for i := range blocks {
		err := st.Add(&blocks[i])
		if errors.Is(err, store.ErrDuplicateID) {
			skipped++
			continue
		}
		if err != nil {
			return added, skipped, err
		}
		added++
	}
	return added, skipped, nil
}

func validateBlock(b *models.TimeBlock) error {
	if b.ID == "" {
		return errors.New("missing id")
	}
	if b.Title == "" {
		return errors.New("missing title")
	}
	if _, err := timeutil.ParseDate(b.Date); err != nil {
		return fmt.Errorf("bad date %q", b.Date)
	}
	if _, err := timeutil.TimeToMinutes(b.StartTime); err != nil {
		return fmt.Errorf("bad start time %q", b.StartTime)
	}
	if _, err := timeutil.TimeToMinutes(b.EndTime); err != nil {
		return fmt.Errorf("bad end time %q", b.EndTime)
	}
	if !models.ValidCategory(b.Category) {
		return fmt.Errorf("unknown category %q", b.Category)
	}
	if !models.ValidStatus(b.Status) {
		return fmt.Errorf("unknown status %q", b.Status)
	}
	seen := make(map[string]bool, len(b.SubTasks))
	for _, st := range b.SubTasks {
		if st.ID == "" {
			return errors.New("subtask missing id")
		}
		if seen[st.ID] {
			return fmt.Errorf("duplicate subtask id %q", st.ID)
		}
		seen[st.ID] = true
	}
	return nil
}
