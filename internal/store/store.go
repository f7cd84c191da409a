// Package store owns the persisted collection of time blocks. It is the
// single write path for the application: user edits, timer transitions and
// calendar imports all commit here before readers observe them.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mcapelli/chrono/internal/models"
)

var (
	// ErrNotFound is returned when an operation names an unknown block id.
	ErrNotFound = errors.New("time block not found")
	// ErrDuplicateID is returned when an insert collides with an existing id.
	ErrDuplicateID = errors.New("time block id already exists")
)

// PersistenceError wraps a failed backend call with the operation that
// issued it. The cause is preserved for errors.Is/As.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Store is the authoritative, queryable collection of time blocks, backed
// by a sqlite database. Mutations commit to the database before observers
// are notified.
type Store struct {
	db  *gorm.DB
	hub hub
}

// Open opens (creating if necessary) the database at path and runs
// migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return open(path)
}

// OpenMemory opens a throwaway in-memory database, used by tests.
func OpenMemory() (*Store, error) {
	return open(":memory:")
}

func open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&models.TimeBlock{}, &models.SubTask{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// DefaultPath returns the on-disk database location, ~/.chrono/chrono.db.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".chrono", "chrono.db"), nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Add inserts a new block. The id must not collide with an existing block.
func (s *Store) Add(b *models.TimeBlock) error {
	var count int64
	if err := s.db.Model(&models.TimeBlock{}).Where("id = ?", b.ID).Count(&count).Error; err != nil {
		return &PersistenceError{Op: "add", Err: err}
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
	}
	numberSubTasks(b)
	if err := s.db.Create(b).Error; err != nil {
		return &PersistenceError{Op: "add", Err: err}
	}
	s.hub.publish(Event{Kind: BlockAdded, ID: b.ID})
	return nil
}

// Get returns a single block with its subtasks in insertion order.
func (s *Store) Get(id string) (*models.TimeBlock, error) {
	var b models.TimeBlock
	err := s.subTaskScope(s.db).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get", Err: err}
	}
	return &b, nil
}

// Update merges the set fields of patch into the matching block. Fields the
// patch leaves nil are not clobbered. External calendar blocks are
// untouchable through this path.
func (s *Store) Update(id string, patch models.Patch) (*models.TimeBlock, error) {
	var updated *models.TimeBlock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var b models.TimeBlock
		err := s.subTaskScope(tx).First(&b, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		if b.ExternalEvent {
			return models.ErrImmutableBlock
		}

		patch.Apply(&b)
		if patch.SubTasks != nil {
			if err := tx.Where("block_id = ?", id).Delete(&models.SubTask{}).Error; err != nil {
				return err
			}
			numberSubTasks(&b)
		}
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&b).Error; err != nil {
			return err
		}
		updated = &b
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, models.ErrImmutableBlock) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "update", Err: err}
	}
	s.hub.publish(Event{Kind: BlockUpdated, ID: id})
	return updated, nil
}

// SaveTransition persists the timer fields of a block the lifecycle engine
// just mutated. The engine has already vetted the transition, including the
// external-block guard.
func (s *Store) SaveTransition(b *models.TimeBlock) error {
	res := s.db.Model(&models.TimeBlock{}).Where("id = ?", b.ID).Updates(map[string]any{
		"status":            b.Status,
		"actual_start_time": b.ActualStartTime,
		"actual_end_time":   b.ActualEndTime,
		"paused_duration":   b.PausedDuration,
	})
	if res.Error != nil {
		return &PersistenceError{Op: "save transition", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, b.ID)
	}
	s.hub.publish(Event{Kind: BlockUpdated, ID: b.ID})
	return nil
}

// Remove deletes a block and its subtasks. Removing an unknown id is
// reported as ErrNotFound, matching Update for consistency.
func (s *Store) Remove(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var b models.TimeBlock
		err := tx.First(&b, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}
		if b.ExternalEvent {
			return models.ErrImmutableBlock
		}
		if err := tx.Where("block_id = ?", id).Delete(&models.SubTask{}).Error; err != nil {
			return err
		}
		return tx.Delete(&b).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, models.ErrImmutableBlock) {
			return err
		}
		return &PersistenceError{Op: "remove", Err: err}
	}
	s.hub.publish(Event{Kind: BlockRemoved, ID: id})
	return nil
}

// RemoveAll wipes the collection. Imported calendar blocks are kept unless
// includeExternal is set; they are owned by the calendar sync, not the user.
func (s *Store) RemoveAll(includeExternal bool) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.TimeBlock{})
		if !includeExternal {
			q = q.Where("external_event = ?", false)
		}
		var ids []string
		if err := q.Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("block_id IN ?", ids).Delete(&models.SubTask{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.TimeBlock{}).Error
	})
	if err != nil {
		return &PersistenceError{Op: "remove all", Err: err}
	}
	s.hub.publish(Event{Kind: BlockRemoved})
	return nil
}

// ByDate returns the blocks for one calendar day, ordered by planned start
// time ascending with insertion order breaking ties.
func (s *Store) ByDate(date string) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	err := s.subTaskScope(s.db).
		Where("date = ?", date).
		Order("start_time ASC, created_at ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, &PersistenceError{Op: "by date", Err: err}
	}
	return blocks, nil
}

// ByRange returns the blocks whose date falls inside [from, to], inclusive
// on both ends. Used by analytics for week and month windows.
func (s *Store) ByRange(from, to string) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	err := s.subTaskScope(s.db).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, start_time ASC, created_at ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, &PersistenceError{Op: "by range", Err: err}
	}
	return blocks, nil
}

// All returns every block in the collection, ordered by date and start time.
func (s *Store) All() ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	err := s.subTaskScope(s.db).
		Order("date ASC, start_time ASC, created_at ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, &PersistenceError{Op: "all", Err: err}
	}
	return blocks, nil
}

// ImportExternal inserts a calendar-sourced block, the only path allowed to
// create external_event rows. An id already present is skipped, so re-syncing
// a day is idempotent. Returns whether a row was inserted.
func (s *Store) ImportExternal(b *models.TimeBlock) (bool, error) {
	b.ExternalEvent = true
	var count int64
	if err := s.db.Model(&models.TimeBlock{}).Where("id = ?", b.ID).Count(&count).Error; err != nil {
		return false, &PersistenceError{Op: "import external", Err: err}
	}
	if count > 0 {
		return false, nil
	}
	if err := s.db.Create(b).Error; err != nil {
		return false, &PersistenceError{Op: "import external", Err: err}
	}
	s.hub.publish(Event{Kind: BlockAdded, ID: b.ID})
	return true, nil
}

// Subscribe registers a change listener; see Event for the consistency
// contract. The returned cancel func must be called to release the channel.
func (s *Store) Subscribe() (<-chan Event, func()) {
	return s.hub.subscribe()
}

func (s *Store) subTaskScope(db *gorm.DB) *gorm.DB {
	return db.Preload("SubTasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("sub_tasks.position ASC")
	})
}

// numberSubTasks assigns parent id and insertion order to a block's
// subtasks before they hit the database.
func numberSubTasks(b *models.TimeBlock) {
	for i := range b.SubTasks {
		b.SubTasks[i].BlockID = b.ID
		b.SubTasks[i].Position = i
	}
}
