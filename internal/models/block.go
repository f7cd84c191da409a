package models

import (
	"errors"
	"time"
)

// Status is the authoritative lifecycle state of a time block.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is one of the lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPlanned, StatusActive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// ErrImmutableBlock is returned when an edit, deletion or timer transition
// is attempted on a block imported from an external calendar.
var ErrImmutableBlock = errors.New("imported calendar blocks cannot be modified")

// SubTask is a checklist item owned by a single time block. It has no
// lifecycle of its own.
type SubTask struct {
	ID        string `gorm:"primarykey" json:"id"`
	BlockID   string `gorm:"index;not null" json:"-"`
	Position  int    `gorm:"not null" json:"-"`
	Title     string `gorm:"not null" json:"title"`
	Completed bool   `gorm:"default:false" json:"completed"`
}

// TimeBlock is a scheduled activity occupying a planned time range on a
// given calendar day. Column and JSON names follow the canonical external
// representation (snake_case).
type TimeBlock struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Title     string   `gorm:"not null" json:"title"`
	StartTime string   `gorm:"column:start_time;not null" json:"start_time"` // HH:mm
	EndTime   string   `gorm:"column:end_time;not null" json:"end_time"`     // HH:mm
	Category  Category `gorm:"default:other" json:"category"`
	Date      string   `gorm:"index;not null" json:"date"` // YYYY-MM-DD

	// Status is the single source of truth for completion; the legacy
	// completed flag is derived from it, never stored independently.
	Status          Status        `gorm:"default:planned" json:"status"`
	ActualStartTime *time.Time    `gorm:"column:actual_start_time" json:"actual_start_time,omitempty"`
	ActualEndTime   *time.Time    `gorm:"column:actual_end_time" json:"actual_end_time,omitempty"`
	PausedDuration  time.Duration `gorm:"column:paused_duration" json:"paused_duration"`

	ExternalEvent bool   `gorm:"column:external_event;default:false" json:"external_event"`
	ExternalID    string `gorm:"column:external_id" json:"external_id,omitempty"`

	SubTasks []SubTask `gorm:"foreignKey:BlockID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sub_tasks"`
}

// Completed reports whether the block reached its terminal state.
func (b *TimeBlock) Completed() bool {
	return b.Status == StatusCompleted
}

// SubTaskCounts returns the total and completed subtask counts.
func (b *TimeBlock) SubTaskCounts() (total, completed int) {
	total = len(b.SubTasks)
	for _, st := range b.SubTasks {
		if st.Completed {
			completed++
		}
	}
	return total, completed
}
