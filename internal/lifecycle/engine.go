// Package lifecycle implements the timer state machine for time blocks:
// planned -> active -> paused -> completed, with elapsed-time bookkeeping
// that folds pause gaps into a rebased start epoch.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/mcapelli/chrono/internal/models"
)

// InvalidTransitionError reports a lifecycle operation attempted from a
// state that does not allow it. The block is left unchanged.
type InvalidTransitionError struct {
	Op   string
	From models.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s block", e.Op, e.From)
}

// Engine applies timer transitions to time blocks. Transitions mutate the
// block in memory only; persisting the result is the caller's concern.
// Now is injectable for tests and defaults to time.Now.
type Engine struct {
	Now func() time.Time
}

// NewEngine returns an engine running on the real clock.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Start begins the timer on a planned block. The actual start epoch is
// recorded and the paused accumulator reset.
func (e *Engine) Start(b *models.TimeBlock) error {
	if b.ExternalEvent {
		return models.ErrImmutableBlock
	}
	if b.Status != models.StatusPlanned {
		return &InvalidTransitionError{Op: "start", From: b.Status}
	}
	now := e.now()
	b.Status = models.StatusActive
	b.ActualStartTime = &now
	b.PausedDuration = 0
	return nil
}

// Pause freezes an active block. The elapsed active time so far is
// snapshotted into PausedDuration; the start epoch is left alone.
func (e *Engine) Pause(b *models.TimeBlock) error {
	if b.ExternalEvent {
		return models.ErrImmutableBlock
	}
	if b.Status != models.StatusActive {
		return &InvalidTransitionError{Op: "pause", From: b.Status}
	}
	var elapsed time.Duration
	if b.ActualStartTime != nil {
		elapsed = e.now().Sub(*b.ActualStartTime) - b.PausedDuration
	}
	b.PausedDuration += elapsed
	b.Status = models.StatusPaused
	return nil
}

// Resume restarts a paused block. The start epoch is rebased to now minus
// the accumulated active time, so now - ActualStartTime again yields true
// elapsed active time without any further subtraction.
func (e *Engine) Resume(b *models.TimeBlock) error {
	if b.ExternalEvent {
		return models.ErrImmutableBlock
	}
	if b.Status != models.StatusPaused {
		return &InvalidTransitionError{Op: "resume", From: b.Status}
	}
	rebased := e.now().Add(-b.PausedDuration)
	b.ActualStartTime = &rebased
	b.PausedDuration = 0
	b.Status = models.StatusActive
	return nil
}

// Complete finishes an active or paused block and stamps the actual end
// time. Completing a block that was never started is invalid input.
func (e *Engine) Complete(b *models.TimeBlock) error {
	if b.ExternalEvent {
		return models.ErrImmutableBlock
	}
	if b.Status != models.StatusActive && b.Status != models.StatusPaused {
		return &InvalidTransitionError{Op: "complete", From: b.Status}
	}
	now := e.now()
	b.Status = models.StatusCompleted
	b.ActualEndTime = &now
	return nil
}

// Reopen puts a completed block back to planned. The actual timestamps are
// kept so the historical record stays available to analytics; this is an
// explicit user action, not a reverse transition.
func (e *Engine) Reopen(b *models.TimeBlock) error {
	if b.ExternalEvent {
		return models.ErrImmutableBlock
	}
	if b.Status != models.StatusCompleted {
		return &InvalidTransitionError{Op: "reopen", From: b.Status}
	}
	b.Status = models.StatusPlanned
	return nil
}

// ToggleComplete flips completion on a block that is not being timed,
// the plain checkbox path. Timer fields are left untouched.
func (e *Engine) ToggleComplete(b *models.TimeBlock) error {
	if b.ExternalEvent {
		return models.ErrImmutableBlock
	}
	if b.Status == models.StatusCompleted {
		b.Status = models.StatusPlanned
	} else {
		b.Status = models.StatusCompleted
	}
	return nil
}

// Elapsed returns the active time accumulated by the block as of now.
// While paused, PausedDuration holds the active total snapshotted by Pause;
// after completion the rebased epoch makes end - start the right answer.
func (e *Engine) Elapsed(b *models.TimeBlock, now time.Time) time.Duration {
	switch b.Status {
	case models.StatusActive:
		if b.ActualStartTime == nil {
			return 0
		}
		return now.Sub(*b.ActualStartTime) - b.PausedDuration
	case models.StatusPaused:
		return b.PausedDuration
	case models.StatusCompleted:
		if b.ActualStartTime == nil || b.ActualEndTime == nil {
			return 0
		}
		return b.ActualEndTime.Sub(*b.ActualStartTime) - b.PausedDuration
	default:
		return 0
	}
}

// TransitionPatch captures the timer fields of a block after a transition,
// ready to be merged through the store.
func TransitionPatch(b *models.TimeBlock) models.Patch {
	status := b.Status
	paused := b.PausedDuration
	return models.Patch{
		Status:          &status,
		ActualStartTime: b.ActualStartTime,
		ActualEndTime:   b.ActualEndTime,
		PausedDuration:  &paused,
	}
}
