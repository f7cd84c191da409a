// Package notify fires "starting soon" and "starting now" reminders for
// planned blocks. Delivery is best effort: the check runs on a minute tick
// and matches offsets exactly, so a skipped minute skips its reminders.
package notify

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mcapelli/chrono/internal/applog"
	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/store"
	"github.com/mcapelli/chrono/internal/timeutil"
)

// Permission mirrors the three-way notification permission state.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// PermissionProvider reports whether the user allows reminders.
type PermissionProvider interface {
	Permission() Permission
	Request() (Permission, error)
}

// StaticPermission is a fixed-state provider; Request is a no-op.
type StaticPermission Permission

func (p StaticPermission) Permission() Permission      { return Permission(p) }
func (p StaticPermission) Request() (Permission, error) { return Permission(p), nil }

// Notifier receives reminder events for blocks about to start.
type Notifier interface {
	BlockStarting(b models.TimeBlock, minutesBefore int)
	BlockStarted(b models.TimeBlock)
}

// LeadMinutes is the fixed "starting soon" offset.
const LeadMinutes = 5

// Scheduler polls today's planned blocks once per minute and fires
// reminders at the fixed offsets.
type Scheduler struct {
	store    *store.Store
	notifier Notifier
	perms    PermissionProvider
	cron     *cron.Cron

	// Now is injectable for tests and defaults to time.Now.
	Now func() time.Time
}

// NewScheduler wires a scheduler to its collaborators. Call Start to begin
// polling and Stop to tear it down.
func NewScheduler(st *store.Store, n Notifier, p PermissionProvider) *Scheduler {
	return &Scheduler{
		store:    st,
		notifier: n,
		perms:    p,
		cron:     cron.New(),
		Now:      time.Now,
	}
}

// Start begins the minute tick.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@every 1m", s.tick); err != nil {
		return err
	}
	s.cron.Start()
	applog.Info("notification scheduler started")
	return nil
}

// Stop halts the tick. Running checks finish; none are started after.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	applog.Info("notification scheduler stopped")
}

func (s *Scheduler) tick() {
	if err := s.CheckAt(s.Now()); err != nil {
		applog.Error("reminder check failed", err)
	}
}

// CheckAt fires the reminders due at the given instant: a "starting soon"
// when a planned block starts in exactly LeadMinutes, a "starting now" when
// it starts this minute. Nothing fires without granted permission.
func (s *Scheduler) CheckAt(now time.Time) error {
	if s.perms.Permission() != PermissionGranted {
		return nil
	}
	blocks, err := s.store.ByDate(timeutil.FormatDate(now))
	if err != nil {
		return err
	}
	currentMinutes := timeutil.MinuteOfDay(now)
	for _, b := range blocks {
		if b.Status != models.StatusPlanned {
			continue
		}
		startMinutes, err := timeutil.TimeToMinutes(b.StartTime)
		if err != nil {
			continue
		}
		switch startMinutes - currentMinutes {
		case LeadMinutes:
			s.notifier.BlockStarting(b, LeadMinutes)
		case 0:
			s.notifier.BlockStarted(b)
		}
	}
	return nil
}
