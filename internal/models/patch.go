package models

import (
	"reflect"
	"time"
)

// Patch is a partial update to a TimeBlock. Nil fields are left untouched;
// set fields overwrite the corresponding block field. Field names must match
// the TimeBlock field they patch.
//
// Timer fields (Status, ActualStartTime, ActualEndTime, PausedDuration) are
// patchable so the lifecycle engine can persist transitions through the same
// merge path, but user-facing edits should only set the schedule fields.
type Patch struct {
	Title     *string
	StartTime *string
	EndTime   *string
	Category  *Category
	Date      *string
	SubTasks  []SubTask

	Status          *Status
	ActualStartTime *time.Time
	ActualEndTime   *time.Time
	PausedDuration  *time.Duration
}

// Apply copies every set field of the patch onto the block. Merging lives in
// this single field-wise routine so presence checks are not scattered across
// callers.
func (p Patch) Apply(b *TimeBlock) {
	pv := reflect.ValueOf(p)
	bv := reflect.ValueOf(b).Elem()
	pt := pv.Type()
	for i := 0; i < pv.NumField(); i++ {
		f := pv.Field(i)
		if f.IsNil() {
			continue
		}
		dst := bv.FieldByName(pt.Field(i).Name)
		if f.Type() == dst.Type() {
			// Pointer-typed or slice-typed block field patched as-is.
			dst.Set(f)
			continue
		}
		dst.Set(f.Elem())
	}
}
