package domain

import (
	"fmt"
	"time"
)

// Entity type tags for the item stores shipped with ganttline. Other stores
// may register additional tags; nothing in the engine switches on these.
const (
	TagTask    = "task"
	TagMeeting = "meeting"
)

// ScheduleItem is the uniform shape every collaborator store presents to the
// timeline engine. Stores keep their own records and schemas; this is a view.
type ScheduleItem struct {
	ID              *int64 // nil until persisted
	DisplayName     string
	EntityTypeTag   string
	ResponsibleName string
	StartDate       *time.Time
	EndDate         *time.Time
	ColorCode       string
	IconID          string
	ParentLink      *ParentLink

	// Modified is set when the parent link changed and the owning store
	// has not persisted it yet.
	Modified bool

	// Source is the concrete collaborator record (e.g. *Task).
	Source any
}

// Ref returns the item's tagged reference. ok is false for unpersisted items.
func (s *ScheduleItem) Ref() (ItemRef, bool) {
	if s.ID == nil {
		return ItemRef{Tag: s.EntityTypeTag}, false
	}
	return ItemRef{Tag: s.EntityTypeTag, ID: *s.ID}, true
}

// HasDates reports whether both start and end are present.
func (s *ScheduleItem) HasDates() bool {
	return s.StartDate != nil && s.EndDate != nil
}

// ItemRef addresses any schedule item across stores.
type ItemRef struct {
	Tag string
	ID  int64
}

func (r ItemRef) String() string {
	return fmt.Sprintf("%s:%d", r.Tag, r.ID)
}

// ProgressReporter is implemented by sources that track completion.
type ProgressReporter interface {
	ProgressPercent() int
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}
