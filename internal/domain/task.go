package domain

import "time"

// Task is a unit of work with a start date, a due date and a completion
// percentage.
type Task struct {
	ID          int64
	ProjectID   string
	Title       string
	Responsible string
	StartDate   *time.Time
	DueDate     *time.Time
	Progress    int // 0..100
	Color       string
	Icon        string
	Parent      *ParentLink
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProgressPercent clamps Progress to 0..100.
func (t *Task) ProgressPercent() int {
	switch {
	case t.Progress < 0:
		return 0
	case t.Progress > 100:
		return 100
	default:
		return t.Progress
	}
}

// ScheduleItem presents the task as a timeline item: start is the start
// date, end is the due date.
func (t *Task) ScheduleItem() *ScheduleItem {
	item := &ScheduleItem{
		DisplayName:     t.Title,
		EntityTypeTag:   TagTask,
		ResponsibleName: t.Responsible,
		StartDate:       t.StartDate,
		EndDate:         t.DueDate,
		ColorCode:       t.Color,
		IconID:          CoalesceStr(t.Icon, "task"),
		Source:          t,
	}
	if t.ID > 0 {
		item.ID = Int64Ptr(t.ID)
	}
	if t.Parent != nil {
		link := *t.Parent
		item.ParentLink = &link
	}
	return item
}
