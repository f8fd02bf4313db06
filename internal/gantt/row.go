// Package gantt assembles schedule items from independent stores into one
// ordered, hierarchical list of rows.
package gantt

import (
	"context"
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/timeline"
)

// Source is a collaborator store that can list its items for a project.
type Source interface {
	Tag() string
	ListScheduleItems(ctx context.Context, projectID string) ([]*domain.ScheduleItem, error)
}

// RowDescriptor is one chart row. Rows are rebuilt in full on every assembly.
type RowDescriptor struct {
	EntityTypeTag   string
	DisplayName     string
	ResponsibleName string
	StartDate       *time.Time
	EndDate         *time.Time
	DurationDays    int
	NoDates         bool
	HierarchyLevel  int
	ParentLink      *domain.ParentLink
	ColorCode       string
	IconID          string
	CycleSuspected  bool
	SourceItemRef   domain.ItemRef

	// Progress is set when the source record reports completion.
	Progress *int
}

// Label returns "<name>" or "<name> (<responsible>)".
func (r RowDescriptor) Label() string {
	if r.ResponsibleName == "" {
		return r.DisplayName
	}
	return r.DisplayName + " (" + r.ResponsibleName + ")"
}

// WarningKind classifies a data-quality problem found during assembly.
type WarningKind string

const (
	WarnCycleSuspected WarningKind = "cycle_suspected"
	WarnUnknownTag     WarningKind = "unknown_tag"
	WarnParentMissing  WarningKind = "parent_missing"
	WarnNoDates        WarningKind = "no_dates"
)

// Warning is a non-fatal assembly finding.
type Warning struct {
	Kind    WarningKind
	Item    domain.ItemRef
	Message string
}

// Chart is the result of one assembly. Range is nil when no row has dates.
type Chart struct {
	ProjectID string
	Rows      []RowDescriptor
	Range     *timeline.Range
	Warnings  []Warning
}

// Empty reports whether the chart has no rows.
func (c *Chart) Empty() bool {
	return len(c.Rows) == 0
}
