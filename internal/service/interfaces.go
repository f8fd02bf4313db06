package service

import (
	"context"
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/alexanderramin/ganttline/internal/render"
	"github.com/alexanderramin/ganttline/internal/timeline"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve accepts a short ID (case-insensitive) or a full UUID.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	SetProgress(ctx context.Context, id int64, progress int) error
	// Delete removes the task and clears every parent link naming it.
	Delete(ctx context.Context, id int64) error
}

type MeetingService interface {
	Create(ctx context.Context, m *domain.Meeting) error
	GetByID(ctx context.Context, id int64) (*domain.Meeting, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Meeting, error)
	Update(ctx context.Context, m *domain.Meeting) error
	Delete(ctx context.Context, id int64) error
}

// ChartView is one full rebuild: rows, their projected header and the
// decorated bars, all computed against the same range.
type ChartView struct {
	RebuildID string
	Chart     *gantt.Chart
	Header    timeline.HeaderModel
	Bars      []render.Bar
	Projector *timeline.Projector
}

// ChartRequest narrows or reorders a rebuild. Zero values keep the
// configured behavior.
type ChartRequest struct {
	Ordering gantt.Ordering
	// From and To replace the computed range. A single bound is combined
	// with the computed range for the other.
	From *time.Time
	To   *time.Time
}

type GanttService interface {
	GetRows(ctx context.Context, projectID string) ([]gantt.RowDescriptor, error)
	GetChart(ctx context.Context, projectID string) (*ChartView, error)
	GetChartWith(ctx context.Context, projectID string, req ChartRequest) (*ChartView, error)
	// GetTimelineHeaderModel returns the header of the last rebuild, or a
	// model with HasRange false when there was none or it had no dates.
	GetTimelineHeaderModel() timeline.HeaderModel
	SetParent(ctx context.Context, child, parent domain.ItemRef) error
	ClearParent(ctx context.Context, child domain.ItemRef) error
}
