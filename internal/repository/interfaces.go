package repository

import (
	"context"

	"github.com/alexanderramin/ganttline/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// ItemStore is what every schedule item store offers the timeline engine:
// listing for a project, lookup by id, and parent link persistence.
type ItemStore interface {
	Tag() string
	ListScheduleItems(ctx context.Context, projectID string) ([]*domain.ScheduleItem, error)
	Lookup(ctx context.Context, id int64) (*domain.ScheduleItem, error)
	SaveParentLink(ctx context.Context, id int64, link *domain.ParentLink) error
	// ClearLinksTo removes every link in this store that names ref and
	// returns how many rows changed.
	ClearLinksTo(ctx context.Context, ref domain.ItemRef) (int64, error)
	DeleteItem(ctx context.Context, id int64) error
}

type TaskRepo interface {
	ItemStore
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	UpdateProgress(ctx context.Context, id int64, progress int) error
}

type MeetingRepo interface {
	ItemStore
	Create(ctx context.Context, m *domain.Meeting) error
	GetByID(ctx context.Context, id int64) (*domain.Meeting, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Meeting, error)
	Update(ctx context.Context, m *domain.Meeting) error
}
