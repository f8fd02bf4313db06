package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/repository"
)

type taskService struct {
	tasks    repository.TaskRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	stores   repository.ItemStoresFunc
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, projects repository.ProjectRepo, uow db.UnitOfWork,
	stores repository.ItemStoresFunc, observers ...UseCaseObserver) TaskService {
	return &taskService{
		tasks:    tasks,
		projects: projects,
		uow:      uow,
		stores:   stores,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) validate(t *domain.Task) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("task progress must be between 0 and 100, got %d", t.Progress)
	}
	return checkDates(t.StartDate, t.DueDate)
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if err := s.validate(t); err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, t.ProjectID); err != nil {
		return fmt.Errorf("task project: %w", err)
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := s.validate(t); err != nil {
		return err
	}
	return s.tasks.Update(ctx, t)
}

func (s *taskService) SetProgress(ctx context.Context, id int64, progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("task progress must be between 0 and 100, got %d", progress)
	}
	return s.tasks.UpdateProgress(ctx, id, progress)
}

func (s *taskService) Delete(ctx context.Context, id int64) (err error) {
	startedAt := time.Now().UTC()
	ref := domain.ItemRef{Tag: domain.TagTask, ID: id}
	fields := map[string]any{"item": ref.String()}
	defer func() { observe(ctx, s.observer, "delete-task", startedAt, fields, err) }()

	cleared, err := deleteItem(ctx, s.uow, s.stores, ref)
	fields["links_cleared"] = cleared
	return err
}
