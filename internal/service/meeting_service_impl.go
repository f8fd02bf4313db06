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

type meetingService struct {
	meetings repository.MeetingRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	stores   repository.ItemStoresFunc
	observer UseCaseObserver
}

func NewMeetingService(meetings repository.MeetingRepo, projects repository.ProjectRepo, uow db.UnitOfWork,
	stores repository.ItemStoresFunc, observers ...UseCaseObserver) MeetingService {
	return &meetingService{
		meetings: meetings,
		projects: projects,
		uow:      uow,
		stores:   stores,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *meetingService) validate(m *domain.Meeting) error {
	m.Subject = strings.TrimSpace(m.Subject)
	if m.Subject == "" {
		return fmt.Errorf("meeting subject is required")
	}
	if m.EndDate != nil && m.MeetingDate == nil {
		return fmt.Errorf("meeting %q has an end date but no date", m.Subject)
	}
	return checkDates(m.MeetingDate, m.EndDate)
}

func (s *meetingService) Create(ctx context.Context, m *domain.Meeting) error {
	if err := s.validate(m); err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, m.ProjectID); err != nil {
		return fmt.Errorf("meeting project: %w", err)
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.meetings.Create(ctx, m)
}

func (s *meetingService) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	return s.meetings.GetByID(ctx, id)
}

func (s *meetingService) ListByProject(ctx context.Context, projectID string) ([]*domain.Meeting, error) {
	return s.meetings.ListByProject(ctx, projectID)
}

func (s *meetingService) Update(ctx context.Context, m *domain.Meeting) error {
	if err := s.validate(m); err != nil {
		return err
	}
	return s.meetings.Update(ctx, m)
}

func (s *meetingService) Delete(ctx context.Context, id int64) (err error) {
	startedAt := time.Now().UTC()
	ref := domain.ItemRef{Tag: domain.TagMeeting, ID: id}
	fields := map[string]any{"item": ref.String()}
	defer func() { observe(ctx, s.observer, "delete-meeting", startedAt, fields, err) }()

	cleared, err := deleteItem(ctx, s.uow, s.stores, ref)
	fields["links_cleared"] = cleared
	return err
}
