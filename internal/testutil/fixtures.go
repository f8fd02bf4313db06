package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithDescription(d string) ProjectOption {
	return func(p *domain.Project) {
		p.Description = d
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskDates(start, due string) TaskOption {
	return func(t *domain.Task) {
		s, d := domain.MustDate(start), domain.MustDate(due)
		t.StartDate = &s
		t.DueDate = &d
	}
}

func WithProgress(p int) TaskOption {
	return func(t *domain.Task) {
		t.Progress = p
	}
}

func WithTaskParent(ref domain.ItemRef) TaskOption {
	return func(t *domain.Task) {
		t.Parent = &domain.ParentLink{ParentTypeTag: ref.Tag, ParentID: ref.ID}
	}
}

func WithResponsibleName(name string) TaskOption {
	return func(t *domain.Task) {
		t.Responsible = name
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ProjectID: projectID,
		Title:     title,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Meeting options
type MeetingOption func(*domain.Meeting)

func OnDate(day string) MeetingOption {
	return func(m *domain.Meeting) {
		d := domain.MustDate(day)
		m.MeetingDate = &d
	}
}

func UntilDate(day string) MeetingOption {
	return func(m *domain.Meeting) {
		d := domain.MustDate(day)
		m.EndDate = &d
	}
}

func WithMeetingParent(ref domain.ItemRef) MeetingOption {
	return func(m *domain.Meeting) {
		m.Parent = &domain.ParentLink{ParentTypeTag: ref.Tag, ParentID: ref.ID}
	}
}

func WithOrganizer(name string) MeetingOption {
	return func(m *domain.Meeting) {
		m.Organizer = name
	}
}

func NewTestMeeting(projectID, subject string, opts ...MeetingOption) *domain.Meeting {
	m := &domain.Meeting{
		ProjectID: projectID,
		Subject:   subject,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
