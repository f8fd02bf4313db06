package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
)

// MemorySource is an in-memory item store for a single type tag. It satisfies
// gantt.Source and provides a hierarchy.LookupFunc via Lookup.
type MemorySource struct {
	tag   string
	items []*domain.ScheduleItem
	byID  map[int64]*domain.ScheduleItem
	// ListErr, when set, is returned by ListScheduleItems.
	ListErr error
}

// NewMemorySource creates an empty MemorySource for tag.
func NewMemorySource(tag string) *MemorySource {
	return &MemorySource{tag: tag, byID: make(map[int64]*domain.ScheduleItem)}
}

func (s *MemorySource) Tag() string { return s.tag }

// ItemOption customizes an item added to a MemorySource.
type ItemOption func(*domain.ScheduleItem)

// WithDates sets start and end from YYYY-MM-DD strings.
func WithDates(start, end string) ItemOption {
	return func(it *domain.ScheduleItem) {
		s := domain.MustDate(start)
		e := domain.MustDate(end)
		it.StartDate = &s
		it.EndDate = &e
	}
}

// WithParent links the item to ref.
func WithParent(ref domain.ItemRef) ItemOption {
	return func(it *domain.ScheduleItem) {
		it.ParentLink = &domain.ParentLink{ParentTypeTag: ref.Tag, ParentID: ref.ID}
	}
}

// WithResponsible sets the responsible name.
func WithResponsible(name string) ItemOption {
	return func(it *domain.ScheduleItem) {
		it.ResponsibleName = name
	}
}

// WithColor sets the color code.
func WithColor(c string) ItemOption {
	return func(it *domain.ScheduleItem) {
		it.ColorCode = c
	}
}

// WithSource attaches a concrete collaborator record.
func WithSource(src any) ItemOption {
	return func(it *domain.ScheduleItem) {
		it.Source = src
	}
}

// Add stores an item with the given id and returns it.
func (s *MemorySource) Add(id int64, name string, opts ...ItemOption) *domain.ScheduleItem {
	it := &domain.ScheduleItem{
		ID:            domain.Int64Ptr(id),
		DisplayName:   name,
		EntityTypeTag: s.tag,
	}
	for _, opt := range opts {
		opt(it)
	}
	s.items = append(s.items, it)
	s.byID[id] = it
	return it
}

// Ref returns the reference for id in this source.
func (s *MemorySource) Ref(id int64) domain.ItemRef {
	return domain.ItemRef{Tag: s.tag, ID: id}
}

// ListScheduleItems returns every stored item in insertion order; the
// project filter is ignored.
func (s *MemorySource) ListScheduleItems(_ context.Context, _ string) ([]*domain.ScheduleItem, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	out := make([]*domain.ScheduleItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Lookup finds an item by id.
func (s *MemorySource) Lookup(_ context.Context, id int64) (*domain.ScheduleItem, error) {
	it, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", s.tag, id, domain.ErrParentNotFound)
	}
	return it, nil
}

// Date parses a YYYY-MM-DD literal.
func Date(s string) time.Time {
	return domain.MustDate(s)
}
