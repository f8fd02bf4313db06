package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/alexanderramin/ganttline/internal/hierarchy"
	"github.com/alexanderramin/ganttline/internal/render"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/google/uuid"
)

type ganttService struct {
	resolver  *hierarchy.Resolver
	assembler *gantt.Assembler
	renderer  *render.Registry
	stores    map[string]repository.ItemStore
	tiers     []timeline.Tier
	now       func() time.Time
	observer  UseCaseObserver

	mu         sync.Mutex
	lastHeader timeline.HeaderModel
}

// GanttOption configures the gantt service.
type GanttOption func(*ganttService)

// WithChartTiers sets the column width tiers for projection. They should
// match the assembler's.
func WithChartTiers(tiers []timeline.Tier) GanttOption {
	return func(s *ganttService) {
		if timeline.ValidTiers(tiers) {
			s.tiers = tiers
		}
	}
}

// WithChartClock sets the clock used for the today marker.
func WithChartClock(now func() time.Time) GanttOption {
	return func(s *ganttService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithObserver reports rebuilds and parent changes.
func WithObserver(obs UseCaseObserver) GanttOption {
	return func(s *ganttService) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// NewGanttService wires the engine pieces. stores own the parent links that
// SetParent and ClearParent persist; each must also be registered with the
// resolver under its tag.
func NewGanttService(resolver *hierarchy.Resolver, assembler *gantt.Assembler, renderer *render.Registry,
	stores []repository.ItemStore, opts ...GanttOption) GanttService {
	s := &ganttService{
		resolver:  resolver,
		assembler: assembler,
		renderer:  renderer,
		stores:    make(map[string]repository.ItemStore, len(stores)),
		tiers:     timeline.DefaultTiers,
		now:       time.Now,
		observer:  NoopUseCaseObserver{},
	}
	for _, store := range stores {
		s.stores[store.Tag()] = store
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ganttService) GetRows(ctx context.Context, projectID string) ([]gantt.RowDescriptor, error) {
	view, err := s.GetChartWith(ctx, projectID, ChartRequest{})
	if err != nil {
		return nil, err
	}
	return view.Chart.Rows, nil
}

func (s *ganttService) GetChart(ctx context.Context, projectID string) (*ChartView, error) {
	return s.GetChartWith(ctx, projectID, ChartRequest{})
}

func (s *ganttService) GetChartWith(ctx context.Context, projectID string, req ChartRequest) (view *ChartView, err error) {
	startedAt := time.Now().UTC()
	rebuildID := uuid.New().String()
	fields := map[string]any{"project_id": projectID, "rebuild_id": rebuildID}
	defer func() { observe(ctx, s.observer, "gantt-rebuild", startedAt, fields, err) }()

	var chart *gantt.Chart
	if req.Ordering != "" {
		chart, err = s.assembler.AssembleOrdered(ctx, projectID, req.Ordering)
	} else {
		chart, err = s.assembler.Assemble(ctx, projectID)
	}
	if err != nil {
		return nil, err
	}
	fields["rows"] = len(chart.Rows)
	fields["warnings"] = len(chart.Warnings)

	p := timeline.NewProjector(timeline.WithTiers(s.tiers), timeline.WithClock(s.now))
	if start, end, ok := window(chart.Range, req); ok {
		if err = p.SetDateRange(start, end); err != nil {
			return nil, err
		}
	} else if req.From != nil || req.To != nil {
		err = &domain.InvalidRangeError{Reason: "a partial range needs dated items to complete it"}
		return nil, err
	}

	view = &ChartView{
		RebuildID: rebuildID,
		Chart:     chart,
		Header:    p.HeaderModel(),
		Bars:      s.renderer.Render(chart.Rows, p),
		Projector: p,
	}

	s.mu.Lock()
	s.lastHeader = view.Header
	s.mu.Unlock()
	return view, nil
}

// window picks the projected range: the request's bounds where given, the
// computed range otherwise.
func window(computed *timeline.Range, req ChartRequest) (start, end time.Time, ok bool) {
	if computed != nil {
		start, end = computed.Start, computed.End
	}
	if req.From != nil {
		start = *req.From
	}
	if req.To != nil {
		end = *req.To
	}
	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (s *ganttService) GetTimelineHeaderModel() timeline.HeaderModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeader
}

func (s *ganttService) store(tag string) (repository.ItemStore, error) {
	store, ok := s.stores[tag]
	if !ok {
		return nil, &domain.UnknownTypeTagError{Tag: tag}
	}
	return store, nil
}

func (s *ganttService) SetParent(ctx context.Context, childRef, parentRef domain.ItemRef) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"child": childRef.String(), "parent": parentRef.String()}
	defer func() { observe(ctx, s.observer, "set-parent", startedAt, fields, err) }()

	store, err := s.store(childRef.Tag)
	if err != nil {
		return err
	}
	child, err := s.resolver.Lookup(ctx, childRef)
	if err != nil {
		return fmt.Errorf("child: %w", err)
	}
	parent, err := s.resolver.Lookup(ctx, parentRef)
	if err != nil {
		return fmt.Errorf("parent: %w", err)
	}
	if err = s.resolver.SetParent(ctx, child, parent); err != nil {
		return err
	}
	return store.SaveParentLink(ctx, childRef.ID, child.ParentLink)
}

func (s *ganttService) ClearParent(ctx context.Context, childRef domain.ItemRef) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"child": childRef.String()}
	defer func() { observe(ctx, s.observer, "clear-parent", startedAt, fields, err) }()

	store, err := s.store(childRef.Tag)
	if err != nil {
		return err
	}
	child, err := s.resolver.Lookup(ctx, childRef)
	if err != nil {
		return fmt.Errorf("child: %w", err)
	}
	s.resolver.ClearParent(child)
	return store.SaveParentLink(ctx, childRef.ID, child.ParentLink)
}
