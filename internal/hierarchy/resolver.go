// Package hierarchy resolves weak parent links across independent item stores.
//
// Stores register one lookup per entity type tag at startup. Links are
// resolved through that registry, never through a shared table.
package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/ganttline/internal/domain"
)

// DefaultMaxDepth bounds every parent-chain walk.
const DefaultMaxDepth = 64

// LookupFunc fetches one item of a single type by id. It returns
// domain.ErrParentNotFound (wrapped or not) when the id does not exist.
type LookupFunc func(ctx context.Context, id int64) (*domain.ScheduleItem, error)

// Resolver maps type tags to lookups.
type Resolver struct {
	lookups  map[string]LookupFunc
	maxDepth int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth overrides DefaultMaxDepth. Non-positive values are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// NewResolver creates an empty Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		lookups:  make(map[string]LookupFunc),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register installs the lookup for tag, replacing any previous one.
func (r *Resolver) Register(tag string, fn LookupFunc) {
	r.lookups[tag] = fn
}

// Tags lists registered tags in lexical order.
func (r *Resolver) Tags() []string {
	tags := make([]string, 0, len(r.lookups))
	for tag := range r.lookups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// MaxDepth returns the configured walk bound.
func (r *Resolver) MaxDepth() int {
	return r.maxDepth
}

// Lookup fetches any item by reference.
func (r *Resolver) Lookup(ctx context.Context, ref domain.ItemRef) (*domain.ScheduleItem, error) {
	fn, ok := r.lookups[ref.Tag]
	if !ok {
		return nil, &domain.UnknownTypeTagError{Tag: ref.Tag}
	}
	item, err := fn(ctx, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", ref, err)
	}
	if item == nil {
		return nil, fmt.Errorf("resolving %s: %w", ref, domain.ErrParentNotFound)
	}
	return item, nil
}

// Resolve fetches the parent a link points at.
func (r *Resolver) Resolve(ctx context.Context, link domain.ParentLink) (*domain.ScheduleItem, error) {
	return r.Lookup(ctx, link.Ref())
}

// Level counts parent hops from item to its nearest ancestor without a
// parent. Roots are level 0.
//
// When the walk cannot continue (unknown tag, missing parent) the hops counted
// so far are returned together with the error: the item holding the broken
// link is then the nearest root, and 0 means item's own link is broken. A
// walk longer than MaxDepth
// returns domain.ErrCycleSuspected.
func (r *Resolver) Level(ctx context.Context, item *domain.ScheduleItem) (int, error) {
	level := 0
	current := item
	for current.ParentLink != nil {
		if level >= r.maxDepth {
			return level, fmt.Errorf("%s after %d hops: %w", describe(item), level, domain.ErrCycleSuspected)
		}
		parent, err := r.Resolve(ctx, *current.ParentLink)
		if err != nil {
			return level, err
		}
		level++
		current = parent
	}
	return level, nil
}

// Ancestors returns the parent chain of item, nearest first.
func (r *Resolver) Ancestors(ctx context.Context, item *domain.ScheduleItem) ([]*domain.ScheduleItem, error) {
	var chain []*domain.ScheduleItem
	current := item
	for current.ParentLink != nil {
		if len(chain) >= r.maxDepth {
			return chain, fmt.Errorf("%s: %w", describe(item), domain.ErrCycleSuspected)
		}
		parent, err := r.Resolve(ctx, *current.ParentLink)
		if err != nil {
			return chain, err
		}
		chain = append(chain, parent)
		current = parent
	}
	return chain, nil
}

// SetParent links child to parent after the direct checks in
// domain.SetParent and a transitive check: the parent must not be the child
// or descend from it.
func (r *Resolver) SetParent(ctx context.Context, child, parent *domain.ScheduleItem) error {
	if child == parent || parent.ID == nil {
		return domain.SetParent(child, parent)
	}
	if childRef, ok := child.Ref(); ok {
		ancestors, err := r.Ancestors(ctx, parent)
		if err != nil && !isChainBreak(err) {
			if errors.Is(err, domain.ErrCycleSuspected) {
				return fmt.Errorf("checking ancestry of %s: %w", describe(parent), domain.ErrParentCycle)
			}
			return fmt.Errorf("checking ancestry of %s: %w", describe(parent), err)
		}
		for _, a := range ancestors {
			if ref, ok := a.Ref(); ok && ref == childRef {
				return fmt.Errorf("%s is an ancestor of %s: %w", childRef, describe(parent), domain.ErrParentCycle)
			}
		}
	}
	return domain.SetParent(child, parent)
}

// ClearParent removes child's parent link.
func (r *Resolver) ClearParent(child *domain.ScheduleItem) {
	domain.ClearParent(child)
}

// isChainBreak reports errors that end an ancestry walk without implying a
// cycle: the chain simply stops at a dangling link.
func isChainBreak(err error) bool {
	return errors.Is(err, domain.ErrUnknownTypeTag) || errors.Is(err, domain.ErrParentNotFound)
}

func describe(item *domain.ScheduleItem) string {
	if ref, ok := item.Ref(); ok {
		return ref.String()
	}
	return fmt.Sprintf("%s %q", item.EntityTypeTag, item.DisplayName)
}
