package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParentLink is a weak reference to a parent item that may live in a
// different store. There is no foreign key behind it.
type ParentLink struct {
	ParentTypeTag string
	ParentID      int64
}

// Ref returns the link target as an ItemRef.
func (l ParentLink) Ref() ItemRef {
	return ItemRef{Tag: l.ParentTypeTag, ID: l.ParentID}
}

func (l ParentLink) String() string {
	return l.Ref().String()
}

// SetParent points child at parent. The parent must be persisted and must not
// be the child itself. Ancestry beyond the direct check is the resolver's job.
func SetParent(child, parent *ScheduleItem) error {
	if child == parent {
		return fmt.Errorf("%q: %w", child.DisplayName, ErrSelfParent)
	}
	if parent.ID == nil {
		return fmt.Errorf("parent %q: %w", parent.DisplayName, ErrUnpersistedParent)
	}
	if child.ID != nil && parent.EntityTypeTag == child.EntityTypeTag && *parent.ID == *child.ID {
		return fmt.Errorf("%s: %w", ItemRef{Tag: child.EntityTypeTag, ID: *child.ID}, ErrSelfParent)
	}
	child.ParentLink = &ParentLink{ParentTypeTag: parent.EntityTypeTag, ParentID: *parent.ID}
	child.Modified = true
	return nil
}

// ClearParent removes the parent link unconditionally.
func ClearParent(child *ScheduleItem) {
	child.ParentLink = nil
	child.Modified = true
}

// ParseItemRef parses "tag:id" (e.g. "task:12").
func ParseItemRef(s string) (ItemRef, error) {
	tag, idStr, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || tag == "" || idStr == "" {
		return ItemRef{}, fmt.Errorf("item reference %q must look like tag:id", s)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return ItemRef{}, fmt.Errorf("item reference %q: id must be a positive integer", s)
	}
	return ItemRef{Tag: strings.ToLower(tag), ID: id}, nil
}
