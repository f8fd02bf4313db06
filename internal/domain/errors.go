package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnpersistedParent is returned when linking to a parent without an ID.
	ErrUnpersistedParent = errors.New("parent item is not persisted")

	// ErrSelfParent is returned when an item is linked to itself.
	ErrSelfParent = errors.New("an item cannot be its own parent")

	// ErrParentCycle is returned when the proposed parent descends from the child.
	ErrParentCycle = errors.New("parent assignment would create a cycle")

	// ErrUnknownTypeTag indicates no lookup is registered for a type tag.
	ErrUnknownTypeTag = errors.New("unknown entity type tag")

	// ErrParentNotFound indicates a link points at a parent that no longer exists.
	ErrParentNotFound = errors.New("linked parent not found")

	// ErrCycleSuspected indicates a parent chain did not terminate within the
	// configured depth bound.
	ErrCycleSuspected = errors.New("parent chain exceeds depth bound, cycle suspected")

	// ErrInvalidRange is returned for missing or inverted date ranges.
	ErrInvalidRange = errors.New("invalid date range")
)

// UnknownTypeTagError carries the tag that failed to resolve.
type UnknownTypeTagError struct {
	Tag string
}

func (e *UnknownTypeTagError) Error() string {
	return fmt.Sprintf("unknown entity type tag %q", e.Tag)
}

func (e *UnknownTypeTagError) Is(target error) bool {
	return target == ErrUnknownTypeTag
}

// InvalidRangeError describes why a range was rejected.
type InvalidRangeError struct {
	Start  time.Time
	End    time.Time
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return "invalid date range: " + e.Reason
}

func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}
