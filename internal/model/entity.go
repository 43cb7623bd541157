package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"miqat/internal/hijri"
)

var (
	ErrInvalidKind    = errors.New("model: invalid entity kind")
	ErrInvalidBinding = errors.New("model: invalid boundary binding")
)

// Kind is the product category of a schedulable record.
type Kind string

const (
	KindHabit     Kind = "habit"
	KindDue       Kind = "due"
	KindCommunity Kind = "community"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindHabit, KindDue, KindCommunity:
		return true
	default:
		return false
	}
}

// Entity is any record the engine evaluates for due-ness. It is created,
// edited and stored entirely by external collaborators; the engine only
// reads it.
type Entity struct {
	ID      string
	Name    string
	Kind    Kind
	Start   time.Time
	End     *time.Time
	Active  bool
	Binding hijri.Binding
	Rule    RecurrenceRule
}

func (e Entity) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("model: entity id is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("model: entity name is required")
	}
	if !e.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, e.Kind)
	}
	if e.Start.IsZero() {
		return errors.New("model: entity start date is required")
	}
	if e.End != nil && e.End.Before(e.Start) {
		return errors.New("model: entity end date precedes start date")
	}
	if !e.Binding.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidBinding, e.Binding)
	}
	return e.Rule.Validate()
}

// CompletionKey is the identity of one concrete occurrence, matching the
// keys the completion store hands back: "entityID:lunarKey".
func CompletionKey(entityID string, lunar hijri.Date) string {
	return entityID + ":" + lunar.Key()
}
