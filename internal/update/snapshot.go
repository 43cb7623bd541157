package update

import (
	"time"

	"miqat/internal/hijri"
	"miqat/internal/model"
	"miqat/internal/schedule"
)

// EntityStatus is one entity's answer for "today".
type EntityStatus struct {
	Entity model.Entity

	// Lunar is the date the entity observes, already on the correct side
	// of the sunset boundary for its binding.
	Lunar hijri.Date

	Due  bool
	Done bool
}

// Snapshot is everything the dashboard shows, computed from a single "now".
// Mixing instants captured at different moments can pair a civil date with
// the wrong side of the sunset boundary, so every refresh builds one
// Snapshot and renders only from it.
type Snapshot struct {
	Now      time.Time
	Dual     hijri.DualDate
	Statuses []EntityStatus
	Overdue  []schedule.Occurrence

	// Warning carries the soft boundary degradation, if any.
	Warning error
}

// BuildSnapshot evaluates all entities against one instant. now should
// already be expressed in the tracker's timezone.
func BuildSnapshot(now time.Time, entities []model.Entity, completed map[string]bool, sunset string, loc *time.Location, lookbackDays int) Snapshot {
	if loc != nil {
		now = now.In(loc)
	}
	dual, warn := hijri.NewDualDate(now, sunset, loc)

	statuses := make([]EntityStatus, 0, len(entities))
	for _, e := range entities {
		lunar := dual.Effective(e.Binding)
		due := schedule.IsDue(e, lunar, now)
		statuses = append(statuses, EntityStatus{
			Entity: e,
			Lunar:  lunar,
			Due:    due,
			Done:   due && completed[model.CompletionKey(e.ID, lunar)],
		})
	}

	return Snapshot{
		Now:      now,
		Dual:     dual,
		Statuses: statuses,
		Overdue:  schedule.FindOverdue(entities, dual, completed, lookbackDays),
		Warning:  warn,
	}
}
