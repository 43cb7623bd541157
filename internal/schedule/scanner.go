package schedule

import (
	"time"

	"miqat/internal/hijri"
	"miqat/internal/model"
)

// Occurrence is one concrete due instance of an entity on a specific day.
// Recomputed per query, never stored.
type Occurrence struct {
	EntityID string
	Civil    time.Time
	Lunar    hijri.Date
}

// FindOverdue walks backward from today over the lookback window and
// returns the unresolved occurrences. Each entity is reported at most once,
// for its most recent unresolved day; a missed habit nags once, not once
// per missed day. An occurrence is resolved when its completion key
// ("entityID:lunarKey") is present in completed.
//
// today.Civil must already be expressed in the caller's timezone; past days
// are derived from it. Runs in O(lookbackDays x entities), no I/O.
func FindOverdue(entities []model.Entity, today hijri.DualDate, completed map[string]bool, lookbackDays int) []Occurrence {
	out := make([]Occurrence, 0)
	reported := make(map[string]bool, len(entities))

	for daysAgo := 1; daysAgo <= lookbackDays; daysAgo++ {
		civil := today.Civil.AddDate(0, 0, -daysAgo)
		for _, e := range entities {
			if reported[e.ID] {
				continue
			}
			lunar := observedLunar(e, civil)
			if !IsDue(e, lunar, civil) {
				continue
			}
			if completed[model.CompletionKey(e.ID, lunar)] {
				continue
			}
			reported[e.ID] = true
			out = append(out, Occurrence{EntityID: e.ID, Civil: civil, Lunar: lunar})
		}
	}
	return out
}

// NextOccurrences walks forward from the given day and returns up to limit
// upcoming occurrences of e, including from itself. horizon bounds the scan
// so rules that can never fire (an empty weekly set, day 30 of a 29-day
// month) still terminate.
func NextOccurrences(e model.Entity, from time.Time, horizon, limit int) []Occurrence {
	out := make([]Occurrence, 0, limit)
	if limit <= 0 {
		return out
	}
	for ahead := 0; ahead <= horizon; ahead++ {
		civil := from.AddDate(0, 0, ahead)
		lunar := observedLunar(e, civil)
		if !IsDue(e, lunar, civil) {
			continue
		}
		out = append(out, Occurrence{EntityID: e.ID, Civil: civil, Lunar: lunar})
		if len(out) == limit {
			break
		}
	}
	return out
}
