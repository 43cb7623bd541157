// Package schedule decides when trackable entities are due. Every function
// is a pure transform of its inputs: the caller supplies the instant and the
// lunar date, so the same inputs always produce the same answer.
package schedule

import (
	"time"

	"miqat/internal/hijri"
	"miqat/internal/model"
)

// IsDue reports whether e is due on the given day. lunar is the lunar date
// the entity observes (the caller picks the correct side of the sunset
// boundary), civil is the same day on the civil calendar, already expressed
// in the caller's timezone.
//
// A structurally invalid rule is never due; a single corrupt entity must not
// break evaluation of the rest.
func IsDue(e model.Entity, lunar hijri.Date, civil time.Time) bool {
	if !e.Active {
		return false
	}
	if e.Rule.Validate() != nil {
		return false
	}

	// Window checks compare normalized day keys, never instants, so a
	// time-of-day or timezone offset cannot shift the day.
	day := civil.Format("2006-01-02")
	if day < e.Start.Format("2006-01-02") {
		return false
	}
	if e.End != nil && day > e.End.Format("2006-01-02") {
		return false
	}

	switch e.Rule.Type {
	case model.RecurrenceDaily:
		return true
	case model.RecurrenceWeekly:
		return e.Rule.WeekdaySet()[civil.Weekday()]
	case model.RecurrenceInterval:
		elapsed := hijri.CivilDaysBetween(e.Rule.Anchor, civil)
		return elapsed >= 0 && elapsed%e.Rule.EveryDays() == 0
	case model.RecurrenceMonthlyByDay:
		// No clamping: a rule asking for day 30 in a 29-day lunar month
		// simply never fires that month.
		if e.Rule.Calendar == model.CalendarLunar {
			return lunar.Day == e.Rule.Day
		}
		return civil.Day() == e.Rule.Day
	case model.RecurrenceAnnual:
		if e.Rule.Calendar == model.CalendarLunar {
			return lunar.Month == e.Rule.Month && lunar.Day == e.Rule.Day
		}
		return int(civil.Month()) == e.Rule.Month && civil.Day() == e.Rule.Day
	case model.RecurrenceOneTime:
		return day == e.Rule.DueDate.Format("2006-01-02")
	default:
		return false
	}
}

// observedLunar is the lunar date an entity reads off a fully elapsed or
// future civil day: post-sunset bindings observe the advanced date, since
// that day's sunset is (or will be) part of the day.
func observedLunar(e model.Entity, civil time.Time) hijri.Date {
	lunar := hijri.FromTime(civil, nil)
	if e.Binding == hijri.BindPostSunset {
		return lunar.Next()
	}
	return lunar
}
