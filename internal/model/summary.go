package model

import (
	"fmt"
	"strings"
	"time"

	"miqat/internal/hijri"
)

// summaryFallback is used whenever a rule is missing the fields its
// variant needs; summaries never fail, they degrade.
const summaryFallback = "Custom"

// Summarize renders a recurrence rule as a short fixed-English display
// string, e.g. "Weekly (Mon, Wed, Fri)" or "Every 3 days".
func Summarize(r RecurrenceRule) string {
	switch r.Type {
	case RecurrenceDaily:
		return "Every day"
	case RecurrenceWeekly:
		return summarizeWeekly(r)
	case RecurrenceInterval:
		return summarizeInterval(r)
	case RecurrenceMonthlyByDay:
		return summarizeMonthly(r)
	case RecurrenceAnnual:
		return summarizeAnnual(r)
	case RecurrenceOneTime:
		if r.DueDate.IsZero() {
			return summaryFallback
		}
		return "Once on " + r.DueDate.Format("2006-01-02")
	default:
		return summaryFallback
	}
}

// Summary is the display string for the entity's schedule.
func (e Entity) Summary() string {
	return Summarize(e.Rule)
}

func summarizeWeekly(r RecurrenceRule) string {
	if len(r.Weekdays) == 0 {
		return summaryFallback
	}
	names := make([]string, 0, len(r.Weekdays))
	for _, d := range r.Weekdays {
		if d < time.Sunday || d > time.Saturday {
			return summaryFallback
		}
		names = append(names, d.String()[:3])
	}
	return fmt.Sprintf("Weekly (%s)", strings.Join(names, ", "))
}

func summarizeInterval(r RecurrenceRule) string {
	if r.Every <= 0 {
		return summaryFallback
	}
	switch r.Unit {
	case UnitDays:
		if r.Every == 1 {
			return "Every day"
		}
		return fmt.Sprintf("Every %d days", r.Every)
	case UnitWeeks:
		if r.Every == 1 {
			return "Every week"
		}
		return fmt.Sprintf("Every %d weeks", r.Every)
	default:
		return summaryFallback
	}
}

func summarizeMonthly(r RecurrenceRule) string {
	if r.Day < 1 {
		return summaryFallback
	}
	switch r.Calendar {
	case CalendarLunar:
		return fmt.Sprintf("%s of each month (Hijri)", ordinal(r.Day))
	case CalendarCivil:
		return fmt.Sprintf("%s of each month (Gregorian)", ordinal(r.Day))
	default:
		return summaryFallback
	}
}

func summarizeAnnual(r RecurrenceRule) string {
	if r.Day < 1 || r.Month < 1 || r.Month > 12 {
		return summaryFallback
	}
	switch r.Calendar {
	case CalendarLunar:
		name := hijri.Date{Day: r.Day, Month: r.Month, Year: 1}.MonthName()
		return fmt.Sprintf("%s of %s each year", ordinal(r.Day), name)
	case CalendarCivil:
		return fmt.Sprintf("%s of %s each year", ordinal(r.Day), time.Month(r.Month).String())
	default:
		return summaryFallback
	}
}

// ordinal renders 1-indexed day ordinals: 1st, 2nd, 3rd, 4th, ... 11th,
// 12th, 13th, 21st, 22nd.
func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
		// teens always take "th"
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
