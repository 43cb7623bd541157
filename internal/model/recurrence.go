package model

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

type RecurrenceType string

const (
	RecurrenceDaily        RecurrenceType = "daily"
	RecurrenceWeekly       RecurrenceType = "weekly"
	RecurrenceInterval     RecurrenceType = "interval"
	RecurrenceMonthlyByDay RecurrenceType = "monthly_by_day"
	RecurrenceAnnual       RecurrenceType = "annual"
	RecurrenceOneTime      RecurrenceType = "one_time"
)

// CalendarSystem selects which calendar a month/day rule is read against.
type CalendarSystem string

const (
	CalendarLunar CalendarSystem = "lunar"
	CalendarCivil CalendarSystem = "civil"
)

func (c CalendarSystem) IsValid() bool {
	switch c {
	case CalendarLunar, CalendarCivil:
		return true
	default:
		return false
	}
}

type IntervalUnit string

const (
	UnitDays  IntervalUnit = "days"
	UnitWeeks IntervalUnit = "weeks"
)

var (
	ErrInvalidRecurrenceType = errors.New("model: invalid recurrence type")
	ErrInvalidInterval       = errors.New("model: invalid recurrence interval")
	ErrInvalidCalendar       = errors.New("model: invalid calendar system")
	ErrInvalidRuleDay        = errors.New("model: recurrence day out of range")
	ErrInvalidRuleMonth      = errors.New("model: recurrence month out of range")
)

// RecurrenceRule is a closed union over RecurrenceType; only the fields of
// the active variant are meaningful. Validate reports structural problems,
// but evaluation never errors on them: an invalid rule is simply never due,
// so one corrupt record cannot break evaluation of the rest.
type RecurrenceRule struct {
	Type RecurrenceType

	// weekly
	Weekdays []time.Weekday

	// interval
	Every  int
	Unit   IntervalUnit
	Anchor time.Time

	// monthly_by_day and annual
	Day      int
	Month    int
	Calendar CalendarSystem

	// one_time
	DueDate time.Time
}

func (r RecurrenceRule) Validate() error {
	switch r.Type {
	case RecurrenceDaily:
		return nil
	case RecurrenceWeekly:
		return r.validateWeekly()
	case RecurrenceInterval:
		return r.validateInterval()
	case RecurrenceMonthlyByDay:
		return r.validateMonthlyByDay()
	case RecurrenceAnnual:
		return r.validateAnnual()
	case RecurrenceOneTime:
		if r.DueDate.IsZero() {
			return errors.New("model: one_time recurrence requires a due date")
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRecurrenceType, r.Type)
	}
}

func (r RecurrenceRule) validateWeekly() error {
	// An empty weekday set is accepted and evaluates to "never due";
	// duplicates are a configuration mistake worth flagging.
	s := make([]int, 0, len(r.Weekdays))
	for _, d := range r.Weekdays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: weekday %d", ErrInvalidRuleDay, d)
		}
		s = append(s, int(d))
	}
	sort.Ints(s)
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			return errors.New("model: duplicate weekday in recurrence")
		}
	}
	return nil
}

func (r RecurrenceRule) validateInterval() error {
	if r.Every <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, r.Every)
	}
	if r.Unit != UnitDays && r.Unit != UnitWeeks {
		return fmt.Errorf("%w: unit %q", ErrInvalidInterval, r.Unit)
	}
	if r.Anchor.IsZero() {
		return errors.New("model: interval recurrence requires an anchor date")
	}
	return nil
}

func (r RecurrenceRule) validateMonthlyByDay() error {
	if !r.Calendar.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCalendar, r.Calendar)
	}
	if r.Day < 1 || r.Day > 31 {
		return fmt.Errorf("%w: %d", ErrInvalidRuleDay, r.Day)
	}
	return nil
}

func (r RecurrenceRule) validateAnnual() error {
	if err := r.validateMonthlyByDay(); err != nil {
		return err
	}
	if r.Month < 1 || r.Month > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidRuleMonth, r.Month)
	}
	return nil
}

// EveryDays returns the interval length normalized to days. Zero for
// non-interval rules.
func (r RecurrenceRule) EveryDays() int {
	if r.Type != RecurrenceInterval {
		return 0
	}
	if r.Unit == UnitWeeks {
		return r.Every * 7
	}
	return r.Every
}

// WeekdaySet returns the weekly rule's days as a lookup set.
func (r RecurrenceRule) WeekdaySet() map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(r.Weekdays))
	for _, d := range r.Weekdays {
		set[d] = true
	}
	return set
}
