package hijri

import (
	"errors"
	"fmt"
	"time"
)

var ErrBadSunsetTime = errors.New("hijri: invalid sunset time")

// Binding names which side of the sunset boundary an entity's lunar date
// is read from. Daytime practices and habit completions bind pre-sunset;
// evening practices bind post-sunset.
type Binding string

const (
	BindPreSunset  Binding = "pre_sunset"
	BindPostSunset Binding = "post_sunset"
)

func (b Binding) IsValid() bool {
	switch b {
	case BindPreSunset, BindPostSunset:
		return true
	default:
		return false
	}
}

// DualDate is one instant expressed against both candidate lunar days.
// Pre is the plain conversion of the civil date; Post is the next lunar day
// once the sunset boundary has been crossed, otherwise equal to Pre.
// Built once per refresh tick and read-only downstream.
type DualDate struct {
	Civil   time.Time
	Pre     Date
	Post    Date
	Crossed bool
}

// Effective returns the lunar date an entity with the given binding
// observes at this instant.
func (d DualDate) Effective(b Binding) Date {
	if b == BindPostSunset {
		return d.Post
	}
	return d.Pre
}

// BoundaryCrossed reports whether the local wall clock in loc is at or past
// sunset ("HH:MM", 24-hour). A missing or malformed sunset time degrades to
// not-crossed and returns a soft warning wrapping ErrBadSunsetTime; it never
// blocks date computation.
func BoundaryCrossed(t time.Time, sunset string, loc *time.Location) (bool, error) {
	if loc != nil {
		t = t.In(loc)
	}
	parsed, err := time.Parse("15:04", sunset)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrBadSunsetTime, sunset)
	}
	nowMin := t.Hour()*60 + t.Minute()
	sunsetMin := parsed.Hour()*60 + parsed.Minute()
	return nowMin >= sunsetMin, nil
}

// NewDualDate captures now against both candidate lunar days. The returned
// error is only ever the soft sunset warning from BoundaryCrossed; the
// DualDate is usable either way.
func NewDualDate(now time.Time, sunset string, loc *time.Location) (DualDate, error) {
	pre := FromTime(now, loc)
	crossed, warn := BoundaryCrossed(now, sunset, loc)
	post := pre
	if crossed {
		post = pre.Next()
	}
	return DualDate{Civil: now, Pre: pre, Post: post, Crossed: crossed}, warn
}
