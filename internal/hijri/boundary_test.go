package hijri

import (
	"errors"
	"testing"
	"time"
)

func TestBoundaryCrossed(t *testing.T) {
	loc := time.FixedZone("AST", 3*3600)
	day := time.Date(2024, 3, 11, 0, 0, 0, 0, loc)

	before, err := BoundaryCrossed(day.Add(18*time.Hour+29*time.Minute), "18:30", loc)
	if err != nil {
		t.Fatalf("boundary before sunset: %v", err)
	}
	if before {
		t.Fatalf("18:29 should be before an 18:30 sunset")
	}

	at, err := BoundaryCrossed(day.Add(18*time.Hour+30*time.Minute), "18:30", loc)
	if err != nil {
		t.Fatalf("boundary at sunset: %v", err)
	}
	if !at {
		t.Fatalf("18:30 should count as crossed")
	}
}

func TestBoundaryCrossedBadSunsetDegrades(t *testing.T) {
	now := time.Date(2024, 3, 11, 23, 0, 0, 0, time.UTC)
	crossed, err := BoundaryCrossed(now, "", time.UTC)
	if !errors.Is(err, ErrBadSunsetTime) {
		t.Fatalf("expected ErrBadSunsetTime, got %v", err)
	}
	if crossed {
		t.Fatalf("missing sunset time must degrade to not-crossed")
	}
}

func TestNewDualDateAfterSunset(t *testing.T) {
	loc := time.FixedZone("AST", 3*3600)
	now := time.Date(2024, 3, 11, 18, 31, 0, 0, loc)

	dd, err := NewDualDate(now, "18:30", loc)
	if err != nil {
		t.Fatalf("dual date: %v", err)
	}
	if !dd.Crossed {
		t.Fatalf("18:31 past an 18:30 sunset should cross the boundary")
	}
	if dd.Pre != (Date{Day: 1, Month: 9, Year: 1445}) {
		t.Fatalf("pre-boundary date got %+v", dd.Pre)
	}
	if dd.Post != dd.Pre.Next() {
		t.Fatalf("post-boundary date should be the advanced date, got %+v", dd.Post)
	}
}

func TestNewDualDateBeforeSunset(t *testing.T) {
	loc := time.FixedZone("AST", 3*3600)
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, loc)

	dd, err := NewDualDate(now, "18:30", loc)
	if err != nil {
		t.Fatalf("dual date: %v", err)
	}
	if dd.Crossed {
		t.Fatalf("noon should not cross an 18:30 sunset")
	}
	if dd.Pre != dd.Post {
		t.Fatalf("before sunset both candidate days must agree: %+v vs %+v", dd.Pre, dd.Post)
	}
}

func TestNewDualDateBadSunsetStillUsable(t *testing.T) {
	now := time.Date(2024, 3, 11, 23, 0, 0, 0, time.UTC)
	dd, err := NewDualDate(now, "sunset?", time.UTC)
	if !errors.Is(err, ErrBadSunsetTime) {
		t.Fatalf("expected soft warning, got %v", err)
	}
	if dd.Crossed || dd.Pre != dd.Post {
		t.Fatalf("degraded dual date should behave as not-crossed: %+v", dd)
	}
	if dd.Pre != (Date{Day: 1, Month: 9, Year: 1445}) {
		t.Fatalf("degraded dual date must still carry a converted date, got %+v", dd.Pre)
	}
}

func TestEffectiveBinding(t *testing.T) {
	pre := Date{Day: 29, Month: 8, Year: 1445}
	dd := DualDate{Pre: pre, Post: pre.Next(), Crossed: true}
	if dd.Effective(BindPreSunset) != pre {
		t.Fatalf("pre-sunset binding should observe the pre date")
	}
	if dd.Effective(BindPostSunset) != pre.Next() {
		t.Fatalf("post-sunset binding should observe the advanced date")
	}
}
