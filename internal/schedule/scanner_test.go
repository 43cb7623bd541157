package schedule

import (
	"testing"
	"time"

	"miqat/internal/hijri"
	"miqat/internal/model"
)

func todayAt(civil time.Time) hijri.DualDate {
	dd, err := hijri.NewDualDate(civil, "18:30", time.UTC)
	if err != nil {
		panic(err)
	}
	return dd
}

func TestFindOverdueReportsMostRecentUnresolvedDayOnce(t *testing.T) {
	today := todayAt(time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC))
	e := dailyEntity(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	completed := map[string]bool{
		model.CompletionKey(e.ID, hijri.FromTime(today.Civil.AddDate(0, 0, -1), time.UTC)): true,
		model.CompletionKey(e.ID, hijri.FromTime(today.Civil.AddDate(0, 0, -2), time.UTC)): true,
	}

	got := FindOverdue([]model.Entity{e}, today, completed, 7)
	if len(got) != 1 {
		t.Fatalf("expected exactly one occurrence, got %d", len(got))
	}
	wantCivil := today.Civil.AddDate(0, 0, -3)
	if got[0].Civil.Format("2006-01-02") != wantCivil.Format("2006-01-02") {
		t.Fatalf("expected most recent unresolved day %s, got %s",
			wantCivil.Format("2006-01-02"), got[0].Civil.Format("2006-01-02"))
	}
	if got[0].Lunar != hijri.FromTime(wantCivil, time.UTC) {
		t.Fatalf("occurrence lunar date got %+v", got[0].Lunar)
	}
}

func TestFindOverdueDedupAcrossMultipleMissedDays(t *testing.T) {
	// Monday 2024-03-11; Mon/Wed/Fri rule was due on 3 of the last 7 days
	// (Mar 4, 6 and 8) and none are completed.
	today := todayAt(time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC))
	e := dailyEntity(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	e.ID = "weekly"
	e.Rule = model.RecurrenceRule{
		Type:     model.RecurrenceWeekly,
		Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
	}

	got := FindOverdue([]model.Entity{e}, today, nil, 7)
	if len(got) != 1 {
		t.Fatalf("expected one deduplicated occurrence, got %d", len(got))
	}
	if got[0].Civil.Format("2006-01-02") != "2024-03-08" {
		t.Fatalf("expected the most recent missed Friday, got %s", got[0].Civil.Format("2006-01-02"))
	}
}

func TestFindOverdueAllCompleted(t *testing.T) {
	today := todayAt(time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC))
	e := dailyEntity(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	completed := make(map[string]bool)
	for daysAgo := 1; daysAgo <= 7; daysAgo++ {
		lunar := hijri.FromTime(today.Civil.AddDate(0, 0, -daysAgo), time.UTC)
		completed[model.CompletionKey(e.ID, lunar)] = true
	}

	if got := FindOverdue([]model.Entity{e}, today, completed, 7); len(got) != 0 {
		t.Fatalf("expected no occurrences when every day is completed, got %d", len(got))
	}
}

func TestFindOverduePostSunsetBindingObservesAdvancedDate(t *testing.T) {
	today := todayAt(time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC))
	e := dailyEntity(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	e.ID = "isha"
	e.Binding = hijri.BindPostSunset

	got := FindOverdue([]model.Entity{e}, today, nil, 7)
	if len(got) != 1 {
		t.Fatalf("expected one occurrence, got %d", len(got))
	}
	yesterday := today.Civil.AddDate(0, 0, -1)
	want := hijri.FromTime(yesterday, time.UTC).Next()
	if got[0].Lunar != want {
		t.Fatalf("post-sunset binding should observe %+v, got %+v", want, got[0].Lunar)
	}
}

func TestFindOverdueZeroLookback(t *testing.T) {
	today := todayAt(time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC))
	e := dailyEntity(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if got := FindOverdue([]model.Entity{e}, today, nil, 0); len(got) != 0 {
		t.Fatalf("zero lookback should scan nothing, got %d", len(got))
	}
}

func TestFindOverdueMultipleEntitiesOrderedByRecency(t *testing.T) {
	today := todayAt(time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC))

	daily := dailyEntity(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	friday := dailyEntity(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	friday.ID = "friday"
	friday.Rule = model.RecurrenceRule{
		Type:     model.RecurrenceWeekly,
		Weekdays: []time.Weekday{time.Friday},
	}

	got := FindOverdue([]model.Entity{daily, friday}, today, nil, 7)
	if len(got) != 2 {
		t.Fatalf("expected one occurrence per entity, got %d", len(got))
	}
	if got[0].EntityID != "daily" || got[0].Civil.Format("2006-01-02") != "2024-03-10" {
		t.Fatalf("first occurrence should be the daily entity yesterday, got %+v", got[0])
	}
	if got[1].EntityID != "friday" || got[1].Civil.Format("2006-01-02") != "2024-03-08" {
		t.Fatalf("second occurrence should be the missed Friday, got %+v", got[1])
	}
}

func TestNextOccurrencesInterval(t *testing.T) {
	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := dailyEntity(anchor)
	e.Rule = model.RecurrenceRule{
		Type: model.RecurrenceInterval, Every: 3, Unit: model.UnitDays, Anchor: anchor,
	}

	got := NextOccurrences(e, anchor.AddDate(0, 0, 1), 30, 3)
	want := []string{"2024-01-04", "2024-01-07", "2024-01-10"}
	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Civil.Format("2006-01-02") != want[i] {
			t.Fatalf("occurrence %d got %s want %s", i, got[i].Civil.Format("2006-01-02"), want[i])
		}
	}
}

func TestNextOccurrencesIncludesFromDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := dailyEntity(start)
	got := NextOccurrences(e, start, 7, 1)
	if len(got) != 1 || got[0].Civil.Format("2006-01-02") != "2024-01-01" {
		t.Fatalf("forward walk should include the starting day, got %+v", got)
	}
}

func TestNextOccurrencesTerminatesOnNeverFiringRule(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := dailyEntity(start)
	e.Rule = model.RecurrenceRule{Type: model.RecurrenceWeekly}

	if got := NextOccurrences(e, start, 60, 5); len(got) != 0 {
		t.Fatalf("never-firing rule should produce no occurrences, got %d", len(got))
	}
}
