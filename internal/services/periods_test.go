package services

import (
	"testing"
	"time"
)

func mustParseDay(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse day %q: %v", value, err)
	}
	return parsed
}

func TestPeriodKeyFormats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		frequency string
		day       string
		want      string
	}{
		{name: "daily", frequency: "daily", day: "2026-08-30", want: "2026-08-30"},
		{name: "weekly iso week", frequency: "weekly", day: "2026-08-30", want: "2026-W35"},
		{name: "weekly monday", frequency: "weekly", day: "2026-08-24", want: "2026-W35"},
		{name: "weekly sunday previous week", frequency: "weekly", day: "2026-08-23", want: "2026-W34"},
		{name: "biweekly ceil of odd week", frequency: "biweekly", day: "2026-08-24", want: "2026-B18"},
		{name: "biweekly january", frequency: "biweekly", day: "2026-01-05", want: "2026-B01"},
		{name: "monthly", frequency: "monthly", day: "2026-08-30", want: "2026-08"},
		{name: "unknown falls back to daily", frequency: "quarterly", day: "2026-08-30", want: "2026-08-30"},
		{name: "empty falls back to daily", frequency: "", day: "2026-08-30", want: "2026-08-30"},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			got := PeriodKey(testCase.frequency, mustParseDay(t, testCase.day))
			if got != testCase.want {
				t.Fatalf("expected period key %q, got %q", testCase.want, got)
			}
		})
	}
}

func TestPeriodKeyIsPure(t *testing.T) {
	t.Parallel()

	day := mustParseDay(t, "2026-03-14")
	for _, frequency := range []string{"daily", "weekly", "biweekly", "monthly"} {
		first := PeriodKey(frequency, day)
		second := PeriodKey(frequency, day)
		if first != second {
			t.Fatalf("period key for %s not deterministic: %q vs %q", frequency, first, second)
		}
		previousFirst := PreviousPeriodKey(frequency, day)
		previousSecond := PreviousPeriodKey(frequency, day)
		if previousFirst != previousSecond {
			t.Fatalf("previous period key for %s not deterministic: %q vs %q", frequency, previousFirst, previousSecond)
		}
	}
}

func TestPreviousPeriodKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		frequency string
		day       string
		want      string
	}{
		{name: "daily previous day", frequency: "daily", day: "2026-08-30", want: "2026-08-29"},
		{name: "daily across month", frequency: "daily", day: "2026-03-01", want: "2026-02-28"},
		{name: "weekly previous week", frequency: "weekly", day: "2026-08-30", want: "2026-W34"},
		{name: "weekly across year", frequency: "weekly", day: "2026-01-07", want: "2026-W01"},
		{name: "biweekly previous fortnight", frequency: "biweekly", day: "2026-08-24", want: "2026-B17"},
		{name: "monthly previous month", frequency: "monthly", day: "2026-08-30", want: "2026-07"},
		{name: "monthly january rolls to december", frequency: "monthly", day: "2026-01-15", want: "2025-12"},
		{name: "monthly march 31 stays february", frequency: "monthly", day: "2026-03-31", want: "2026-02"},
		{name: "unknown behaves as daily", frequency: "sometimes", day: "2026-08-30", want: "2026-08-29"},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			got := PreviousPeriodKey(testCase.frequency, mustParseDay(t, testCase.day))
			if got != testCase.want {
				t.Fatalf("expected previous period key %q, got %q", testCase.want, got)
			}
		})
	}
}

func TestPreviousPeriodKeyNeverEqualsCurrent(t *testing.T) {
	t.Parallel()

	day := mustParseDay(t, "2026-01-01")
	for offset := 0; offset < 400; offset++ {
		probe := day.AddDate(0, 0, offset)
		for _, frequency := range []string{"daily", "weekly", "biweekly", "monthly"} {
			current := PeriodKey(frequency, probe)
			previous := PreviousPeriodKey(frequency, probe)
			if current == previous {
				t.Fatalf("frequency %s at %s: previous key %q equals current", frequency, probe.Format("2006-01-02"), current)
			}
		}
	}
}

func TestPeriodDisplay(t *testing.T) {
	t.Parallel()

	day := mustParseDay(t, "2026-08-30")
	if got := PeriodDisplay("daily", day); got != "30 Aug 2026" {
		t.Fatalf("unexpected daily display %q", got)
	}
	if got := PeriodDisplay("weekly", day); got != "Week 35 of 2026" {
		t.Fatalf("unexpected weekly display %q", got)
	}
	if got := PeriodDisplay("biweekly", day); got != "Fortnight 18 of 2026" {
		t.Fatalf("unexpected biweekly display %q", got)
	}
	if got := PeriodDisplay("monthly", day); got != "August 2026" {
		t.Fatalf("unexpected monthly display %q", got)
	}
}

func TestDateAtLocationUsesLocalCalendarDay(t *testing.T) {
	t.Parallel()

	location := time.FixedZone("UTC+3", 3*60*60)
	// 23:30 UTC is already the next day at UTC+3.
	instant := time.Date(2026, 8, 30, 23, 30, 0, 0, time.UTC)

	day := DateAtLocation(instant, location)
	if got := day.Format("2006-01-02"); got != "2026-08-31" {
		t.Fatalf("expected local day 2026-08-31, got %s", got)
	}
	if day.Hour() != 0 || day.Minute() != 0 {
		t.Fatalf("expected midnight, got %s", day.Format(time.RFC3339))
	}
}
