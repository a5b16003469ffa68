package clock

import (
	"testing"
	"time"
)

func TestFixed_Now(t *testing.T) {
	at := time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC)
	c := Fixed{T: at}
	if !c.Now().Equal(at) {
		t.Errorf("Now() = %v, want %v", c.Now(), at)
	}
}

func TestDay_DropsTimeOfDay(t *testing.T) {
	got := Day(time.Date(2025, 3, 4, 23, 59, 59, 0, time.UTC))
	want := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day() = %v, want %v", got, want)
	}
}

func TestDay_UsesLocalCalendarDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2025-03-04 01:00 in Tokyo is still 2025-03-03 in UTC.
	got := Day(time.Date(2025, 3, 4, 1, 0, 0, 0, tokyo))
	want := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day() = %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 1, 30, 22, 0, 0, 0, time.UTC)
	tests := []struct {
		b    time.Time
		want int
	}{
		{time.Date(2025, 1, 30, 1, 0, 0, 0, time.UTC), 0},
		{time.Date(2025, 1, 31, 0, 30, 0, 0, time.UTC), 1},
		{time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), 3},
		{time.Date(2025, 1, 29, 23, 0, 0, 0, time.UTC), -1},
	}
	for _, tt := range tests {
		if got := DaysBetween(a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%v, %v) = %d, want %d", a, tt.b, got, tt.want)
		}
	}
}

func TestAddDays_AcrossMonth(t *testing.T) {
	got := AddDays(time.Date(2025, 1, 25, 18, 0, 0, 0, time.UTC), 15)
	if FormatDate(got) != "2025-02-09" {
		t.Errorf("AddDays() = %s, want 2025-02-09", FormatDate(got))
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-02-09")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if FormatDate(got) != "2025-02-09" {
		t.Errorf("round trip = %s", FormatDate(got))
	}
	if _, err := ParseDate("09/02/2025"); err == nil {
		t.Error("expected error for malformed date")
	}
}
