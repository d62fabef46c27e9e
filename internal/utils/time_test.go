package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"empty string returns local", "", false},
		{"Local returns local", "Local", false},
		{"UTC", "UTC", false},
		{"America/New_York", "America/New_York", false},
		{"invalid", "Not/AZone", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Error("expected non-nil location")
			}
			if ValidateTimezone(tt.timezone) == tt.wantErr {
				t.Errorf("ValidateTimezone(%q) disagrees with LoadLocation", tt.timezone)
			}
		})
	}
}

func TestGetTodayInTimezone(t *testing.T) {
	got, err := GetTodayInTimezone("UTC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseDate(got); err != nil {
		t.Errorf("today %q is not a calendar date", got)
	}
	if _, err := GetTodayInTimezone("Mars/Olympus"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-03-10", "2024-03-10"}, // Sunday
		{"2024-03-13", "2024-03-10"}, // Wednesday
		{"2024-03-16", "2024-03-10"}, // Saturday
		{"2024-03-01", "2024-02-25"}, // crosses month
		{"2025-01-01", "2024-12-29"}, // crosses year
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := FormatDate(WeekStart(d)); got != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestAddDaysAcrossBoundaries(t *testing.T) {
	d, _ := ParseDate("2024-03-01")
	if got := FormatDate(AddDays(d, -1)); got != "2024-02-29" {
		t.Errorf("leap day: got %s", got)
	}
	d, _ = ParseDate("2023-12-31")
	if got := FormatDate(AddDays(d, 1)); got != "2024-01-01" {
		t.Errorf("new year: got %s", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2024, time.February); got != 29 {
		t.Errorf("Feb 2024 = %d, want 29", got)
	}
	if got := DaysInMonth(2023, time.February); got != 28 {
		t.Errorf("Feb 2023 = %d, want 28", got)
	}
	if got := DaysInMonth(2024, time.December); got != 31 {
		t.Errorf("Dec 2024 = %d, want 31", got)
	}
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2024-02")
	if err != nil || y != 2024 || m != time.February {
		t.Errorf("ParseMonth = (%d, %v, %v)", y, m, err)
	}
	if _, _, err := ParseMonth("2024-13"); err == nil {
		t.Error("expected error for month 13")
	}
	if _, err := ParseDate("2024-02-30"); err == nil {
		t.Error("expected error for Feb 30")
	}
}
