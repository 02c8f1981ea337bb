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
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone Asia/Riyadh",
			timezone: "Asia/Riyadh",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestNowInTimezone(t *testing.T) {
	now, err := NowInTimezone("Asia/Tokyo")
	if err != nil {
		t.Fatalf("NowInTimezone() failed: %v", err)
	}
	if now.Location().String() != "Asia/Tokyo" {
		t.Errorf("NowInTimezone() location = %s, want Asia/Tokyo", now.Location())
	}

	if _, err := NowInTimezone("Invalid/Timezone"); err == nil {
		t.Error("NowInTimezone() should fail for an unknown zone")
	}
}

func TestClockInTimezone(t *testing.T) {
	now, err := ClockInTimezone("America/New_York")
	if err != nil {
		t.Fatalf("ClockInTimezone() failed: %v", err)
	}
	if got := now().Location().String(); got != "America/New_York" {
		t.Errorf("clock location = %s, want America/New_York", got)
	}

	if _, err := ClockInTimezone("Invalid/Timezone"); err == nil {
		t.Error("ClockInTimezone() should fail for an unknown zone")
	}
}

func TestGetTodayInTimezone(t *testing.T) {
	got, err := GetTodayInTimezone("UTC")
	if err != nil {
		t.Fatalf("GetTodayInTimezone() failed: %v", err)
	}
	if _, err := time.Parse("2006-01-02", got); err != nil {
		t.Errorf("GetTodayInTimezone() = %q, not a date", got)
	}

	if _, err := GetTodayInTimezone("Invalid/Timezone"); err == nil {
		t.Error("GetTodayInTimezone() should fail for an unknown zone")
	}
}

func TestToday(t *testing.T) {
	// 23:30 UTC on the 14th is already the 15th in Karachi.
	karachi, err := time.LoadLocation("Asia/Karachi")
	if err != nil {
		t.Skip("tzdata not available")
	}
	instant := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)

	if got := Today(func() time.Time { return instant }); got != "2025-03-14" {
		t.Errorf("Today(UTC) = %q, want 2025-03-14", got)
	}
	if got := Today(func() time.Time { return instant.In(karachi) }); got != "2025-03-15" {
		t.Errorf("Today(Karachi) = %q, want 2025-03-15", got)
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}

	got, err := ParseDateInLocation("2025-03-14", loc)
	if err != nil {
		t.Fatalf("ParseDateInLocation() failed: %v", err)
	}
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("ParseDateInLocation() = %v, want %v", got, want)
	}

	if _, err := ParseDateInLocation("14/03/2025", loc); err == nil {
		t.Error("ParseDateInLocation() should reject non ISO dates")
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain date", "2025-03-14", "2025-03-14"},
		{"RFC3339 timestamp", "2025-03-14T09:30:00Z", "2025-03-14"},
		{"space separated timestamp", "2025-03-14 09:30:00", "2025-03-14"},
		{"padded", "  2025-03-14  ", "2025-03-14"},
		{"not a date", "yesterday", "yesterday"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.in); got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		nil  bool
	}{
		{"RFC3339Nano", "2025-03-14T09:30:00.123Z", time.Date(2025, 3, 14, 9, 30, 0, 123000000, time.UTC), false},
		{"RFC3339", "2025-03-14T09:30:00Z", time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC), false},
		{"space separated", "2025-03-14 09:30:00", time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC), false},
		{"date only", "2025-03-14", time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "not a time", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.in)
			if tt.nil {
				if got != nil {
					t.Errorf("ParseTimestamp(%q) = %v, want nil", tt.in, got)
				}
				return
			}
			if got == nil || !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		timezone string
		want     bool
	}{
		{"", true},
		{"Local", true},
		{"UTC", true},
		{"Europe/Istanbul", true},
		{"Invalid/Timezone", false},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			if got := ValidateTimezone(tt.timezone); got != tt.want {
				t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
			}
		})
	}
}
