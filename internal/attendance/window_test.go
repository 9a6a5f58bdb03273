package attendance

import (
	"errors"
	"testing"
	"time"
)

func kolkata() *time.Location {
	return time.FixedZone("Asia/Kolkata", 5*3600+30*60)
}

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		input   string
		year    int
		month   int
		day     int
		wantErr bool
	}{
		{"2024-03-07", 2024, 3, 7, false},
		{"07-03-2024", 2024, 3, 7, false},
		{"15-02-2024", 2024, 2, 15, false},
		{" 2024-01-02 ", 2024, 1, 2, false},
		{"2024-3-7", 2024, 3, 7, false},
		{"07/03/2024", 0, 0, 0, true},
		{"2024-03", 0, 0, 0, true},
		{"12-11-23", 0, 0, 0, true},
		{"abc-de-fgh", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			y, m, d, err := parseFlexibleDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("expected ErrInvalidDate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if y != tt.year || m != tt.month || d != tt.day {
				t.Errorf("parseFlexibleDate(%q) = %d-%d-%d, want %d-%d-%d", tt.input, y, m, d, tt.year, tt.month, tt.day)
			}
		})
	}
}

// Inputs like "1200-11-2023" are readable both ways; the ISO reading wins.
func TestParseFlexibleDate_AmbiguousPrefersISO(t *testing.T) {
	y, m, d, err := parseFlexibleDate("1200-11-2023")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if y != 1200 || m != 11 || d != 2023 {
		t.Errorf("expected ISO-first reading 1200-11-2023, got %d-%d-%d", y, m, d)
	}
}

func TestResolveDayWindow_ExplicitDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	window, err := ResolveDayWindow("15-02-2024", kolkata(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if window.LocalDate != "2024-02-15" {
		t.Errorf("expected local date 2024-02-15, got %s", window.LocalDate)
	}
	if window.TZName != "Asia/Kolkata" {
		t.Errorf("expected tz Asia/Kolkata, got %s", window.TZName)
	}
	if got := window.FromISO(); got != "2024-02-14T18:30:00Z" {
		t.Errorf("expected utcFrom 2024-02-14T18:30:00Z, got %s", got)
	}
	if got := window.ToISO(); got != "2024-02-15T18:30:00Z" {
		t.Errorf("expected utcTo 2024-02-15T18:30:00Z, got %s", got)
	}
	if window.ToEpoch()-window.FromEpoch() != 24*3600 {
		t.Errorf("window must span exactly 24h, got %d seconds", window.ToEpoch()-window.FromEpoch())
	}
}

func TestResolveDayWindow_EndIsStartPlus24h(t *testing.T) {
	window, err := ResolveDayWindow("2024-03-07", kolkata(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !window.EndUTC.Equal(window.StartUTC.Add(24 * time.Hour)) {
		t.Errorf("end must equal start+24h: start=%v end=%v", window.StartUTC, window.EndUTC)
	}
}

func TestResolveDayWindow_DefaultsToToday(t *testing.T) {
	// 20:00 UTC on Jan 5 is already Jan 6, 01:30 in Kolkata.
	now := time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC)
	window, err := ResolveDayWindow("", kolkata(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if window.LocalDate != "2024-01-06" {
		t.Errorf("expected local today 2024-01-06, got %s", window.LocalDate)
	}
}

func TestResolveDayWindow_NegativeOffset(t *testing.T) {
	loc := time.FixedZone("America/Sao_Paulo", -3*3600)
	window, err := ResolveDayWindow("2024-02-15", loc, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := window.FromISO(); got != "2024-02-15T03:00:00Z" {
		t.Errorf("expected utcFrom 2024-02-15T03:00:00Z, got %s", got)
	}
}

func TestResolveDayWindow_RejectsImpossibleDates(t *testing.T) {
	for _, input := range []string{"2024-13-01", "2024-02-30", "32-01-2024", "2024-00-10"} {
		if _, err := ResolveDayWindow(input, kolkata(), time.Now()); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate for %q, got %v", input, err)
		}
	}
}
