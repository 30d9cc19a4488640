package filter

import (
	"testing"
	"time"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"100", 100, false},
		{"10KB", 10_000, false},
		{"10KiB", 10_240, false},
		{"2MB", 2_000_000, false},
		{"2 MiB", 2_097_152, false},
		{"1GB", 1_000_000_000, false},
		{"1 GiB", 1_073_741_824, false},
		{"1.5kb", 1_500, false},
		{"500B", 500, false},
		{"invalid", 0, true},
		{"10XB", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"iso date", "2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), false},
		{"iso datetime", "2024-01-01T12:00:00Z", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), false},
		{"relative days", "7 days ago", now.Add(-7 * 24 * time.Hour), false},
		{"relative weeks", "2 weeks ago", now.Add(-14 * 24 * time.Hour), false},
		{"relative months", "1 month ago", now.Add(-30 * 24 * time.Hour), false},
		{"relative years", "1 year ago", now.Add(-365 * 24 * time.Hour), false},
		{"today", "today", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"yesterday", "yesterday", time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "not a date", time.Time{}, true},
		{"bad unit", "7 fortnights ago", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
