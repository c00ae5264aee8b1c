package model

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2026-10-01", "2026-10-01", false},
		{"2026/10/02", "2026-10-02", false},
		{"10/03/2026", "2026-10-03", false},
		{"+1", "2026-10-16", false},
		{"-1", "2026-10-14", false},
		{" -7 ", "2026-10-08", false},
		{"+x", "", true},
		{"tomorrow", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in, testToday)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.in, err)
			}
			if got.Format(DateLayout) != tt.want {
				t.Fatalf("ParseDate(%q) = %s, want %s", tt.in, got.Format(DateLayout), tt.want)
			}
		})
	}
}

func TestDay(t *testing.T) {
	got := Day(time.Date(2026, 1, 2, 23, 59, 59, 0, time.UTC))
	if !got.Equal(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Day = %v", got)
	}
}
