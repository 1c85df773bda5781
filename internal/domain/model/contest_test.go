package model

import (
	"testing"
	"time"
)

func TestStatusFor(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name    string
		current ContestStatus
		now     time.Time
		want    ContestStatus
	}{
		{"before window", ContestUpcoming, start.Add(-time.Hour), ContestUpcoming},
		{"at start", ContestUpcoming, start, ContestActive},
		{"inside window", ContestUpcoming, start.Add(24 * time.Hour), ContestActive},
		{"at end", ContestActive, end, ContestActive},
		{"just past end", ContestActive, end.Add(time.Second), ContestCompleted},
		{"long past end", ContestUpcoming, end.Add(30 * 24 * time.Hour), ContestCompleted},
		{"cancelled stays cancelled before start", ContestCancelled, start.Add(-time.Hour), ContestCancelled},
		{"cancelled stays cancelled mid-window", ContestCancelled, start.Add(time.Hour), ContestCancelled},
		{"cancelled stays cancelled after end", ContestCancelled, end.Add(time.Hour), ContestCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.current, tt.now, start, end); got != tt.want {
				t.Errorf("StatusFor(%q, %v) = %q, want %q", tt.current, tt.now, got, tt.want)
			}
		})
	}
}

func TestStatusForCrossingEndDate(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// Immediately after now crosses EndDate, recompute must yield Completed.
	during := StatusFor(ContestActive, end.Add(-time.Nanosecond), start, end)
	after := StatusFor(during, end.Add(time.Nanosecond), start, end)
	if during != ContestActive {
		t.Fatalf("expected Active just before end, got %q", during)
	}
	if after != ContestCompleted {
		t.Fatalf("expected Completed just after end, got %q", after)
	}
}
