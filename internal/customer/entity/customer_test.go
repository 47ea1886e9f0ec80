package entity

import (
	"testing"
	"time"
)

func TestAgeYears(t *testing.T) {
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{
			name: "birthday already passed this year",
			dob:  time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
			want: 36,
		},
		{
			name: "birthday is today",
			dob:  time.Date(1990, 8, 25, 0, 0, 0, 0, time.UTC),
			want: 36,
		},
		{
			name: "birthday not reached yet this year",
			dob:  time.Date(1990, 12, 1, 0, 0, 0, 0, time.UTC),
			want: 35,
		},
		{
			name: "born this year",
			dob:  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "dob after now clamps to zero",
			dob:  time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AgeYears(tc.dob, now); got != tc.want {
				t.Fatalf("AgeYears(%v) = %d, want %d", tc.dob, got, tc.want)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		size  int32
		want  int64
	}{
		{name: "zero total", total: 0, size: 10, want: 0},
		{name: "zero size", total: 10, size: 0, want: 0},
		{name: "exact multiple", total: 20, size: 10, want: 2},
		{name: "partial last page", total: 21, size: 10, want: 3},
		{name: "single item", total: 1, size: 10, want: 1},
		{name: "size larger than total", total: 3, size: 100, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TotalPages(tc.total, tc.size); got != tc.want {
				t.Fatalf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
			}
		})
	}
}
