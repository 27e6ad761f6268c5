package utils

import (
	"testing"
	"time"
)

func TestAgingDays(t *testing.T) {
	reference := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		unloadedAt time.Time
		want       int
	}{
		// Same day, earlier hour
		{time.Date(2025, 3, 14, 1, 0, 0, 0, time.UTC), 0},
		// Late yesterday still ages to a full day
		{time.Date(2025, 3, 13, 23, 30, 0, 0, time.UTC), 1},
		{time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC), 3},
		{time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC), 10},
		// Future unloading clamps to zero
		{time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC), 0},
	}

	for _, c := range cases {
		if got := AgingDays(c.unloadedAt, reference); got != c.want {
			t.Fatalf("AgingDays(%s) = %d, want %d", c.unloadedAt, got, c.want)
		}
	}
}
