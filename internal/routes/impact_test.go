package routes

import (
	"math"
	"testing"
)

func TestEstimateImpact(t *testing.T) {
	cases := []struct {
		name string
		from string
		to   string
		want float64
	}{
		{"no deviation", "1000", "1000", 0},
		{"two percent down", "1000", "980", 2},
		{"two percent up", "1000", "1020", 2},
		{"capped", "1000000000000000000", "3195000000", 5},
		{"zero from", "0", "100", 0},
		{"unparseable", "abc", "100", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EstimateImpact(tc.from, tc.to)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("EstimateImpact(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}
