package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/orbitsim/internal/config"
)

func TestPairStats(t *testing.T) {
	tests := []struct {
		name     string
		wait     float64
		contains []string
	}{
		{"initial", 0, []string{"Moon relative to Earth after 0s", "bound", "true", "orbital period", "net force"}},
		{"after an hour", 3600, []string{"after 3600s", "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after = tt.wait
			defer func() { after = 0 }()

			var out bytes.Buffer
			if err := pairStats(&out, config.GetPreset("orbit"), 2, 1, config.Vec2); err != nil {
				t.Fatalf("pairStats: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestPairStatsPeriod(t *testing.T) {
	after = 0
	var out bytes.Buffer
	if err := pairStats(&out, config.GetPreset("orbit"), 2, 1, config.Vec2); err != nil {
		t.Fatal(err)
	}
	// a circular lunar orbit of 3.844e8 m takes about 27.3 days
	if !strings.Contains(out.String(), "2.357") {
		t.Errorf("period missing from output:\n%s", out.String())
	}
}

func TestPairStatsErrors(t *testing.T) {
	after = 0
	var out bytes.Buffer
	if err := pairStats(&out, config.GetPreset("orbit"), 2, 9, config.Vec2); err == nil {
		t.Error("unknown body id should fail")
	}
	if err := pairStats(&out, config.GetPreset("orbit"), 7, 1, config.Vec2); err == nil {
		t.Error("unknown body id should fail")
	}
}
