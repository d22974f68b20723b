package match

import (
	"math"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical strings", a: "rainbow roll", b: "rainbow roll", want: 1},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "", b: "sushi", want: 0},
		{name: "no common runes", a: "abc", b: "xyz", want: 0},
		// 12 matched runes, lengths 12 + 15.
		{name: "substring match", a: "rainbow roll", b: "al rainbow roll", want: 24.0 / 27.0},
		// "abcd" vs "bcda": block "bcd" (3) plus the recursion finds
		// nothing else on the split sides.
		{name: "rotated", a: "abcd", b: "bcda", want: 6.0 / 8.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ratio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Ratio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBest(t *testing.T) {
	index := map[string]float64{
		"al rainbow roll": 10.0,
		"miso soup":       4.0,
		"green tea":       2.0,
	}

	tests := []struct {
		name      string
		candidate string
		wantKey   string
		wantOK    bool
	}{
		{name: "close match clears the cutoff", candidate: "rainbow roll", wantKey: "al rainbow roll", wantOK: true},
		{name: "exact match", candidate: "miso soup", wantKey: "miso soup", wantOK: true},
		{name: "typo still matches", candidate: "miso sopu", wantKey: "miso soup", wantOK: true},
		{name: "nothing close", candidate: "nonexistent dish", wantOK: false},
		{name: "empty candidate", candidate: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := Best(tt.candidate, index, DefaultCutoff)
			if ok != tt.wantOK {
				t.Fatalf("Best(%q) ok = %v, want %v", tt.candidate, ok, tt.wantOK)
			}
			if ok && key != tt.wantKey {
				t.Errorf("Best(%q) = %q, want %q", tt.candidate, key, tt.wantKey)
			}
		})
	}

	t.Run("ties break deterministically", func(t *testing.T) {
		tied := map[string]float64{"pasta x": 1, "pasta y": 2}
		for range 50 {
			key, ok := Best("pasta", tied, DefaultCutoff)
			if !ok || key != "pasta x" {
				t.Fatalf("Best(pasta) = %q, %v; want stable %q", key, ok, "pasta x")
			}
		}
	})

	t.Run("empty index", func(t *testing.T) {
		if _, ok := Best("anything", nil, DefaultCutoff); ok {
			t.Error("expected no match against an empty index")
		}
	})
}
