package match

import (
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"a", "a", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"a", "ab", 1},
		{"ab", "a", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Order", "order", 1},
		{"storeordr", "storeorder", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.expected {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}

			if got := Distance(tt.b, tt.a); got != tt.expected {
				t.Errorf("Distance is not symmetric for (%q, %q): %d", tt.a, tt.b, got)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"", "", 1.0},
		{"abc", "abc", 1.0},
		{"abc", "", 0.0},
		{"abcd", "abce", 0.75},
		{"ab", "cd", 0.0},
	}

	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.expected {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func BenchmarkDistance(b *testing.B) {
	for b.Loop() {
		Distance("typegraph/store.OrderItem", "typegraph/store.OrderStatus")
	}
}
