package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"api", "apx", 1},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestSimilarity(t *testing.T) {
	// Best word-level similarity wins: "apx" vs the "api" component.
	assert.InDelta(t, 2.0/3.0, Similarity("apx", "alpha-api main"), 1e-9)

	assert.InDelta(t, 1.0, Similarity("main", "alpha-api main"), 1e-9)
	assert.Zero(t, Similarity("xyz", ""))
}
