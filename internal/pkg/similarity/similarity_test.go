package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "flamengo", "flamengo", 1},
		{"both empty", "", "", 1},
		{"contains", "vasco da gama", "vasco", 0.8},
		{"contained", "fla", "flamengo", 0.8},
		{"one typo", "flamenho", "flamengo", 0.875},
		{"nothing in common", "xyz", "cap", 0},
		{"accented runes count once", "gremio", "grêmio", 5.0 / 6.0},
		{"prefix counts as containment", "palmeira", "palmeiras", 0.8},
		{"transposition costs two", "santso", "santos", 4.0 / 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.a, tt.b), 1e-9)
		})
	}
}

func TestScore_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"corintians", "corinthians"},
		{"botafogo", "bota"},
		{"mengao", "mengão"},
	}
	for _, p := range pairs {
		assert.InDelta(t, Score(p[0], p[1]), Score(p[1], p[0]), 1e-9, "%q vs %q", p[0], p[1])
	}
}

func TestClose(t *testing.T) {
	assert.True(t, Close("flamenho", "flamengo"))
	assert.False(t, Close("xyz", "flamengo"))
	// exactly at the threshold is not enough
	assert.False(t, Close("abcde", "abcxy"))
}
