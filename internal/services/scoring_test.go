package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSimilarity(t *testing.T) {
	cases := []struct {
		distance float64
		want     float64
	}{
		{0, 1},
		{0.25, 0.75},
		{1, 0},
		{1.5, -0.5},
		{2, -1},
	}
	for _, tc := range cases {
		got, err := toSimilarity(tc.distance)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1e-12)
		assert.GreaterOrEqual(t, got, -1.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestToSimilarityRejectsContractViolations(t *testing.T) {
	for _, distance := range []float64{-0.001, 2.001, math.NaN(), math.Inf(1)} {
		_, err := toSimilarity(distance)
		require.Error(t, err, "distance %v", distance)
		assert.ErrorIs(t, err, ErrStore)
	}
}

func TestRoundScore(t *testing.T) {
	assert.InDelta(t, 0.123, RoundScore(0.12349), 1e-12)
	assert.InDelta(t, 0.124, RoundScore(0.12351), 1e-12)
	assert.InDelta(t, -0.555, RoundScore(-0.5554), 1e-12)
	assert.InDelta(t, 1.0, RoundScore(1.0), 1e-12)
}

func TestSurvives(t *testing.T) {
	threshold := 0.4
	assert.True(t, survives(0.399, &threshold))
	assert.False(t, survives(0.4, &threshold), "cutoff is strict")
	assert.False(t, survives(0.5, &threshold))
	assert.True(t, survives(1.9, nil), "no threshold keeps everything")
}

// Tightening the cutoff must never let more hits through.
func TestThresholdMonotonicity(t *testing.T) {
	distances := []float64{0.05, 0.2, 0.2, 0.41, 0.7, 1.3, 1.99}

	count := func(threshold float64) int {
		n := 0
		for _, d := range distances {
			if survives(d, &threshold) {
				n++
			}
		}
		return n
	}

	prev := 0
	for _, threshold := range []float64{0, 0.1, 0.2, 0.3, 0.5, 1, 2} {
		n := count(threshold)
		assert.GreaterOrEqual(t, n, prev, "threshold %v", threshold)
		prev = n
	}
}
