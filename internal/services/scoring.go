package services

import (
	"fmt"
	"math"
)

// toSimilarity converts the store's cosine-type distance in [0, 2] to a
// similarity in [-1, 1], where 1 is a perfect match. A distance outside that
// range violates the store contract and is surfaced as an error, never
// clamped.
func toSimilarity(distance float64) (float64, error) {
	if math.IsNaN(distance) || distance < 0 || distance > 2 {
		return 0, fmt.Errorf("%w: distance %v outside [0, 2]", ErrStore, distance)
	}
	return 1 - distance, nil
}

// RoundScore rounds a similarity to three decimals for display consumers.
// Threshold comparisons always use the unrounded value.
func RoundScore(similarity float64) float64 {
	return math.Round(similarity*1000) / 1000
}

// survives applies the strict distance cutoff: a hit is retained only if
// distance < threshold. No threshold keeps every hit.
func survives(distance float64, threshold *float64) bool {
	return threshold == nil || distance < *threshold
}
