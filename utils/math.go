// Package utils contains small helpers shared across the lighthouse packages.
package utils

import (
	"cmp"
	"math"
	"slices"

	"github.com/samber/lo"
)

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// SortedKeys returns the keys of the map in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
