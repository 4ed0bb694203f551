package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestRadToDeg(t *testing.T) {
	test.That(t, RadToDeg(math.Pi), test.ShouldAlmostEqual, 180.)
	test.That(t, RadToDeg(-math.Pi/2), test.ShouldAlmostEqual, -90.)
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1+1e-10, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-9), test.ShouldBeFalse)
}

func TestSortedKeys(t *testing.T) {
	m := map[int]string{5: "e", 1: "a", 3: "c"}
	test.That(t, SortedKeys(m), test.ShouldResemble, []int{1, 3, 5})
	test.That(t, SortedKeys(map[string]int{}), test.ShouldBeEmpty)
}
