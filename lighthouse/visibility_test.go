package lighthouse

import (
	"testing"

	"go.viam.com/test"
)

func TestVisibilityGraph(t *testing.T) {
	vg := NewVisibilityGraph([][]BaseStationID{
		{0, 1},
		{1, 2},
		{5},
		{3, 4},
		{},
	})

	test.That(t, vg.BaseStations(), test.ShouldResemble, []BaseStationID{0, 1, 2, 3, 4, 5})
	test.That(t, vg.CoObserved(0, 1), test.ShouldBeTrue)
	test.That(t, vg.CoObserved(2, 1), test.ShouldBeTrue)
	test.That(t, vg.CoObserved(0, 2), test.ShouldBeFalse)
	test.That(t, vg.Components(), test.ShouldResemble, [][]BaseStationID{{0, 1, 2}, {3, 4}, {5}})

	test.That(t, vg.Unreachable([]BaseStationID{1}), test.ShouldResemble, []BaseStationID{3, 4, 5})
	test.That(t, vg.Unreachable([]BaseStationID{2, 5}), test.ShouldResemble, []BaseStationID{3, 4})
	test.That(t, vg.Unreachable([]BaseStationID{0, 3, 5}), test.ShouldBeEmpty)
}

func TestVisibilityGraphFromSamples(t *testing.T) {
	samples := []*PoseSample{
		{Angles: map[BaseStationID]Observation{2: BsVectors{}, 0: BsVectors{}}},
		{Angles: map[BaseStationID]Observation{7: BsVectors{}}},
	}
	vg := NewVisibilityGraphFromSamples(samples)
	test.That(t, vg.Components(), test.ShouldResemble, [][]BaseStationID{{0, 2}, {7}})
	test.That(t, samples[0].BaseStations(), test.ShouldResemble, []BaseStationID{0, 2})
}

func TestEmptyVisibilityGraph(t *testing.T) {
	vg := NewVisibilityGraph(nil)
	test.That(t, vg.BaseStations(), test.ShouldBeEmpty)
	test.That(t, vg.Components(), test.ShouldBeEmpty)
}
