package lighthouse

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBsVectorProjection(t *testing.T) {
	v := NewBsVectorFromPoint(r3.Vector{X: 2, Y: 0.5, Z: -1})
	test.That(t, v.Horizontal, test.ShouldAlmostEqual, math.Atan(0.25))
	test.That(t, v.Vertical, test.ShouldAlmostEqual, math.Atan(-0.5))

	p := v.Projection()
	test.That(t, p.X, test.ShouldAlmostEqual, 0.25)
	test.That(t, p.Y, test.ShouldAlmostEqual, -0.5)

	c := v.Cart()
	test.That(t, c.X, test.ShouldEqual, 1.)
	test.That(t, c.Y, test.ShouldAlmostEqual, 0.25)
	test.That(t, c.Z, test.ShouldAlmostEqual, -0.5)
}

func TestBsVectorLH2RoundTrip(t *testing.T) {
	for _, v := range []BsVector{
		NewBsVectorLH1(0, 0),
		NewBsVectorLH1(0.3, -0.2),
		NewBsVectorLH1(-0.7, 0.4),
		NewBsVectorLH1(1.0, 0.6),
	} {
		a1, a2 := v.LH2Angles()
		back := NewBsVectorLH2(a1, a2)
		test.That(t, back.Horizontal, test.ShouldAlmostEqual, v.Horizontal, 1e-12)
		test.That(t, back.Vertical, test.ShouldAlmostEqual, v.Vertical, 1e-12)
	}
}

func TestBsVectorLH2Symmetry(t *testing.T) {
	// a sensor straight ahead of the base station is hit by both planes at the same angle
	a1, a2 := NewBsVectorLH1(0.2, 0).LH2Angles()
	test.That(t, a1, test.ShouldAlmostEqual, 0.2)
	test.That(t, a2, test.ShouldAlmostEqual, 0.2)

	// above the horizon the first plane arrives earlier
	a1, a2 = NewBsVectorLH1(0, 0.3).LH2Angles()
	test.That(t, a1, test.ShouldBeLessThan, a2)
	test.That(t, a1, test.ShouldAlmostEqual, -a2)
}

func TestBsVectorsCorrespondences(t *testing.T) {
	geometry := DeckSensorPositions()
	vectors := BsVectors{
		NewBsVectorLH1(0.1, 0.1),
		NewBsVectorLH1(0.2, 0.1),
		NewBsVectorLH1(0.1, 0.2),
		NewBsVectorLH1(0.2, 0.2),
	}
	corr, err := vectors.Correspondences(geometry)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(corr), test.ShouldEqual, 4)
	for i, c := range corr {
		test.That(t, c.Sensor, test.ShouldResemble, geometry[i])
		test.That(t, c.Projection, test.ShouldResemble, vectors[i].Projection())
	}

	_, err = vectors[:3].Correspondences(geometry)
	test.That(t, err, test.ShouldBeError, "have 3 angle vectors for 4 sensors")
}

func TestDeckSensorPositions(t *testing.T) {
	geometry := DeckSensorPositions()
	test.That(t, len(geometry), test.ShouldEqual, 4)
	test.That(t, geometry[0].Distance(geometry[2]), test.ShouldAlmostEqual, 0.03)
	test.That(t, geometry[0].Distance(geometry[1]), test.ShouldAlmostEqual, 0.015)
	for _, p := range geometry {
		test.That(t, p.Z, test.ShouldEqual, 0.)
	}
}
