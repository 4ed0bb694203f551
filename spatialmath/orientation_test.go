package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// represent a 45 degree rotation around the x axis in all the representations
var (
	th    = math.Pi / 4.
	q45x  = quat.Number{Real: math.Cos(th / 2.), Imag: math.Sin(th / 2.)} // in quaternion representation
	aa45x = &R4AA{th, 1., 0., 0.}                                         // in axis-angle representation
	ea45x = &EulerAngles{Roll: th, Pitch: 0, Yaw: 0}                      // in euler angle representation
	rm45x = &RotationMatrix{[9]float64{
		1, 0, 0,
		0, math.Sqrt2 / 2, -math.Sqrt2 / 2,
		0, math.Sqrt2 / 2, math.Sqrt2 / 2,
	}} // in rotation matrix representation
)

func TestZeroOrientation(t *testing.T) {
	zero := NewZeroOrientation()
	test.That(t, zero.AxisAngles(), test.ShouldResemble, NewR4AA())
	test.That(t, zero.Quaternion(), test.ShouldResemble, quat.Number{Real: 1})
	test.That(t, zero.EulerAngles(), test.ShouldResemble, NewEulerAngles())
	test.That(t, zero.RotationMatrix(), test.ShouldResemble, NewIdentityRotationMatrix())
}

func checkAllRepresentations(t *testing.T, o Orientation) {
	t.Helper()
	q := o.Quaternion()
	test.That(t, QuaternionAlmostEqual(q, q45x, 1e-9), test.ShouldBeTrue)

	aa := o.AxisAngles()
	test.That(t, aa.Theta, test.ShouldAlmostEqual, aa45x.Theta)
	test.That(t, aa.RX, test.ShouldAlmostEqual, aa45x.RX)
	test.That(t, aa.RY, test.ShouldAlmostEqual, aa45x.RY)
	test.That(t, aa.RZ, test.ShouldAlmostEqual, aa45x.RZ)

	ea := o.EulerAngles()
	test.That(t, ea.Roll, test.ShouldAlmostEqual, ea45x.Roll)
	test.That(t, ea.Pitch, test.ShouldAlmostEqual, ea45x.Pitch)
	test.That(t, ea.Yaw, test.ShouldAlmostEqual, ea45x.Yaw)

	test.That(t, RotationMatrixAlmostEqual(o.RotationMatrix(), rm45x, 1e-9), test.ShouldBeTrue)
}

func TestQuaternions(t *testing.T) {
	qq45x := Quaternion(q45x)
	checkAllRepresentations(t, &qq45x)
}

func TestEulerAngles(t *testing.T) {
	checkAllRepresentations(t, ea45x)
}

func TestAxisAngles(t *testing.T) {
	checkAllRepresentations(t, aa45x)
}

func TestRotationMatrix(t *testing.T) {
	checkAllRepresentations(t, rm45x)
}

func TestAxisAngleRoundTrip(t *testing.T) {
	data := []R4AA{
		{1, 1, 1, 1},
		{1, 1, 0, 0},
		{1, 0, 1, 0},
		{1, 0, 0, 1},
		{2.5, -0.3, 0.2, 0.9},
	}

	for _, d := range data {
		d.Normalize()
		rm := d.RotationMatrix()
		test.That(t, rm.IsOrthonormal(1e-9), test.ShouldBeTrue)

		d2 := rm.AxisAngles()
		test.That(t, d2.Theta, test.ShouldAlmostEqual, d.Theta)
		test.That(t, d2.RX, test.ShouldAlmostEqual, d.RX)
		test.That(t, d2.RY, test.ShouldAlmostEqual, d.RY)
		test.That(t, d2.RZ, test.ShouldAlmostEqual, d.RZ)
	}
}

func TestMatrixQuaternionBranches(t *testing.T) {
	// rotations by pi exercise the non-positive trace branches of the conversion
	for _, axis := range []R4AA{{math.Pi, 1, 0, 0}, {math.Pi, 0, 1, 0}, {math.Pi, 0, 0, 1}, {3, 1, 1, 0}} {
		q := axis.Quaternion()
		rm := QuatToRotationMatrix(q)
		test.That(t, QuaternionAlmostEqual(rm.Quaternion(), q, 1e-9), test.ShouldBeTrue)
	}
}

func TestOrientationBetween(t *testing.T) {
	o1 := &EulerAngles{Yaw: 0.3}
	o2 := &EulerAngles{Yaw: 1.0}
	between := OrientationBetween(o1, o2)
	test.That(t, between.EulerAngles().Yaw, test.ShouldAlmostEqual, 0.7)
	test.That(t, OrientationAlmostEqual(o1, &EulerAngles{Yaw: 0.3}), test.ShouldBeTrue)
	test.That(t, OrientationAlmostEqual(o1, o2), test.ShouldBeFalse)
}
