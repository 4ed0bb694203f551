package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Pose represents a 6dof pose, position and orientation, with respect to a frame.
// Applying a pose to a point expressed in the posed entity's frame yields that point expressed in the outer frame.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// NewZeroPose returns a pose at (0,0,0) with no rotation.
func NewZeroPose() Pose {
	return &matrixPose{rotation: *NewIdentityRotationMatrix()}
}

// NewPose takes in a position and orientation and returns a Pose.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(p)
	}
	return &matrixPose{point: p, rotation: *o.RotationMatrix()}
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a vector.
func NewPoseFromPoint(point r3.Vector) Pose {
	return &matrixPose{point: point, rotation: *NewIdentityRotationMatrix()}
}

// matrixPose is immutable; every accessor hands out copies.
type matrixPose struct {
	point    r3.Vector
	rotation RotationMatrix
}

func (p *matrixPose) Point() r3.Vector {
	return p.point
}

func (p *matrixPose) Orientation() Orientation {
	rm := p.rotation
	return &rm
}

func (p *matrixPose) String() string {
	return fmt.Sprintf("{X:%.6f Y:%.6f Z:%.6f R:%v}", p.point.X, p.point.Y, p.point.Z, &p.rotation)
}

// Transform applies the pose to a point expressed in the posed frame.
func Transform(p Pose, pt r3.Vector) r3.Vector {
	return p.Orientation().RotationMatrix().MulVec(pt).Add(p.Point())
}

// Compose takes two poses, a in frame 1 and b in the frame of a, and returns b expressed in frame 1.
func Compose(a, b Pose) Pose {
	ra := a.Orientation().RotationMatrix()
	rb := b.Orientation().RotationMatrix()
	return &matrixPose{
		point:    ra.MulVec(b.Point()).Add(a.Point()),
		rotation: *ra.Mul(rb),
	}
}

// PoseInverse will return the inverse of a pose. So if a given pose p is the pose of A relative to B, PoseInverse(p) will give
// the pose of B relative to A. The rotation is assumed orthonormal, so its inverse is its transpose.
func PoseInverse(p Pose) Pose {
	rInv := p.Orientation().RotationMatrix().Transpose()
	return &matrixPose{
		point:    rInv.MulVec(p.Point().Mul(-1)),
		rotation: *rInv,
	}
}

// MapFrame takes the pose of one entity expressed in frame 1 and the pose of the same entity expressed in frame 2,
// and returns the pose of frame 2's origin expressed in frame 1, that is the transform carrying
// frame 2 coordinates into frame 1.
//
//	R = R1 * R2^T
//	t = t1 - R * t2
//
// Rotations are assumed orthonormal and are not renormalized.
func MapFrame(refIn1, refIn2 Pose) Pose {
	r1 := refIn1.Orientation().RotationMatrix()
	r2 := refIn2.Orientation().RotationMatrix()
	r := r1.Mul(r2.Transpose())
	return &matrixPose{
		point:    refIn1.Point().Sub(r.MulVec(refIn2.Point())),
		rotation: *r,
	}
}

// ReexpressPose expresses otherIn2, a pose in frame 2, in frame 1. The mapping between the frames is
// derived from a shared reference entity whose pose is known in both frames, see MapFrame.
func ReexpressPose(refIn1, refIn2, otherIn2 Pose) Pose {
	mapping := MapFrame(refIn1, refIn2)
	rm := mapping.Orientation().RotationMatrix()
	return &matrixPose{
		point:    rm.MulVec(otherIn2.Point()).Add(mapping.Point()),
		rotation: *rm.Mul(otherIn2.Orientation().RotationMatrix()),
	}
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, 1e-8)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same,
// comparing translations and rotation matrix elements with the given tolerance.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	if !R3VectorAlmostEqual(a.Point(), b.Point(), epsilon) {
		return false
	}
	return RotationMatrixAlmostEqual(a.Orientation().RotationMatrix(), b.Orientation().RotationMatrix(), epsilon)
}

// R3VectorAlmostEqual compares two r3.Vectors component wise.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon && math.Abs(a.Z-b.Z) <= epsilon
}
