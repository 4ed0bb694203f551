package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/lighthouse/utils"
)

// RotationMatrix is a 3x3 matrix in row major order.
// m[3*r + c] is the element in the r'th row and c'th column.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates the rotation matrix from a slice of 9 values in row major order.
// No orthonormality check is made, see IsOrthonormal.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	rm := &RotationMatrix{}
	copy(rm.mat[:], m)
	return rm, nil
}

// NewRotationMatrixFromRows assembles a rotation matrix from its three rows.
func NewRotationMatrixFromRows(r0, r1, r2 r3.Vector) *RotationMatrix {
	return &RotationMatrix{[9]float64{
		r0.X, r0.Y, r0.Z,
		r1.X, r1.Y, r1.Z,
		r2.X, r2.Y, r2.Z,
	}}
}

// NewIdentityRotationMatrix returns the rotation matrix of no rotation.
func NewIdentityRotationMatrix() *RotationMatrix {
	return &RotationMatrix{[9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// Quaternion returns orientation in quaternion representation.
// Reference: http://www.euclideanspace.com/maths/geometry/rotations/conversions/matrixToQuaternion/index.htm
func (rm *RotationMatrix) Quaternion() quat.Number {
	m := rm.mat
	var w, x, y, z float64
	tr := m[0] + m[4] + m[8]
	switch {
	case tr > 0:
		s := 0.5 / math.Sqrt(tr+1.0)
		w = 0.25 / s
		x = (m[7] - m[5]) * s
		y = (m[2] - m[6]) * s
		z = (m[3] - m[1]) * s
	case m[0] > m[4] && m[0] > m[8]:
		s := 2.0 * math.Sqrt(1.0+m[0]-m[4]-m[8])
		w = (m[7] - m[5]) / s
		x = 0.25 * s
		y = (m[1] + m[3]) / s
		z = (m[2] + m[6]) / s
	case m[4] > m[8]:
		s := 2.0 * math.Sqrt(1.0+m[4]-m[0]-m[8])
		w = (m[2] - m[6]) / s
		x = (m[1] + m[3]) / s
		y = 0.25 * s
		z = (m[5] + m[7]) / s
	default:
		s := 2.0 * math.Sqrt(1.0+m[8]-m[0]-m[4])
		w = (m[3] - m[1]) / s
		x = (m[2] + m[6]) / s
		y = (m[5] + m[7]) / s
		z = 0.25 * s
	}
	return quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return QuatToR4AA(rm.Quaternion())
}

// EulerAngles returns orientation in Euler angle representation.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(rm.Quaternion())
}

// At returns the value of the element at row r, column c.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns the row of the rotation matrix at the given index.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[row*3], Y: rm.mat[row*3+1], Z: rm.mat[row*3+2]}
}

// Col returns the column of the rotation matrix at the given index.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[col+3], Z: rm.mat[col+6]}
}

// Elements returns a copy of the matrix elements in row major order.
func (rm *RotationMatrix) Elements() [9]float64 {
	return rm.mat
}

// Transpose returns the transpose, which for an orthonormal matrix is also its inverse.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	m := rm.mat
	return &RotationMatrix{[9]float64{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}}
}

// Mul returns the matrix product rm * other.
func (rm *RotationMatrix) Mul(other *RotationMatrix) *RotationMatrix {
	out := &RotationMatrix{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.mat[r*3+c] = rm.Row(r).Dot(other.Col(c))
		}
	}
	return out
}

// MulVec returns the product of the matrix and the column vector v.
func (rm *RotationMatrix) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{X: rm.Row(0).Dot(v), Y: rm.Row(1).Dot(v), Z: rm.Row(2).Dot(v)}
}

// Det returns the determinant of the matrix.
func (rm *RotationMatrix) Det() float64 {
	return mat.Det(rm.dense())
}

// IsOrthonormal reports whether ||R^T R - I|| < eps and det(R) is within eps of +1.
// A matrix failing this is a reflection or has drifted away from SO(3).
func (rm *RotationMatrix) IsOrthonormal(eps float64) bool {
	d := rm.dense()
	var rtr mat.Dense
	rtr.Mul(d.T(), d)
	rtr.Sub(&rtr, identity3)
	return mat.Norm(&rtr, 2) < eps && utils.Float64AlmostEqual(mat.Det(d), 1, eps)
}

// String returns the matrix as three rows.
func (rm *RotationMatrix) String() string {
	m := rm.mat
	return fmt.Sprintf("[[%.6f %.6f %.6f] [%.6f %.6f %.6f] [%.6f %.6f %.6f]]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

func (rm *RotationMatrix) dense() *mat.Dense {
	m := rm.mat
	return mat.NewDense(3, 3, m[:])
}

var identity3 = mat.NewDiagDense(3, []float64{1, 1, 1})

// RotationMatrixAlmostEqual compares two rotation matrices element wise.
func RotationMatrixAlmostEqual(a, b *RotationMatrix, eps float64) bool {
	for i := range a.mat {
		if math.Abs(a.mat[i]-b.mat[i]) > eps {
			return false
		}
	}
	return true
}
