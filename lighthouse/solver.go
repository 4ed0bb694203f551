package lighthouse

import (
	"github.com/golang/geo/r3"

	"go.viam.com/lighthouse/spatialmath"
)

// Solution is a candidate pose of the sensor rig expressed in a base station's frame:
// p_bs = Rotation * p_rig + Translation.
type Solution struct {
	Rotation    *spatialmath.RotationMatrix
	Translation r3.Vector
	// Error is the reprojection error of the candidate, lower is better.
	Error float64
}

// Solver solves the relative pose between the sensor rig and a base station from a set of
// correspondences. Candidates are returned best first.
type Solver interface {
	Solve(geometry SensorGeometry, correspondences []Correspondence) ([]Solution, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(geometry SensorGeometry, correspondences []Correspondence) ([]Solution, error)

// Solve calls f.
func (f SolverFunc) Solve(geometry SensorGeometry, correspondences []Correspondence) ([]Solution, error) {
	return f(geometry, correspondences)
}
