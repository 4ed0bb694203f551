// Package ippe implements the infinitesimal plane-based pose estimation (IPPE) solver for lighthouse
// observations.
//
// See T. Collins and A. Bartoli, "Infinitesimal Plane-Based Pose Estimation", IJCV 2014.
// IPPE returns the two candidate poses of a planar model seen by a perspective camera, ranked by
// reprojection error.
package ippe

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/lighthouse/lighthouse"
	"go.viam.com/lighthouse/spatialmath"
)

const (
	// minPoints is the number of correspondences needed for a homography.
	minPoints = 4
	// planeEps is how far a sensor may be from the sensor plane.
	planeEps = 1e-9
)

var (
	// ErrTooFewPoints is returned when there are not enough correspondences for a homography.
	ErrTooFewPoints = errors.Errorf("need at least %d correspondences", minPoints)
	// ErrNonPlanarGeometry is returned when the sensors do not share one z coordinate.
	ErrNonPlanarGeometry = errors.New("sensor positions must lie in a plane of constant z")
)

// bsFromCam maps camera frame coordinates (z forward, image (x/z, y/z)) to base station coordinates
// (x forward, projection (y/x, z/x)).
var bsFromCam = spatialmath.NewRotationMatrixFromRows(
	r3.Vector{X: 0, Y: 0, Z: 1},
	r3.Vector{X: 1, Y: 0, Z: 0},
	r3.Vector{X: 0, Y: 1, Z: 0},
)

// Solver is a lighthouse.Solver using IPPE.
type Solver struct{}

// NewSolver returns an IPPE solver.
func NewSolver() *Solver {
	return &Solver{}
}

type candidate struct {
	rotation    *spatialmath.RotationMatrix
	translation r3.Vector
	err         float64
}

// Solve returns the two IPPE poses of the rig in the base station frame, best first.
func (s *Solver) Solve(geometry lighthouse.SensorGeometry, correspondences []lighthouse.Correspondence) ([]lighthouse.Solution, error) {
	if len(correspondences) < minPoints {
		return nil, errors.Wrapf(ErrTooFewPoints, "have %d", len(correspondences))
	}
	z0 := correspondences[0].Sensor.Z
	for _, p := range geometry {
		if math.Abs(p.Z-z0) > planeEps {
			return nil, ErrNonPlanarGeometry
		}
	}

	// Model points in the sensor plane, centred on their mean.
	var mean r3.Vector
	for _, c := range correspondences {
		if math.Abs(c.Sensor.Z-z0) > planeEps {
			return nil, ErrNonPlanarGeometry
		}
		mean = mean.Add(c.Sensor)
	}
	mean = mean.Mul(1 / float64(len(correspondences)))

	model := make([]r2.Point, 0, len(correspondences))
	image := make([]r2.Point, 0, len(correspondences))
	for _, c := range correspondences {
		model = append(model, r2.Point{X: c.Sensor.X - mean.X, Y: c.Sensor.Y - mean.Y})
		image = append(image, c.Projection)
	}

	h, err := homography(model, image)
	if err != nil {
		return nil, errors.Wrap(lighthouse.ErrNoSolution, err.Error())
	}

	// Jacobian of the homography at the model origin, and the image of the origin.
	v := r2.Point{X: h.At(0, 2), Y: h.At(1, 2)}
	jac := mat.NewDense(2, 2, []float64{
		h.At(0, 0) - h.At(2, 0)*v.X, h.At(0, 1) - h.At(2, 1)*v.X,
		h.At(1, 0) - h.At(2, 0)*v.Y, h.At(1, 1) - h.At(2, 1)*v.Y,
	})

	rot1, rot2, err := decompose(v, jac)
	if err != nil {
		return nil, errors.Wrap(lighthouse.ErrNoSolution, err.Error())
	}

	candidates := make([]candidate, 0, 2)
	for _, rot := range []*spatialmath.RotationMatrix{rot1, rot2} {
		t, err := translation(rot, model, image)
		if err != nil {
			return nil, errors.Wrap(lighthouse.ErrNoSolution, err.Error())
		}
		candidates = append(candidates, candidate{rotation: rot, translation: t, err: reprojectionError(rot, t, model, image)})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].err < candidates[j].err })

	solutions := make([]lighthouse.Solution, 0, len(candidates))
	for _, c := range candidates {
		// undo the centring, then change to the base station axes
		tCam := c.translation.Sub(c.rotation.MulVec(mean))
		solutions = append(solutions, lighthouse.Solution{
			Rotation:    bsFromCam.Mul(c.rotation),
			Translation: bsFromCam.MulVec(tCam),
			Error:       c.err,
		})
	}
	return solutions, nil
}

// decompose returns the two rotations of a plane whose homography has Jacobian jac at the model origin,
// which projects to v.
func decompose(v r2.Point, jac *mat.Dense) (*spatialmath.RotationMatrix, *spatialmath.RotationMatrix, error) {
	// rotation taking the viewing ray of v onto the optical axis
	rv := spatialmath.NewIdentityRotationMatrix()
	if t := v.Norm(); t > 1e-15 {
		s := math.Sqrt(v.X*v.X + v.Y*v.Y + 1)
		cosTh := 1 / s
		sinTh := math.Sqrt(1 - 1/(s*s))
		k := mat.NewDense(3, 3, []float64{
			0, 0, v.X / t,
			0, 0, v.Y / t,
			-v.X / t, -v.Y / t, 0,
		})
		var kk mat.Dense
		kk.Mul(k, k)
		m := make([]float64, 9)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				m[i*3+j] = sinTh*k.At(i, j) + (1-cosTh)*kk.At(i, j)
				if i == j {
					m[i*3+j]++
				}
			}
		}
		var err error
		if rv, err = spatialmath.NewRotationMatrix(m); err != nil {
			return nil, nil, err
		}
	}

	b := mat.NewDense(2, 2, []float64{
		rv.At(0, 0) - v.X*rv.At(2, 0), rv.At(0, 1) - v.X*rv.At(2, 1),
		rv.At(1, 0) - v.Y*rv.At(2, 0), rv.At(1, 1) - v.Y*rv.At(2, 1),
	})
	var dec mat.Dense
	if err := dec.Inverse(b); err != nil {
		return nil, nil, errors.Wrap(err, "degenerate view of the sensor plane")
	}
	var a mat.Dense
	a.Mul(&dec, jac)

	// gamma is the largest singular value of a
	a00, a01, a10, a11 := a.At(0, 0), a.At(0, 1), a.At(1, 0), a.At(1, 1)
	p := a00*a00 + a10*a10
	q := a01*a01 + a11*a11
	r := a00*a01 + a10*a11
	gamma := math.Sqrt(0.5 * (p + q + math.Sqrt((p-q)*(p-q)+4*r*r)))
	if gamma < 1e-15 {
		return nil, nil, errors.New("homography jacobian is zero")
	}

	r00, r01, r10, r11 := a00/gamma, a01/gamma, a10/gamma, a11/gamma
	h00 := 1 - (r00*r00 + r10*r10)
	h01 := -(r00*r01 + r10*r11)
	h11 := 1 - (r01*r01 + r11*r11)
	b0 := math.Sqrt(math.Max(h00, 0))
	b1 := math.Sqrt(math.Max(h11, 0))
	if h01 < 0 {
		b1 = -b1
	}

	d := r3.Vector{X: r00, Y: r10, Z: b0}.Cross(r3.Vector{X: r01, Y: r11, Z: b1})
	first := spatialmath.NewRotationMatrixFromRows(
		r3.Vector{X: r00, Y: r01, Z: d.X},
		r3.Vector{X: r10, Y: r11, Z: d.Y},
		r3.Vector{X: b0, Y: b1, Z: d.Z},
	)
	second := spatialmath.NewRotationMatrixFromRows(
		r3.Vector{X: r00, Y: r01, Z: -d.X},
		r3.Vector{X: r10, Y: r11, Z: -d.Y},
		r3.Vector{X: -b0, Y: -b1, Z: d.Z},
	)
	return rv.Mul(first), rv.Mul(second), nil
}

// translation finds the least squares translation for a rotation, given the model and image points.
func translation(rot *spatialmath.RotationMatrix, model, image []r2.Point) (r3.Vector, error) {
	n := len(model)
	a := mat.NewDense(2*n, 3, nil)
	b := mat.NewVecDense(2*n, nil)
	for i, m := range model {
		ps := rot.MulVec(r3.Vector{X: m.X, Y: m.Y})
		q := image[i]
		a.SetRow(i, []float64{1, 0, -q.X})
		a.SetRow(n+i, []float64{0, 1, -q.Y})
		b.SetVec(i, q.X*ps.Z-ps.X)
		b.SetVec(n+i, q.Y*ps.Z-ps.Y)
	}
	var t mat.VecDense
	if err := t.SolveVec(a, b); err != nil {
		return r3.Vector{}, errors.Wrap(err, "solving translation")
	}
	return r3.Vector{X: t.AtVec(0), Y: t.AtVec(1), Z: t.AtVec(2)}, nil
}

// reprojectionError is the sum of squared image distances between the projected model and the image points.
func reprojectionError(rot *spatialmath.RotationMatrix, t r3.Vector, model, image []r2.Point) float64 {
	var sum float64
	for i, m := range model {
		c := rot.MulVec(r3.Vector{X: m.X, Y: m.Y}).Add(t)
		if c.Z <= 0 {
			return math.Inf(1)
		}
		dx := c.X/c.Z - image[i].X
		dy := c.Y/c.Z - image[i].Y
		sum += dx*dx + dy*dy
	}
	return sum
}
