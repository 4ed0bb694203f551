package ippe

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// homography estimates the 3x3 homography mapping src onto dst with the normalized direct linear
// transform. The result is scaled so that H[2][2] is 1.
func homography(src, dst []r2.Point) (*mat.Dense, error) {
	if len(src) != len(dst) {
		return nil, errors.Errorf("have %d source and %d destination points", len(src), len(dst))
	}
	srcT, srcN, err := normalize(src)
	if err != nil {
		return nil, err
	}
	dstT, dstN, err := normalize(dst)
	if err != nil {
		return nil, err
	}

	a := mat.NewDense(2*len(src), 9, nil)
	for i := range srcN {
		x, y := srcN[i].X, srcN[i].Y
		u, v := dstN[i].X, dstN[i].Y
		a.SetRow(2*i, []float64{-x, -y, -1, 0, 0, 0, u * x, u * y, u})
		a.SetRow(2*i+1, []float64{0, 0, 0, -x, -y, -1, v * x, v * y, v})
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFull); !ok {
		return nil, errors.New("homography decomposition failed")
	}
	var vt mat.Dense
	svd.VTo(&vt)
	h := mat.NewDense(3, 3, mat.Col(nil, 8, &vt))

	// undo the normalization: H = dstT^-1 * Hn * srcT
	var dstInv mat.Dense
	if err := dstInv.Inverse(dstT); err != nil {
		return nil, errors.Wrap(err, "inverting image normalization")
	}
	var out mat.Dense
	out.Product(&dstInv, h, srcT)

	scale := out.At(2, 2)
	if math.Abs(scale) < 1e-12 {
		return nil, errors.New("homography maps the model origin to infinity")
	}
	out.Scale(1/scale, &out)
	return &out, nil
}

// normalize translates points to their centroid and scales them to a mean distance of sqrt(2) from it.
// It returns the applied similarity transform and the transformed points.
func normalize(pts []r2.Point) (*mat.Dense, []r2.Point, error) {
	var c r2.Point
	for _, p := range pts {
		c = c.Add(p)
	}
	c = c.Mul(1 / float64(len(pts)))

	var meanDist float64
	for _, p := range pts {
		meanDist += p.Sub(c).Norm()
	}
	meanDist /= float64(len(pts))
	if meanDist < 1e-12 {
		return nil, nil, errors.New("points are coincident")
	}
	s := math.Sqrt2 / meanDist

	t := mat.NewDense(3, 3, []float64{
		s, 0, -s * c.X,
		0, s, -s * c.Y,
		0, 0, 1,
	})
	out := make([]r2.Point, 0, len(pts))
	for _, p := range pts {
		out = append(out, p.Sub(c).Mul(s))
	}
	return t, out, nil
}
