package lighthouse

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// lh2LightPlaneTilt is the tilt of the two rotating light planes of a LH2 base station.
const lh2LightPlaneTilt = math.Pi / 6

// BsVector is the direction from a base station to a sensor, expressed as LH1 sweep angles in radians.
// The base station frame has x pointing forward, y to the left and z up.
type BsVector struct {
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
}

// NewBsVectorLH1 creates a vector from LH1 horizontal and vertical sweep angles.
func NewBsVectorLH1(horizontal, vertical float64) BsVector {
	return BsVector{Horizontal: horizontal, Vertical: vertical}
}

// NewBsVectorLH2 creates a vector from the two sweep angles of a LH2 base station.
func NewBsVectorLH2(angle1, angle2 float64) BsVector {
	tanP := math.Tan(lh2LightPlaneTilt)
	y := math.Tan((angle2 + angle1) / 2)
	z := math.Sin(angle2-angle1) / (tanP * (math.Cos(angle2) + math.Cos(angle1)))
	return BsVector{Horizontal: math.Atan(y), Vertical: math.Atan(z)}
}

// NewBsVectorFromPoint creates the vector pointing at p, a point in the base station frame in front of it.
func NewBsVectorFromPoint(p r3.Vector) BsVector {
	return BsVector{Horizontal: math.Atan2(p.Y, p.X), Vertical: math.Atan2(p.Z, p.X)}
}

// Cart returns the vector in cartesian form, scaled to x = 1.
func (v BsVector) Cart() r3.Vector {
	return r3.Vector{X: 1, Y: math.Tan(v.Horizontal), Z: math.Tan(v.Vertical)}
}

// Projection returns the point where the vector crosses the plane one meter in front of the base station.
func (v BsVector) Projection() r2.Point {
	c := v.Cart()
	return r2.Point{X: c.Y / c.X, Y: c.Z / c.X}
}

// LH2Angles returns the sweep angles a LH2 base station would measure for this vector.
func (v BsVector) LH2Angles() (angle1, angle2 float64) {
	q := v.q()
	angle1 = v.Horizontal + math.Asin(q*math.Tan(-lh2LightPlaneTilt))
	angle2 = v.Horizontal + math.Asin(q*math.Tan(lh2LightPlaneTilt))
	return angle1, angle2
}

func (v BsVector) q() float64 {
	return math.Tan(v.Vertical) / math.Sqrt(1+math.Pow(math.Tan(v.Horizontal), 2))
}
