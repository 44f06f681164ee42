// Package geom holds the vector helpers and numeric tolerances shared by the
// polyhedron builders. Construction happens in float64; conversion to the
// float32 vertex format is the last step.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"
)

// Point is a position in model space. Finished points lie on the unit sphere.
type Point = v3.Vec

// Tolerance groups the epsilon thresholds used while recovering topology and
// checking results. Both values assume a unit radius; they must be rescaled if
// points are ever generated on a sphere of another size.
type Tolerance struct {
	// Edge is the maximum difference between a pair distance and the minimal
	// pair distance for the pair to count as an edge.
	Edge float64
	// Unit is the maximum deviation of |p| from 1.
	Unit float64
}

// DefaultTolerance is tuned for float64 construction and float32 output.
var DefaultTolerance = Tolerance{Edge: 1e-4, Unit: 1e-4}

// OnUnitSphere reports whether p has unit magnitude within t.Unit.
func (t Tolerance) OnUnitSphere(p Point) bool {
	return math.Abs(p.Length()-1) < t.Unit
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return a.Sub(b).Length()
}

// FaceNormal returns cross(b-a, c-a). Its length is twice the triangle area.
func FaceNormal(a, b, c Point) Point {
	return b.Sub(a).Cross(c.Sub(a))
}

// Centroid returns the mean of the three corners.
func Centroid(a, b, c Point) Point {
	return a.Add(b).Add(c).MulScalar(1.0 / 3.0)
}

// Outward reports whether triangle abc winds counter-clockwise when viewed
// from outside a sphere centered at the origin.
func Outward(a, b, c Point) bool {
	return FaceNormal(a, b, c).Dot(Centroid(a, b, c)) > 0
}

// Slerp interpolates along the great-circle arc from a to b. Both inputs must
// be unit vectors; the result is then a unit vector as well. Coincident inputs
// return a.
func Slerp(a, b Point, t float64) Point {
	cos := a.Dot(b)
	// rounding can push |cos| slightly past 1 for nearly parallel inputs
	cos = math.Max(-1, math.Min(1, cos))
	theta := math.Acos(cos)
	sin := math.Sin(theta)
	if sin < 1e-12 {
		return a
	}
	wa := math.Sin((1-t)*theta) / sin
	wb := math.Sin(t*theta) / sin
	return a.MulScalar(wa).Add(b.MulScalar(wb))
}

// Vec32 converts p to the float32 vector used by vertex buffers.
func Vec32(p Point) mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
}
