package polyhedron

import (
	"math"

	"github.com/chazu/geodesic/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
)

// Seed returns the 12 icosahedron corners. The first four are the corners of
// a golden rectangle in the XY plane, scaled so that every corner lies on the
// unit sphere; the other eight are that rectangle rotated into the XZ and YZ
// planes.
func Seed() []geom.Point {
	// x = y*phi and x^2 + y^2 = 1  =>  y = sqrt(1 / (phi^2 + 1))
	y := math.Sqrt(1 / (math.Phi*math.Phi + 1))
	x := y * math.Phi

	rect := []geom.Point{
		{X: -x, Y: y},
		{X: -x, Y: -y},
		{X: x, Y: y},
		{X: x, Y: -y},
	}

	rotations := []sdf.M44{
		sdf.RotateY(math.Pi / 2).Mul(sdf.RotateX(math.Pi / 2)),
		sdf.RotateZ(math.Pi / 2).Mul(sdf.RotateX(math.Pi / 2)),
	}

	points := make([]geom.Point, 0, len(rect)*(len(rotations)+1))
	points = append(points, rect...)
	for _, m := range rotations {
		for _, p := range rect {
			points = append(points, m.MulPosition(p))
		}
	}
	return points
}
