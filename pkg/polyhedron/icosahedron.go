package polyhedron

import "github.com/chazu/geodesic/pkg/geom"

// Solid is a closed triangulated surface: a point set and faces indexing it.
type Solid struct {
	Points []geom.Point
	Faces  []Face
}

// Icosahedron builds the regular icosahedron inscribed in the unit sphere.
// The result has 12 points and 20 faces when tol is loose enough for the
// precision in use; a tolerance that is too tight silently drops edges and
// with them faces.
func Icosahedron(tol geom.Tolerance) Solid {
	points := Seed()
	adj := Neighbors(points, tol)
	return Solid{
		Points: points,
		Faces:  ReconstructFaces(points, adj),
	}
}
