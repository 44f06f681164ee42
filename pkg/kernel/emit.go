package kernel

import (
	"github.com/chazu/geodesic/pkg/geom"
	"github.com/chazu/geodesic/pkg/polyhedron"
)

// Emit projects a finished point set and its faces onto the renderer-facing
// representation. Every vertex normal is the normalized position, which is
// the exact surface normal of a sphere centered at the origin. Triangle order
// and winding are kept as given.
func Emit(points []geom.Point, faces []polyhedron.Face) *Mesh {
	vertices := make([]Vertex, len(points))
	for i, p := range points {
		vertices[i] = Vertex{
			Position: geom.Vec32(p),
			Normal:   geom.Vec32(p.Normalize()),
		}
	}
	return &Mesh{Vertices: vertices, Indices: flatten(faces)}
}

// EmitWithNormals is Emit for solids whose normals are not radial. normals
// must have one entry per point.
func EmitWithNormals(points, normals []geom.Point, faces []polyhedron.Face) *Mesh {
	vertices := make([]Vertex, len(points))
	for i, p := range points {
		vertices[i] = Vertex{
			Position: geom.Vec32(p),
			Normal:   geom.Vec32(normals[i]),
		}
	}
	return &Mesh{Vertices: vertices, Indices: flatten(faces)}
}

func flatten(faces []polyhedron.Face) []uint32 {
	indices := make([]uint32, 0, len(faces)*3)
	for _, f := range faces {
		indices = append(indices, f[:]...)
	}
	return indices
}
