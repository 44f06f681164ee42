// Package sdfx converts kernel meshes into github.com/deadsy/sdfx triangles
// so they can be written with the sdfx renderers (STL).
package sdfx

import (
	"errors"
	"fmt"

	"github.com/chazu/geodesic/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrEmptyMesh is returned when there is nothing to write.
var ErrEmptyMesh = errors.New("sdfx: mesh has no triangles")

// vec converts a float32 vertex position to an sdfx vector.
func vec(p [3]float32) v3.Vec {
	return v3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}

// Triangles expands the indexed mesh into one sdfx triangle per face,
// keeping the winding order.
func Triangles(m *kernel.Mesh) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, 0, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		t := m.Triangle(i)
		out = append(out, &sdf.Triangle3{
			vec(m.Vertices[t[0]].Position),
			vec(m.Vertices[t[1]].Position),
			vec(m.Vertices[t[2]].Position),
		})
	}
	return out
}

// Scaled returns a copy of tris with every vertex multiplied by s. STL has
// no notion of units, so callers use this to export a sphere of radius s.
func Scaled(tris []*sdf.Triangle3, s float64) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, len(tris))
	for i, t := range tris {
		out[i] = &sdf.Triangle3{t[0].MulScalar(s), t[1].MulScalar(s), t[2].MulScalar(s)}
	}
	return out
}

// SaveSTL writes m to path as a binary STL file, scaled uniformly by
// scale. For a unit icosphere the scale is the sphere radius.
func SaveSTL(path string, m *kernel.Mesh, scale float64) error {
	if m.TriangleCount() == 0 {
		return ErrEmptyMesh
	}
	tris := Triangles(m)
	if scale != 1 {
		tris = Scaled(tris, scale)
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("sdfx: save %s: %w", path, err)
	}
	return nil
}
