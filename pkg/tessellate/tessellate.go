// Package tessellate walks a scene and produces triangle meshes using a
// geometry kernel. One mesh is produced per solid, in declaration order.
package tessellate

import (
	"fmt"

	"github.com/chazu/geodesic/pkg/kernel"
	"github.com/chazu/geodesic/pkg/scene"
)

// Tessellate builds one mesh per solid in s using k. The tessellator is
// read-only and never mutates the scene. Solids that resolve to the same
// request share nothing; each gets its own mesh.
func Tessellate(s *scene.Scene, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if s == nil {
		return nil, nil
	}

	meshes := make([]*kernel.Mesh, 0, s.Len())
	for i, solid := range s.Solids {
		mesh, err := build(k, solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: solid %d (%q): %w", i, solid.Name, err)
		}
		mesh.PartName = solid.Name
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

func build(k kernel.Kernel, solid *scene.Solid) (*kernel.Mesh, error) {
	switch solid.Kind {
	case scene.KindIcosahedron:
		return k.Icosahedron()
	case scene.KindIcosphere:
		return k.Icosphere(solid.Resolution)
	case scene.KindCone:
		return k.Cone(solid.Height, solid.Radius, solid.Samples)
	default:
		return nil, fmt.Errorf("unsupported solid kind %v", solid.Kind)
	}
}
