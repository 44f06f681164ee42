// Package kernel defines the mesh type handed to renderers and the abstract
// interface of mesh kernels. The geodesic kernel builds icosahedra,
// icospheres and cones behind this interface; consumers depend only on
// Kernel and Mesh.
package kernel

// Kernel produces closed polyhedral meshes.
type Kernel interface {
	// Icosahedron returns the 12-vertex, 20-face regular icosahedron
	// inscribed in the unit sphere.
	Icosahedron() (*Mesh, error)

	// Icosphere returns the icosahedron subdivided resolution times.
	// Resolution 0 is the icosahedron itself.
	Icosphere(resolution int) (*Mesh, error)

	// Cone returns a closed cone standing on the XY plane with its apex at
	// (0, 0, height) and samples points around its base circle.
	Cone(height, radius float64, samples int) (*Mesh, error)
}
