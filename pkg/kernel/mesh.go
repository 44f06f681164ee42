package kernel

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one interleaved vertex: position followed by normal.
type Vertex struct {
	Position mgl32.Vec3 `json:"position"`
	Normal   mgl32.Vec3 `json:"normal"`
}

// Mesh is a triangle mesh suitable for rendering. Indices holds 3 entries per
// triangle, wound counter-clockwise when seen from outside.
type Mesh struct {
	Vertices []Vertex `json:"vertices"`
	Indices  []uint32 `json:"indices"`
	PartName string   `json:"partName"` // which scene solid this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Triangle returns the indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}

// Positions returns the positions as a flat [x0,y0,z0, x1,...] slice.
func (m *Mesh) Positions() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
	}
	return out
}

// Normals returns the normals as a flat [nx0,ny0,nz0, ...] slice.
func (m *Mesh) Normals() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Normal[:]...)
	}
	return out
}

// EdgeCount returns the number of distinct undirected edges.
func (m *Mesh) EdgeCount() int {
	return len(edgeUses(m))
}

// edgeUses counts how many triangles reference each undirected edge.
func edgeUses(m *Mesh) map[[2]uint32]int {
	uses := make(map[[2]uint32]int, len(m.Indices)/2)
	for i := 0; i < m.TriangleCount(); i++ {
		t := m.Triangle(i)
		for k := 0; k < 3; k++ {
			a, b := t[k], t[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			uses[[2]uint32{a, b}]++
		}
	}
	return uses
}
