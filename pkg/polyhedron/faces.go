package polyhedron

import (
	"slices"

	"github.com/chazu/geodesic/pkg/geom"
)

// Face is a triangle given by three point indices. The order is
// counter-clockwise when viewed from outside the solid.
type Face [3]uint32

// Sorted returns the face's indices in ascending order. Two faces with the
// same corners have the same sorted form regardless of winding.
func (f Face) Sorted() Face {
	s := f
	slices.Sort(s[:])
	return s
}

// Flipped returns the face with the opposite winding.
func (f Face) Flipped() Face {
	return Face{f[0], f[2], f[1]}
}

// ReconstructFaces recovers triangles from an adjacency list: whenever a
// point a has two neighbors b and c that are also neighbors of each other,
// abc is a face. Each face is emitted once, wound so that its normal points
// away from the origin.
//
// A point with fewer than two mutual neighbors contributes no faces; there
// is no error for that case.
func ReconstructFaces(points []geom.Point, adj Adjacency) []Face {
	var faces []Face
	seen := make(map[Face]struct{})
	for a := range points {
		ns := adj[a]
		for bi := range ns {
			for ci := bi + 1; ci < len(ns); ci++ {
				b, c := ns[bi], ns[ci]
				if !adj.Connected(b, c) {
					continue
				}
				face := Face{uint32(a), uint32(b), uint32(c)}
				key := face.Sorted()
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}

				n := geom.FaceNormal(points[a], points[b], points[c])
				if n.Dot(points[a]) < 0 {
					face = face.Flipped()
				}
				faces = append(faces, face)
			}
		}
	}
	return faces
}
