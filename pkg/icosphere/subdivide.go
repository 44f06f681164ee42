// Package icosphere refines the base icosahedron into a geodesic sphere by
// repeatedly splitting every triangle into four along great-circle
// midpoints.
package icosphere

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/chazu/geodesic/pkg/geom"
	"github.com/chazu/geodesic/pkg/polyhedron"
)

const (
	// DefaultMaxResolution bounds Build unless the caller asks for more.
	// Resolution 8 is 655362 vertices and 1310720 faces.
	DefaultMaxResolution = 8

	// LimitResolution is the hard ceiling no configuration can raise.
	// Resolution 10 is 10485762 vertices and 20971520 faces, roughly 1 GB
	// of points, faces and cache while building; each further pass
	// quadruples that. Every count up to here also fits a 32-bit index.
	LimitResolution = 10
)

// ErrInvalidResolution is returned for a negative resolution or one above
// the configured maximum.
var ErrInvalidResolution = errors.New("icosphere: invalid resolution")

// VertexCount returns the number of points after r passes: 10*4^r + 2.
// r must be non-negative.
func VertexCount(r int) int {
	return 10*(1<<(2*r)) + 2
}

// FaceCount returns the number of faces after r passes: 20*4^r.
func FaceCount(r int) int {
	return 20 << (2 * r)
}

// CheckResolution rejects r before any allocation takes place.
func CheckResolution(r, maxResolution int) error {
	maxResolution = min(maxResolution, LimitResolution)
	if r < 0 || r > maxResolution {
		return fmt.Errorf("%w: %d (allowed 0..%d)", ErrInvalidResolution, r, maxResolution)
	}
	return nil
}

// Subdivide performs one refinement pass. Every face (i0, i1, i2) becomes
//
//	[i0 i01 i02] [i01 i1 i12] [i02 i12 i2] [i01 i12 i02]
//
// where iXY is the great-circle midpoint of edge XY. Midpoints are looked up
// in cache before being created, so an edge shared by two faces is split
// once. The inputs are not modified; the returned cache holds every entry of
// the input cache plus the edges split in this pass.
func Subdivide(faces []polyhedron.Face, points []geom.Point, cache MidpointCache) ([]polyhedron.Face, []geom.Point, MidpointCache) {
	// a closed triangle mesh has 3F/2 edges, one new point each
	newPoints := len(faces) * 3 / 2
	outPoints := slices.Grow(slices.Clone(points), newPoints)
	outCache := make(MidpointCache, len(cache)+newPoints)
	maps.Copy(outCache, cache)

	split := func(a, b uint32) uint32 {
		key := NewEdgeKey(a, b)
		if i, ok := outCache[key]; ok {
			return i
		}
		i := uint32(len(outPoints))
		outPoints = append(outPoints, geom.Slerp(outPoints[a], outPoints[b], 0.5))
		outCache[key] = i
		return i
	}

	outFaces := make([]polyhedron.Face, 0, len(faces)*4)
	for _, f := range faces {
		i0, i1, i2 := f[0], f[1], f[2]
		i01 := split(i0, i1)
		i02 := split(i0, i2)
		i12 := split(i1, i2)
		outFaces = append(outFaces,
			polyhedron.Face{i0, i01, i02},
			polyhedron.Face{i01, i1, i12},
			polyhedron.Face{i02, i12, i2},
			polyhedron.Face{i01, i12, i02},
		)
	}
	return outFaces, outPoints, outCache
}

// Build refines base resolution times. Resolution 0 returns a copy of base.
// The resolution is checked against maxResolution (capped at
// LimitResolution) first.
func Build(base polyhedron.Solid, resolution, maxResolution int) (polyhedron.Solid, error) {
	if err := CheckResolution(resolution, maxResolution); err != nil {
		return polyhedron.Solid{}, err
	}

	faces := slices.Clone(base.Faces)
	points := slices.Clone(base.Points)
	cache := NewMidpointCache(0)
	for range resolution {
		faces, points, cache = Subdivide(faces, points, cache)
	}
	return polyhedron.Solid{Points: points, Faces: faces}, nil
}
