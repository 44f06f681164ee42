package polyhedron

import (
	"math"
	"slices"

	"github.com/chazu/geodesic/pkg/geom"
)

// Adjacency lists, for every point, the indices of the points it shares an
// edge with.
type Adjacency [][]int

// Connected reports whether i and j share an edge.
func (a Adjacency) Connected(i, j int) bool {
	return slices.Contains(a[i], j)
}

// EdgeCount returns the number of undirected edges.
func (a Adjacency) EdgeCount() int {
	n := 0
	for _, ns := range a {
		n += len(ns)
	}
	return n / 2
}

// EdgeLength returns the smallest distance between any two points. For a
// regular solid this is its edge length. Fewer than two points yield +Inf.
func EdgeLength(points []geom.Point) float64 {
	edge := math.Inf(1)
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			edge = math.Min(edge, geom.Distance(points[i], points[j]))
		}
	}
	return edge
}

// Neighbors marks every pair whose distance equals the minimal pair distance
// within tol.Edge as an edge.
//
// This is a brute-force O(n^2) pass meant for the 12 base points only.
// Subdivided meshes derive their edges locally from faces instead.
func Neighbors(points []geom.Point, tol geom.Tolerance) Adjacency {
	edge := EdgeLength(points)
	adj := make(Adjacency, len(points))
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			d := geom.Distance(points[i], points[j])
			if math.Abs(edge-d) < tol.Edge {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}
	return adj
}
