// Package polyhedron builds the base icosahedron from three golden
// rectangles and recovers its faces purely from point proximity.
package polyhedron
