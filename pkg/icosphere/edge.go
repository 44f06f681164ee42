package icosphere

// EdgeKey identifies an undirected edge by its two point indices, smaller
// index first, so both traversal directions produce the same key.
type EdgeKey struct {
	Lo, Hi uint32
}

// NewEdgeKey returns the canonical key for the edge between a and b.
func NewEdgeKey(a, b uint32) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{Lo: a, Hi: b}
}

// MidpointCache maps a split edge to the index of its midpoint. One cache is
// shared by every pass of a build, so each edge is split at most once.
type MidpointCache map[EdgeKey]uint32

// NewMidpointCache returns an empty cache sized for about hint edges.
func NewMidpointCache(hint int) MidpointCache {
	return make(MidpointCache, hint)
}
