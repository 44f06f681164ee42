package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/geodesic/pkg/geom"
)

// ErrInvalidMesh is wrapped by kernels that produced a mesh breaking one of
// the invariants checked by Validate.
var ErrInvalidMesh = errors.New("kernel: invalid mesh")

// ValidationSeverity indicates whether a validation finding makes the mesh
// unusable or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // mesh must not be rendered
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding. Vertex and Triangle
// are -1 when the finding is not tied to one element.
type ValidationError struct {
	Vertex   int
	Triangle int
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	switch {
	case e.Vertex >= 0:
		return fmt.Sprintf("[%s] vertex %d: %s", e.Severity, e.Vertex, e.Message)
	case e.Triangle >= 0:
		return fmt.Sprintf("[%s] triangle %d: %s", e.Severity, e.Triangle, e.Message)
	default:
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
}

// Validate checks the invariants every generated sphere mesh must hold:
//
//   - every position has unit length within tol.Unit
//   - every normal equals the normalized position
//   - every triangle has three distinct in-range indices and non-zero area
//   - every triangle winds outward
//   - no edge is shared by more than two triangles
//
// An edge used by only one triangle is reported as a warning. The returned
// slice is empty for a valid mesh. Validate never modifies m.
func Validate(m *Mesh, tol geom.Tolerance) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateVertices(m, tol)...)
	errs = append(errs, validateTriangles(m, geom.Point{})...)
	errs = append(errs, validateEdges(m)...)
	return errs
}

// ValidateConvex checks a closed convex mesh that is not a sphere. Normals
// must have unit length, and triangles must be well formed and wind outward
// as seen from interior, a point strictly inside the solid. Edge rules are
// the same as for Validate.
func ValidateConvex(m *Mesh, interior geom.Point, tol geom.Tolerance) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateNormals(m, tol)...)
	errs = append(errs, validateTriangles(m, interior)...)
	errs = append(errs, validateEdges(m)...)
	return errs
}

// HasErrors reports whether any finding has SeverityError.
func HasErrors(findings []ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

func point(v [3]float32) geom.Point {
	return geom.Point{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func validateVertices(m *Mesh, tol geom.Tolerance) []ValidationError {
	var errs []ValidationError
	for i, v := range m.Vertices {
		p := point(v.Position)
		if !tol.OnUnitSphere(p) {
			errs = append(errs, ValidationError{
				Vertex:   i,
				Triangle: -1,
				Message:  fmt.Sprintf("position length is %.6f, want 1", p.Length()),
				Severity: SeverityError,
			})
		}
		n := point(v.Normal)
		if want := p.Normalize(); geom.Distance(n, want) > tol.Unit {
			errs = append(errs, ValidationError{
				Vertex:   i,
				Triangle: -1,
				Message:  fmt.Sprintf("normal %v is not the normalized position %v", v.Normal, want),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func validateNormals(m *Mesh, tol geom.Tolerance) []ValidationError {
	var errs []ValidationError
	for i, v := range m.Vertices {
		if l := point(v.Normal).Length(); math.Abs(l-1) >= tol.Unit {
			errs = append(errs, ValidationError{
				Vertex:   i,
				Triangle: -1,
				Message:  fmt.Sprintf("normal length is %.6f, want 1", l),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateTriangles checks indices, area and winding. A triangle winds
// outward when its normal points away from center.
func validateTriangles(m *Mesh, center geom.Point) []ValidationError {
	var errs []ValidationError
	if len(m.Indices)%3 != 0 {
		errs = append(errs, ValidationError{
			Vertex:   -1,
			Triangle: -1,
			Message:  fmt.Sprintf("index count %d is not a multiple of 3", len(m.Indices)),
			Severity: SeverityError,
		})
	}

	for i := 0; i < m.TriangleCount(); i++ {
		t := m.Triangle(i)
		fail := func(msg string) {
			errs = append(errs, ValidationError{Vertex: -1, Triangle: i, Message: msg, Severity: SeverityError})
		}

		if int(t[0]) >= len(m.Vertices) || int(t[1]) >= len(m.Vertices) || int(t[2]) >= len(m.Vertices) {
			fail(fmt.Sprintf("index out of range in %v (%d vertices)", t, len(m.Vertices)))
			continue
		}
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			fail(fmt.Sprintf("repeated index in %v", t))
			continue
		}

		a, b, c := point(m.Vertices[t[0]].Position), point(m.Vertices[t[1]].Position), point(m.Vertices[t[2]].Position)
		n := geom.FaceNormal(a, b, c)
		if n.Length() == 0 || math.IsNaN(n.Length()) {
			fail("zero area")
			continue
		}
		if n.Dot(geom.Centroid(a, b, c).Sub(center)) <= 0 {
			fail(fmt.Sprintf("%v winds inward", t))
		}
	}
	return errs
}

func validateEdges(m *Mesh) []ValidationError {
	var errs []ValidationError
	for e, n := range edgeUses(m) {
		switch {
		case n > 2:
			errs = append(errs, ValidationError{
				Vertex:   -1,
				Triangle: -1,
				Message:  fmt.Sprintf("edge %d-%d shared by %d triangles", e[0], e[1], n),
				Severity: SeverityError,
			})
		case n == 1:
			errs = append(errs, ValidationError{
				Vertex:   -1,
				Triangle: -1,
				Message:  fmt.Sprintf("edge %d-%d is open", e[0], e[1]),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}
