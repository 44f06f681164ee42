package scene

import (
	"fmt"
	"math"

	"github.com/chazu/geodesic/pkg/polyhedron"
)

// ValidationError describes a single problem with a scene.
type ValidationError struct {
	Solid   string // offending solid name (empty if scene-level)
	Message string
}

func (e ValidationError) Error() string {
	if e.Solid == "" {
		return e.Message
	}
	return fmt.Sprintf("solid %q: %s", e.Solid, e.Message)
}

// Validate checks that every solid has a unique non-empty name, that
// icospheres ask for a resolution in 0..maxResolution and that cones have
// positive finite dimensions and a sample count the cone builder accepts.
// An empty slice means the scene is valid. Validate never mutates the scene.
func Validate(s *Scene, maxResolution int) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateNames(s)...)
	errs = append(errs, validateParameters(s, maxResolution)...)
	return errs
}

func validateNames(s *Scene) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for i, solid := range s.Solids {
		if solid.Name == "" {
			errs = append(errs, ValidationError{
				Message: fmt.Sprintf("solid %d (%s) has no name", i, solid.Kind),
			})
			continue
		}
		if seen[solid.Name] {
			errs = append(errs, ValidationError{Solid: solid.Name, Message: "duplicate name"})
		}
		seen[solid.Name] = true
	}
	return errs
}

func validateParameters(s *Scene, maxResolution int) []ValidationError {
	var errs []ValidationError
	for _, solid := range s.Solids {
		fail := func(format string, args ...any) {
			errs = append(errs, ValidationError{Solid: solid.Name, Message: fmt.Sprintf(format, args...)})
		}

		switch solid.Kind {
		case KindIcosahedron:
			if solid.Resolution != 0 {
				fail("icosahedron takes no resolution, got %d", solid.Resolution)
			}
		case KindIcosphere:
			if solid.Resolution < 0 || solid.Resolution > maxResolution {
				fail("resolution %d outside 0..%d", solid.Resolution, maxResolution)
			}
		case KindCone:
			if solid.Resolution != 0 {
				fail("cone takes no resolution, got %d", solid.Resolution)
			}
			if solid.Samples < polyhedron.MinConeSamples || solid.Samples > polyhedron.MaxConeSamples {
				fail("samples %d outside %d..%d", solid.Samples, polyhedron.MinConeSamples, polyhedron.MaxConeSamples)
			}
			if !positive(solid.Height) {
				fail("height must be positive, got %g", solid.Height)
			}
			if !positive(solid.Radius) {
				fail("radius must be positive, got %g", solid.Radius)
			}
		default:
			fail("unknown kind %d", int(solid.Kind))
		}
	}
	return errs
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
