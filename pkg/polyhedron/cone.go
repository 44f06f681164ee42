package polyhedron

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/geodesic/pkg/geom"
)

// Cone defaults, matching a cone half as wide as it is tall.
const (
	DefaultConeHeight  = 1.0
	DefaultConeRadius  = 0.5
	DefaultConeSamples = 32

	MinConeSamples = 3
	MaxConeSamples = 1 << 16
)

var (
	// ErrInvalidSamples is returned for a base circle sampled fewer than
	// MinConeSamples or more than MaxConeSamples times.
	ErrInvalidSamples = errors.New("polyhedron: invalid cone samples")

	// ErrInvalidDimensions is returned for a non-positive or non-finite
	// cone height or radius.
	ErrInvalidDimensions = errors.New("polyhedron: invalid cone dimensions")
)

// ConeSolid is a closed cone. Unlike the sphere solids its normals cannot be
// derived from positions, so they are carried alongside, one per point.
type ConeSolid struct {
	Solid
	Normals []geom.Point
}

// CheckCone rejects bad cone parameters before any allocation takes place.
func CheckCone(height, radius float64, samples int) error {
	if samples < MinConeSamples || samples > MaxConeSamples {
		return fmt.Errorf("%w: %d (allowed %d..%d)", ErrInvalidSamples, samples, MinConeSamples, MaxConeSamples)
	}
	for _, v := range []float64{height, radius} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: height %g, radius %g", ErrInvalidDimensions, height, radius)
		}
	}
	return nil
}

// Cone builds a cone with its apex at (0, 0, height) and its base a circle
// of the given radius in the XY plane, sampled counter-clockwise.
//
// Point 0 is the apex; points 1..samples are the base ring. The side wall is
// one triangle per ring segment and the base is a fan from ring point 1, so
// the result has samples+1 points and 2*samples-2 faces. Ring normals are
// the outward slant normal of the side wall; the apex normal is +Z.
func Cone(height, radius float64, samples int) (ConeSolid, error) {
	if err := CheckCone(height, radius, samples); err != nil {
		return ConeSolid{}, err
	}

	points := make([]geom.Point, 0, samples+1)
	normals := make([]geom.Point, 0, samples+1)
	points = append(points, geom.Point{Z: height})
	normals = append(normals, geom.Point{Z: 1})

	for i := range samples {
		theta := 2 * math.Pi * float64(i) / float64(samples)
		sin, cos := math.Sincos(theta)
		points = append(points, geom.Point{X: radius * cos, Y: radius * sin})
		normals = append(normals, geom.Point{X: height * cos, Y: height * sin, Z: radius}.Normalize())
	}

	faces := make([]Face, 0, 2*samples-2)
	for i := range samples {
		a := uint32(1 + i)
		b := uint32(1 + (i+1)%samples)
		faces = append(faces, Face{0, a, b})
	}
	for i := 2; i < samples; i++ {
		faces = append(faces, Face{1, uint32(i + 1), uint32(i)})
	}

	return ConeSolid{
		Solid:   Solid{Points: points, Faces: faces},
		Normals: normals,
	}, nil
}
