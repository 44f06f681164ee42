// Package geodesic implements the kernel.Kernel interface by building the
// icosahedron from golden rectangles and refining it with great-circle
// midpoint subdivision. It also builds closed cones for the same mesh format.
package geodesic

import (
	"fmt"
	"time"

	"github.com/chazu/geodesic/pkg/geom"
	"github.com/chazu/geodesic/pkg/icosphere"
	"github.com/chazu/geodesic/pkg/kernel"
	"github.com/chazu/geodesic/pkg/polyhedron"
	"go.uber.org/zap"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// Kernel builds unit-radius geodesic meshes and cones. A Kernel holds only
// configuration and is safe for concurrent use.
type Kernel struct {
	tol           geom.Tolerance
	maxResolution int
	log           *zap.Logger
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithTolerance overrides geom.DefaultTolerance.
func WithTolerance(tol geom.Tolerance) Option {
	return func(k *Kernel) { k.tol = tol }
}

// WithMaxResolution overrides icosphere.DefaultMaxResolution. Memory grows
// by 4x per level (resolution 10 needs about 1 GB while building); values
// above icosphere.LimitResolution are clamped to it.
func WithMaxResolution(n int) Option {
	return func(k *Kernel) { k.maxResolution = n }
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(k *Kernel) {
		if l != nil {
			k.log = l
		}
	}
}

// New returns a Kernel with default tolerances and resolution limit.
func New(opts ...Option) *Kernel {
	k := &Kernel{
		tol:           geom.DefaultTolerance,
		maxResolution: icosphere.DefaultMaxResolution,
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// MaxResolution returns the largest resolution Icosphere accepts.
func (k *Kernel) MaxResolution() int {
	return min(k.maxResolution, icosphere.LimitResolution)
}

// Icosahedron returns the regular icosahedron.
func (k *Kernel) Icosahedron() (*kernel.Mesh, error) {
	start := time.Now()
	base, err := k.base()
	if err != nil {
		return nil, err
	}
	return k.finish("icosahedron", 0, base, start)
}

// Icosphere returns the icosahedron refined resolution times. The resolution
// is checked before any geometry is built.
func (k *Kernel) Icosphere(resolution int) (*kernel.Mesh, error) {
	if err := icosphere.CheckResolution(resolution, k.maxResolution); err != nil {
		return nil, err
	}

	start := time.Now()
	base, err := k.base()
	if err != nil {
		return nil, err
	}
	solid, err := icosphere.Build(base, resolution, k.maxResolution)
	if err != nil {
		return nil, err
	}
	return k.finish("icosphere", resolution, solid, start)
}

// base builds the icosahedron and fails if the edge tolerance was too tight
// to recover every face.
func (k *Kernel) base() (polyhedron.Solid, error) {
	s := polyhedron.Icosahedron(k.tol)
	if len(s.Faces) != icosphere.FaceCount(0) {
		return polyhedron.Solid{}, fmt.Errorf("%w: recovered %d of %d icosahedron faces (edge tolerance %g)",
			kernel.ErrInvalidMesh, len(s.Faces), icosphere.FaceCount(0), k.tol.Edge)
	}
	return s, nil
}

// Cone returns a closed cone. Parameters are checked before any geometry
// is built.
func (k *Kernel) Cone(height, radius float64, samples int) (*kernel.Mesh, error) {
	start := time.Now()
	c, err := polyhedron.Cone(height, radius, samples)
	if err != nil {
		return nil, err
	}
	m := kernel.EmitWithNormals(c.Points, c.Normals, c.Faces)

	// A quarter of the height up the axis is strictly inside any cone.
	interior := geom.Point{Z: height / 4}
	if err := firstError(kernel.ValidateConvex(m, interior, k.tol)); err != nil {
		return nil, fmt.Errorf("%w: cone %d samples: %v", kernel.ErrInvalidMesh, samples, err)
	}

	k.logBuilt("cone", m, start, zap.Int("samples", samples), zap.Float64("height", height), zap.Float64("radius", radius))
	return m, nil
}

// finish emits and validates a sphere mesh.
func (k *Kernel) finish(kind string, resolution int, s polyhedron.Solid, start time.Time) (*kernel.Mesh, error) {
	m := kernel.Emit(s.Points, s.Faces)
	if err := firstError(kernel.Validate(m, k.tol)); err != nil {
		return nil, fmt.Errorf("%w: %s resolution %d: %v", kernel.ErrInvalidMesh, kind, resolution, err)
	}

	k.logBuilt(kind, m, start, zap.Int("resolution", resolution))
	return m, nil
}

func firstError(findings []kernel.ValidationError) error {
	for _, f := range findings {
		if f.Severity == kernel.SeverityError {
			return f
		}
	}
	return nil
}

func (k *Kernel) logBuilt(kind string, m *kernel.Mesh, start time.Time, fields ...zap.Field) {
	k.log.Debug("mesh built", append([]zap.Field{
		zap.String("kind", kind),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)),
	}, fields...)...)
}
