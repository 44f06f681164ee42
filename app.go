package main

import (
	"github.com/chazu/geodesic/pkg/engine"
	"github.com/chazu/geodesic/pkg/kernel"
	"github.com/chazu/geodesic/pkg/kernel/geodesic"
	"github.com/chazu/geodesic/pkg/tessellate"
	"go.uber.org/zap"
)

// colorPalette is a default palette used to assign distinct colors to solids.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App wires the script engine to the geodesic kernel.
type App struct {
	engine *engine.Engine
	kernel *geodesic.Kernel
	log    *zap.Logger
}

// MeshData is the JSON-serializable mesh format handed to viewers.
type MeshData struct {
	Vertices      []float32 `json:"vertices"`
	Normals       []float32 `json:"normals"`
	Indices       []uint32  `json:"indices"`
	PartName      string    `json:"partName"`
	Color         string    `json:"color"`
	VertexCount   int       `json:"vertexCount"`
	TriangleCount int       `json:"triangleCount"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating a script.
type EvalResult struct {
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates an App with an engine and the geodesic kernel. A nil
// logger disables logging.
func NewApp(log *zap.Logger, opts ...geodesic.Option) *App {
	if log == nil {
		log = zap.NewNop()
	}
	k := geodesic.New(append([]geodesic.Option{geodesic.WithLogger(log)}, opts...)...)
	eng := engine.NewEngine()
	eng.MaxResolution = k.MaxResolution()
	return &App{
		engine: eng,
		kernel: k,
		log:    log,
	}
}

// Meshes evaluates source and tessellates the resulting scene. When
// evaluation or tessellation fails, the meshes are nil and the errors
// describe why.
func (a *App) Meshes(source string) ([]*kernel.Mesh, []EvalErrorData) {
	// Step 1: Evaluate the Lisp source into a scene.
	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.log.Error("evaluate failed", zap.Error(err))
		return nil, []EvalErrorData{{Message: err.Error()}}
	}

	if len(evalErrs) > 0 {
		errs := make([]EvalErrorData, 0, len(evalErrs))
		for _, e := range evalErrs {
			errs = append(errs, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		a.log.Debug("script rejected", zap.Int("errors", len(errs)))
		return nil, errs
	}

	// Step 2: Tessellate the scene into triangle meshes.
	meshes, err := tessellate.Tessellate(s, a.kernel)
	if err != nil {
		a.log.Error("tessellate failed", zap.Error(err))
		return nil, []EvalErrorData{{Message: "tessellation failed: " + err.Error()}}
	}
	return meshes, nil
}

// Evaluate takes Lisp source and returns mesh data + errors.
func (a *App) Evaluate(source string) EvalResult {
	meshes, errs := a.Meshes(source)
	if len(errs) > 0 {
		return EvalResult{Meshes: []MeshData{}, Errors: errs}
	}
	return meshData(meshes)
}

// meshData converts built meshes into their JSON form, assigning palette
// colors in declaration order.
func meshData(meshes []*kernel.Mesh) EvalResult {
	result := EvalResult{
		Meshes: make([]MeshData, 0, len(meshes)),
		Errors: []EvalErrorData{},
	}
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices:      m.Positions(),
			Normals:       m.Normals(),
			Indices:       m.Indices,
			PartName:      m.PartName,
			Color:         colorPalette[i%len(colorPalette)],
			VertexCount:   m.VertexCount(),
			TriangleCount: m.TriangleCount(),
		})
	}
	return result
}
