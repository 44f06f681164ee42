// Command geodesic builds icosahedron, icosphere and cone meshes, either for a
// single solid chosen by flags or for every solid declared in a scene
// script, and optionally writes them as STL.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/geodesic/pkg/kernel"
	"github.com/chazu/geodesic/pkg/kernel/sdfx"
	"github.com/chazu/geodesic/pkg/polyhedron"
	"go.uber.org/zap"
)

func main() {
	var (
		resolution = flag.Int("resolution", 3, "icosphere subdivision passes")
		samples    = flag.Int("samples", polyhedron.DefaultConeSamples, "cone base samples")
		solid      = flag.String("solid", "icosphere", "solid to build when no script is given: icosahedron, icosphere or cone")
		script     = flag.String("script", "", "scene script to evaluate instead of -solid")
		stlPath    = flag.String("stl", "", "write meshes as binary STL to this path")
		scale      = flag.Float64("radius", 1, "uniform scale applied when writing STL")
		jsonOut    = flag.Bool("json", false, "print the evaluated meshes as JSON")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "geodesic: %v\n", err)
		os.Exit(1)
	}

	err = run(log, options{
		script:     *script,
		solid:      *solid,
		resolution: *resolution,
		samples:    *samples,
		stlPath:    *stlPath,
		scale:      *scale,
		jsonOut:    *jsonOut,
	}, os.Stdout)
	if err != nil {
		log.Error("geodesic failed", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

type options struct {
	script     string
	solid      string
	resolution int
	samples    int
	stlPath    string
	scale      float64
	jsonOut    bool
}

// run builds the requested meshes and writes them out. Script errors are
// logged one by one and reported as a single error.
func run(log *zap.Logger, opts options, stdout io.Writer) error {
	source, err := scriptSource(opts.script, opts.solid, opts.resolution, opts.samples)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}

	app := NewApp(log)
	meshes, errs := app.Meshes(source)
	if len(errs) > 0 {
		for _, e := range errs {
			log.Error("script error", zap.Int("line", e.Line), zap.String("message", e.Message))
		}
		return fmt.Errorf("script rejected with %d errors", len(errs))
	}

	for _, m := range meshes {
		log.Info("built",
			zap.String("part", m.PartName),
			zap.Int("vertices", m.VertexCount()),
			zap.Int("triangles", m.TriangleCount()),
			zap.Int("edges", m.EdgeCount()),
		)
	}

	if opts.stlPath != "" {
		if err := writeSTL(opts.stlPath, meshes, opts.scale, log); err != nil {
			return fmt.Errorf("write stl: %w", err)
		}
	}

	if opts.jsonOut {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(meshData(meshes)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// scriptSource returns the script to evaluate: the contents of path if
// set, otherwise a one-line script declaring the requested solid.
func scriptSource(path, solid string, resolution, samples int) (string, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	switch solid {
	case "icosahedron":
		return `(icosahedron "icosahedron")`, nil
	case "icosphere":
		return fmt.Sprintf(`(icosphere "icosphere" :resolution %d)`, resolution), nil
	case "cone":
		return fmt.Sprintf(`(cone "cone" :samples %d)`, samples), nil
	default:
		return "", fmt.Errorf("unknown solid %q, expected icosahedron, icosphere or cone", solid)
	}
}

// stlName returns the output path for one of n meshes. A single mesh is
// written to path unchanged; several meshes get the part name appended.
func stlName(path, part string, n int) string {
	if n == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + part + ext
}

func writeSTL(path string, meshes []*kernel.Mesh, scale float64, log *zap.Logger) error {
	for _, m := range meshes {
		out := stlName(path, m.PartName, len(meshes))
		if err := sdfx.SaveSTL(out, m, scale); err != nil {
			return err
		}
		log.Info("wrote stl", zap.String("path", out), zap.String("part", m.PartName))
	}
	return nil
}
