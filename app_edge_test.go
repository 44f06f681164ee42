package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/chazu/geodesic/pkg/kernel/geodesic"
)

// ---------------------------------------------------------------------------
// Empty and comment-only scripts: 0 meshes, 0 errors, non-nil slices.
// ---------------------------------------------------------------------------

func TestE2EEmptySourceExtended(t *testing.T) {
	for _, source := range []string{"", "   \n\t  \n  ", ";; just a comment", "; one\n;; two\n"} {
		result := NewApp(nil).Evaluate(source)
		if len(result.Errors) != 0 {
			t.Errorf("%q: expected 0 errors, got %v", source, result.Errors)
		}
		if len(result.Meshes) != 0 {
			t.Errorf("%q: expected 0 meshes, got %d", source, len(result.Meshes))
		}
		// JSON should serialize as [] not null.
		if result.Meshes == nil || result.Errors == nil {
			t.Errorf("%q: Meshes and Errors should be non-nil empty slices", source)
		}
	}
}

// ---------------------------------------------------------------------------
// Syntax errors carry a message and, where zygomys reports it, a line.
// ---------------------------------------------------------------------------

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	result := NewApp(nil).Evaluate("(icosahedron \"a\")\n(icosphere \"b\" 2")
	if len(result.Errors) == 0 {
		t.Fatal("expected an error")
	}
	e := result.Errors[0]
	if e.Message == "" {
		t.Error("error message should not be empty")
	}
	if e.Line > 0 {
		t.Logf("extracted line info: line=%d, message=%q", e.Line, e.Message)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

// ---------------------------------------------------------------------------
// Invalid resolutions fail before any mesh is built.
// ---------------------------------------------------------------------------

func TestE2EInvalidResolution(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"negative", `(icosphere "a" -1)`},
		{"above default maximum", `(icosphere "a" :resolution 9)`},
		{"far above limit", `(icosphere "a" :resolution 40)`},
		{"fractional", `(icosphere "a" 2.5)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewApp(nil).Evaluate(tt.source)
			if len(result.Errors) == 0 {
				t.Fatal("expected an error")
			}
			if len(result.Meshes) != 0 {
				t.Errorf("expected 0 meshes, got %d", len(result.Meshes))
			}
		})
	}
}

func TestE2EMaxResolutionOption(t *testing.T) {
	app := NewApp(nil, geodesic.WithMaxResolution(1))

	result := app.Evaluate(`(icosphere "a" 2)`)
	if len(result.Errors) == 0 {
		t.Fatal("expected resolution 2 to be rejected with maximum 1")
	}
	if !strings.Contains(result.Errors[0].Message, "outside 0..1") {
		t.Errorf("error = %q, want range 0..1", result.Errors[0].Message)
	}

	result = app.Evaluate(`(icosphere "a" 1)`)
	if len(result.Errors) != 0 || len(result.Meshes) != 1 {
		t.Errorf("resolution 1 should build: %+v", result.Errors)
	}
}

func TestE2EDuplicateNames(t *testing.T) {
	result := NewApp(nil).Evaluate(`(icosahedron "a") (icosphere "a" 1)`)
	if len(result.Errors) == 0 {
		t.Fatal("expected duplicate name error")
	}
	if !strings.Contains(result.Errors[0].Message, "duplicate name") {
		t.Errorf("error = %q", result.Errors[0].Message)
	}
}

// ---------------------------------------------------------------------------
// Rapid evaluation: the engine recovers cleanly between states.
// ---------------------------------------------------------------------------

func TestE2ERapidEvaluationAlternating(t *testing.T) {
	// Sequential calls: zygomys has global state that is not safe for
	// concurrent sandbox creation.
	app := NewApp(nil)

	sources := []string{
		`(icosphere "ok" 1)`,
		`(icosphere "broken"`,
		``,
		`(icosphere "bad" -2)`,
		`(icosahedron "also-ok")`,
		`(+ 1 2)`,
		`;; just a comment`,
		`(undefined-func 1 2 3)`,
		`(icosphere "last" :resolution 2)`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, source, r)
				}
			}()
			app.Evaluate(source)
		}()
	}

	result := app.Evaluate(sources[len(sources)-1])
	if len(result.Errors) != 0 || len(result.Meshes) != 1 {
		t.Errorf("final evaluation should succeed, got errors %v", result.Errors)
	}
}

// ---------------------------------------------------------------------------
// Every resolution up to the default maximum yields the closed-form counts.
// ---------------------------------------------------------------------------

func TestE2EAllResolutions(t *testing.T) {
	if testing.Short() {
		t.Skip("builds up to resolution 6")
	}
	app := NewApp(nil)
	for r := 0; r <= 6; r++ {
		result := app.Evaluate(fmt.Sprintf(`(icosphere "s" %d)`, r))
		if len(result.Errors) > 0 {
			t.Fatalf("r=%d: %v", r, result.Errors)
		}
		pow := 1 << (2 * r)
		m := result.Meshes[0]
		if m.VertexCount != 10*pow+2 || len(m.Indices) != 60*pow {
			t.Errorf("r=%d: %d vertices / %d indices, want %d / %d", r, m.VertexCount, len(m.Indices), 10*pow+2, 60*pow)
		}
	}
}

func TestE2EColorPaletteWrapping(t *testing.T) {
	var b strings.Builder
	for i := 0; i < len(colorPalette)+2; i++ {
		fmt.Fprintf(&b, "(icosahedron \"p%d\")\n", i)
	}

	result := NewApp(nil).Evaluate(b.String())
	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if len(result.Meshes) != len(colorPalette)+2 {
		t.Fatalf("expected %d meshes, got %d", len(colorPalette)+2, len(result.Meshes))
	}
	last := result.Meshes[len(colorPalette)]
	if last.Color != colorPalette[0] {
		t.Errorf("palette should wrap: got %q, want %q", last.Color, colorPalette[0])
	}
}
