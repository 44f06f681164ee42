package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chazu/geodesic/pkg/scene"
)

func TestEvaluateSourcesWithoutSolids(t *testing.T) {
	sources := map[string]string{
		"empty":        "",
		"whitespace":   "   \n\t  \n  ",
		"comment":      ";; nothing to build",
		"arithmetic":   "(+ 1 2)",
		"definitions":  "(def a 10)\n(def b (* a 2))\n(+ a b)",
		"kebab define": "(def max-res 3)\nmax-res",
	}
	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			sc, evalErrs, err := NewEngine().Evaluate(source)
			if err != nil {
				t.Fatalf("fatal error: %v", err)
			}
			if len(evalErrs) > 0 {
				t.Fatalf("eval errors: %v", evalErrs)
			}
			if sc == nil || sc.Len() != 0 {
				t.Fatalf("want an empty scene, got %+v", sc)
			}
		})
	}
}

func TestEvaluateReportsScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unclosed list", `(icosphere "a" 2`},
		{"unclosed on second line", "(icosahedron \"a\")\n(icosphere \"b\""},
		{"undefined symbol", `(icosphere "a" :resolution undefined-level)`},
		{"undefined function", `(dodecahedron "a")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("want a non-fatal eval error, got fatal: %v", err)
			}
			if sc != nil {
				t.Errorf("want nil scene, got %d solids", sc.Len())
			}
			if len(evalErrs) == 0 || evalErrs[0].Message == "" {
				t.Fatalf("want a populated eval error, got %v", evalErrs)
			}
			if evalErrs[0].Line > 0 {
				t.Logf("line %d: %s", evalErrs[0].Line, evalErrs[0].Message)
			}
		})
	}
}

func TestEvaluateSurfacesEveryValidationError(t *testing.T) {
	source := `
(icosphere "a" 12)
(icosphere "a" 1)
(cone "spike" :samples 2)
`
	sc, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if sc != nil {
		t.Fatal("want nil scene for an invalid script")
	}
	want := []string{`solid "a": duplicate name`, `solid "a": resolution 12 outside 0..8`, `solid "spike": samples 2`}
	if len(evalErrs) != len(want) {
		t.Fatalf("got %d errors %v, want %d", len(evalErrs), evalErrs, len(want))
	}
	for i, w := range want {
		if !strings.Contains(evalErrs[i].Message, w) {
			t.Errorf("error %d = %q, want it to contain %q", i, evalErrs[i].Message, w)
		}
		if evalErrs[i].Line != 0 {
			t.Errorf("validation error %d carries line %d; scene errors have no line", i, evalErrs[i].Line)
		}
	}
}

func TestEvaluateStampsGeneration(t *testing.T) {
	eng := NewEngine()
	var last uint64
	for i, source := range []string{`(icosahedron "a")`, ``, `(icosphere "b" 1)`} {
		sc, _, err := eng.Evaluate(source)
		if err != nil {
			t.Fatalf("evaluation %d: %v", i, err)
		}
		if sc.Version <= last {
			t.Errorf("evaluation %d: version %d not after %d", i, sc.Version, last)
		}
		last = sc.Version
	}

	// A failed evaluation still consumes a generation.
	if _, evalErrs, _ := eng.Evaluate(`(icosphere "x" -1)`); len(evalErrs) == 0 {
		t.Fatal("want a validation error")
	}
	sc, _, err := eng.Evaluate(`(icosahedron "a")`)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Version != last+2 {
		t.Errorf("version = %d, want %d", sc.Version, last+2)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	source := `(icosphere "globe" :resolution 3) (cone "spike" :samples 6) (icosahedron "d20")`
	eng := NewEngine()
	first, _, err := eng.Evaluate(source)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, _, err := eng.Evaluate(source)
		if err != nil {
			t.Fatal(err)
		}
		for j, s := range again.Solids {
			if *s != *first.Solids[j] {
				t.Errorf("run %d solid %d = %+v, want %+v", i, j, *s, *first.Solids[j])
			}
		}
	}
}

func TestAwaitTimesOut(t *testing.T) {
	eng := NewEngine()
	eng.Timeout = 20 * time.Millisecond
	gen := eng.nextGeneration()

	start := time.Now()
	_, _, err := eng.await(make(chan outcome), gen)
	if err == nil || !strings.Contains(err.Error(), "timed out after 20ms") {
		t.Fatalf("err = %v, want a 20ms timeout", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("await took %s with a 20ms timeout", elapsed)
	}
}

func TestAwaitZeroTimeoutUsesDefault(t *testing.T) {
	eng := &Engine{}
	gen := eng.nextGeneration()
	done := make(chan outcome, 1)
	done <- outcome{scene: scene.New()}

	sc, _, err := eng.await(done, gen)
	if err != nil || sc == nil {
		t.Errorf("await() = %v, %v; want the delivered scene", sc, err)
	}
}

func TestAwaitDiscardsSupersededResult(t *testing.T) {
	eng := NewEngine()
	stale := eng.nextGeneration()
	eng.nextGeneration()

	done := make(chan outcome, 1)
	done <- outcome{scene: scene.New()}

	sc, _, err := eng.await(done, stale)
	if sc != nil || err == nil || !strings.Contains(err.Error(), "superseded") {
		t.Errorf("await() = %v, %v; want nil scene and a superseded error", sc, err)
	}
}

func TestAwaitPassesFatalErrorThrough(t *testing.T) {
	eng := NewEngine()
	gen := eng.nextGeneration()
	boom := errors.New("panic during evaluation: boom")
	done := make(chan outcome, 1)
	done <- outcome{err: boom}

	if _, _, err := eng.await(done, gen); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestEvalErrorString(t *testing.T) {
	if got := (EvalError{Line: 5, Message: "unexpected token"}).Error(); got != "line 5: unexpected token" {
		t.Errorf("Error() = %q", got)
	}
	if got := (EvalError{Message: `solid "a": duplicate name`}).Error(); got != `solid "a": duplicate name` {
		t.Errorf("Error() without line = %q", got)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"error on line", "Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"lowercase", "error on line 12: missing paren", 12, "missing paren"},
		{"short form", "line 3: bad keyword", 3, "bad keyword"},
		{"no line", "  icosphere: resolution: expected integer, got 1.5 ", 0, "icosphere: resolution: expected integer, got 1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errors.New(tt.msg))
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}
			if errs[0].Line != tt.wantLine || errs[0].Message != tt.wantMsg {
				t.Errorf("got line %d %q, want line %d %q", errs[0].Line, errs[0].Message, tt.wantLine, tt.wantMsg)
			}
		})
	}
}
