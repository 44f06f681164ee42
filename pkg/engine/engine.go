// Package engine provides the Lisp evaluation engine for geodesic scene
// scripts. It wraps zygomys in a sandboxed environment and produces a
// scene.Scene from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/geodesic/pkg/icosphere"
	"github.com/chazu/geodesic/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code, or an invalid scene.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// Engine wraps the zygomys interpreter for scene evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	// MaxResolution bounds the icosphere resolution a script may request.
	MaxResolution int

	// Timeout bounds a single evaluation. The script goroutine cannot be
	// interrupted; when it overruns, its result is dropped.
	Timeout time.Duration
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{
		MaxResolution: icosphere.DefaultMaxResolution,
		Timeout:       EvalTimeout,
	}
}

// outcome carries an evaluation result from the script goroutine.
type outcome struct {
	scene  *scene.Scene
	errors []EvalError
	err    error
}

// Evaluate takes Lisp source code and produces a new Scene stamped with
// this call's generation as its Version.
//
// Return semantics:
//   - On success: returns scene + nil errors + nil error
//   - On parse/eval/validation failure: returns nil scene + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*scene.Scene, []EvalError, error) {
	gen := e.nextGeneration()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		s, evalErrs, err := e.evaluate(source)
		if s != nil {
			s.Version = gen
		}
		done <- outcome{scene: s, errors: evalErrs, err: err}
	}()

	return e.await(done, gen)
}

func (e *Engine) nextGeneration() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

func (e *Engine) currentGeneration() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// await returns the outcome of evaluation gen, unless e.Timeout passes
// first or a newer evaluation started in the meantime.
func (e *Engine) await(done <-chan outcome, gen uint64) (*scene.Scene, []EvalError, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = EvalTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if current := e.currentGeneration(); gen != current {
			return nil, nil, fmt.Errorf("evaluation %d superseded by %d", gen, current)
		}
		return res.scene, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*scene.Scene, []EvalError, error) {
	// Empty source is a valid program that produces an empty scene.
	if strings.TrimSpace(source) == "" {
		return scene.New(), nil, nil
	}

	s := scene.New()

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, s)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	if verrs := scene.Validate(s, e.MaxResolution); len(verrs) > 0 {
		evalErrs := make([]EvalError, 0, len(verrs))
		for _, ve := range verrs {
			evalErrs = append(evalErrs, EvalError{Message: ve.Error()})
		}
		return nil, evalErrs, nil
	}

	return s, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values,
// extracting the line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
