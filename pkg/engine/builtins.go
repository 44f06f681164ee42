package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/chazu/geodesic/pkg/polyhedron"
	"github.com/chazu/geodesic/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene script source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: max-resolution -> max_resolution
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpSolid wraps a declared scene.Solid so builtins can return it.
type sexpSolid struct {
	solid *scene.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	switch s.solid.Kind {
	case scene.KindIcosphere:
		return fmt.Sprintf("(icosphere %q :resolution %d)", s.solid.Name, s.solid.Resolution)
	case scene.KindCone:
		return fmt.Sprintf("(cone %q :height %g :radius %g :samples %d)",
			s.solid.Name, s.solid.Height, s.solid.Radius, s.solid.Samples)
	}
	return fmt.Sprintf("(%s %q)", s.solid.Kind, s.solid.Name)
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// rejectUnknown returns an error naming the first keyword (in sorted order)
// that is not in allowed.
func (a kwArgs) rejectUnknown(allowed ...string) error {
	var unknown []string
	for k := range a.kw {
		known := false
		for _, name := range allowed {
			if k == name {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown keyword :%s", unknown[0])
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer from a Sexp. Floats are accepted only when
// they hold a whole number.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %g", f)
	}
	return int(f), nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene builtins into a zygomys environment.
// The builtins append to the provided Scene during evaluation. Range checks
// are left to scene.Validate so every problem is reported at once.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene) {

	// -----------------------------------------------------------------------
	// (icosahedron "name")
	// -----------------------------------------------------------------------
	env.AddFunction("icosahedron", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("icosahedron requires exactly one name argument, got %d", len(pa.positional))
		}
		if err := pa.rejectUnknown(); err != nil {
			return zygo.SexpNull, fmt.Errorf("icosahedron: %w", err)
		}

		solidName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("icosahedron: name: %w", err)
		}

		solid := &scene.Solid{Name: solidName, Kind: scene.KindIcosahedron}
		s.Add(solid)
		return &sexpSolid{solid: solid}, nil
	})

	// -----------------------------------------------------------------------
	// (icosphere "name" :resolution 3)
	// (icosphere "name" 3)
	// -----------------------------------------------------------------------
	env.AddFunction("icosphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 || len(pa.positional) > 2 {
			return zygo.SexpNull, fmt.Errorf("icosphere requires a name and an optional resolution, got %d arguments", len(pa.positional))
		}

		solidName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("icosphere: name: %w", err)
		}

		solid := &scene.Solid{Name: solidName, Kind: scene.KindIcosphere}

		if err := pa.rejectUnknown("resolution"); err != nil {
			return zygo.SexpNull, fmt.Errorf("icosphere: %w", err)
		}
		res, hasKW := pa.kw["resolution"]
		if len(pa.positional) == 2 {
			if hasKW {
				return zygo.SexpNull, fmt.Errorf("icosphere: resolution given both positionally and as :resolution")
			}
			res, hasKW = pa.positional[1], true
		}
		if hasKW {
			r, err := toInt(res)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("icosphere: resolution: %w", err)
			}
			solid.Resolution = r
		}

		s.Add(solid)
		return &sexpSolid{solid: solid}, nil
	})

	// -----------------------------------------------------------------------
	// (cone "name" :height 1 :radius 0.5 :samples 32)
	// -----------------------------------------------------------------------
	env.AddFunction("cone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("cone requires exactly one name argument, got %d", len(pa.positional))
		}
		if err := pa.rejectUnknown("height", "radius", "samples"); err != nil {
			return zygo.SexpNull, fmt.Errorf("cone: %w", err)
		}

		solidName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cone: name: %w", err)
		}

		solid := &scene.Solid{
			Name:    solidName,
			Kind:    scene.KindCone,
			Height:  polyhedron.DefaultConeHeight,
			Radius:  polyhedron.DefaultConeRadius,
			Samples: polyhedron.DefaultConeSamples,
		}
		if v, ok := pa.kw["height"]; ok {
			if solid.Height, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("cone: height: %w", err)
			}
		}
		if v, ok := pa.kw["radius"]; ok {
			if solid.Radius, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("cone: radius: %w", err)
			}
		}
		if v, ok := pa.kw["samples"]; ok {
			if solid.Samples, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("cone: samples: %w", err)
			}
		}

		s.Add(solid)
		return &sexpSolid{solid: solid}, nil
	})

	// -----------------------------------------------------------------------
	// (solids) -> number of solids declared so far
	// -----------------------------------------------------------------------
	env.AddFunction("solids", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("solids takes no arguments")
		}
		return &zygo.SexpInt{Val: int64(s.Len())}, nil
	})
}
