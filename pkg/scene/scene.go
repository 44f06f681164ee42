package scene

import "fmt"

// Kind enumerates the solids a scene can request.
type Kind int

const (
	KindIcosahedron Kind = iota // regular icosahedron
	KindIcosphere               // subdivided icosahedron
	KindCone                    // closed cone on the XY plane
)

func (k Kind) String() string {
	switch k {
	case KindIcosahedron:
		return "icosahedron"
	case KindIcosphere:
		return "icosphere"
	case KindCone:
		return "cone"
	default:
		return "unknown"
	}
}

// Solid is a single mesh request.
type Solid struct {
	Name       string `json:"name"`
	Kind       Kind   `json:"kind"`
	Resolution int    `json:"resolution,omitempty"` // icosphere only

	// Cone only.
	Height  float64 `json:"height,omitempty"`
	Radius  float64 `json:"radius,omitempty"`
	Samples int     `json:"samples,omitempty"`
}

// Scene is the ordered set of solids declared by a script.
type Scene struct {
	Solids    []*Solid       `json:"solids"`
	NameIndex map[string]int `json:"name_index"`
	Version   uint64         `json:"version"`
}

// New creates an empty Scene.
func New() *Scene {
	return &Scene{
		NameIndex: make(map[string]int),
	}
}

// Add appends a solid. It does not check for duplicates; Validate does.
func (s *Scene) Add(solid *Solid) {
	s.Solids = append(s.Solids, solid)
	if solid.Name != "" {
		if _, ok := s.NameIndex[solid.Name]; !ok {
			s.NameIndex[solid.Name] = len(s.Solids) - 1
		}
	}
}

// Lookup returns the first solid with the given name, or nil.
func (s *Scene) Lookup(name string) *Solid {
	i, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Solids[i]
}

// MustLookup returns the solid with the given name, or panics.
func (s *Scene) MustLookup(name string) *Solid {
	solid := s.Lookup(name)
	if solid == nil {
		panic(fmt.Sprintf("scene: no solid named %q", name))
	}
	return solid
}

// Len returns the number of solids.
func (s *Scene) Len() int {
	return len(s.Solids)
}
