// Package dtype implements the element-type lattice the coercion solver
// consults when deciding whether an LHS scalar type may be cast to an RHS
// scalar type (spec.md §6, "Element-type lattice").
//
// A Lattice is a directed acyclic "castable-to" relation over a fixed set of
// tags. The default lattice embeds the usual numeric promotions; callers may
// load a richer one from YAML via [Load], but [Load] rejects a cyclic
// relation.
package dtype

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Lattice is a directed acyclic "castable-to" relation over scalar dtype
// tags.
type Lattice struct {
	// edges[from] is the set of tags from can be cast to directly. CastableTo
	// takes the transitive closure.
	edges map[string]map[string]bool
	tags  map[string]bool
}

// NewLattice constructs an empty lattice with the given tags registered (but
// no edges). Use [Lattice.AddEdge] to add castable-to relations.
func NewLattice(tags ...string) *Lattice {
	l := &Lattice{
		edges: make(map[string]map[string]bool),
		tags:  make(map[string]bool, len(tags)),
	}
	for _, t := range tags {
		l.tags[t] = true
		l.edges[t] = make(map[string]bool)
	}
	return l
}

// HasTag reports whether tag is a known scalar dtype in this lattice.
func (l *Lattice) HasTag(tag string) bool {
	return l.tags[tag]
}

// Tags returns the set of known scalar dtype tags, suitable for a parser
// frontend deciding whether an element-type spelling is concrete or a
// variable.
func (l *Lattice) Tags() map[string]bool {
	out := make(map[string]bool, len(l.tags))
	for t := range l.tags {
		out[t] = true
	}
	return out
}

// AddEdge records that from may be cast directly to to. Both tags are
// registered if not already present.
func (l *Lattice) AddEdge(from, to string) {
	for _, t := range []string{from, to} {
		if !l.tags[t] {
			l.tags[t] = true
			l.edges[t] = make(map[string]bool)
		}
	}
	l.edges[from][to] = true
}

// CastableTo reports whether from can be cast to to, directly or
// transitively. Every tag is castable to itself.
func (l *Lattice) CastableTo(from, to string) bool {
	if from == to {
		return true
	}
	seen := map[string]bool{from: true}
	var visit func(string) bool
	visit = func(cur string) bool {
		for next := range l.edges[cur] {
			if next == to {
				return true
			}
			if !seen[next] {
				seen[next] = true
				if visit(next) {
					return true
				}
			}
		}
		return false
	}
	return visit(from)
}

// acyclic reports whether the lattice's edge relation has no cycles.
func (l *Lattice) acyclic() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(l.tags))
	var visit func(string) bool
	visit = func(n string) bool {
		color[n] = gray
		for next := range l.edges[n] {
			switch color[next] {
			case gray:
				return false
			case white:
				if !visit(next) {
					return false
				}
			}
		}
		color[n] = black
		return true
	}
	for n := range l.tags {
		if color[n] == white {
			if !visit(n) {
				return false
			}
		}
	}
	return true
}

// DefaultLattice returns the built-in numeric promotion lattice: integer
// widths promote to wider integers and to floats of sufficient precision;
// float widths promote to wider floats.
func DefaultLattice() *Lattice {
	l := NewLattice(
		"int8", "int16", "int32", "int64",
		"uint8", "uint16", "uint32", "uint64",
		"float32", "float64",
		"bool", "string",
	)
	ints := []string{"int8", "int16", "int32", "int64"}
	for i := 0; i+1 < len(ints); i++ {
		l.AddEdge(ints[i], ints[i+1])
	}
	uints := []string{"uint8", "uint16", "uint32", "uint64"}
	for i := 0; i+1 < len(uints); i++ {
		l.AddEdge(uints[i], uints[i+1])
	}
	for i, u := range uints {
		if i+1 < len(ints) {
			l.AddEdge(u, ints[i+1])
		}
	}
	l.AddEdge("float32", "float64")
	l.AddEdge("int8", "float32")
	l.AddEdge("int16", "float32")
	l.AddEdge("int32", "float32")
	l.AddEdge("int32", "float64")
	l.AddEdge("uint8", "float32")
	l.AddEdge("uint16", "float32")
	l.AddEdge("uint32", "float32")
	l.AddEdge("uint32", "float64")
	return l
}

// config is the on-disk YAML shape accepted by [Load]:
//
//	tags: [int32, float32, float64]
//	edges:
//	  - {from: int32, to: float64}
//	  - {from: float32, to: float64}
type config struct {
	Tags  []string `yaml:"tags"`
	Edges []struct {
		From string `yaml:"from"`
		To   string `yaml:"to"`
	} `yaml:"edges"`
}

// Load parses a YAML lattice configuration. It returns an error if the
// resulting castable-to relation is cyclic, per spec.md §6 ("users may
// supply a richer [lattice] but not a cyclic one").
func Load(data []byte) (*Lattice, error) {
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("dtype: parsing lattice config: %w", err)
	}
	l := NewLattice(cfg.Tags...)
	for _, e := range cfg.Edges {
		l.AddEdge(e.From, e.To)
	}
	if !l.acyclic() {
		return nil, fmt.Errorf("dtype: lattice configuration is cyclic")
	}
	return l, nil
}
