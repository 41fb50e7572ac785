package unify

import (
	"fmt"

	"github.com/mpvl/unique"
)

// varKeys adapts a []varKey to unique.Interface so the RHS variable set can
// be sorted and deduplicated in one pass instead of sorting and then
// compacting separately.
type varKeys []varKey

func (s varKeys) Len() int { return len(s) }
func (s varKeys) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s varKeys) Less(i, j int) bool {
	if s[i].kind != s[j].kind {
		return s[i].kind < s[j].kind
	}
	return s[i].name < s[j].name
}

// Truncate drops the last n elements, satisfying unique.Interface.
func (s *varKeys) Truncate(n int) { *s = (*s)[:len(*s)-n] }

// varKey identifies a variable by kind and source name: dimension, dtype,
// and ellipsis variables live in separate namespaces, so "a" as a DimVar and
// "a" as a DTypeVar never collide.
type varKey struct {
	kind Kind
	name string
}

// relabeler performs the scoping described in spec §4.1: RHS variable
// identity is global across the whole equation list; LHS variable identity
// is local to a single equation.
type relabeler struct {
	rhsNames map[varKey]string
	counter  int
}

// Relabel α-renames every type variable in eqs to a globally unique fresh
// name, honoring two scoping rules: every distinct variable appearing on any
// RHS gets one fresh name, reused wherever it appears on any RHS; each LHS is
// renamed independently of every other LHS. Anonymous ellipses are assigned
// fresh ellipsis-variable names at this stage: each occurrence gets its own
// fresh name, since an anonymous ellipsis has no name by which another term
// could refer to it.
//
// The returned rhsOriginal maps each fresh RHS variable name back to the
// name the caller originally wrote. Only RHS names are invertible this way:
// LHS identity is per-equation, so a caller cannot meaningfully ask for "the"
// original spelling of an LHS variable across the whole list.
func Relabel(eqs []Equation) (out []Equation, rhsOriginal map[string]string, err error) {
	r := &relabeler{rhsNames: make(map[varKey]string)}
	rhsOriginal = make(map[string]string)

	// RHS scope is collected first, across the whole list, and assigned
	// fresh names in a deterministic (sorted) order so that Relabel is
	// reproducible regardless of map iteration order.
	var keys varKeys
	for _, eq := range eqs {
		collectVars(eq.RHS, (*[]varKey)(&keys))
	}
	unique.Sort(&keys)
	for _, k := range keys {
		name := r.fresh(k.kind)
		r.rhsNames[k] = name
		rhsOriginal[name] = k.name
	}

	out = make([]Equation, len(eqs))
	for i, eq := range eqs {
		lhsNames := make(map[varKey]string)
		lhs := r.relabelTerm(eq.LHS, lhsNames, true)
		rhs := r.relabelTerm(eq.RHS, nil, false)
		out[i] = Equation{LHS: lhs, RHS: rhs, pos: eq.pos}
	}
	return out, rhsOriginal, nil
}

func (r *relabeler) fresh(kind Kind) string {
	r.counter++
	switch kind {
	case KindDimVar:
		return fmt.Sprintf("d%d", r.counter)
	case KindDTypeVar:
		return fmt.Sprintf("t%d", r.counter)
	case KindEllipsis:
		return fmt.Sprintf("e%d", r.counter)
	default:
		return fmt.Sprintf("v%d", r.counter)
	}
}

func collectVars(t Term, keys *[]varKey) {
	switch t.Kind {
	case KindDimVar, KindDTypeVar:
		*keys = append(*keys, varKey{t.Kind, t.Name})
	case KindEllipsis:
		if !t.Anonymous {
			*keys = append(*keys, varKey{t.Kind, t.Name})
		}
	case KindShape:
		for _, d := range t.Dims {
			collectVars(d, keys)
		}
		collectVars(*t.Elt, keys)
	case KindCoerce:
		collectVars(*t.Inner, keys)
	}
}

// relabelTerm renames every variable in t. When isLHS is true, local is a
// per-equation map that accumulates fresh names for this LHS as it is built.
// When isLHS is false, r.rhsNames (already fully populated) is used instead.
func (r *relabeler) relabelTerm(t Term, local map[varKey]string, isLHS bool) Term {
	switch t.Kind {
	case KindDimInt, KindDType:
		return t

	case KindDimVar, KindDTypeVar:
		k := varKey{t.Kind, t.Name}
		name := r.nameFor(k, local, isLHS)
		out := t
		out.Name = name
		return out

	case KindEllipsis:
		if t.Anonymous {
			out := t
			out.Name = r.fresh(KindEllipsis)
			out.Anonymous = false
			return out
		}
		k := varKey{t.Kind, t.Name}
		name := r.nameFor(k, local, isLHS)
		out := t
		out.Name = name
		return out

	case KindShape:
		dims := make([]Term, len(t.Dims))
		for i, d := range t.Dims {
			dims[i] = r.relabelTerm(d, local, isLHS)
		}
		elt := r.relabelTerm(*t.Elt, local, isLHS)
		return Term{Kind: KindShape, Dims: dims, Elt: &elt}

	case KindCoerce:
		inner := r.relabelTerm(*t.Inner, local, isLHS)
		return Term{Kind: KindCoerce, Inner: &inner}

	default:
		return t
	}
}

func (r *relabeler) nameFor(k varKey, local map[varKey]string, isLHS bool) string {
	if !isLHS {
		// collectVars already walked every RHS before any relabelTerm call,
		// so k is always present here.
		return r.rhsNames[k]
	}
	if name, ok := local[k]; ok {
		return name
	}
	name := r.fresh(k.kind)
	local[k] = name
	return name
}
