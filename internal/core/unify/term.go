// Package unify implements the datashape unification engine: term
// relabeling, decomposition of shape equations into dimension/ellipsis/dtype
// sub-equations, the two-phase equality-then-coercion solver, the occurs
// check, and substitution.
//
// Terms are value-like and immutable once constructed; the package never
// mutates a Term in place.
package unify

import "fmt"

// Kind identifies which of the seven term variants a Term holds.
type Kind int8

const (
	// KindDimInt is a concrete non-negative dimension extent.
	KindDimInt Kind = iota
	// KindDimVar is a dimension-valued type variable.
	KindDimVar
	// KindDType is a concrete scalar element type.
	KindDType
	// KindDTypeVar is an element-type variable.
	KindDTypeVar
	// KindEllipsis is a variadic placeholder for zero or more dimensions.
	KindEllipsis
	// KindShape is an ordered sequence of dimension terms followed by
	// exactly one element-type term.
	KindShape
	// KindCoerce wraps any other term, marking it coercible. Legal only on
	// the RHS of a top-level equation.
	KindCoerce
)

func (k Kind) String() string {
	switch k {
	case KindDimInt:
		return "DimInt"
	case KindDimVar:
		return "DimVar"
	case KindDType:
		return "DType"
	case KindDTypeVar:
		return "DTypeVar"
	case KindEllipsis:
		return "Ellipsis"
	case KindShape:
		return "Shape"
	case KindCoerce:
		return "Coerce"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// Term is the single representation for every node in a datashape: a
// dimension, an element type, an ellipsis, a whole shape, or a coercion
// marker around any of those. Exactly which fields are meaningful is
// determined by Kind; callers should switch on Kind rather than inspect
// fields directly.
type Term struct {
	Kind Kind

	// KindDimInt
	Int int64

	// KindDimVar, KindDTypeVar, KindEllipsis (named)
	Name string

	// KindDType
	DType string

	// KindEllipsis: true if Name == "" at construction time, i.e. the
	// ellipsis had no bound name and should receive a fresh one during
	// relabeling.
	Anonymous bool

	// KindShape
	Dims []Term
	Elt  *Term

	// KindCoerce
	Inner *Term
}

// DimInt constructs a concrete dimension extent. n must be non-negative.
func DimInt(n int64) Term {
	if n < 0 {
		panic(fmt.Sprintf("unify: negative dimension extent %d", n))
	}
	return Term{Kind: KindDimInt, Int: n}
}

// DimVar constructs a dimension-valued type variable.
func DimVar(name string) Term {
	if name == "" {
		panic("unify: DimVar requires a non-empty name")
	}
	return Term{Kind: KindDimVar, Name: name}
}

// DType constructs a concrete scalar element type, identified by tag (e.g.
// "int32", "float64"). The tag is only meaningful with respect to a
// [dtype.Lattice]; the term itself does not validate it.
func DType(tag string) Term {
	if tag == "" {
		panic("unify: DType requires a non-empty tag")
	}
	return Term{Kind: KindDType, DType: tag}
}

// DTypeVar constructs an element-type variable.
func DTypeVar(name string) Term {
	if name == "" {
		panic("unify: DTypeVar requires a non-empty name")
	}
	return Term{Kind: KindDTypeVar, Name: name}
}

// Ellipsis constructs a named variadic dimension placeholder.
func Ellipsis(name string) Term {
	if name == "" {
		panic("unify: Ellipsis requires a non-empty name; use AnonEllipsis for an anonymous one")
	}
	return Term{Kind: KindEllipsis, Name: name}
}

// AnonEllipsis constructs an anonymous variadic dimension placeholder. It is
// given a fresh name during relabeling.
func AnonEllipsis() Term {
	return Term{Kind: KindEllipsis, Anonymous: true}
}

// Shape constructs a datashape from an ordered sequence of dimension terms
// and exactly one element-type term. It panics if elt is not a DType,
// DTypeVar, or Coerce term, or if more than one dimension term is an
// ellipsis (looking through one [Coerce] wrapper). It does not check where
// Coerce markers appear; [NewEquation] rejects them on an LHS.
func Shape(dims []Term, elt Term) Term {
	if elt.Kind != KindDType && elt.Kind != KindDTypeVar && elt.Kind != KindCoerce {
		panic(fmt.Sprintf("unify: Shape element term must be a dtype, dtype variable, or coercion thereof, got %v", elt.Kind))
	}
	n := 0
	for _, d := range dims {
		if d.Kind == KindEllipsis || (d.Kind == KindCoerce && d.Inner != nil && d.Inner.Kind == KindEllipsis) {
			n++
		}
	}
	if n > 1 {
		panic("unify: Shape may contain at most one ellipsis")
	}
	cp := make([]Term, len(dims))
	copy(cp, dims)
	e := elt
	return Term{Kind: KindShape, Dims: cp, Elt: &e}
}

// Coerce wraps t in a coercion marker, meaning "the corresponding LHS term
// may be broadcast or cast to match this RHS term". It is only legal inside
// the RHS of an [Equation]; [NewEquation] rejects it on the LHS.
func Coerce(t Term) Term {
	cp := t
	return Term{Kind: KindCoerce, Inner: &cp}
}

// isEllipsis reports whether t is an ellipsis, looking through a single
// Coerce wrapper.
func isEllipsis(t Term) bool {
	return stripCoerce(t).Kind == KindEllipsis
}

// stripCoerce returns the term inside zero or one Coerce wrappers.
func stripCoerce(t Term) Term {
	if t.Kind == KindCoerce {
		return *t.Inner
	}
	return t
}

func coercible(t Term) (inner Term, ok bool) {
	if t.Kind == KindCoerce {
		return *t.Inner, true
	}
	return t, false
}

// ellipsisIndex reports whether dims contains an ellipsis (looking through
// one Coerce wrapper), and the index of the first one if so.
func ellipsisIndex(dims []Term) (idx int, found bool) {
	for i, d := range dims {
		if isEllipsis(d) {
			return i, true
		}
	}
	return -1, false
}

// Equal reports whether two terms are structurally identical, without
// consulting any lattice or solution. The solver does not call it; it is
// exported for callers and tests.
func Equal(a, b Term) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindDimInt:
		return a.Int == b.Int
	case KindDimVar, KindDTypeVar:
		return a.Name == b.Name
	case KindDType:
		return a.DType == b.DType
	case KindEllipsis:
		return a.Name == b.Name && a.Anonymous == b.Anonymous
	case KindShape:
		if len(a.Dims) != len(b.Dims) {
			return false
		}
		for i := range a.Dims {
			if !Equal(a.Dims[i], b.Dims[i]) {
				return false
			}
		}
		return Equal(*a.Elt, *b.Elt)
	case KindCoerce:
		return Equal(*a.Inner, *b.Inner)
	default:
		return false
	}
}

// varName returns the variable name of a DimVar, DTypeVar, or Ellipsis term,
// and ok=false for anything else.
func varName(t Term) (name string, ok bool) {
	switch t.Kind {
	case KindDimVar, KindDTypeVar, KindEllipsis:
		return t.Name, true
	default:
		return "", false
	}
}
