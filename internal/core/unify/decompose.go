package unify

import (
	"fmt"

	"dshape.dev/go/dshape/token"
)

// subKind discriminates the two shapes a decomposed sub-equation can take:
// an ordinary term pair, or an ellipsis-binding pairing an ellipsis
// variable against the dimension sequence it stands for.
type subKind int8

const (
	subTermPair subKind = iota
	subEllipsisBinding
)

// subEquation is one of the simpler equations the decomposer splits a shape
// equation into (spec §4.2). Coercible records whether the originating RHS
// term carried a Coerce marker, which the decomposer strips into this
// out-of-band flag.
type subEquation struct {
	Kind subKind

	// valid when Kind == subTermPair
	LHS, RHS Term

	// valid when Kind == subEllipsisBinding
	EllipsisVar string
	EllipsisSeq []Term

	Coercible bool
	Pos       token.Pos
}

func termPairEq(lhs, rhs Term, coercible bool, pos token.Pos) subEquation {
	return subEquation{Kind: subTermPair, LHS: lhs, RHS: rhs, Coercible: coercible, Pos: pos}
}

// Decompose splits a single equation into its element-type equation and its
// ellipsis/dimension equations (spec §4.2). idx is the equation's position
// in the original list, used only for diagnostics.
func Decompose(eq Equation, idx int) ([]subEquation, error) {
	pos := token.New(idx, "")
	if eq.LHS.Kind != KindShape || eq.RHS.Kind != KindShape {
		// Not a full datashape pair (e.g. a bare dtype-only equation): treat
		// the pair itself as one atomic sub-equation.
		inner, coercible := coercible(eq.RHS)
		return []subEquation{termPairEq(eq.LHS, inner, coercible, pos)}, nil
	}
	return decomposeShapes(eq.LHS, eq.RHS, pos)
}

func decomposeShapes(lhs, rhs Term, pos token.Pos) ([]subEquation, error) {
	var out []subEquation

	// 1. Element-type equation.
	eltInner, eltCoercible := coercible(*rhs.Elt)
	out = append(out, termPairEq(*lhs.Elt, eltInner, eltCoercible, pos.WithPath("elt")))

	// 2. Ellipsis + dimension equations.
	Ldims, Rdims := lhs.Dims, rhs.Dims
	k, hasEllipsis := ellipsisIndex(Rdims)

	if !hasEllipsis {
		if len(Ldims) != len(Rdims) {
			return nil, newError(ArityMismatch, pos, lhs, rhs,
				"fixed-arity shapes have %d and %d dimensions", len(Ldims), len(Rdims))
		}
		for i := range Rdims {
			inner, c := coercible(Rdims[i])
			out = append(out, termPairEq(Ldims[i], inner, c, pos.WithPath(fmt.Sprintf("dims[%d]", i))))
		}
		return out, nil
	}

	prefix := Rdims[:k]
	suffix := Rdims[k+1:]
	s := len(suffix)
	if len(Ldims) < k+s {
		return nil, newError(ArityMismatch, pos, lhs, rhs,
			"left-hand side has %d dimensions, too few to match the %d fixed positions around the ellipsis", len(Ldims), k+s)
	}
	for i := range prefix {
		inner, c := coercible(prefix[i])
		out = append(out, termPairEq(Ldims[i], inner, c, pos.WithPath(fmt.Sprintf("dims[%d]", i))))
	}
	for i := range suffix {
		inner, c := coercible(suffix[i])
		out = append(out, termPairEq(Ldims[len(Ldims)-s+i], inner, c, pos.WithPath(fmt.Sprintf("dims[%d]", len(Ldims)-s+i))))
	}

	middle := append([]Term{}, Ldims[k:len(Ldims)-s]...)
	ellTerm, ellCoercible := coercible(Rdims[k])
	if ellTerm.Kind != KindEllipsis {
		return nil, newError(MalformedEquation, pos, lhs, rhs, "expected an ellipsis at the recognised position")
	}
	out = append(out, subEquation{
		Kind:        subEllipsisBinding,
		EllipsisVar: ellTerm.Name,
		EllipsisSeq: middle,
		Coercible:   ellCoercible,
		Pos:         pos.WithPath("ellipsis"),
	})

	return out, nil
}
