package unify

import (
	"dshape.dev/go/dshape/token"
)

// solveEquality runs classical Robinson-style unification with an occurs
// check over the non-coercible sub-equations (spec §4.3). It returns the
// equality-phase solution, which the coercion solver then extends.
func solveEquality(subs []subEquation) (*Solution, error) {
	sol := newSolution()
	work := append([]subEquation{}, subs...)

	for len(work) > 0 {
		eq := work[0]
		work = work[1:]

		switch eq.Kind {
		case subTermPair:
			more, err := unifyPair(sol, eq.LHS, eq.RHS, eq.Pos)
			if err != nil {
				return nil, err
			}
			work = append(more, work...)

		case subEllipsisBinding:
			more, err := unifyEllipsisBinding(sol, eq.EllipsisVar, eq.EllipsisSeq, eq.Pos)
			if err != nil {
				return nil, err
			}
			work = append(more, work...)
		}
	}

	return sol, nil
}

// unifyPair unifies a single pair of terms against the solution under
// construction. Both sides are first resolved through the solution, so an
// already-bound variable is compared by its value in the same call; the
// returned slice holds any further sub-equations to enqueue.
func unifyPair(sol *Solution, l, r Term, pos token.Pos) ([]subEquation, error) {
	l = sol.resolveTerm(l)
	r = sol.resolveTerm(r)

	switch {
	case l.Kind == KindDimInt && r.Kind == KindDimInt:
		if l.Int != r.Int {
			return nil, newError(Clash, pos, l, r, "dimension %d does not equal %d", l.Int, r.Int)
		}
		return nil, nil

	case l.Kind == KindDType && r.Kind == KindDType:
		if l.DType != r.DType {
			return nil, newError(Clash, pos, l, r, "element type %s does not equal %s", l.DType, r.DType)
		}
		return nil, nil

	case isVarKind(l.Kind) || isVarKind(r.Kind):
		return unifyVar(sol, l, r, pos)

	default:
		return nil, newError(Clash, pos, l, r, "cannot unify %s and %s", l.Kind, r.Kind)
	}
}

func isVarKind(k Kind) bool {
	return k == KindDimVar || k == KindDTypeVar
}

// unifyVar handles a pair where at least one side is a dim or dtype
// variable. An ellipsis never takes the variable role here (ellipsis
// bindings go through subEllipsisBinding equations); an ellipsis on the
// other side fails the kind check below as a clash.
func unifyVar(sol *Solution, l, r Term, pos token.Pos) ([]subEquation, error) {
	var name string
	var varTerm, other Term
	switch {
	case isVarKind(l.Kind):
		name, varTerm, other = l.Name, l, r
	default:
		name, varTerm, other = r.Name, r, l
	}

	if bound, ok := sol.lookup(varTerm.Kind, name); ok {
		return []subEquation{termPairEq(bound, other, false, pos)}, nil
	}

	// A variable may only unify with a concrete term or variable of its own
	// kind; a dim variable meeting a dtype term (or vice versa) is a clash
	// even though both are "variables" in the generic sense.
	if !kindsCompatible(varTerm.Kind, other) {
		return nil, newError(Clash, pos, l, r, "cannot unify %s variable %q with %s", varTerm.Kind, name, other.Kind)
	}

	if other.Kind == varTerm.Kind && other.Name == name {
		return nil, nil // trivial x = x
	}

	if occursIn(sol, varTerm.Kind, name, other) {
		return nil, newError(OccursCheck, pos, l, r, "variable %q occurs in %s", name, other.Kind)
	}

	sol.bind(varTerm.Kind, name, other)
	return nil, nil
}

func kindsCompatible(varKind Kind, other Term) bool {
	switch varKind {
	case KindDimVar:
		return other.Kind == KindDimInt || other.Kind == KindDimVar
	case KindDTypeVar:
		return other.Kind == KindDType || other.Kind == KindDTypeVar
	default:
		return false
	}
}

// unifyEllipsisBinding unifies a sequence bound to an ellipsis variable
// against whatever that variable is already bound to, requiring equal
// length and element-wise equality (spec §4.3, "(Ellipsis α, DimSeq s)").
func unifyEllipsisBinding(sol *Solution, name string, seq []Term, pos token.Pos) ([]subEquation, error) {
	resolved := sol.resolveSeq(seq)

	existing, ok := sol.lookupEllipsis(name)
	if !ok {
		sol.bindEllipsis(name, resolved)
		return nil, nil
	}

	if len(existing) != len(resolved) {
		return nil, newError(ArityMismatch, pos, Term{Kind: KindEllipsis, Name: name}, Term{},
			"ellipsis %q is already bound to a sequence of length %d, cannot also bind length %d", name, len(existing), len(resolved))
	}

	var more []subEquation
	for i := range existing {
		more = append(more, termPairEq(existing[i], resolved[i], false, pos))
	}
	return more, nil
}
