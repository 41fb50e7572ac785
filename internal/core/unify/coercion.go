package unify

import (
	"dshape.dev/go/dshape/token"
	"dshape.dev/go/internal/core/dtype"
)

// solveCoercion runs the second solver phase over the coercion-flagged
// sub-equations, using the equality-phase solution as its starting context
// (spec §4.4). It extends sol in place.
func solveCoercion(sol *Solution, subs []subEquation, lattice *dtype.Lattice) error {
	for _, eq := range subs {
		if !eq.Coercible {
			continue
		}
		switch eq.Kind {
		case subTermPair:
			l := sol.resolveTerm(eq.LHS)
			r := sol.resolveTerm(eq.RHS)
			switch {
			case isDimTerm(l) || isDimTerm(r):
				if err := coerceDim(sol, l, r, eq.Pos); err != nil {
					return err
				}
			case isDTypeTerm(l) || isDTypeTerm(r):
				if err := coerceDType(lattice, sol, l, r, eq.Pos); err != nil {
					return err
				}
			default:
				return newError(Clash, eq.Pos, l, r, "coercion pair is neither a dimension nor an element-type pair")
			}

		case subEllipsisBinding:
			if err := coerceEllipsisBinding(sol, eq.EllipsisVar, eq.EllipsisSeq, eq.Pos); err != nil {
				return err
			}
		}
	}
	return nil
}

func isDimTerm(t Term) bool   { return t.Kind == KindDimInt || t.Kind == KindDimVar }
func isDTypeTerm(t Term) bool { return t.Kind == KindDType || t.Kind == KindDTypeVar }

// coerceDim implements the broadcasting rule of spec §4.4: a 1 on either
// side is absorbed, an unbound RHS variable takes the LHS extent, and two
// concrete unequal non-1 extents fail.
func coerceDim(sol *Solution, l, r Term, pos token.Pos) error {
	switch {
	case l.Kind == KindDimInt && l.Int == 1:
		return nil
	case r.Kind == KindDimInt && r.Int == 1:
		return nil
	case r.Kind == KindDimVar:
		sol.bind(KindDimVar, r.Name, l)
		return nil
	case l.Kind == KindDimVar:
		sol.bind(KindDimVar, l.Name, r)
		return nil
	case l.Kind == KindDimInt && r.Kind == KindDimInt:
		if l.Int == r.Int {
			return nil
		}
		return newError(BroadcastIncompatible, pos, l, r, "dimensions %d and %d are not broadcast compatible", l.Int, r.Int)
	default:
		return newError(BroadcastIncompatible, pos, l, r, "dimensions %v and %v are not broadcast compatible", l, r)
	}
}

// coerceDType implements the casting rule of spec §4.4: an unbound variable
// is pinned to the other side; otherwise the LHS must be castable to the
// RHS under the active lattice.
func coerceDType(lattice *dtype.Lattice, sol *Solution, l, r Term, pos token.Pos) error {
	switch {
	case r.Kind == KindDTypeVar:
		sol.bind(KindDTypeVar, r.Name, l)
		return nil
	case l.Kind == KindDTypeVar:
		sol.bind(KindDTypeVar, l.Name, r)
		return nil
	case l.DType == r.DType:
		return nil
	case lattice.CastableTo(l.DType, r.DType):
		return nil
	default:
		return newError(CastIncompatible, pos, l, r, "%s cannot be cast to %s", l.DType, r.DType)
	}
}

// coerceEllipsisBinding implements spec §4.4's ellipsis coercion rule: a
// freshly-seen sequence simply binds; a sequence seen again is reconciled
// with the existing binding by left-padding the shorter side with 1s and
// broadcasting element-wise (see DESIGN.md for the Open Question this
// resolves).
func coerceEllipsisBinding(sol *Solution, name string, seq []Term, pos token.Pos) error {
	resolved := sol.resolveSeq(seq)

	existing, ok := sol.lookupEllipsis(name)
	if !ok {
		sol.bindEllipsis(name, resolved)
		return nil
	}

	merged, err := broadcastSequences(existing, resolved, pos)
	if err != nil {
		return err
	}
	sol.bindEllipsis(name, merged)
	return nil
}

func broadcastSequences(a, b []Term, pos token.Pos) ([]Term, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	pa := leftPad(a, n)
	pb := leftPad(b, n)
	out := make([]Term, n)
	for i := range out {
		d, err := broadcastDim(pa[i], pb[i], pos)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func leftPad(seq []Term, n int) []Term {
	if len(seq) >= n {
		return seq
	}
	out := make([]Term, n)
	pad := n - len(seq)
	for i := 0; i < pad; i++ {
		out[i] = DimInt(1)
	}
	copy(out[pad:], seq)
	return out
}

func broadcastDim(x, y Term, pos token.Pos) (Term, error) {
	switch {
	case x.Kind == KindDimInt && x.Int == 1:
		return y, nil
	case y.Kind == KindDimInt && y.Int == 1:
		return x, nil
	case x.Kind == KindDimInt && y.Kind == KindDimInt:
		if x.Int == y.Int {
			return x, nil
		}
		return Term{}, newError(BroadcastIncompatible, pos, x, y, "dimensions %d and %d are not broadcast compatible", x.Int, y.Int)
	case x.Kind == KindDimInt:
		return x, nil
	case y.Kind == KindDimInt:
		return y, nil
	default:
		return x, nil
	}
}
