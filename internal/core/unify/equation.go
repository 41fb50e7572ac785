package unify

import "dshape.dev/go/dshape/token"

// Equation is an ordered pair (LHS, RHS) of terms to be unified. By
// construction, Coerce never occurs anywhere in LHS and Ellipsis never
// occurs at the top level of LHS.
type Equation struct {
	LHS, RHS Term

	// pos identifies this equation's index in the list passed to Unify, for
	// diagnostics. It is set by NewEquations, not by callers directly.
	pos token.Pos
}

// NewEquation constructs a single equation, validating the invariants of
// spec §3: no Coerce and no Ellipsis anywhere in LHS.
func NewEquation(lhs, rhs Term) (Equation, error) {
	if err := validateLHS(lhs, token.NoPos); err != nil {
		return Equation{}, err
	}
	if err := validateRHSEllipsisCount(rhs, token.NoPos); err != nil {
		return Equation{}, err
	}
	return Equation{LHS: lhs, RHS: rhs}, nil
}

// NewEquations constructs a list of equations, stamping each with its index
// for diagnostics.
func NewEquations(pairs [][2]Term) ([]Equation, error) {
	eqs := make([]Equation, len(pairs))
	for i, p := range pairs {
		eq, err := NewEquation(p[0], p[1])
		if err != nil {
			return nil, err
		}
		eq.pos = token.New(i, "")
		eqs[i] = eq
	}
	return eqs, nil
}

func validateLHS(t Term, pos token.Pos) error {
	switch t.Kind {
	case KindCoerce:
		return newError(MalformedEquation, pos, t, Term{}, "coercion marker is not allowed on the left-hand side")
	case KindEllipsis:
		return newError(MalformedEquation, pos, t, Term{}, "ellipsis is not allowed on the left-hand side")
	case KindShape:
		for _, d := range t.Dims {
			if err := validateLHS(d, pos); err != nil {
				return err
			}
		}
		return validateLHS(*t.Elt, pos)
	default:
		return nil
	}
}

func validateRHSEllipsisCount(t Term, pos token.Pos) error {
	if t.Kind != KindShape {
		return nil
	}
	n := 0
	for _, d := range t.Dims {
		if isEllipsis(d) {
			n++
		}
	}
	if n > 1 {
		return newError(MalformedEquation, pos, t, Term{}, "at most one ellipsis is allowed per right-hand side shape")
	}
	return nil
}
