package unify

import "dshape.dev/go/dshape/token"

// Substitute applies sol to t, expanding ellipsis bindings in place and
// stripping every Coerce marker (spec §4.5). It is a total function only
// when every free variable of t is bound in sol; otherwise it fails with an
// UnboundVariable error.
func Substitute(sol *Solution, t Term) (Term, error) {
	switch t.Kind {
	case KindDimInt, KindDType:
		return t, nil

	case KindDimVar:
		bound, ok := sol.lookup(KindDimVar, t.Name)
		if !ok {
			return Term{}, newError(UnboundVariable, token.NoPos, t, Term{}, "dimension variable %q is unbound", t.Name)
		}
		return Substitute(sol, bound)

	case KindDTypeVar:
		bound, ok := sol.lookup(KindDTypeVar, t.Name)
		if !ok {
			return Term{}, newError(UnboundVariable, token.NoPos, t, Term{}, "element-type variable %q is unbound", t.Name)
		}
		return Substitute(sol, bound)

	case KindEllipsis:
		return Term{}, newError(UnboundVariable, token.NoPos, t, Term{},
			"ellipsis %q can only be substituted as part of a shape's dimension list", t.Name)

	case KindShape:
		dims := make([]Term, 0, len(t.Dims))
		for _, d := range t.Dims {
			if d.Kind == KindEllipsis {
				seq, ok := sol.lookupEllipsis(d.Name)
				if !ok {
					return Term{}, newError(UnboundVariable, token.NoPos, d, Term{}, "ellipsis %q is unbound", d.Name)
				}
				for _, s := range seq {
					r, err := Substitute(sol, s)
					if err != nil {
						return Term{}, err
					}
					dims = append(dims, r)
				}
				continue
			}
			r, err := Substitute(sol, d)
			if err != nil {
				return Term{}, err
			}
			dims = append(dims, r)
		}
		elt, err := Substitute(sol, *t.Elt)
		if err != nil {
			return Term{}, err
		}
		return Term{Kind: KindShape, Dims: dims, Elt: &elt}, nil

	case KindCoerce:
		return Substitute(sol, *t.Inner)

	default:
		return Term{}, newError(UnboundVariable, token.NoPos, t, Term{}, "cannot substitute term of kind %s", t.Kind)
	}
}
