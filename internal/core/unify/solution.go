package unify

// Solution is the result of a successful Unify call: a mapping from
// variable name to term, partitioned by variable kind as described in
// spec §3.
//
// A Solution is read-only to callers. Internally, the solver mutates one
// under construction; [Driver.Unify] only ever returns a Solution once it is
// fully built for that call.
type Solution struct {
	dim      map[string]Term
	dtype    map[string]Term
	ellipsis map[string][]Term
}

func newSolution() *Solution {
	return &Solution{
		dim:      make(map[string]Term),
		dtype:    make(map[string]Term),
		ellipsis: make(map[string][]Term),
	}
}

// DimBindings returns the dim-var portion of the solution. The returned map
// must not be mutated.
func (s *Solution) DimBindings() map[string]Term { return s.dim }

// DTypeBindings returns the dtype-var portion of the solution. The returned
// map must not be mutated.
func (s *Solution) DTypeBindings() map[string]Term { return s.dtype }

// EllipsisBindings returns the ellipsis-var portion of the solution. The
// returned map must not be mutated.
func (s *Solution) EllipsisBindings() map[string][]Term { return s.ellipsis }

func (s *Solution) lookup(kind Kind, name string) (Term, bool) {
	switch kind {
	case KindDimVar:
		t, ok := s.dim[name]
		return t, ok
	case KindDTypeVar:
		t, ok := s.dtype[name]
		return t, ok
	default:
		return Term{}, false
	}
}

func (s *Solution) bind(kind Kind, name string, t Term) {
	switch kind {
	case KindDimVar:
		s.dim[name] = t
	case KindDTypeVar:
		s.dtype[name] = t
	}
}

func (s *Solution) lookupEllipsis(name string) ([]Term, bool) {
	seq, ok := s.ellipsis[name]
	return seq, ok
}

func (s *Solution) bindEllipsis(name string, seq []Term) {
	cp := make([]Term, len(seq))
	copy(cp, seq)
	s.ellipsis[name] = cp
}

// resolveTerm dereferences bound variables in t one level at a time,
// following chains of variable-to-variable bindings to their eventual value
// (or to the last unbound variable in the chain). It does not recurse into
// Shape sub-terms; callers that need that call resolveDeep.
func (s *Solution) resolveTerm(t Term) Term {
	for {
		name, ok := varName(t)
		if !ok || t.Kind == KindEllipsis {
			return t
		}
		bound, ok := s.lookup(t.Kind, name)
		if !ok {
			return t
		}
		t = bound
	}
}

// resolveDeep applies the solution recursively through Shape and Coerce
// structure, also expanding any ellipsis that is already bound. It is used
// (through resolveSeq) to resolve the dimension sequence of an ellipsis
// binding; full substitution with unbound-variable checking is in
// substitute.go.
func (s *Solution) resolveDeep(t Term) Term {
	t = s.resolveTerm(t)
	switch t.Kind {
	case KindShape:
		var dims []Term
		for _, d := range t.Dims {
			d = s.resolveDeep(d)
			if d.Kind == KindEllipsis {
				if seq, ok := s.lookupEllipsis(d.Name); ok {
					dims = append(dims, seq...)
					continue
				}
			}
			dims = append(dims, d)
		}
		elt := s.resolveDeep(*t.Elt)
		return Term{Kind: KindShape, Dims: dims, Elt: &elt}
	case KindCoerce:
		inner := s.resolveDeep(*t.Inner)
		return Term{Kind: KindCoerce, Inner: &inner}
	default:
		return t
	}
}

// renamed returns a copy of s with every binding key rewritten through
// original, where present; keys absent from original (i.e. synthetic names
// introduced for an LHS-local variable, which has no single global spelling
// to restore) are left as-is.
func (s *Solution) renamed(original map[string]string) *Solution {
	out := newSolution()
	for name, t := range s.dim {
		out.dim[restoreName(name, original)] = t
	}
	for name, t := range s.dtype {
		out.dtype[restoreName(name, original)] = t
	}
	for name, seq := range s.ellipsis {
		out.ellipsis[restoreName(name, original)] = seq
	}
	return out
}

func restoreName(fresh string, original map[string]string) string {
	if orig, ok := original[fresh]; ok {
		return orig
	}
	return fresh
}

func (s *Solution) resolveSeq(seq []Term) []Term {
	out := make([]Term, len(seq))
	for i, t := range seq {
		out[i] = s.resolveDeep(t)
	}
	return out
}

// occursIn reports whether the variable (kind, name) appears free in t,
// after resolving t through the current solution.
func occursIn(s *Solution, kind Kind, name string, t Term) bool {
	t = s.resolveTerm(t)
	switch t.Kind {
	case KindDimVar, KindDTypeVar:
		return t.Kind == kind && t.Name == name
	case KindEllipsis:
		if t.Kind == kind && t.Name == name {
			return true
		}
		if seq, ok := s.lookupEllipsis(t.Name); ok {
			for _, d := range seq {
				if occursIn(s, kind, name, d) {
					return true
				}
			}
		}
		return false
	case KindShape:
		for _, d := range t.Dims {
			if occursIn(s, kind, name, d) {
				return true
			}
		}
		return occursIn(s, kind, name, *t.Elt)
	case KindCoerce:
		return occursIn(s, kind, name, *t.Inner)
	default:
		return false
	}
}
