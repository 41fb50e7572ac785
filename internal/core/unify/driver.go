package unify

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kr/pretty"

	"dshape.dev/go/internal/core/dtype"
)

// Trace, when non-nil, receives a line of diagnostic text for each stage of
// a Unify call: relabeling, decomposition, the equality solution, and the
// coercion solution. It is nil by default; [cmd/dshape]'s --verbose flag
// wires it to stderr.
type Trace func(line string)

// Driver orchestrates a single Unify call: relabel, decompose, equality
// solve, coercion solve, in that fixed order (spec §4.6). The order may not
// be reversed: equality must pin every hard constraint before coercion-driven
// binding runs, per spec §9.
type Driver struct {
	Lattice *dtype.Lattice
	Trace   Trace
}

// NewDriver constructs a Driver against the given lattice. A nil lattice is
// replaced with [dtype.DefaultLattice].
func NewDriver(lattice *dtype.Lattice) *Driver {
	if lattice == nil {
		lattice = dtype.DefaultLattice()
	}
	return &Driver{Lattice: lattice}
}

// Unify runs the full pipeline over eqs and returns the resulting solution,
// or the first structural failure encountered.
func (d *Driver) Unify(eqs []Equation) (*Solution, error) {
	callID := uuid.New()
	d.trace(fmt.Sprintf("unify[%s]: %d equation(s)", shortID(callID), len(eqs)))

	relabeled, rhsOriginal, err := Relabel(eqs)
	if err != nil {
		return nil, err
	}
	d.trace(fmt.Sprintf("unify[%s]: relabeled:\n%s", shortID(callID), pretty.Sprint(relabeled)))

	var allSubs []subEquation
	for i, eq := range relabeled {
		subs, err := Decompose(eq, i)
		if err != nil {
			return nil, err
		}
		allSubs = append(allSubs, subs...)
	}
	d.trace(fmt.Sprintf("unify[%s]: decomposed into %d sub-equation(s)", shortID(callID), len(allSubs)))

	var eqSubs []subEquation
	for _, s := range allSubs {
		if !s.Coercible {
			eqSubs = append(eqSubs, s)
		}
	}

	sol, err := solveEquality(eqSubs)
	if err != nil {
		return nil, err
	}
	d.trace(fmt.Sprintf("unify[%s]: equality solution:\n%s", shortID(callID), pretty.Sprint(sol)))

	if err := solveCoercion(sol, allSubs, d.Lattice); err != nil {
		return nil, err
	}

	sol = sol.renamed(rhsOriginal)
	d.trace(fmt.Sprintf("unify[%s]: final solution:\n%s", shortID(callID), pretty.Sprint(sol)))

	return sol, nil
}

// Substitute applies sol to t (spec §4.5).
func (d *Driver) Substitute(sol *Solution, t Term) (Term, error) {
	return Substitute(sol, t)
}

func (d *Driver) trace(line string) {
	if d.Trace != nil {
		d.Trace(line)
	}
}

func shortID(id uuid.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// Unify is a convenience wrapper that runs a one-off unification against
// [dtype.DefaultLattice], equivalent to spec §4.6's `unify(equations)`.
func Unify(eqs []Equation) (*Solution, error) {
	return NewDriver(nil).Unify(eqs)
}
