package unify

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestRelabelRHSGlobalLHSLocal(t *testing.T) {
	// Both equations' RHS mention the same variable "a": it must relabel to
	// the same fresh name both times. Both equations' LHS mention a variable
	// spelled "a" too, but LHS scope is per-equation, so those must NOT
	// collide with each other or with the RHS "a".
	eq1, err := NewEquation(DimVar("a"), DimVar("a"))
	qt.Assert(t, qt.IsNil(err))
	eq2, err := NewEquation(DimVar("a"), DimVar("a"))
	qt.Assert(t, qt.IsNil(err))

	out, _, err := Relabel([]Equation{eq1, eq2})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(out), 2))

	// RHS identity is global: both RHS occurrences of "a" get the same name.
	qt.Assert(t, qt.Equals(out[0].RHS.Name, out[1].RHS.Name))

	// LHS identity is per-equation: the first equation's LHS "a" need not
	// equal the second's, and in this construction (RHS collected first)
	// neither should collide with the RHS's fresh name.
	qt.Assert(t, qt.IsTrue(out[0].LHS.Name != out[0].RHS.Name))
	qt.Assert(t, qt.IsTrue(out[1].LHS.Name != out[1].RHS.Name))
}

func TestRelabelDimAndDTypeNamespacesDontCollide(t *testing.T) {
	rhs := Shape([]Term{DimVar("x")}, DTypeVar("x"))
	lhs := Shape([]Term{DimInt(1)}, DType("int32"))
	eq, err := NewEquation(lhs, rhs)
	qt.Assert(t, qt.IsNil(err))

	out, _, err := Relabel([]Equation{eq})
	qt.Assert(t, qt.IsNil(err))

	dimName := out[0].RHS.Dims[0].Name
	dtypeName := out[0].RHS.Elt.Name
	qt.Assert(t, qt.IsTrue(dimName != dtypeName))
}

func TestRelabelAnonEllipsisGetsFreshName(t *testing.T) {
	rhs := Shape([]Term{AnonEllipsis()}, DType("int32"))
	lhs := Shape([]Term{DimInt(1)}, DType("int32"))
	eq, err := NewEquation(lhs, rhs)
	qt.Assert(t, qt.IsNil(err))

	out, _, err := Relabel([]Equation{eq})
	qt.Assert(t, qt.IsNil(err))

	ell := out[0].RHS.Dims[0]
	qt.Assert(t, qt.Equals(ell.Kind, KindEllipsis))
	qt.Assert(t, qt.IsFalse(ell.Anonymous))
	qt.Assert(t, qt.IsTrue(ell.Name != ""))
}

func TestRelabelIsDeterministic(t *testing.T) {
	eqs := []Equation{
		mustEq(t, DimVar("z"), DimVar("z")),
		mustEq(t, DimVar("a"), DimVar("a")),
	}
	out1, _, err := Relabel(eqs)
	qt.Assert(t, qt.IsNil(err))
	out2, _, err := Relabel(eqs)
	qt.Assert(t, qt.IsNil(err))

	qt.Assert(t, qt.Equals(out1[0].RHS.Name, out2[0].RHS.Name))
	qt.Assert(t, qt.Equals(out1[1].RHS.Name, out2[1].RHS.Name))
}
