package unify

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestDecomposeFixedArity(t *testing.T) {
	eq, err := NewEquation(
		Shape([]Term{DimInt(10), DimInt(20)}, DType("int32")),
		Shape([]Term{DimVar("a"), DimVar("b")}, DTypeVar("t")),
	)
	qt.Assert(t, qt.IsNil(err))

	subs, err := Decompose(eq, 0)
	qt.Assert(t, qt.IsNil(err))
	// elt + 2 dims = 3 sub-equations, none coercible.
	qt.Assert(t, qt.Equals(len(subs), 3))
	for _, s := range subs {
		qt.Assert(t, qt.IsFalse(s.Coercible))
		qt.Assert(t, qt.Equals(s.Kind, subTermPair))
	}
}

func TestDecomposeArityMismatch(t *testing.T) {
	eq, err := NewEquation(
		Shape([]Term{DimInt(10)}, DType("int32")),
		Shape([]Term{DimVar("a"), DimVar("b")}, DTypeVar("t")),
	)
	qt.Assert(t, qt.IsNil(err))

	_, err = Decompose(eq, 0)
	qt.Assert(t, qt.IsNotNil(err))
	ue, ok := err.(*unifyError)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ue.Code(), ArityMismatch))
}

func TestDecomposeEllipsisSplitsPrefixSuffix(t *testing.T) {
	eq, err := NewEquation(
		Shape([]Term{DimInt(1), DimInt(2), DimInt(3), DimInt(4)}, DType("int32")),
		Shape([]Term{DimVar("a"), Ellipsis("M"), DimVar("b")}, DTypeVar("t")),
	)
	qt.Assert(t, qt.IsNil(err))

	subs, err := Decompose(eq, 0)
	qt.Assert(t, qt.IsNil(err))

	var ellipsisSub *subEquation
	var pairs []subEquation
	for i := range subs {
		if subs[i].Kind == subEllipsisBinding {
			ellipsisSub = &subs[i]
		} else {
			pairs = append(pairs, subs[i])
		}
	}
	qt.Assert(t, qt.IsTrue(ellipsisSub != nil))
	qt.Assert(t, qt.Equals(ellipsisSub.EllipsisVar, "M"))
	qt.Assert(t, qt.DeepEquals(ellipsisSub.EllipsisSeq, []Term{DimInt(2), DimInt(3)}))

	// elt + prefix(a=1) + suffix(b=4) = 3 term pairs.
	qt.Assert(t, qt.Equals(len(pairs), 3))
}

func TestDecomposeEllipsisTooFewLHSDims(t *testing.T) {
	eq, err := NewEquation(
		Shape([]Term{DimInt(1)}, DType("int32")),
		Shape([]Term{DimVar("a"), Ellipsis("M"), DimVar("b")}, DTypeVar("t")),
	)
	qt.Assert(t, qt.IsNil(err))

	_, err = Decompose(eq, 0)
	qt.Assert(t, qt.IsNotNil(err))
	ue, ok := err.(*unifyError)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ue.Code(), ArityMismatch))
}

func TestDecomposeCoercionMarkerOnlyOnMarkedPosition(t *testing.T) {
	eq, err := NewEquation(
		Shape([]Term{DimInt(1), DimInt(2)}, DType("int32")),
		Shape([]Term{Coerce(DimVar("a")), DimVar("b")}, DTypeVar("t")),
	)
	qt.Assert(t, qt.IsNil(err))

	subs, err := Decompose(eq, 0)
	qt.Assert(t, qt.IsNil(err))

	var aCoercible, bCoercible bool
	for _, s := range subs {
		if s.Kind != subTermPair {
			continue
		}
		if s.RHS.Kind == KindDimVar && s.RHS.Name == "a" {
			aCoercible = s.Coercible
		}
		if s.RHS.Kind == KindDimVar && s.RHS.Name == "b" {
			bCoercible = s.Coercible
		}
	}
	qt.Assert(t, qt.IsTrue(aCoercible))
	qt.Assert(t, qt.IsFalse(bCoercible))
}

func TestDecomposeBareNonShapePair(t *testing.T) {
	eq, err := NewEquation(DType("int32"), Coerce(DTypeVar("t")))
	qt.Assert(t, qt.IsNil(err))

	subs, err := Decompose(eq, 0)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(subs), 1))
	qt.Assert(t, qt.IsTrue(subs[0].Coercible))
	qt.Assert(t, qt.Equals(subs[0].RHS.Name, "t"))
}
