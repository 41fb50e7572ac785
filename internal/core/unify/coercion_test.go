package unify

import (
	"testing"

	"github.com/go-quicktest/qt"

	"dshape.dev/go/dshape/token"
	"dshape.dev/go/internal/core/dtype"
)

func TestCoerceDimAbsorbsOne(t *testing.T) {
	sol := newSolution()
	qt.Assert(t, qt.IsNil(coerceDim(sol, DimInt(1), DimInt(10), token.NoPos)))
	qt.Assert(t, qt.IsNil(coerceDim(sol, DimInt(10), DimInt(1), token.NoPos)))
}

func TestCoerceDimBindsUnboundVariable(t *testing.T) {
	sol := newSolution()
	qt.Assert(t, qt.IsNil(coerceDim(sol, DimInt(10), DimVar("a"), token.NoPos)))
	bound, ok := sol.lookup(KindDimVar, "a")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(Equal(bound, DimInt(10))))
}

func TestCoerceDimEqualConcreteOK(t *testing.T) {
	sol := newSolution()
	qt.Assert(t, qt.IsNil(coerceDim(sol, DimInt(10), DimInt(10), token.NoPos)))
}

func TestCoerceDimMismatchFails(t *testing.T) {
	sol := newSolution()
	err := coerceDim(sol, DimInt(10), DimInt(5), token.NoPos)
	qt.Assert(t, qt.IsNotNil(err))
	ue, ok := err.(*unifyError)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ue.Code(), BroadcastIncompatible))
}

func TestCoerceDTypePinsUnboundVariable(t *testing.T) {
	sol := newSolution()
	l := dtype.DefaultLattice()
	qt.Assert(t, qt.IsNil(coerceDType(l, sol, DType("int32"), DTypeVar("e"), token.NoPos)))
	bound, ok := sol.lookup(KindDTypeVar, "e")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(Equal(bound, DType("int32"))))
}

func TestCoerceDTypeCastableSucceeds(t *testing.T) {
	sol := newSolution()
	l := dtype.DefaultLattice()
	qt.Assert(t, qt.IsNil(coerceDType(l, sol, DType("int8"), DType("int32"), token.NoPos)))
}

func TestCoerceDTypeUncastableFails(t *testing.T) {
	sol := newSolution()
	l := dtype.DefaultLattice()
	err := coerceDType(l, sol, DType("float64"), DType("int32"), token.NoPos)
	qt.Assert(t, qt.IsNotNil(err))
	ue, ok := err.(*unifyError)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ue.Code(), CastIncompatible))
}

func TestLeftPadShorterSequence(t *testing.T) {
	out := leftPad([]Term{DimInt(10)}, 3)
	qt.Assert(t, qt.DeepEquals(out, []Term{DimInt(1), DimInt(1), DimInt(10)}))
}

func TestLeftPadNoOpWhenAlreadyLongEnough(t *testing.T) {
	in := []Term{DimInt(10), DimInt(20)}
	out := leftPad(in, 2)
	qt.Assert(t, qt.DeepEquals(out, in))
}

func TestBroadcastSequencesLeftPadsAndMerges(t *testing.T) {
	out, err := broadcastSequences([]Term{DimInt(10)}, []Term{DimInt(1), DimInt(10)}, token.NoPos)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(out, []Term{DimInt(1), DimInt(10)}))
}

func TestBroadcastSequencesIncompatibleFails(t *testing.T) {
	_, err := broadcastSequences([]Term{DimInt(5)}, []Term{DimInt(10)}, token.NoPos)
	qt.Assert(t, qt.IsNotNil(err))
	ue, ok := err.(*unifyError)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ue.Code(), BroadcastIncompatible))
}

func TestCoerceEllipsisBindingFirstSightBindsDirectly(t *testing.T) {
	sol := newSolution()
	qt.Assert(t, qt.IsNil(coerceEllipsisBinding(sol, "A", []Term{DimInt(1), DimInt(2)}, token.NoPos)))
	seq, ok := sol.lookupEllipsis("A")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(seq, []Term{DimInt(1), DimInt(2)}))
}

func TestCoerceEllipsisBindingReconcilesWithLeftPad(t *testing.T) {
	sol := newSolution()
	sol.bindEllipsis("A", []Term{DimInt(10)})
	qt.Assert(t, qt.IsNil(coerceEllipsisBinding(sol, "A", []Term{DimInt(1), DimInt(10)}, token.NoPos)))
	seq, ok := sol.lookupEllipsis("A")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(seq, []Term{DimInt(1), DimInt(10)}))
}
