package parser

import (
	"testing"

	"github.com/go-quicktest/qt"

	"dshape.dev/go/dshape"
	"dshape.dev/go/internal/core/dtype"
)

func tags() map[string]bool {
	return dtype.DefaultLattice().Tags()
}

func TestParseShapeConcrete(t *testing.T) {
	got, err := ParseShape("10*10*int32", tags())
	qt.Assert(t, qt.IsNil(err))
	want := dshape.Shape([]dshape.Term{dshape.DimInt(10), dshape.DimInt(10)}, dshape.DType("int32"))
	qt.Assert(t, qt.IsTrue(dshape.Equal(got, want)))
}

func TestParseShapeNamedEllipsis(t *testing.T) {
	got, err := ParseShape("A...*int32", tags())
	qt.Assert(t, qt.IsNil(err))
	want := dshape.Shape([]dshape.Term{dshape.Ellipsis("A")}, dshape.DType("int32"))
	qt.Assert(t, qt.IsTrue(dshape.Equal(got, want)))
}

func TestParseShapeCoercedEllipsis(t *testing.T) {
	got, err := ParseShape("~A...*int32", tags())
	qt.Assert(t, qt.IsNil(err))
	want := dshape.Shape([]dshape.Term{dshape.Coerce(dshape.Ellipsis("A"))}, dshape.DType("int32"))
	qt.Assert(t, qt.IsTrue(dshape.Equal(got, want)))
}

func TestParseShapeVariablesAndCoercedElt(t *testing.T) {
	got, err := ParseShape("a*b*~c", tags())
	qt.Assert(t, qt.IsNil(err))
	want := dshape.Shape(
		[]dshape.Term{dshape.DimVar("a"), dshape.DimVar("b")},
		dshape.Coerce(dshape.DTypeVar("c")),
	)
	qt.Assert(t, qt.IsTrue(dshape.Equal(got, want)))
}

func TestParseShapeZeroDims(t *testing.T) {
	got, err := ParseShape("int32", tags())
	qt.Assert(t, qt.IsNil(err))
	want := dshape.Shape(nil, dshape.DType("int32"))
	qt.Assert(t, qt.IsTrue(dshape.Equal(got, want)))
}

func TestParseShapeUnknownTagIsVariable(t *testing.T) {
	got, err := ParseShape("dtype", tags())
	qt.Assert(t, qt.IsNil(err))
	want := dshape.Shape(nil, dshape.DTypeVar("dtype"))
	qt.Assert(t, qt.IsTrue(dshape.Equal(got, want)))
}

func TestParseShapeRejectsEmptyTerm(t *testing.T) {
	_, err := ParseShape("10**int32", tags())
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseShapeRejectsNegativeDimension(t *testing.T) {
	_, err := ParseShape("-1*int32", tags())
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseEquation(t *testing.T) {
	eq, err := ParseEquation("10*10*int32 => A...*int32", tags())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(dshape.Equal(eq.LHS, dshape.Shape(
		[]dshape.Term{dshape.DimInt(10), dshape.DimInt(10)}, dshape.DType("int32"),
	))))
	qt.Assert(t, qt.IsTrue(dshape.Equal(eq.RHS, dshape.Shape(
		[]dshape.Term{dshape.Ellipsis("A")}, dshape.DType("int32"),
	))))
}

func TestParseEquationRejectsLHSCoercion(t *testing.T) {
	_, err := ParseEquation("~a*int32 => b*int32", tags())
	qt.Assert(t, qt.IsNotNil(err))
}

func TestParseEquationMissingSeparator(t *testing.T) {
	_, err := ParseEquation("10*int32", tags())
	qt.Assert(t, qt.IsNotNil(err))
}
