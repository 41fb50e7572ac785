package dshapecontext_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"dshape.dev/go/dshape"
	"dshape.dev/go/dshape/dshapecontext"
	"dshape.dev/go/internal/core/dtype"
)

func TestNewDefaultsToDefaultLattice(t *testing.T) {
	ctx := dshapecontext.New()

	eq, err := dshape.NewEquation(dshape.DType("int32"), dshape.DTypeVar("x"))
	qt.Assert(t, qt.IsNil(err))

	sol, err := ctx.Unify([]dshape.Equation{eq})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(dshape.Equal(sol.DTypeBindings()["x"], dshape.DType("int32"))))
}

func TestLatticeOptionOverridesDefault(t *testing.T) {
	l := dtype.NewLattice("a", "b")
	l.AddEdge("a", "b")
	ctx := dshapecontext.New(dshapecontext.Lattice(l))

	eq, err := dshape.NewEquation(dshape.DType("a"), dshape.Coerce(dshape.DTypeVar("x")))
	qt.Assert(t, qt.IsNil(err))

	_, err = ctx.Unify([]dshape.Equation{eq})
	qt.Assert(t, qt.IsNil(err))
}

func TestTraceOptionReceivesLines(t *testing.T) {
	var lines []string
	ctx := dshapecontext.New(dshapecontext.Trace(func(line string) {
		lines = append(lines, line)
	}))

	eq, err := dshape.NewEquation(dshape.DType("int32"), dshape.DTypeVar("x"))
	qt.Assert(t, qt.IsNil(err))

	_, err = ctx.Unify([]dshape.Equation{eq})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(len(lines) > 0))
}

func TestSubstituteResolvesBoundVariable(t *testing.T) {
	ctx := dshapecontext.New()

	eq, err := dshape.NewEquation(dshape.DType("int32"), dshape.DTypeVar("x"))
	qt.Assert(t, qt.IsNil(err))

	sol, err := ctx.Unify([]dshape.Equation{eq})
	qt.Assert(t, qt.IsNil(err))

	out, err := ctx.Substitute(sol, dshape.DTypeVar("x"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(dshape.Equal(out, dshape.DType("int32"))))
}

func TestLatticeFilePanicsOnBadPath(t *testing.T) {
	defer func() {
		r := recover()
		qt.Assert(t, qt.IsNotNil(r))
	}()
	dshapecontext.LatticeFile("/nonexistent/path/to/lattice.yaml")
}
