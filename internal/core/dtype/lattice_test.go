package dtype

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestDefaultLatticeCastableTo(t *testing.T) {
	l := DefaultLattice()

	qt.Assert(t, qt.IsTrue(l.CastableTo("int32", "int32")))
	qt.Assert(t, qt.IsTrue(l.CastableTo("int8", "int64")))
	qt.Assert(t, qt.IsTrue(l.CastableTo("int32", "float32")))
	qt.Assert(t, qt.IsTrue(l.CastableTo("uint32", "float32")))
	qt.Assert(t, qt.IsTrue(l.CastableTo("float32", "float64")))
	qt.Assert(t, qt.IsTrue(l.CastableTo("uint8", "int16")))

	qt.Assert(t, qt.IsFalse(l.CastableTo("float64", "float32")))
	qt.Assert(t, qt.IsFalse(l.CastableTo("int64", "int32")))
	qt.Assert(t, qt.IsFalse(l.CastableTo("string", "int32")))
}

func TestHasTag(t *testing.T) {
	l := DefaultLattice()
	qt.Assert(t, qt.IsTrue(l.HasTag("bool")))
	qt.Assert(t, qt.IsFalse(l.HasTag("complex128")))
}

func TestLoadRejectsCycle(t *testing.T) {
	data := []byte(`
tags: [a, b]
edges:
  - {from: a, to: b}
  - {from: b, to: a}
`)
	_, err := Load(data)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestLoadAcyclic(t *testing.T) {
	data := []byte(`
tags: [a, b, c]
edges:
  - {from: a, to: b}
  - {from: b, to: c}
`)
	l, err := Load(data)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(l.CastableTo("a", "c")))
	qt.Assert(t, qt.IsFalse(l.CastableTo("c", "a")))
}

func TestTags(t *testing.T) {
	l := NewLattice("int32", "float32")
	tags := l.Tags()
	qt.Assert(t, qt.IsTrue(tags["int32"]))
	qt.Assert(t, qt.IsTrue(tags["float32"]))
	qt.Assert(t, qt.IsFalse(tags["int64"]))
}
