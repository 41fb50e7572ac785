// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token describes locations within a unification call: which
// equation of the original list an offending term came from, and a dotted
// path into that equation's term tree.
//
// Unlike a source-file position, there is no file, line, or column: the
// engine never touches surface syntax, so a position is only ever an index
// into the caller's equation slice plus a navigational path such as
// "rhs.dims[2]".
package token

import "fmt"

// Position is the printable, unpacked form of a [Pos].
type Position struct {
	Equation int    // index into the original equation list, or -1
	Path     string // dotted path into the equation's term tree, if any
}

// IsValid reports whether the position refers to a real equation.
func (p Position) IsValid() bool { return p.Equation >= 0 }

// String renders the position as "eq[<n>]" or "eq[<n>].<path>", or "-" if
// invalid.
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	s := fmt.Sprintf("eq[%d]", p.Equation)
	if p.Path != "" {
		s += "." + p.Path
	}
	return s
}

// Pos is a compact position value, cheap to carry around on terms and
// errors. The zero value is not NoPos: it refers to equation 0.
type Pos struct {
	equation int
	path     string
}

// NoPos is the Pos that refers to no equation; it is never a valid position.
var NoPos = Pos{equation: -1}

// New returns the position of the equation at the given index, optionally
// qualified by a dotted path into its term tree.
func New(equation int, path string) Pos {
	return Pos{equation: equation, path: path}
}

// IsValid reports whether p refers to a real equation.
func (p Pos) IsValid() bool { return p.equation >= 0 }

// Equation returns the index into the original equation list, or -1 if p is
// not valid.
func (p Pos) Equation() int { return p.equation }

// Path returns the dotted path into the equation's term tree, if any.
func (p Pos) Path() string { return p.path }

// Position unpacks p into a printable [Position].
func (p Pos) Position() Position {
	return Position{Equation: p.equation, Path: p.path}
}

// String returns a human-readable form of p.
func (p Pos) String() string {
	return p.Position().String()
}

// WithPath returns a copy of p with path appended as a further path segment.
// It is used while descending into a term (e.g. from "rhs" to "rhs.dims[2]").
func (p Pos) WithPath(segment string) Pos {
	if p.path == "" {
		return Pos{equation: p.equation, path: segment}
	}
	return Pos{equation: p.equation, path: p.path + "." + segment}
}

// Compare returns -1, 0, or +1 reporting whether p sorts before, at, or
// after q. NoPos sorts before any valid position.
func (p Pos) Compare(q Pos) int {
	if p == q {
		return 0
	}
	switch {
	case p == NoPos:
		return -1
	case q == NoPos:
		return +1
	case p.equation != q.equation:
		if p.equation < q.equation {
			return -1
		}
		return +1
	case p.path < q.path:
		return -1
	case p.path > q.path:
		return +1
	default:
		return 0
	}
}
