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

// Package dshape is the public surface of the datashape unification engine.
// It exposes term construction (for a parser/frontend or array runtime to
// build values against) and the Unify/Substitute operations, while keeping
// the solver itself in internal/core/unify.
package dshape

import (
	"dshape.dev/go/internal/core/unify"
)

// Term is a datashape term: a dimension, an element type, an ellipsis, a
// whole shape, or a coercion marker around one of those. See
// internal/core/unify for the full variant description.
type Term = unify.Term

// Equation is an ordered (LHS, RHS) pair of terms to unify.
type Equation = unify.Equation

// Solution is the result of a successful Unify call.
type Solution = unify.Solution

// DimInt constructs a concrete dimension extent.
func DimInt(n int64) Term { return unify.DimInt(n) }

// DimVar constructs a dimension-valued type variable.
func DimVar(name string) Term { return unify.DimVar(name) }

// DType constructs a concrete scalar element type, identified by tag.
func DType(tag string) Term { return unify.DType(tag) }

// DTypeVar constructs an element-type variable.
func DTypeVar(name string) Term { return unify.DTypeVar(name) }

// Ellipsis constructs a named variadic dimension placeholder.
func Ellipsis(name string) Term { return unify.Ellipsis(name) }

// AnonEllipsis constructs an anonymous variadic dimension placeholder,
// given a fresh name during relabeling.
func AnonEllipsis() Term { return unify.AnonEllipsis() }

// Shape constructs a datashape from an ordered sequence of dimension terms
// and exactly one element-type term.
func Shape(dims []Term, elt Term) Term { return unify.Shape(dims, elt) }

// Coerce marks t as coercible: the corresponding LHS term may be broadcast
// or cast to match it, rather than required to be strictly equal. Only
// legal inside the RHS of an Equation.
func Coerce(t Term) Term { return unify.Coerce(t) }

// NewEquation constructs a single equation, validating that no Coerce
// marker and no Ellipsis appear anywhere on lhs.
func NewEquation(lhs, rhs Term) (Equation, error) { return unify.NewEquation(lhs, rhs) }

// Equal reports whether two terms are structurally identical.
func Equal(a, b Term) bool { return unify.Equal(a, b) }
