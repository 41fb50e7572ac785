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

// Package dshapecontext constructs a [Context]: a [dshape] engine bound to a
// configured element-type lattice, mirroring how cuelang.org/go/cue/cuecontext
// hands callers a single handle to evaluator state instead of threading it
// through every call.
package dshapecontext

import (
	"os"

	"dshape.dev/go/dshape"
	"dshape.dev/go/internal/core/dtype"
	"dshape.dev/go/internal/core/unify"
)

// Context binds the unification driver to a configured lattice.
type Context struct {
	driver *unify.Driver
}

// Option configures a [Context] constructed by [New].
type Option func(*options)

type options struct {
	lattice *dtype.Lattice
	trace   unify.Trace
}

// Lattice overrides the default numeric-promotion element-type lattice.
func Lattice(l *dtype.Lattice) Option {
	return func(o *options) { o.lattice = l }
}

// LatticeFile loads a lattice from a YAML file, as described in
// internal/core/dtype.Load. It panics if the file cannot be read or parsed:
// a [New]-time configuration error is a programmer error, not a runtime one
// the caller should recover from.
func LatticeFile(path string) Option {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	l, err := dtype.Load(data)
	if err != nil {
		panic(err)
	}
	return Lattice(l)
}

// Trace installs a diagnostic callback invoked at each solver stage.
func Trace(fn func(line string)) Option {
	return func(o *options) { o.trace = fn }
}

// New constructs a Context. With no options, it uses
// [dtype.DefaultLattice].
func New(opts ...Option) *Context {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	d := unify.NewDriver(o.lattice)
	d.Trace = o.trace
	return &Context{driver: d}
}

// Unify runs the engine over eqs using this context's lattice.
func (c *Context) Unify(eqs []dshape.Equation) (*dshape.Solution, error) {
	return c.driver.Unify(eqs)
}

// Substitute applies sol to t.
func (c *Context) Substitute(sol *dshape.Solution, t dshape.Term) (dshape.Term, error) {
	return c.driver.Substitute(sol, t)
}
