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

// Package cmd implements the dshape command line tool: unify, repl, and
// version subcommands wired to internal/core/unify through dshapecontext.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"dshape.dev/go/dshape/errors"
)

// ErrPrintedError is returned by a RunE to signal that a diagnostic has
// already been written to stderr and the command should merely exit
// non-zero, without cobra printing its own usage text.
var ErrPrintedError = fmt.Errorf("dshape: terminating because of errors")

// Command wraps a *cobra.Command with the handful of conveniences every
// subcommand needs: access to the root for shared flags, and stdout/stderr
// that tests can redirect.
type Command struct {
	*cobra.Command
	root *Command
}

func (c *Command) isRoot() bool { return c.root == nil || c.Command == c.root.Command }

// Stdout returns the stream RunE implementations should write results to.
func (c *Command) Stdout() io.Writer { return c.OutOrStdout() }

// Stderr returns the stream RunE implementations should write diagnostics to.
func (c *Command) Stderr() io.Writer { return c.ErrOrStderr() }

type runFunction func(cmd *Command, args []string) error

// mkRunE adapts a runFunction to cobra's RunE signature, reporting any
// returned error that is not already [ErrPrintedError] to stderr in
// dshape/errors's list format.
func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cc *cobra.Command, args []string) error {
		wrapped := &Command{Command: cc, root: c.root}
		if wrapped.root == nil {
			wrapped.root = c
		}
		err := f(wrapped, args)
		if err == nil {
			return nil
		}
		if err == ErrPrintedError {
			return err
		}
		fmt.Fprintln(wrapped.Stderr(), errors.Details(err, nil))
		return ErrPrintedError
	}
}

// New constructs the root dshape command.
func New(args []string) *Command {
	c := &Command{Command: &cobra.Command{
		Use:           "dshape",
		Short:         "unify array argument shapes against typed parameter shapes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}}
	c.root = c

	c.PersistentFlags().String("lattice", "", "path to a YAML element-type lattice (default: built-in numeric promotions)")
	c.PersistentFlags().Bool("verbose", false, "trace each solver stage to stderr")

	c.AddCommand(newUnifyCmd(c).Command)
	c.AddCommand(newReplCmd(c).Command)
	c.AddCommand(newVersionCmd(c).Command)

	c.SetArgs(args)
	return c
}

// Main runs the dshape CLI and returns a process exit code.
func Main() int {
	c := New(os.Args[1:])
	if err := c.Execute(); err != nil {
		return 1
	}
	return 0
}
