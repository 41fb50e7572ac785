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

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dshape.dev/go/dshape"
	"dshape.dev/go/dshape/dshapecontext"
	"dshape.dev/go/dshape/parser"
	"dshape.dev/go/internal/core/dtype"
)

func newUnifyCmd(c *Command) *Command {
	cmd := &cobra.Command{
		Use:   "unify [file]",
		Short: "unify a list of datashape equations",
		Long: `unify reads one equation per line, each of the form

	lhs => rhs

e.g. "10*10*int32 => A...*int32", and prints the resulting dimension,
element-type, and ellipsis bindings. Equations are read from file, or from
stdin if no file is given. Blank lines and lines starting with "#" are
ignored.`,
		Args: cobra.MaximumNArgs(1),
	}
	wrapped := &Command{Command: cmd, root: c.root}
	cmd.RunE = mkRunE(wrapped, runUnify)
	return wrapped
}

func runUnify(cmd *Command, args []string) error {
	var r io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("dshape: %w", err)
		}
		defer f.Close()
		r = f
	}

	lattice, err := latticeFromFlags(cmd)
	if err != nil {
		return err
	}

	var opts []dshapecontext.Option
	opts = append(opts, dshapecontext.Lattice(lattice))
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts = append(opts, dshapecontext.Trace(func(line string) {
			fmt.Fprintln(cmd.Stderr(), line)
		}))
	}
	ctx := dshapecontext.New(opts...)

	eqs, err := readEquations(r, lattice.Tags())
	if err != nil {
		return err
	}

	sol, err := ctx.Unify(eqs)
	if err != nil {
		return err
	}

	printSolution(cmd.Stdout(), sol)
	return nil
}

func latticeFromFlags(cmd *Command) (*dtype.Lattice, error) {
	path, _ := cmd.Flags().GetString("lattice")
	if path == "" {
		return dtype.DefaultLattice(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dshape: reading lattice file: %w", err)
	}
	l, err := dtype.Load(data)
	if err != nil {
		return nil, fmt.Errorf("dshape: %w", err)
	}
	return l, nil
}

func readEquations(r io.Reader, tags map[string]bool) ([]dshape.Equation, error) {
	var eqs []dshape.Equation
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq, err := parser.ParseEquation(line, tags)
		if err != nil {
			return nil, fmt.Errorf("dshape: %w", err)
		}
		eqs = append(eqs, eq)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("dshape: reading equations: %w", err)
	}
	return eqs, nil
}

func printSolution(w io.Writer, sol *dshape.Solution) {
	dims := sol.DimBindings()
	for _, name := range sortedKeys(dims) {
		fmt.Fprintf(w, "%s -> %s\n", name, termString(dims[name]))
	}
	dtypes := sol.DTypeBindings()
	for _, name := range sortedKeys(dtypes) {
		fmt.Fprintf(w, "%s -> %s\n", name, termString(dtypes[name]))
	}
	ellipses := sol.EllipsisBindings()
	for _, name := range sortedEllipsisKeys(ellipses) {
		seq := ellipses[name]
		parts := make([]string, len(seq))
		for i, t := range seq {
			parts[i] = termString(t)
		}
		fmt.Fprintf(w, "%s... -> [%s]\n", name, strings.Join(parts, ", "))
	}
}
