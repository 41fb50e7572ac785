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
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"dshape.dev/go/dshape"
	"dshape.dev/go/dshape/dshapecontext"
	"dshape.dev/go/dshape/errors"
	"dshape.dev/go/dshape/parser"
	"dshape.dev/go/internal/core/dtype"
)

func newReplCmd(c *Command) *Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "interactively unify one equation at a time",
		Long: `repl reads one equation per line from stdin and prints its solution, or its
error, before reading the next. Equations are independent: each line starts
a fresh Unify call.

A line may also be one of the repl's own directives, tokenized the same way
a shell would (so a lattice path containing spaces can be quoted):

	:lattice <path>   load a new element-type lattice from path
	:lattice default  revert to the built-in lattice
	:quit             exit

`,
		Args: cobra.NoArgs,
	}
	wrapped := &Command{Command: cmd, root: c.root}
	cmd.RunE = mkRunE(wrapped, runRepl)
	return wrapped
}

func runRepl(cmd *Command, args []string) error {
	lattice, err := latticeFromFlags(cmd)
	if err != nil {
		return err
	}

	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.Stdout()
	errOut := cmd.Stderr()

	for {
		fmt.Fprint(out, "dshape> ")
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			words, err := shlex.Split(line[1:])
			if err != nil {
				fmt.Fprintf(errOut, "dshape: %v\n", err)
				continue
			}
			if len(words) == 0 {
				continue
			}
			switch words[0] {
			case "quit", "exit":
				return nil
			case "lattice":
				if len(words) != 2 {
					fmt.Fprintln(errOut, "dshape: usage: :lattice <path>|default")
					continue
				}
				if words[1] == "default" {
					lattice = dtype.DefaultLattice()
					continue
				}
				l, err := loadLatticeFile(words[1])
				if err != nil {
					fmt.Fprintf(errOut, "dshape: %v\n", err)
					continue
				}
				lattice = l
			default:
				fmt.Fprintf(errOut, "dshape: unknown directive %q\n", words[0])
			}
			continue
		}

		eq, err := parser.ParseEquation(line, lattice.Tags())
		if err != nil {
			fmt.Fprintf(errOut, "dshape: %v\n", err)
			continue
		}

		ctx := dshapecontext.New(dshapecontext.Lattice(lattice))
		sol, err := ctx.Unify([]dshape.Equation{eq})
		if err != nil {
			fmt.Fprint(errOut, errors.Details(err, nil))
			continue
		}
		printSolution(out, sol)
	}
	return nil
}

func loadLatticeFile(path string) (*dtype.Lattice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lattice file: %w", err)
	}
	return dtype.Load(data)
}
