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
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is overwritten by the release process; module version info read
// from the build info is preferred when available.
var version = "unreleased"

func newVersionCmd(c *Command) *Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print the dshape version",
		Args:  cobra.NoArgs,
	}
	wrapped := &Command{Command: cmd, root: c.root}
	cmd.RunE = mkRunE(wrapped, runVersion)
	return wrapped
}

func runVersion(cmd *Command, args []string) error {
	v := version
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v = info.Main.Version
	}
	fmt.Fprintf(cmd.Stdout(), "dshape version %s\n", v)
	return nil
}
