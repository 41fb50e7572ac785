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
	"sort"
	"strconv"
	"strings"

	"dshape.dev/go/dshape"
	"dshape.dev/go/internal/core/unify"
)

// termString renders t back into the "*"-separated surface notation, the
// inverse of parser.ParseShape for the subset of terms a solved binding can
// hold (no bare Coerce markers survive substitution).
func termString(t dshape.Term) string {
	switch t.Kind {
	case unify.KindDimInt:
		return strconv.FormatInt(t.Int, 10)
	case unify.KindDimVar, unify.KindDTypeVar:
		return t.Name
	case unify.KindDType:
		return t.DType
	case unify.KindEllipsis:
		return t.Name + "..."
	case unify.KindCoerce:
		return "~" + termString(*t.Inner)
	case unify.KindShape:
		parts := make([]string, 0, len(t.Dims)+1)
		for _, d := range t.Dims {
			parts = append(parts, termString(d))
		}
		parts = append(parts, termString(*t.Elt))
		return strings.Join(parts, "*")
	default:
		return fmt.Sprintf("<%s>", t.Kind.String())
	}
}

func sortedKeys(m map[string]dshape.Term) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedEllipsisKeys(m map[string][]dshape.Term) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
