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

// Package parser is a minimal frontend for the textual datashape notation
// used throughout spec.md's examples: dimensions and an element type
// separated by "*", an optional "~" coercion marker on any RHS term, and
// "name..." for a named ellipsis.
//
// This is deliberately not a general datashape grammar (no records, no
// tuples, no nested shapes): spec.md treats surface syntax as an external,
// pluggable concern, and this package exists only so that [cmd/dshape] and
// tests have a concrete, runnable frontend to drive the engine with.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"dshape.dev/go/dshape"
)

// ParseShape parses a single datashape, e.g. "10*10*int32", "A...*int32", or
// "~A...*int32". tags reports which element-type spellings are concrete
// dtypes; anything else in element position is treated as a dtype variable.
func ParseShape(src string, tags map[string]bool) (dshape.Term, error) {
	fields := strings.Split(src, "*")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
		if fields[i] == "" {
			return dshape.Term{}, fmt.Errorf("parser: empty term in %q", src)
		}
	}

	eltTok := fields[len(fields)-1]
	elt, err := parseElt(eltTok, tags)
	if err != nil {
		return dshape.Term{}, fmt.Errorf("parser: %w", err)
	}

	dims := make([]dshape.Term, 0, len(fields)-1)
	for _, tok := range fields[:len(fields)-1] {
		d, err := parseDim(tok)
		if err != nil {
			return dshape.Term{}, fmt.Errorf("parser: %w", err)
		}
		dims = append(dims, d)
	}

	return dshape.Shape(dims, elt), nil
}

func parseDim(tok string) (dshape.Term, error) {
	coerce := false
	if strings.HasPrefix(tok, "~") {
		coerce = true
		tok = tok[1:]
	}

	var t dshape.Term
	switch {
	case strings.HasSuffix(tok, "..."):
		name := tok[:len(tok)-len("...")]
		if name == "" {
			t = dshape.AnonEllipsis()
		} else if !isIdent(name) {
			return dshape.Term{}, fmt.Errorf("invalid ellipsis name %q", name)
		} else {
			t = dshape.Ellipsis(name)
		}
	case isInt(tok):
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return dshape.Term{}, fmt.Errorf("invalid dimension %q: %w", tok, err)
		}
		if n < 0 {
			return dshape.Term{}, fmt.Errorf("dimension %q must be non-negative", tok)
		}
		t = dshape.DimInt(n)
	case isIdent(tok):
		t = dshape.DimVar(tok)
	default:
		return dshape.Term{}, fmt.Errorf("invalid dimension term %q", tok)
	}

	if coerce {
		return dshape.Coerce(t), nil
	}
	return t, nil
}

func parseElt(tok string, tags map[string]bool) (dshape.Term, error) {
	coerce := false
	if strings.HasPrefix(tok, "~") {
		coerce = true
		tok = tok[1:]
	}
	if !isIdent(tok) {
		return dshape.Term{}, fmt.Errorf("invalid element-type term %q", tok)
	}

	var t dshape.Term
	if tags[tok] {
		t = dshape.DType(tok)
	} else {
		t = dshape.DTypeVar(tok)
	}
	if coerce {
		return dshape.Coerce(t), nil
	}
	return t, nil
}

func isInt(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// ParseEquation parses "lhs => rhs" into a [dshape.Equation]. Coercion is
// expressed per-term on the RHS with a "~" prefix, e.g. "a*b*c => 10*~B...*c".
func ParseEquation(line string, tags map[string]bool) (dshape.Equation, error) {
	parts := strings.SplitN(line, "=>", 2)
	if len(parts) != 2 {
		return dshape.Equation{}, fmt.Errorf("parser: expected \"lhs => rhs\", got %q", line)
	}

	lhs, err := ParseShape(strings.TrimSpace(parts[0]), tags)
	if err != nil {
		return dshape.Equation{}, err
	}
	rhs, err := ParseShape(strings.TrimSpace(parts[1]), tags)
	if err != nil {
		return dshape.Equation{}, err
	}

	return dshape.NewEquation(lhs, rhs)
}
