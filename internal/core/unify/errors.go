package unify

import (
	"fmt"

	"dshape.dev/go/dshape/errors"
	"dshape.dev/go/dshape/token"
)

// ErrorCode indicates which of the seven structural-failure kinds a
// unification error belongs to. The kind may influence how a caller reports
// or retries; no other aspect of an error should influence control flow.
type ErrorCode int8

const (
	// ArityMismatch means two fixed-arity (no-ellipsis) shapes had
	// different dimension counts.
	ArityMismatch ErrorCode = iota // arity mismatch
	// Clash means two terms were irreducibly different in structure, e.g.
	// a DimInt against a DType.
	Clash // clash
	// OccursCheck means a variable would be bound to a term that contains
	// it.
	OccursCheck // occurs check
	// BroadcastIncompatible means two non-1 unequal dimensions met under a
	// coercion equation.
	BroadcastIncompatible // broadcast incompatible
	// CastIncompatible means an LHS dtype could not cast to an RHS dtype
	// under the active lattice.
	CastIncompatible // cast incompatible
	// MalformedEquation means the input violated a construction-time
	// invariant: LHS coercion, LHS ellipsis, or multiple RHS ellipses.
	MalformedEquation // malformed equation
	// UnboundVariable means Substitute was invoked with a term that has a
	// free variable absent from the solution.
	UnboundVariable // unbound variable
)

//go:generate go tool stringer -type=ErrorCode -linecomment

func (c ErrorCode) String() string {
	switch c {
	case ArityMismatch:
		return "arity mismatch"
	case Clash:
		return "clash"
	case OccursCheck:
		return "occurs check"
	case BroadcastIncompatible:
		return "broadcast incompatible"
	case CastIncompatible:
		return "cast incompatible"
	case MalformedEquation:
		return "malformed equation"
	case UnboundVariable:
		return "unbound variable"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int8(c))
	}
}

// unifyError is the concrete error value the engine returns. It implements
// errors.Error so that callers can use dshape/errors.Positions, Path, etc.
type unifyError struct {
	code     ErrorCode
	pos      token.Pos
	lhs, rhs Term
	errors.Message
}

var _ errors.Error = (*unifyError)(nil)

func newError(code ErrorCode, pos token.Pos, lhs, rhs Term, format string, args ...interface{}) *unifyError {
	return &unifyError{
		code:    code,
		pos:     pos,
		lhs:     lhs,
		rhs:     rhs,
		Message: errors.NewMessagef("%s: "+format, append([]interface{}{code}, args...)...),
	}
}

func (e *unifyError) Position() token.Pos         { return e.pos }
func (e *unifyError) InputPositions() []token.Pos { return nil }
func (e *unifyError) Path() []string              { return nil }

// Code returns the structural-failure kind.
func (e *unifyError) Code() ErrorCode { return e.code }

// Pair returns the offending pair of terms, as required by spec §7.
func (e *unifyError) Pair() (lhs, rhs Term) { return e.lhs, e.rhs }
