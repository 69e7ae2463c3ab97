//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package mpsierr

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Kind classifies the cause of an Error so that callers can branch on
// cause instead of matching message text.
type Kind int

const (
	// Transport indicates a read/write/flush failure on the
	// underlying peer connection.
	Transport Kind = iota

	// Serialization indicates malformed or truncated wire data that
	// could not be decoded into the expected type.
	Serialization

	// VoleInsufficient indicates a request for more VOLE correlations
	// than the selected VOLE construction can produce.
	VoleInsufficient

	// SolverTooManyConstraints indicates PaXoS encoding failed
	// because the cuckoo graph yielded more cycle constraints than
	// the R right-segment cells can absorb.
	SolverTooManyConstraints

	// SolverNoSolution indicates the solver's linear system over
	// GF(2) had no solution for the given constraints.
	SolverNoSolution

	// InvariantViolation indicates an internal consistency check
	// failed: a bug in this module rather than bad input or a peer
	// fault.
	InvariantViolation

	// ProtocolMisuse indicates the caller invoked an API in a way the
	// protocol does not allow, such as requesting an operation out of
	// the offline/online phase order.
	ProtocolMisuse
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport"
	case Serialization:
		return "serialization"
	case VoleInsufficient:
		return "vole insufficient"
	case SolverTooManyConstraints:
		return "solver: too many constraints"
	case SolverNoSolution:
		return "solver: no solution"
	case InvariantViolation:
		return "invariant violation"
	case ProtocolMisuse:
		return "protocol misuse"
	default:
		return "unknown"
	}
}

// Error is an mpsi error tagged with a Kind and a call-site
// breadcrumb, wrapping an optional underlying cause.
type Error struct {
	Kind  Kind
	Where string
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s @%s: %v", e.Kind, e.Where, e.Err)
	}
	return fmt.Sprintf("%s @%s", e.Kind, e.Where)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags err with kind and the caller's file:line breadcrumb so
// the failure site survives propagation through several layers of
// callers. Wrap returns nil if err is nil, so it is safe to call
// unconditionally as `return mpsierr.Wrap(mpsierr.Transport, err)`.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	where := "unknown"
	if _, file, line, ok := runtime.Caller(1); ok {
		where = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	return &Error{Kind: kind, Where: where, Err: err}
}

// New creates a bare Error of the given kind with no wrapped cause,
// for conditions detected directly rather than propagated from a
// failed call.
func New(kind Kind, format string, args ...interface{}) error {
	where := "unknown"
	if _, file, line, ok := runtime.Caller(1); ok {
		where = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	return &Error{Kind: kind, Where: where, Err: fmt.Errorf(format, args...)}
}
