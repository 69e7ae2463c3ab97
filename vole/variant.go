//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package vole

import (
	"io"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/ot"
	"github.com/markkurossi/mpsi/p2p"
)

// Sender is the sender side of a VOLE realization: it produces B,
// its half of m correlations C=A*Delta+B, and exposes the Delta mask
// those correlations share.
type Sender interface {
	Delta() field.Elt
	Run(r io.Reader, m int) (b []field.Elt, err error)
}

// Receiver is the receiver side of a VOLE realization: it produces
// A and C, its half of m correlations C=A*Delta+B.
type Receiver interface {
	Run(r io.Reader, m int) (a, c []field.Elt, err error)
}

// Variant names which VOLE realization a party should use. The
// choice is made once at the protocol's configuration boundary (see
// cmd/mpsi's -v flag) rather than threaded through the core MPSI
// logic, which only ever sees the Sender/Receiver interfaces.
type Variant int

const (
	// OT selects the direct, 1-of-2-OT-per-bit realization.
	OT Variant = iota
	// LPN selects the stretched, base-correlation realization.
	LPN
)

// NewSender constructs the Sender realization named by v.
func NewSender(v Variant, base ot.OT, conn *p2p.Conn, r io.Reader) (Sender, error) {
	switch v {
	case LPN:
		return NewLPNSender(base, conn, r)
	default:
		return NewOTSender(base, conn, r)
	}
}

// NewReceiver constructs the Receiver realization named by v.
func NewReceiver(v Variant, base ot.OT, conn *p2p.Conn, r io.Reader) (Receiver, error) {
	switch v {
	case LPN:
		return NewLPNReceiver(base, conn, r)
	default:
		return NewOTReceiver(base, conn, r)
	}
}
