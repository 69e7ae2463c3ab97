//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package solver

import (
	"io"

	"github.com/markkurossi/mpsi/field"
)

// Codec is the common shape both solvers (PaXoS and Vandermonde)
// implement, so that the OPRF/OPPRF layers above can be parameterized
// over "whichever solver the caller configured" without knowing
// which one it is.
type Codec interface {
	// GenAux samples fresh auxiliary seed material for one encoding
	// attempt.
	GenAux(rng io.Reader) (Aux, error)

	// AuxSend/AuxReceive exchange the aux the encoder used, so the
	// decoder can reproduce the same hash parameters.
	AuxSend(conn auxConn, aux Aux) error
	AuxReceive(conn auxConn) (Aux, error)

	// CalcParams derives this codec's encoding parameters from the
	// number of points it must encode.
	CalcParams(n int) Params

	// Encode and Decode are this codec's Encode/Decode functions.
	Encode(rng io.Reader, points []Point, aux Aux, params Params) ([]field.Elt, error)
	Decode(p []field.Elt, x field.Elt, aux Aux, params Params) field.Elt
}

// Paxos is the Codec realized by the PaXoS cuckoo-graph solver.
type Paxos struct{}

// GenAux implements Codec.
func (Paxos) GenAux(rng io.Reader) (Aux, error) { return GenAux(rng) }

// AuxSend implements Codec.
func (Paxos) AuxSend(conn auxConn, aux Aux) error { return aux.Send(conn) }

// AuxReceive implements Codec.
func (Paxos) AuxReceive(conn auxConn) (Aux, error) { return ReceiveAux(conn) }

// CalcParams implements Codec.
func (Paxos) CalcParams(n int) Params { return CalcParams(n) }

// Encode implements Codec.
func (Paxos) Encode(rng io.Reader, points []Point, aux Aux, params Params) ([]field.Elt, error) {
	return Encode(rng, points, aux, params)
}

// Decode implements Codec.
func (Paxos) Decode(p []field.Elt, x field.Elt, aux Aux, params Params) field.Elt {
	return Decode(p, x, aux, params)
}

// Vandermonde is the Codec realized by Lagrange interpolation. It has
// no auxiliary seed and never fails to encode a set of points with
// distinct x values, so AuxSend/AuxReceive are no-ops and GenAux
// always returns the zero Aux.
type Vandermonde struct{}

// GenAux implements Codec.
func (Vandermonde) GenAux(rng io.Reader) (Aux, error) { return Aux{}, nil }

// AuxSend implements Codec.
func (Vandermonde) AuxSend(conn auxConn, aux Aux) error { return nil }

// AuxReceive implements Codec.
func (Vandermonde) AuxReceive(conn auxConn) (Aux, error) { return Aux{}, nil }

// CalcParams implements Codec: Vandermonde's code length is exactly
// the number of points it encodes, with no right-segment slack.
func (Vandermonde) CalcParams(n int) Params { return Params{L: n, R: 0} }

// Encode implements Codec.
func (Vandermonde) Encode(rng io.Reader, points []Point, aux Aux, params Params) ([]field.Elt, error) {
	return VandermondeEncode(points)
}

// Decode implements Codec.
func (Vandermonde) Decode(p []field.Elt, x field.Elt, aux Aux, params Params) field.Elt {
	return VandermondeDecode(p, x)
}
