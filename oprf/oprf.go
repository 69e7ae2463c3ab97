//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package oprf

import (
	"io"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/mpsierr"
	"github.com/markkurossi/mpsi/p2p"
	"github.com/markkurossi/mpsi/solver"
	"github.com/markkurossi/mpsi/vole"
)

// Sender holds a separated OPRF sender's offline state: its VOLE
// mask Delta and the codec-sized vector B it received from the VOLE
// precomputation.
type Sender struct {
	codec  solver.Codec
	params solver.Params
	delta  field.Elt
	vecB   []field.Elt
}

// PrecompSender runs the sender's offline phase: it asks voleSender
// for a correlation sized to hold queryNum points under codec's
// encoding.
func PrecompSender(r io.Reader, codec solver.Codec, voleSender vole.Sender,
	queryNum int) (*Sender, error) {

	params := codec.CalcParams(queryNum)
	m := params.CodeLength()

	b, err := voleSender.Run(r, m)
	if err != nil {
		return nil, err
	}
	if len(b) != m {
		return nil, mpsierr.New(mpsierr.InvariantViolation,
			"oprf: vole returned %d elements, want %d", len(b), m)
	}

	return &Sender{
		codec:  codec,
		params: params,
		delta:  voleSender.Delta(),
		vecB:   b,
	}, nil
}

// Send runs the sender's online phase: it receives the aux and the
// receiver's masked A' = P+A vector, reconstructs its share K =
// Delta*A' + B of the encoded function, and returns a closure evaluating
// the PRF at any point the caller supplies.
func (s *Sender) Send(conn *p2p.Conn) (func(x field.Elt) (field.Elt, error), error) {
	aux, err := s.codec.AuxReceive(conn)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}

	aDash, err := field.ReadVector(conn)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}

	m := s.params.CodeLength()
	if len(aDash) != m {
		return nil, mpsierr.New(mpsierr.Serialization,
			"oprf: received %d elements, want %d", len(aDash), m)
	}

	k := make([]field.Elt, m)
	for i := range k {
		k[i] = s.delta.Mul(aDash[i]).Add(s.vecB[i])
	}

	delta := s.delta
	codec := s.codec
	params := s.params

	return func(x field.Elt) (field.Elt, error) {
		d := codec.Decode(k, x, aux, params)
		fDash := d.Sub(delta.Mul(field.HashToField(x)))
		return field.Hash(fDash, x), nil
	}, nil
}

// Result pairs an evaluated query with its PRF output.
type Result struct {
	X, Y field.Elt
}

// Receiver holds a separated OPRF receiver's offline state: its VOLE
// shares A and C.
type Receiver struct {
	codec  solver.Codec
	params solver.Params
	vecA   []field.Elt
	vecC   []field.Elt
}

// PrecompReceiver runs the receiver's offline phase.
func PrecompReceiver(r io.Reader, codec solver.Codec, voleReceiver vole.Receiver,
	queryNum int) (*Receiver, error) {

	params := codec.CalcParams(queryNum)
	m := params.CodeLength()

	a, c, err := voleReceiver.Run(r, m)
	if err != nil {
		return nil, err
	}
	if len(a) != m || len(c) != m {
		return nil, mpsierr.New(mpsierr.InvariantViolation,
			"oprf: vole returned %d/%d elements, want %d", len(a), len(c), m)
	}

	return &Receiver{
		codec:  codec,
		params: params,
		vecA:   a,
		vecC:   c,
	}, nil
}

// Receive runs the receiver's online phase: it encodes the queries
// (retrying once with fresh aux if the codec's solver rejects the
// first attempt, at this exact call site rather than inside the
// solver), sends the aux and its masked P+A vector to the sender, and
// evaluates the PRF at each query against its own reconstruction.
func (r *Receiver) Receive(conn *p2p.Conn, rng io.Reader, queries []field.Elt) (
	[]Result, error) {

	points := make([]solver.Point, len(queries))
	for i, x := range queries {
		points[i] = solver.Point{X: x, Y: field.HashToField(x)}
	}

	aux, err := r.codec.GenAux(rng)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.InvariantViolation, err)
	}

	var p []field.Elt
	var encErr error
	for attempt := 0; attempt < 2; attempt++ {
		p, encErr = r.codec.Encode(rng, points, aux, r.params)
		if encErr == nil {
			break
		}
		aux, err = r.codec.GenAux(rng)
		if err != nil {
			return nil, mpsierr.Wrap(mpsierr.InvariantViolation, err)
		}
	}
	if encErr != nil {
		return nil, encErr
	}

	if err := r.codec.AuxSend(conn, aux); err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}

	if len(p) != len(r.vecA) {
		return nil, mpsierr.New(mpsierr.InvariantViolation,
			"oprf: encoded length %d != vole length %d", len(p), len(r.vecA))
	}

	pPlusA := make([]field.Elt, len(p))
	for i := range p {
		pPlusA[i] = p[i].Add(r.vecA[i])
	}
	if err := field.WriteVector(conn, pPlusA); err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}

	results := make([]Result, len(queries))
	for i, x := range queries {
		d := r.codec.Decode(r.vecC, x, aux, r.params)
		results[i] = Result{X: x, Y: field.Hash(d, x)}
	}

	return results, nil
}
