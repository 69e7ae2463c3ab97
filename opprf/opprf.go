//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package opprf

import (
	"io"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/mpsierr"
	"github.com/markkurossi/mpsi/oprf"
	"github.com/markkurossi/mpsi/p2p"
	"github.com/markkurossi/mpsi/solver"
	"github.com/markkurossi/mpsi/vole"
)

// Point is an input/output pair the sender programs: it wants the
// function to evaluate to Z at X.
type Point struct {
	X, Z field.Elt
}

// Result pairs an evaluated query with its programmable-PRF output.
type Result struct {
	X, Y field.Elt
}

// Sender holds a separated OPPRF sender's offline state.
type Sender struct {
	oprfSender *oprf.Sender
	codec      solver.Codec
	params     solver.Params
}

// PrecompSender runs the sender's offline phase: the OPPRF and its
// underlying OPRF share one VOLE correlation and one codec's
// parameters, since both encode exactly queryNum points.
func PrecompSender(r io.Reader, codec solver.Codec, voleSender vole.Sender,
	queryNum int) (*Sender, error) {

	params := codec.CalcParams(queryNum)
	os, err := oprf.PrecompSender(r, codec, voleSender, queryNum)
	if err != nil {
		return nil, err
	}
	return &Sender{oprfSender: os, codec: codec, params: params}, nil
}

// Send runs the sender's online phase: it runs the underlying OPRF's
// Send to get fk, computes the correction Z-fk(X) at every programmed
// point, encodes those corrections into a second codeword, and
// returns a closure that adds the decoded correction back onto fk.
func (s *Sender) Send(conn *p2p.Conn, rng io.Reader, points []Point) (
	func(x field.Elt) (field.Elt, error), error) {

	fk, err := s.oprfSender.Send(conn)
	if err != nil {
		return nil, err
	}

	solverPoints := make([]solver.Point, len(points))
	for i, pt := range points {
		fx, err := fk(pt.X)
		if err != nil {
			return nil, err
		}
		solverPoints[i] = solver.Point{X: pt.X, Y: pt.Z.Sub(fx)}
	}

	aux, err := s.codec.GenAux(rng)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.InvariantViolation, err)
	}

	var p []field.Elt
	var encErr error
	for attempt := 0; attempt < 2; attempt++ {
		p, encErr = s.codec.Encode(rng, solverPoints, aux, s.params)
		if encErr == nil {
			break
		}
		aux, err = s.codec.GenAux(rng)
		if err != nil {
			return nil, mpsierr.Wrap(mpsierr.InvariantViolation, err)
		}
	}
	if encErr != nil {
		return nil, encErr
	}

	if err := s.codec.AuxSend(conn, aux); err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}
	if err := field.WriteVector(conn, p); err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}

	codec := s.codec
	params := s.params
	return func(x field.Elt) (field.Elt, error) {
		d := codec.Decode(p, x, aux, params)
		fx, err := fk(x)
		if err != nil {
			return field.Elt{}, err
		}
		return d.Add(fx), nil
	}, nil
}

// Receiver holds a separated OPPRF receiver's offline state.
type Receiver struct {
	oprfReceiver *oprf.Receiver
	codec        solver.Codec
	params       solver.Params
}

// PrecompReceiver runs the receiver's offline phase.
func PrecompReceiver(r io.Reader, codec solver.Codec, voleReceiver vole.Receiver,
	queryNum int) (*Receiver, error) {

	params := codec.CalcParams(queryNum)
	or, err := oprf.PrecompReceiver(r, codec, voleReceiver, queryNum)
	if err != nil {
		return nil, err
	}
	return &Receiver{oprfReceiver: or, codec: codec, params: params}, nil
}

// Receive runs the receiver's online phase: it runs the underlying
// OPRF's Receive, then receives the sender's correction codeword and
// adds its decoded value back onto each OPRF output.
func (r *Receiver) Receive(conn *p2p.Conn, rng io.Reader, queries []field.Elt) (
	[]Result, error) {

	oprfRes, err := r.oprfReceiver.Receive(conn, rng, queries)
	if err != nil {
		return nil, err
	}

	aux, err := r.codec.AuxReceive(conn)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}
	p, err := field.ReadVector(conn)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}

	results := make([]Result, len(oprfRes))
	for i, o := range oprfRes {
		y := r.codec.Decode(p, o.X, aux, r.params).Add(o.Y)
		results[i] = Result{X: o.X, Y: y}
	}
	return results, nil
}
