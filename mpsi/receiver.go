//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package mpsi

import (
	"io"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/opprf"
	"github.com/markkurossi/mpsi/solver"
	"github.com/markkurossi/mpsi/vole"
)

// Receiver is the party with id 0: the only party that learns the
// intersection.
type Receiver struct {
	party    *Party
	fromSend map[PartyID]*opprf.Receiver
}

// PrecompReceiver runs the Receiver's full offline phase: the shared
// conditional zero-sharing precomp against every peer, plus one more
// OPPRF receiver precomp per peer, dedicated to the
// conditional-reconstruction round each Sender runs toward this
// party.
func PrecompReceiver(peers []Peer, rng io.Reader, variant vole.Variant,
	codec solver.Codec, setSize int) (*Receiver, error) {

	party, err := precompParty(0, peers, rng, variant, codec, setSize)
	if err != nil {
		return nil, err
	}

	fromSend := make(map[PartyID]*opprf.Receiver, len(peers))
	for _, peer := range peers {
		r, err := newOPPRFReceiver(peer.Conn, rng, variant, codec, setSize)
		if err != nil {
			return nil, err
		}
		fromSend[peer.ID] = r
	}

	return &Receiver{party: party, fromSend: fromSend}, nil
}

// Receive runs the Receiver's online phase: the conditional
// zero-sharing round against every peer, followed by collecting every
// Sender's reconstruction share and returning the inputs whose total
// share across all parties is zero.
func (r *Receiver) Receive(inputs []field.Elt, rng io.Reader) ([]field.Elt, error) {
	sHatSum, err := r.party.conditionalSecretSharing(inputs, rng)
	if err != nil {
		return nil, err
	}

	for _, peer := range r.party.peers {
		res, err := r.fromSend[peer.peer.ID].Receive(peer.peer.Conn, rng, inputs)
		if err != nil {
			return nil, err
		}
		for k := range res {
			sHatSum[k] = sHatSum[k].Add(res[k].Y)
		}
	}

	var intersection []field.Elt
	for k, x := range inputs {
		if sHatSum[k].IsZero() {
			intersection = append(intersection, x)
		}
	}
	return intersection, nil
}
