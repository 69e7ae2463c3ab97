//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package mpsi

import (
	"io"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/mpsierr"
	"github.com/markkurossi/mpsi/opprf"
	"github.com/markkurossi/mpsi/solver"
	"github.com/markkurossi/mpsi/vole"
)

// Sender is a party holding id in 1..N-1: it learns nothing about the
// intersection, only contributes its input set to it.
type Sender struct {
	party    *Party
	toRecv   *opprf.Sender
	receiver Peer
}

// PrecompSender runs a Sender's full offline phase: the shared
// conditional zero-sharing precomp against every peer, plus one more
// OPPRF sender precomp dedicated to the conditional-reconstruction
// round this party runs toward the Receiver (party 0).
func PrecompSender(id PartyID, peers []Peer, rng io.Reader, variant vole.Variant,
	codec solver.Codec, setSize int) (*Sender, error) {

	if id == 0 {
		return nil, mpsierr.New(mpsierr.ProtocolMisuse,
			"Sender id must not be 0, that is the Receiver's id")
	}

	var receiver Peer
	found := false
	for _, p := range peers {
		if p.ID == 0 {
			receiver = p
			found = true
		}
	}
	if !found {
		return nil, mpsierr.New(mpsierr.ProtocolMisuse,
			"Sender peers must include the Receiver (id 0)")
	}

	party, err := precompParty(id, peers, rng, variant, codec, setSize)
	if err != nil {
		return nil, err
	}

	toRecv, err := newOPPRFSender(receiver.Conn, rng, variant, codec, setSize)
	if err != nil {
		return nil, err
	}

	return &Sender{party: party, toRecv: toRecv, receiver: receiver}, nil
}

// Send runs the Sender's online phase: the conditional zero-sharing
// round against every peer, followed by programming the
// reconstruction OPPRF toward the Receiver with this party's running
// zero-share sum at every input.
func (s *Sender) Send(inputs []field.Elt, rng io.Reader) error {
	sHatSum, err := s.party.conditionalSecretSharing(inputs, rng)
	if err != nil {
		return err
	}

	points := make([]opprf.Point, len(inputs))
	for k, x := range inputs {
		points[k] = opprf.Point{X: x, Z: sHatSum[k]}
	}

	_, err = s.toRecv.Send(s.receiver.Conn, rng, points)
	return err
}
