//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package mpsi

import (
	"io"
	"log"

	"github.com/google/uuid"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/mpsierr"
	"github.com/markkurossi/mpsi/opprf"
	"github.com/markkurossi/mpsi/ot"
	"github.com/markkurossi/mpsi/p2p"
	"github.com/markkurossi/mpsi/solver"
	"github.com/markkurossi/mpsi/vole"
)

// PartyID identifies a party in the protocol. The Receiver's ID is
// always 0; Senders hold IDs 1..N-1.
type PartyID int

// Peer is this party's connection to one other party.
type Peer struct {
	ID   PartyID
	Conn *p2p.Conn
}

// peerState holds one peer's precomputed OPPRF state for the
// conditional zero-sharing round, plus the send/receive order the two
// sides agreed to by comparing IDs: the lower ID always initializes
// and uses its OPPRF sender first, mirroring the "party with the
// lowest PID gets to initialize their OPPRF sender first" rule.
type peerState struct {
	peer        Peer
	sender      *opprf.Sender
	receiver    *opprf.Receiver
	senderFirst bool
}

// Party runs the conditional zero-sharing round common to both
// Sender and Receiver. RunID tags every log line this run's party
// emits, so the interleaved per-peer goroutine logs in the MT
// orchestrator can be correlated back to one run.
type Party struct {
	id    PartyID
	RunID uuid.UUID
	peers []*peerState
}

// precompParty runs one OPPRF sender precomp and one OPPRF receiver
// precomp against every peer, in the order both sides agree on solely
// from comparing PartyIDs so that no extra negotiation round is
// needed.
func precompParty(id PartyID, peers []Peer, rng io.Reader, variant vole.Variant,
	codec solver.Codec, setSize int) (*Party, error) {

	runID := uuid.New()
	log.Printf("mpsi: party %d precomp starting, run %s, %d peers",
		id, runID, len(peers))

	states := make([]*peerState, len(peers))
	for i, peer := range peers {
		ps := &peerState{peer: peer, senderFirst: id < peer.ID}

		var err error
		if ps.senderFirst {
			ps.sender, err = newOPPRFSender(peer.Conn, rng, variant, codec, setSize)
			if err != nil {
				return nil, err
			}
			ps.receiver, err = newOPPRFReceiver(peer.Conn, rng, variant, codec, setSize)
			if err != nil {
				return nil, err
			}
		} else {
			ps.receiver, err = newOPPRFReceiver(peer.Conn, rng, variant, codec, setSize)
			if err != nil {
				return nil, err
			}
			ps.sender, err = newOPPRFSender(peer.Conn, rng, variant, codec, setSize)
			if err != nil {
				return nil, err
			}
		}
		states[i] = ps
	}

	return &Party{id: id, RunID: runID, peers: states}, nil
}

// newOPPRFSender bootstraps a fresh base OT and VOLE sender over conn
// and runs the OPPRF sender's offline phase.
func newOPPRFSender(conn *p2p.Conn, rng io.Reader, variant vole.Variant,
	codec solver.Codec, setSize int) (*opprf.Sender, error) {

	vs, err := vole.NewSender(variant, ot.NewCO(), conn, rng)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}
	return opprf.PrecompSender(rng, codec, vs, setSize)
}

// newOPPRFReceiver bootstraps a fresh base OT and VOLE receiver over
// conn and runs the OPPRF receiver's offline phase.
func newOPPRFReceiver(conn *p2p.Conn, rng io.Reader, variant vole.Variant,
	codec solver.Codec, setSize int) (*opprf.Receiver, error) {

	vr, err := vole.NewReceiver(variant, ot.NewCO(), conn, rng)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}
	return opprf.PrecompReceiver(rng, codec, vr, setSize)
}

// secretSharingOfZero samples nparties field elements summing to
// zero: the first nparties-1 are uniformly random, and the last is
// their running sum. Indices correspond directly to PartyIDs, since
// this protocol's party IDs are exactly 0..nparties-1.
func secretSharingOfZero(nparties int, rng io.Reader) ([]field.Elt, error) {
	shares := make([]field.Elt, nparties)
	sum := field.Zero()
	for i := 0; i < nparties-1; i++ {
		e, err := field.Random(rng)
		if err != nil {
			return nil, mpsierr.Wrap(mpsierr.InvariantViolation, err)
		}
		shares[i] = e
		sum = sum.Add(e)
	}
	shares[nparties-1] = sum
	return shares, nil
}

// exchange runs one peer's conditional-zero-sharing OPPRF round trip:
// this party sends points (its zero-shares for every input, destined
// for peer) and receives peer's equivalent shares, in whichever order
// the two sides agreed at precomp time.
func (ps *peerState) exchange(rng io.Reader, points []opprf.Point, inputs []field.Elt) (
	[]opprf.Result, error) {

	if ps.senderFirst {
		if _, err := ps.sender.Send(ps.peer.Conn, rng, points); err != nil {
			return nil, err
		}
		return ps.receiver.Receive(ps.peer.Conn, rng, inputs)
	}
	shats, err := ps.receiver.Receive(ps.peer.Conn, rng, inputs)
	if err != nil {
		return nil, err
	}
	if _, err := ps.sender.Send(ps.peer.Conn, rng, points); err != nil {
		return nil, err
	}
	return shats, nil
}

// conditionalSecretSharing runs the zero-sharing round against every
// peer, one at a time, and returns this party's running sum of shares
// for every input.
func (party *Party) conditionalSecretSharing(inputs []field.Elt, rng io.Reader) (
	[]field.Elt, error) {

	nparties := len(party.peers) + 1
	shares, sHatSum, err := party.ownShares(inputs, nparties, rng)
	if err != nil {
		return nil, err
	}

	for _, ps := range party.peers {
		points := make([]opprf.Point, len(inputs))
		for k, x := range inputs {
			points[k] = opprf.Point{X: x, Z: shares[k][ps.peer.ID]}
		}
		shats, err := ps.exchange(rng, points, inputs)
		if err != nil {
			return nil, err
		}
		for k := range shats {
			sHatSum[k] = sHatSum[k].Add(shats[k].Y)
		}
	}

	return sHatSum, nil
}

// ownShares samples a fresh zero-sharing for every input and splits
// off this party's own share of each.
func (party *Party) ownShares(inputs []field.Elt, nparties int, rng io.Reader) (
	shares [][]field.Elt, sHatSum []field.Elt, err error) {

	shares = make([][]field.Elt, len(inputs))
	sHatSum = make([]field.Elt, len(inputs))
	for k := range inputs {
		s, err := secretSharingOfZero(nparties, rng)
		if err != nil {
			return nil, nil, err
		}
		shares[k] = s
		sHatSum[k] = s[party.id]
	}
	return shares, sHatSum, nil
}
