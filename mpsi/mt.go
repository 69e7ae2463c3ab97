//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package mpsi

import (
	"io"
	"log"
	"sync"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/opprf"
)

// peerShares is one peer's contribution to the zero-sharing round,
// or the error it failed with.
type peerShares struct {
	id     PartyID
	shares []opprf.Result
	err    error
}

// conditionalSecretSharingMT is conditionalSecretSharing's
// multi-threaded twin: it still samples this party's own shares
// sequentially first (cheap, local, and every peer's points depend on
// the result), but then runs the N-1 pairwise exchanges concurrently,
// one goroutine per peer, the way gmw.Network drives one goroutine of
// peer state machine work per peer.
func (party *Party) conditionalSecretSharingMT(inputs []field.Elt, rng io.Reader) (
	[]field.Elt, error) {

	nparties := len(party.peers) + 1
	shares, sHatSum, err := party.ownShares(inputs, nparties, rng)
	if err != nil {
		return nil, err
	}

	log.Printf("mpsi: run %s: starting %d-way zero sharing exchange",
		party.RunID, len(party.peers))

	results := make(chan peerShares, len(party.peers))
	var wg sync.WaitGroup
	for _, ps := range party.peers {
		wg.Add(1)
		go func(ps *peerState) {
			defer wg.Done()

			points := make([]opprf.Point, len(inputs))
			for k, x := range inputs {
				points[k] = opprf.Point{X: x, Z: shares[k][ps.peer.ID]}
			}
			shats, err := ps.exchange(rng, points, inputs)
			if err != nil {
				log.Printf("mpsi: run %s: exchange with peer %d failed: %v",
					party.RunID, ps.peer.ID, err)
				results <- peerShares{id: ps.peer.ID, err: err}
				return
			}
			log.Printf("mpsi: run %s: exchange with peer %d done",
				party.RunID, ps.peer.ID)
			results <- peerShares{id: ps.peer.ID, shares: shats}
		}(ps)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		if r.err != nil {
			return nil, r.err
		}
		for k := range r.shares {
			sHatSum[k] = sHatSum[k].Add(r.shares[k].Y)
		}
	}

	return sHatSum, nil
}

// SendMT is Send's multi-threaded twin: the zero-sharing round runs
// concurrently across peers, but the reconstruction OPPRF toward the
// Receiver still runs after every peer's exchange has completed,
// since it is programmed with the finished running sum.
func (s *Sender) SendMT(inputs []field.Elt, rng io.Reader) error {
	sHatSum, err := s.party.conditionalSecretSharingMT(inputs, rng)
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

// receiverShares is one Sender's reconstruction contribution, or the
// error it failed with.
type receiverShares struct {
	id     PartyID
	shares []opprf.Result
	err    error
}

// ReceiveMT is Receive's multi-threaded twin: both the zero-sharing
// round and the per-Sender reconstruction collection run with one
// goroutine per peer.
func (r *Receiver) ReceiveMT(inputs []field.Elt, rng io.Reader) ([]field.Elt, error) {
	sHatSum, err := r.party.conditionalSecretSharingMT(inputs, rng)
	if err != nil {
		return nil, err
	}

	results := make(chan receiverShares, len(r.party.peers))
	var wg sync.WaitGroup
	for _, ps := range r.party.peers {
		wg.Add(1)
		go func(ps *peerState) {
			defer wg.Done()
			res, err := r.fromSend[ps.peer.ID].Receive(ps.peer.Conn, rng, inputs)
			if err != nil {
				results <- receiverShares{id: ps.peer.ID, err: err}
				return
			}
			results <- receiverShares{id: ps.peer.ID, shares: res}
		}(ps)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for rs := range results {
		if rs.err != nil {
			return nil, rs.err
		}
		for k := range rs.shares {
			sHatSum[k] = sHatSum[k].Add(rs.shares[k].Y)
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
