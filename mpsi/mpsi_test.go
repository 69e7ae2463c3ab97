//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package mpsi

import (
	"crypto/rand"
	"testing"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/p2p"
	"github.com/markkurossi/mpsi/solver"
	"github.com/markkurossi/mpsi/vole"
)

// meshPeers builds one p2p.Pipe per unordered pair of the given party
// IDs and returns, for each ID, its Peer list toward every other ID.
func meshPeers(ids []PartyID) map[PartyID][]Peer {
	out := make(map[PartyID][]Peer, len(ids))
	for _, id := range ids {
		out[id] = nil
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			ca, cb := p2p.Pipe()
			out[a] = append(out[a], Peer{ID: b, Conn: ca})
			out[b] = append(out[b], Peer{ID: a, Conn: cb})
		}
	}
	return out
}

func eltsOf(t *testing.T, vals ...uint64) []field.Elt {
	t.Helper()
	es := make([]field.Elt, len(vals))
	for i, v := range vals {
		es[i] = field.Elt{Lo: v}
	}
	return es
}

func containsElt(xs []field.Elt, x field.Elt) bool {
	for _, y := range xs {
		if y.Equal(x) {
			return true
		}
	}
	return false
}

// runMPSI runs a 3-party (receiver 0, senders 1 and 2) PSI over fresh
// in-process pipes and returns the receiver's computed intersection.
// When mt is true, the multi-threaded Send/Receive variants are used.
func runMPSI(t *testing.T, in0, in1, in2 []field.Elt, mt bool) []field.Elt {
	t.Helper()

	ids := []PartyID{0, 1, 2}
	peers := meshPeers(ids)
	codec := solver.Vandermonde{}
	setSize := len(in0)
	if len(in1) > setSize {
		setSize = len(in1)
	}
	if len(in2) > setSize {
		setSize = len(in2)
	}

	type result struct {
		inter []field.Elt
		err   error
	}
	recvCh := make(chan result, 1)
	sendErrCh := make(chan error, 2)

	go func() {
		r, err := PrecompReceiver(peers[0], rand.Reader, vole.OT, codec, setSize)
		if err != nil {
			recvCh <- result{err: err}
			return
		}
		var inter []field.Elt
		if mt {
			inter, err = r.ReceiveMT(in0, rand.Reader)
		} else {
			inter, err = r.Receive(in0, rand.Reader)
		}
		recvCh <- result{inter: inter, err: err}
	}()

	runSender := func(id PartyID, inputs []field.Elt) {
		s, err := PrecompSender(id, peers[id], rand.Reader, vole.OT, codec, setSize)
		if err != nil {
			sendErrCh <- err
			return
		}
		if mt {
			sendErrCh <- s.SendMT(inputs, rand.Reader)
		} else {
			sendErrCh <- s.Send(inputs, rand.Reader)
		}
	}
	go runSender(1, in1)
	go runSender(2, in2)

	for i := 0; i < 2; i++ {
		if err := <-sendErrCh; err != nil {
			t.Fatalf("sender failed: %v", err)
		}
	}
	recv := <-recvCh
	if recv.err != nil {
		t.Fatalf("receiver failed: %v", recv.err)
	}
	return recv.inter
}

func TestMPSIPartialOverlap(t *testing.T) {
	in0 := eltsOf(t, 1, 2, 3, 4)
	in1 := eltsOf(t, 2, 3, 5, 101)
	in2 := eltsOf(t, 2, 3, 6, 202)

	inter := runMPSI(t, in0, in1, in2, false)
	if len(inter) != 2 {
		t.Fatalf("got %d elements, want 2: %v", len(inter), inter)
	}
	for _, want := range eltsOf(t, 2, 3) {
		if !containsElt(inter, want) {
			t.Errorf("intersection missing %v", want)
		}
	}
}

func TestMPSIEmptyIntersection(t *testing.T) {
	in0 := eltsOf(t, 1, 2)
	in1 := eltsOf(t, 3, 4)
	in2 := eltsOf(t, 5, 6)

	inter := runMPSI(t, in0, in1, in2, false)
	if len(inter) != 0 {
		t.Fatalf("got %d elements, want 0: %v", len(inter), inter)
	}
}

func TestMPSIFullOverlap(t *testing.T) {
	common := eltsOf(t, 10, 20, 30)

	inter := runMPSI(t, common, common, common, false)
	if len(inter) != len(common) {
		t.Fatalf("got %d elements, want %d: %v", len(inter), len(common), inter)
	}
	for _, want := range common {
		if !containsElt(inter, want) {
			t.Errorf("intersection missing %v", want)
		}
	}
}

func TestMPSIMultiThreaded(t *testing.T) {
	in0 := eltsOf(t, 1, 2, 3, 4)
	in1 := eltsOf(t, 2, 3, 5, 101)
	in2 := eltsOf(t, 2, 3, 6, 202)

	inter := runMPSI(t, in0, in1, in2, true)
	if len(inter) != 2 {
		t.Fatalf("got %d elements, want 2: %v", len(inter), inter)
	}
	for _, want := range eltsOf(t, 2, 3) {
		if !containsElt(inter, want) {
			t.Errorf("intersection missing %v", want)
		}
	}
}
