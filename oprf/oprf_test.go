//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package oprf

import (
	"crypto/rand"
	"testing"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/ot"
	"github.com/markkurossi/mpsi/p2p"
	"github.com/markkurossi/mpsi/solver"
	"github.com/markkurossi/mpsi/vole"
)

func randomQueries(t *testing.T, n int) []field.Elt {
	t.Helper()
	out := make([]field.Elt, n)
	for i := range out {
		e, err := field.Random(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = e
	}
	return out
}

func TestOPRFVandermondeSharedQueries(t *testing.T) {
	codec := solver.Vandermonde{}
	n := 12

	senderQueries := randomQueries(t, n)
	// The receiver queries the same points the sender's domain
	// covers, so every query should hit the sender's fk closure at
	// the same output both sides compute independently.
	queries := append([]field.Elt(nil), senderQueries...)

	vc0, vc1 := p2p.Pipe()

	type sResult struct {
		s   *Sender
		err error
	}
	type rResult struct {
		r   *Receiver
		err error
	}
	sCh := make(chan sResult, 1)
	rCh := make(chan rResult, 1)

	go func() {
		vs, err := vole.NewOTSender(ot.NewCO(), vc0, rand.Reader)
		if err != nil {
			sCh <- sResult{err: err}
			return
		}
		s, err := PrecompSender(rand.Reader, codec, vs, n)
		sCh <- sResult{s: s, err: err}
	}()
	go func() {
		vr, err := vole.NewOTReceiver(ot.NewCO(), vc1, rand.Reader)
		if err != nil {
			rCh <- rResult{err: err}
			return
		}
		r, err := PrecompReceiver(rand.Reader, codec, vr, n)
		rCh <- rResult{r: r, err: err}
	}()

	sr := <-sCh
	rr := <-rCh
	if sr.err != nil {
		t.Fatalf("sender precomp: %v", sr.err)
	}
	if rr.err != nil {
		t.Fatalf("receiver precomp: %v", rr.err)
	}

	pc0, pc1 := p2p.Pipe()

	fkCh := make(chan struct {
		fk  func(field.Elt) (field.Elt, error)
		err error
	}, 1)
	resCh := make(chan struct {
		res []Result
		err error
	}, 1)

	go func() {
		fk, err := sr.s.Send(pc0)
		fkCh <- struct {
			fk  func(field.Elt) (field.Elt, error)
			err error
		}{fk, err}
	}()
	go func() {
		res, err := rr.r.Receive(pc1, rand.Reader, queries)
		resCh <- struct {
			res []Result
			err error
		}{res, err}
	}()

	fkResult := <-fkCh
	resResult := <-resCh
	if fkResult.err != nil {
		t.Fatalf("send: %v", fkResult.err)
	}
	if resResult.err != nil {
		t.Fatalf("receive: %v", resResult.err)
	}

	if len(resResult.res) != len(queries) {
		t.Fatalf("got %d results, want %d", len(resResult.res), len(queries))
	}
	for i, q := range queries {
		want, err := fkResult.fk(q)
		if err != nil {
			t.Fatalf("fk(%v): %v", q, err)
		}
		if !resResult.res[i].Y.Equal(want) {
			t.Errorf("query %d: receiver=%v, sender fk=%v", i, resResult.res[i].Y, want)
		}
	}
}
