//
// main.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Command kmprt is a minimal two-party demo of the separated OPPRF
// layer in isolation: one sender programs a set of (X,Z) points, one
// receiver queries a mix of programmed and unprogrammed points, and
// the program verifies every answer against what the sender meant to
// program (or, for unprogrammed queries, against the underlying OPRF
// directly). It runs no zero-sharing or reconstruction round; see
// cmd/mpsi for the full N-party protocol.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/markkurossi/mpsi/env"
	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/opprf"
	"github.com/markkurossi/mpsi/ot"
	"github.com/markkurossi/mpsi/p2p"
	"github.com/markkurossi/mpsi/solver"
	"github.com/markkurossi/mpsi/vole"
)

func main() {
	n := flag.Int("n", 16, "number of programmed points")
	variantFlag := flag.String("v", "ot", "VOLE realization: ot|lpn")
	solverFlag := flag.String("s", "vandermonde", "solver: vandermonde|paxos")
	flag.Parse()

	log.SetFlags(0)

	rng := (&env.Config{}).GetRandom()

	variant, err := parseVariant(*variantFlag)
	if err != nil {
		log.Fatal(err)
	}
	codec, err := parseSolver(*solverFlag)
	if err != nil {
		log.Fatal(err)
	}

	programmed := make([]opprf.Point, *n)
	for i := range programmed {
		x, err := field.Random(rng)
		if err != nil {
			log.Fatal(err)
		}
		z, err := field.Random(rng)
		if err != nil {
			log.Fatal(err)
		}
		programmed[i] = opprf.Point{X: x, Z: z}
	}
	extra, err := field.Random(rng)
	if err != nil {
		log.Fatal(err)
	}
	queries := make([]field.Elt, 0, *n+1)
	for _, pt := range programmed {
		queries = append(queries, pt.X)
	}
	queries = append(queries, extra)

	precompConn0, precompConn1 := p2p.Pipe()

	type sResult struct {
		s   *opprf.Sender
		err error
	}
	type rResult struct {
		r   *opprf.Receiver
		err error
	}
	sCh := make(chan sResult, 1)
	rCh := make(chan rResult, 1)

	go func() {
		vs, err := vole.NewSender(variant, ot.NewCO(), precompConn0, rng)
		if err != nil {
			sCh <- sResult{err: err}
			return
		}
		s, err := opprf.PrecompSender(rng, codec, vs, len(queries))
		sCh <- sResult{s: s, err: err}
	}()
	go func() {
		vr, err := vole.NewReceiver(variant, ot.NewCO(), precompConn1, rng)
		if err != nil {
			rCh <- rResult{err: err}
			return
		}
		r, err := opprf.PrecompReceiver(rng, codec, vr, len(queries))
		rCh <- rResult{r: r, err: err}
	}()

	sr := <-sCh
	rr := <-rCh
	if sr.err != nil {
		log.Fatalf("sender precomp: %v", sr.err)
	}
	if rr.err != nil {
		log.Fatalf("receiver precomp: %v", rr.err)
	}

	onlineConn0, onlineConn1 := p2p.Pipe()

	type sendResult struct {
		fk  func(field.Elt) (field.Elt, error)
		err error
	}
	type recvResult struct {
		res []opprf.Result
		err error
	}
	sendCh := make(chan sendResult, 1)
	recvCh := make(chan recvResult, 1)

	go func() {
		fk, err := sr.s.Send(onlineConn0, rng, programmed)
		sendCh <- sendResult{fk, err}
	}()
	go func() {
		res, err := rr.r.Receive(onlineConn1, rng, queries)
		recvCh <- recvResult{res, err}
	}()

	send := <-sendCh
	recv := <-recvCh
	if send.err != nil {
		log.Fatalf("send: %v", send.err)
	}
	if recv.err != nil {
		log.Fatalf("receive: %v", recv.err)
	}

	ok := true
	for i, pt := range programmed {
		if !recv.res[i].Y.Equal(pt.Z) {
			fmt.Printf("programmed point %d: got %v, want %v\n", i, recv.res[i].Y, pt.Z)
			ok = false
		}
	}
	want, err := send.fk(extra)
	if err != nil {
		log.Fatalf("fk(extra): %v", err)
	}
	if !recv.res[*n].Y.Equal(want) {
		fmt.Printf("unprogrammed query: got %v, want %v\n", recv.res[*n].Y, want)
		ok = false
	}

	if !ok {
		fmt.Println("kmprt: verification failed")
		os.Exit(1)
	}
	fmt.Printf("kmprt: %d programmed points and 1 unprogrammed query verified\n", *n)
}

func parseVariant(s string) (vole.Variant, error) {
	switch s {
	case "ot":
		return vole.OT, nil
	case "lpn":
		return vole.LPN, nil
	default:
		return 0, fmt.Errorf("unknown VOLE variant %q, want ot|lpn", s)
	}
}

func parseSolver(s string) (solver.Codec, error) {
	switch s {
	case "vandermonde":
		return solver.Vandermonde{}, nil
	case "paxos":
		return solver.Paxos{}, nil
	default:
		return nil, fmt.Errorf("unknown solver %q, want vandermonde|paxos", s)
	}
}
