//
// main.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Command mpsi runs the N-party Preprocessing-MPSI protocol against a
// synthetic input: every party's set shares exactly the configured
// number of common elements, and the receiver's output is checked
// against that known intersection before the program exits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/markkurossi/mpsi/env"
	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/mpsi"
	"github.com/markkurossi/mpsi/p2p"
	"github.com/markkurossi/mpsi/solver"
	"github.com/markkurossi/mpsi/vole"
)

func main() {
	nparties := flag.Int("N", 3, "number of parties")
	setSize := flag.Int("n", 16, "per-party set size")
	common := flag.Int("m", 4, "number of elements common to every party")
	variantFlag := flag.String("v", "ot", "VOLE realization: ot|lpn")
	solverFlag := flag.String("s", "vandermonde", "solver: vandermonde|paxos")
	transportFlag := flag.String("c", "crossbeam", "transport: unix|tcp|crossbeam")
	basePort := flag.Int("p", 14000, "TCP base port (transport tcp only)")
	multithread := flag.String("t", "on", "multithread the zero-sharing round: on|off")
	verbose := flag.Bool("verbose", false, "print a per-party timing/byte-count summary")
	flag.Parse()

	log.SetFlags(0)

	cfg := &env.Config{}

	if err := run(cfg.GetRandom(), *nparties, *setSize, *common, *variantFlag,
		*solverFlag, *transportFlag, *basePort, *multithread, *verbose); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(rng io.Reader, nparties, setSize, common int, variantFlag, solverFlag,
	transportFlag string, basePort int, multithread string, verbose bool) error {

	if nparties < 2 {
		return fmt.Errorf("need at least 2 parties, got %d", nparties)
	}
	if common > setSize {
		return fmt.Errorf("common (%d) must not exceed set size (%d)", common, setSize)
	}
	variant, err := parseVariant(variantFlag)
	if err != nil {
		return err
	}
	codec, err := parseSolver(solverFlag)
	if err != nil {
		return err
	}
	mt, err := parseOnOff(multithread)
	if err != nil {
		return err
	}
	tr := &transport{kind: transportFlag, port: int32(basePort)}

	sets, err := syntheticSets(rng, nparties, setSize, common)
	if err != nil {
		return err
	}

	mesh, conns, err := buildMesh(nparties, tr)
	if err != nil {
		return err
	}

	reports := make([]partyReport, nparties)
	errCh := make(chan error, nparties)
	interCh := make(chan []field.Elt, 1)

	for id := 0; id < nparties; id++ {
		id := id
		go func() {
			start := time.Now()
			if id == 0 {
				r, err := mpsi.PrecompReceiver(mesh[0], rng, variant, codec, setSize)
				if err != nil {
					errCh <- fmt.Errorf("party 0 precomp: %w", err)
					return
				}
				precomp := time.Since(start)
				start = time.Now()
				var inter []field.Elt
				if mt {
					inter, err = r.ReceiveMT(sets[0], rng)
				} else {
					inter, err = r.Receive(sets[0], rng)
				}
				reports[0] = partyReport{id: 0, role: "receiver",
					precomp: precomp, online: time.Since(start), conns: conns[0]}
				if err != nil {
					errCh <- fmt.Errorf("party 0 receive: %w", err)
					return
				}
				interCh <- inter
				errCh <- nil
				return
			}

			s, err := mpsi.PrecompSender(mpsi.PartyID(id), mesh[id], rng,
				variant, codec, setSize)
			if err != nil {
				errCh <- fmt.Errorf("party %d precomp: %w", id, err)
				return
			}
			precomp := time.Since(start)
			start = time.Now()
			if mt {
				err = s.SendMT(sets[id], rng)
			} else {
				err = s.Send(sets[id], rng)
			}
			reports[id] = partyReport{id: id, role: "sender",
				precomp: precomp, online: time.Since(start), conns: conns[id]}
			errCh <- err
		}()
	}

	var firstErr error
	for i := 0; i < nparties; i++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return firstErr
	}

	intersection := <-interCh
	if len(intersection) != common {
		return fmt.Errorf("intersection size mismatch: got %d, want %d",
			len(intersection), common)
	}

	if verbose {
		printReport(os.Stdout, reports)
		fmt.Printf("intersection digest: %s\n", digestIntersection(intersection))
	}
	fmt.Printf("mpsi: %d parties, %d-element intersection verified\n",
		nparties, len(intersection))
	return nil
}

// syntheticSets builds nparties sets of setSize field elements each,
// sharing exactly common elements across every set.
func syntheticSets(rng io.Reader, nparties, setSize, common int) ([][]field.Elt, error) {
	shared := make([]field.Elt, common)
	for i := range shared {
		e, err := field.Random(rng)
		if err != nil {
			return nil, err
		}
		shared[i] = e
	}

	sets := make([][]field.Elt, nparties)
	for p := 0; p < nparties; p++ {
		set := make([]field.Elt, setSize)
		copy(set, shared)
		for i := common; i < setSize; i++ {
			e, err := field.Random(rng)
			if err != nil {
				return nil, err
			}
			set[i] = e
		}
		sets[p] = set
	}
	return sets, nil
}

// buildMesh dials one duplex connection per unordered pair of
// parties and returns, per party, its Peer list and the raw *p2p.Conn
// list used for the --verbose byte-count report.
func buildMesh(nparties int, tr *transport) (map[int][]mpsi.Peer, map[int][]*p2p.Conn, error) {
	peers := make(map[int][]mpsi.Peer, nparties)
	conns := make(map[int][]*p2p.Conn, nparties)

	for i := 0; i < nparties; i++ {
		for j := i + 1; j < nparties; j++ {
			ci, cj, err := tr.dial()
			if err != nil {
				return nil, nil, err
			}
			peers[i] = append(peers[i], mpsi.Peer{ID: mpsi.PartyID(j), Conn: ci})
			peers[j] = append(peers[j], mpsi.Peer{ID: mpsi.PartyID(i), Conn: cj})
			conns[i] = append(conns[i], ci)
			conns[j] = append(conns[j], cj)
		}
	}
	return peers, conns, nil
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

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("unknown value %q, want on|off", s)
	}
}
