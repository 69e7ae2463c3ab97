//
// report.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/p2p"
	"github.com/markkurossi/tabulate"
	"golang.org/x/crypto/sha3"
)

// partyReport summarizes one party's run for the --verbose table.
type partyReport struct {
	id      int
	role    string
	precomp time.Duration
	online  time.Duration
	conns   []*p2p.Conn
}

func (pr partyReport) sent() uint64 {
	var total uint64
	for _, c := range pr.conns {
		total += c.Stats.Sent
	}
	return total
}

func (pr partyReport) recvd() uint64 {
	var total uint64
	for _, c := range pr.conns {
		total += c.Stats.Recvd
	}
	return total
}

// printReport writes the --verbose summary table: one row per party
// with phase timings and bytes-on-wire, the same shape
// apps/garbled/objdump.go uses tabulate for a per-file instruction
// table.
func printReport(w io.Writer, reports []partyReport) {
	tab := tabulate.New(tabulate.Github)
	tab.Header("Party")
	tab.Header("Role")
	tab.Header("Precomp").SetAlign(tabulate.MR)
	tab.Header("Online").SetAlign(tabulate.MR)
	tab.Header("Sent").SetAlign(tabulate.MR)
	tab.Header("Recvd").SetAlign(tabulate.MR)

	for _, pr := range reports {
		row := tab.Row()
		row.Column(fmt.Sprintf("%d", pr.id))
		row.Column(pr.role)
		row.Column(pr.precomp.String())
		row.Column(pr.online.String())
		row.Column(fmt.Sprintf("%d", pr.sent()))
		row.Column(fmt.Sprintf("%d", pr.recvd()))
	}

	tab.Print(w)
}

// digestIntersection hashes the canonical encoding of the sorted
// intersection set with SHA3-256, giving --verbose runs a short
// fingerprint to compare across VOLE/solver variants without printing
// every element.
func digestIntersection(elts []field.Elt) string {
	sorted := make([]field.Elt, len(elts))
	copy(sorted, elts)
	sort.Slice(sorted, func(i, j int) bool {
		return string(sorted[i].Bytes()) < string(sorted[j].Bytes())
	})

	h := sha3.New256()
	for _, e := range sorted {
		h.Write(e.Bytes())
	}
	return hex.EncodeToString(h.Sum(nil))
}
