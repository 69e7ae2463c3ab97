//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package vole

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/mpsierr"
	"github.com/markkurossi/mpsi/ot"
	"github.com/markkurossi/mpsi/p2p"
)

// regime names one of the two public LPN-VOLE parameter sets: a base
// correlation of Base elements is stretched into up to Max output
// elements, each output being the sum of Weight pseudorandomly chosen
// base elements. The original implementation delegates this choice
// to an external VOLE library's own small/medium parameter tables;
// lacking that library's internals, these values are a from-scratch
// realization of the same setup/extend shape the source exposes.
type regime struct {
	Base   int
	Max    int
	Weight int
}

var (
	smallRegime  = regime{Base: 652, Max: 1 << 17, Weight: 10}
	mediumRegime = regime{Base: 10000, Max: 1 << 22, Weight: 10}
)

// selectRegime picks LPN-small for m < 2^17 and LPN-medium otherwise,
// matching the source's setup_small/extend_small vs.
// setup_medium/extend_medium split.
func selectRegime(m int) regime {
	if m < 1<<17 {
		return smallRegime
	}
	return mediumRegime
}

// lpnDomain separates this expansion's column-index hash from any
// other use of SHA-256 elsewhere in the protocol.
const lpnDomain = "mpsi-lpn-vole-v1"

// columnIndices derives the Weight base-correlation indices that
// column t of an LPN expansion sums together. The derivation depends
// only on t and the regime, so both parties compute the same set
// without any further communication.
func columnIndices(rg regime, t int) []int {
	indices := make([]int, 0, rg.Weight)
	seen := make(map[int]bool, rg.Weight)
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(t))
	for ctr := uint64(0); len(indices) < rg.Weight; ctr++ {
		binary.BigEndian.PutUint64(buf[8:16], ctr)
		h := sha256.New()
		h.Write([]byte(lpnDomain))
		h.Write(buf[:])
		sum := h.Sum(nil)
		idx := int(binary.BigEndian.Uint64(sum[0:8]) % uint64(rg.Base))
		if !seen[idx] {
			seen[idx] = true
			indices = append(indices, idx)
		}
	}
	return indices
}

// expand sums the Weight base elements named by columnIndices(t) for
// every t in [0,m), for any vector whose entries satisfy a linear
// correlation (base is A, B or C): since the correlation
// C[i] = A[i]*Delta + B[i] is linear, applying the same linear
// combination to each of the three vectors preserves it.
func expand(rg regime, base []field.Elt, m int) []field.Elt {
	out := make([]field.Elt, m)
	for t := 0; t < m; t++ {
		var acc field.Elt
		for _, i := range columnIndices(rg, t) {
			acc = acc.Add(base[i])
		}
		out[t] = acc
	}
	return out
}

// LPNSender realizes the sender side of VOLE by stretching a small
// OT-based base correlation into a much larger one.
type LPNSender struct {
	base *OTSender
}

// NewLPNSender sets up an LPNSender over conn, using the same base-OT
// bootstrap as NewOTSender.
func NewLPNSender(base ot.OT, conn *p2p.Conn, r io.Reader) (*LPNSender, error) {
	s, err := NewOTSender(base, conn, r)
	if err != nil {
		return nil, err
	}
	return &LPNSender{base: s}, nil
}

// Delta returns the sender's correlation mask.
func (s *LPNSender) Delta() field.Elt {
	return s.base.Delta()
}

// Run produces B, the sender's half of m VOLE correlations, by
// running the OT-based construction only over the regime's small
// base size and expanding the result to m elements.
func (s *LPNSender) Run(r io.Reader, m int) ([]field.Elt, error) {
	rg := selectRegime(m)
	if m > rg.Max {
		return nil, mpsierr.New(mpsierr.VoleInsufficient,
			"vole: lpn regime capacity %d smaller than requested %d",
			rg.Max, m)
	}
	baseB, err := s.base.Run(r, rg.Base)
	if err != nil {
		return nil, err
	}
	return expand(rg, baseB, m), nil
}

// LPNReceiver realizes the receiver side of VOLE by stretching a
// small OT-based base correlation into a much larger one.
type LPNReceiver struct {
	base *OTReceiver
}

// NewLPNReceiver sets up an LPNReceiver over conn, using the same
// base-OT bootstrap as NewOTReceiver.
func NewLPNReceiver(base ot.OT, conn *p2p.Conn, r io.Reader) (*LPNReceiver, error) {
	rcv, err := NewOTReceiver(base, conn, r)
	if err != nil {
		return nil, err
	}
	return &LPNReceiver{base: rcv}, nil
}

// Run produces A and C, the receiver's half of m VOLE correlations.
func (rcv *LPNReceiver) Run(r io.Reader, m int) (a, c []field.Elt, err error) {
	rg := selectRegime(m)
	if m > rg.Max {
		return nil, nil, mpsierr.New(mpsierr.VoleInsufficient,
			"vole: lpn regime capacity %d smaller than requested %d",
			rg.Max, m)
	}
	baseA, baseC, err := rcv.base.Run(r, rg.Base)
	if err != nil {
		return nil, nil, err
	}
	return expand(rg, baseA, m), expand(rg, baseC, m), nil
}
