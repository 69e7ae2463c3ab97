//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package vole

import (
	"io"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/mpsierr"
	"github.com/markkurossi/mpsi/otext"
	"github.com/markkurossi/mpsi/ot"
	"github.com/markkurossi/mpsi/p2p"
)

// OTSender realizes the sender side of VOLE directly from 1-of-2 OT.
// It samples Delta and, for every output position, derives B[i] from
// m*128 random-OT instances that it drives as an IKNP sender.
type OTSender struct {
	conn  *p2p.Conn
	iknp  *otext.IKNPSender
	delta field.Elt
}

// NewOTSender sets up an OTSender over conn. base must not yet have
// had InitReceiver called: the IKNP sender role bootstraps on a base
// OT where this party is the *receiver*, since IKNP swaps roles at
// the base-OT level.
func NewOTSender(base ot.OT, conn *p2p.Conn, r io.Reader) (*OTSender, error) {
	if err := base.InitReceiver(conn); err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}
	iknp, err := otext.NewIKNPSender(base, conn, r)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}
	delta, err := field.Random(r)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}
	for delta.IsZero() {
		delta, err = field.Random(r)
		if err != nil {
			return nil, mpsierr.Wrap(mpsierr.Transport, err)
		}
	}
	return &OTSender{conn: conn, iknp: iknp, delta: delta}, nil
}

// Delta returns the sender's correlation mask.
func (s *OTSender) Delta() field.Elt {
	return s.delta
}

// Run produces B, the sender's half of m VOLE correlations C=A*Delta+B.
//
// For each of the m outputs and each of the 128 bits of Delta, Run
// asks the IKNP extension for one random-OT instance and uses its two
// labels (L0, L1) as one-time pads over the pair (rho, rho+2^j*Delta):
// it sends d0=rho^L0 and d1=(rho+2^j*Delta)^L1 in the clear, so a
// receiver who holds exactly one of L0/L1 (per its choice of bit j of
// A[i]) can recover exactly one of rho/rho+2^j*Delta, and no more.
// B[i] accumulates the rho terms, so that summing the receiver's
// recovered terms across j yields A[i]*Delta+B[i].
func (s *OTSender) Run(r io.Reader, m int) ([]field.Elt, error) {
	total := m * field.Bits
	wires, err := s.iknp.Expand(total)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}

	deltaPows := make([]field.Elt, field.Bits)
	pow := s.delta
	for j := 0; j < field.Bits; j++ {
		deltaPows[j] = pow
		pow = pow.Mul(field.Two())
	}

	b := make([]field.Elt, m)
	masked := make([]byte, 2*field.Len)
	for i := 0; i < m; i++ {
		var acc field.Elt
		for j := 0; j < field.Bits; j++ {
			rho, err := field.Random(r)
			if err != nil {
				return nil, mpsierr.Wrap(mpsierr.Transport, err)
			}
			acc = acc.Add(rho)

			w := wires[i*field.Bits+j]
			var l0, l1 ot.LabelData
			w.L0.GetData(&l0)
			w.L1.GetData(&l1)

			m0 := xorBytes(rho.Bytes(), l0[:])
			m1 := xorBytes(rho.Add(deltaPows[j]).Bytes(), l1[:])
			copy(masked[0:field.Len], m0)
			copy(masked[field.Len:], m1)
			if err := s.conn.SendData(masked); err != nil {
				return nil, mpsierr.Wrap(mpsierr.Transport, err)
			}
		}
		b[i] = acc
	}
	if err := s.conn.Flush(); err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}
	return b, nil
}

// OTReceiver realizes the receiver side of VOLE directly from 1-of-2
// OT, producing A and C such that C[i] = A[i]*Delta + B[i].
type OTReceiver struct {
	conn *p2p.Conn
	iknp *otext.IKNPReceiver
}

// NewOTReceiver sets up an OTReceiver over conn. base must not yet
// have had InitSender called: IKNP's receiver role bootstraps on a
// base OT where this party is the *sender*.
func NewOTReceiver(base ot.OT, conn *p2p.Conn, r io.Reader) (*OTReceiver, error) {
	if err := base.InitSender(conn); err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}
	iknp, err := otext.NewIKNPReceiver(base, conn, r)
	if err != nil {
		return nil, mpsierr.Wrap(mpsierr.Transport, err)
	}
	return &OTReceiver{conn: conn, iknp: iknp}, nil
}

// Run produces A and C, the receiver's half of m VOLE correlations.
//
// For each output i, Run samples A[i] (rejecting and resampling a
// zero element), and uses bit j of A[i] as its choice flag for OT
// instance i*128+j. It receives the chosen label from the IKNP
// extension and the sender's masked (d0, d1) pair, recovers the
// chosen message by unmasking with the label, and sums the 128 values
// recovered across j into C[i].
func (rcv *OTReceiver) Run(r io.Reader, m int) (a, c []field.Elt, err error) {
	total := m * field.Bits

	as := make([]field.Elt, m)
	flags := make([]bool, total)
	for i := 0; i < m; i++ {
		elt, err := field.Random(r)
		if err != nil {
			return nil, nil, mpsierr.Wrap(mpsierr.Transport, err)
		}
		for elt.IsZero() {
			elt, err = field.Random(r)
			if err != nil {
				return nil, nil, mpsierr.Wrap(mpsierr.Transport, err)
			}
		}
		as[i] = elt
		for j := 0; j < field.Bits; j++ {
			flags[i*field.Bits+j] = elt.Bit(j)
		}
	}

	labels, err := rcv.iknp.Expand(flags)
	if err != nil {
		return nil, nil, mpsierr.Wrap(mpsierr.Transport, err)
	}

	cs := make([]field.Elt, m)
	for i := 0; i < m; i++ {
		var acc field.Elt
		for j := 0; j < field.Bits; j++ {
			masked, err := rcv.conn.ReceiveData()
			if err != nil {
				return nil, nil, mpsierr.Wrap(mpsierr.Transport, err)
			}
			if len(masked) != 2*field.Len {
				return nil, nil, mpsierr.New(mpsierr.Serialization,
					"vole: bad masked pair length %d", len(masked))
			}
			var label ot.LabelData
			labels[i*field.Bits+j].GetData(&label)

			var chosen []byte
			if flags[i*field.Bits+j] {
				chosen = xorBytes(masked[field.Len:], label[:])
			} else {
				chosen = xorBytes(masked[0:field.Len], label[:])
			}
			acc = acc.Add(field.FromBytes(chosen))
		}
		cs[i] = acc
	}

	return as, cs, nil
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
