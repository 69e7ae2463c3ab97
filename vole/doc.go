//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package vole implements vector oblivious linear evaluation (VOLE)
// over GF(2^128): a sender holds (Delta, B) and a receiver holds
// (A, C), both length m, satisfying C[i] = A[i]*Delta + B[i] for
// every i, with neither side learning anything about the other's
// vector beyond that correlation.
//
// Two constructions are provided:
//
//   - OTSender/OTReceiver realize VOLE directly from 1-of-2 OT: for
//     each output position and each of the 128 bits of Delta, the
//     sender offers (rho, rho + 2^j*Delta) and the receiver uses bit j
//     of A[i] as its OT choice. This is exact but needs m*128 OT
//     instances, so it is only practical for small m.
//
//   - LPNSender/LPNReceiver stretch a small batch of OT-based base
//     correlations into a much larger one using a public,
//     deterministically-derived sparse linear code: since the VOLE
//     correlation is linear in A, B and C, applying the same linear
//     combination to each of the three preserves it without any
//     further interaction between the parties.
//
// The teacher's own vole package wires a similar IKNP-based extension
// directly to a Beaver-triple Mul(x,y)->u=r+x*y helper over
// math/big.Int and a prime field; this package keeps that same base
// (otext.IKNPSender/IKNPReceiver over ot.OT) but targets the additive
// C=A*Delta+B correlation over field.Elt instead.
package vole
