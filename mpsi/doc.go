//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package mpsi orchestrates the N-party private set intersection
// protocol on top of opprf: party 0 (the Receiver) learns the
// intersection of all parties' input sets; parties 1..N-1 (Senders)
// learn nothing.
//
// The protocol runs in two rounds, following
// https://github.com/GaloisInc/swanky/blob/master/popsicle/src/psi/kmprt.rs:
//
//   - Conditional zero sharing: every pair of parties runs one OPPRF
//     exchange in each direction. For input k, party p programs the
//     OPPRF it sends to party q with a fresh share of zero at x=inputs[k]
//     if (and, with overwhelming probability, only if) inputs[k] is
//     also in q's set; summing every party's share (including its own)
//     for a given input yields zero exactly when that input is common
//     to the whole run's pairwise agreements.
//   - Conditional reconstruction: every Sender additionally programs
//     one more OPPRF, sent only to the Receiver, with its running
//     zero-share sum at each input. The Receiver adds its own shares
//     and every Sender's programmed share together; any input whose
//     total is zero is in the intersection.
//
// Sender.Send/Receiver.Receive run this single-threaded, one peer at
// a time. SendMT/ReceiveMT run the zero-sharing round's N-1 pairwise
// exchanges concurrently, one goroutine per peer, the same way
// gmw.Network drives one goroutine of state-machine work per peer.
package mpsi
