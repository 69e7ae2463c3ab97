//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package oprf implements the separated oblivious pseudorandom
// function: an offline Precomp phase consumes a VOLE correlation
// (A,C) on the receiver side and (Delta,B) on the sender side, and an
// online phase lets the receiver evaluate a PRF the sender holds the
// key to at a chosen set of points, learning nothing else about the
// key and revealing nothing about its query points to the sender.
//
// The two phases are kept as separate Go types (Sender/Receiver for
// Precomp, the closures/slices Send/Receive return for the online
// phase) exactly so a caller can run many online evaluations against
// one offline correlation.
package oprf
