//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package opprf implements the separated oblivious programmable
// pseudorandom function: like oprf, but the sender also chooses,
// for a set of input points, exactly what output the function
// should produce there ("programs" it), while the receiver still
// learns only the outputs at its own query points and nothing about
// the sender's unqueried programmed points.
//
// opprf is built directly on top of oprf: the sender first runs an
// ordinary OPRF to get a function fk, then additionally encodes the
// correction values z - fk(x) for its programmed points into a
// second solver codeword and sends it; the receiver adds the decoded
// correction back onto its own oprf.Receive output.
package opprf
