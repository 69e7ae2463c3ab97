//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package field implements the finite field F = GF(2^128) used
// throughout the VOLE, PaXoS, OPRF/OPPRF and MPSI layers of this
// module.
//
// Elements are represented the same way ot.Label represents a
// 128-bit wire label (two big-endian uint64 limbs); the difference
// is that field.Elt supports the full GF(2^128) field operations
// (Mul, Inverse) that a wire label never needed, built on the same
// carry-less multiplier approach as ot/mul128*.go.
//
// The reduction polynomial is x^128 + x^7 + x^2 + x + 1, the same one
// used by AES-GCM.
package field
