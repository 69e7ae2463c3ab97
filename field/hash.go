//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package field

import "crypto/sha256"

// Domain separation prefixes for the field's two hash functions.
// Keeping HashToField and Hash on disjoint prefixes is what makes
// them independent random oracles even though both are built from
// the same SHA-256 primitive; the digest is 32 bytes, comfortably
// wider than the 16-byte field encoding.
const (
	domainHashToField = "mpsi/field/HF"
	domainHash        = "mpsi/field/H"
)

// HashToField implements H_F: F -> F, the domain-separated
// hash-to-field used by the separated OPRF to turn a query x into the
// solver's target value H_F(x).
func HashToField(x Elt) Elt {
	h := sha256.New()
	h.Write([]byte(domainHashToField))
	h.Write(x.Bytes())
	return FromBytes(h.Sum(nil)[:Len])
}

// Hash implements H: F x F -> F, the domain-separated two-argument
// hash used to finalize OPRF outputs: both the sender and the
// receiver compute Hash(v, x) where v is each side's reconstruction
// of the OPRF's masked value at x.
func Hash(v, x Elt) Elt {
	h := sha256.New()
	h.Write([]byte(domainHash))
	h.Write(v.Bytes())
	h.Write(x.Bytes())
	return FromBytes(h.Sum(nil)[:Len])
}
