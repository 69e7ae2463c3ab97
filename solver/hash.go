//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package solver

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/markkurossi/mpsi/field"
)

// hashToIndex implements H_k: key x F -> [0,max), the first 8 bytes
// of SHA-256(k || bytes(x)) read as a big-endian unsigned integer,
// reduced mod max.
func hashToIndex(k uint64, x field.Elt, max int) int {
	h := sha256.New()
	var kb [8]byte
	binary.BigEndian.PutUint64(kb[:], k)
	h.Write(kb[:])
	h.Write(x.Bytes())
	sum := h.Sum(nil)
	v := binary.BigEndian.Uint64(sum[0:8])
	return int(v % uint64(max))
}

// rBits implements r: key x F -> {0,1}^m, the first m bits of
// SHA-256(k || bytes(x)) read little-endian within each byte.
func rBits(k uint64, x field.Elt, m int) []bool {
	h := sha256.New()
	var kb [8]byte
	binary.BigEndian.PutUint64(kb[:], k)
	h.Write(kb[:])
	h.Write(x.Bytes())
	sum := h.Sum(nil)

	bits := make([]bool, m)
	for i := 0; i < m; i++ {
		byteIdx := i / 8
		bitIdx := uint(i % 8)
		bits[i] = sum[byteIdx]&(1<<bitIdx) != 0
	}
	return bits
}

// innerProductR computes the inner product <r(k3,x), vecR> over F:
// the sum of vecR[i] for every set bit in bits.
func innerProductR(bits []bool, vecR []field.Elt) field.Elt {
	sum := field.Zero()
	for i, b := range bits {
		if b {
			sum = sum.Add(vecR[i])
		}
	}
	return sum
}
