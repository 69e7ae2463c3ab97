//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package solver implements PaXoS (probe-and-XOR-of-strings) and a
// Vandermonde alternative: both encode a set of key-value points into
// a dense code vector that can be decoded pointwise without revealing
// anything about points not originally encoded.
//
// The PaXoS encoder builds a cuckoo graph over two hash functions and
// solves a small linear system over GF(2) to patch a random "right"
// segment so that every original point decodes correctly. The source
// this package is derived from represents that graph with
// Rc<RefCell<Weak<...>>> nodes and edges; Go has no weak references
// and cyclic Rc graphs do not translate directly, so graph is an
// arena of nodes and edges addressed by integer index instead, with
// visit marks stored directly on the arena records.
package solver
