//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package field

import "fmt"

// dataConn is the subset of p2p.Conn this package needs to move
// vectors of field elements across the wire. Declaring it locally
// (rather than importing p2p) keeps field free of a dependency on
// the transport package, mirroring how ot/io.go declares its own
// narrow IO interface instead of importing p2p directly.
type dataConn interface {
	SendData([]byte) error
	ReceiveData() ([]byte, error)
}

// WriteVector sends vec as a single length-prefixed byte blob:
// length in bytes, then that many bytes, flushed immediately.
// p2p.Conn.SendData already flushes.
func WriteVector(conn dataConn, vec []Elt) error {
	buf := make([]byte, 0, len(vec)*Len)
	for _, e := range vec {
		buf = append(buf, e.Bytes()...)
	}
	return conn.SendData(buf)
}

// ReadVector receives a vector sent by WriteVector.
func ReadVector(conn dataConn) ([]Elt, error) {
	buf, err := conn.ReceiveData()
	if err != nil {
		return nil, err
	}
	if len(buf)%Len != 0 {
		return nil, fmt.Errorf("field: vector length %d not a multiple of %d",
			len(buf), Len)
	}
	n := len(buf) / Len
	vec := make([]Elt, n)
	for i := 0; i < n; i++ {
		vec[i] = FromBytes(buf[i*Len : (i+1)*Len])
	}
	return vec, nil
}
