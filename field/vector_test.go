//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package field

import (
	"crypto/rand"
	"testing"

	"github.com/markkurossi/mpsi/p2p"
)

func TestWriteReadVector(t *testing.T) {
	c0, c1 := p2p.Pipe()

	vec := make([]Elt, 5)
	for i := range vec {
		e, err := Random(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		vec[i] = e
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- WriteVector(c0, vec)
	}()

	got, err := ReadVector(c1)
	if err != nil {
		t.Fatal(err)
	}
	if err := <-errCh; err != nil {
		t.Fatal(err)
	}

	if len(got) != len(vec) {
		t.Fatalf("got %d elements, want %d", len(got), len(vec))
	}
	for i := range vec {
		if !got[i].Equal(vec[i]) {
			t.Errorf("element %d mismatch: got %v, want %v", i, got[i], vec[i])
		}
	}
}

func TestReadVectorBadLength(t *testing.T) {
	c0, c1 := p2p.Pipe()

	errCh := make(chan error, 1)
	go func() {
		errCh <- c0.SendData([]byte{1, 2, 3})
	}()

	_, err := ReadVector(c1)
	if err == nil {
		t.Fatal("expected error for malformed vector length")
	}
	<-errCh
}
