//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package solver

import (
	"crypto/rand"
	"testing"

	"github.com/markkurossi/mpsi/p2p"
)

func TestAuxSendReceive(t *testing.T) {
	c0, c1 := p2p.Pipe()

	aux, err := GenAux(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- aux.Send(c0)
	}()

	got, err := ReceiveAux(c1)
	if err != nil {
		t.Fatal(err)
	}
	if err := <-errCh; err != nil {
		t.Fatal(err)
	}

	if got != aux {
		t.Errorf("got %+v, want %+v", got, aux)
	}
}

func TestCeilLog2(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{1024, 10},
		{1025, 11},
	}
	for _, c := range cases {
		if got := ceilLog2(c.n); got != c.want {
			t.Errorf("ceilLog2(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
