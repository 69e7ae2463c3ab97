//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package field

import (
	"crypto/rand"
	"testing"
)

func TestAddIsXor(t *testing.T) {
	a, err := Random(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	zero := Zero()
	if !a.Add(a).Equal(zero) {
		t.Errorf("a+a != 0")
	}
	if !a.Add(zero).Equal(a) {
		t.Errorf("a+0 != a")
	}
}

func TestMulIdentities(t *testing.T) {
	a, err := Random(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	one := One()
	zero := Zero()

	if !a.Mul(one).Equal(a) {
		t.Errorf("a*1 != a")
	}
	if !a.Mul(zero).Equal(zero) {
		t.Errorf("a*0 != 0")
	}
}

func TestMulCommutative(t *testing.T) {
	a, err := Random(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Random(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Mul(b).Equal(b.Mul(a)) {
		t.Errorf("a*b != b*a")
	}
}

func TestMulDistributesOverAdd(t *testing.T) {
	a, _ := Random(rand.Reader)
	b, _ := Random(rand.Reader)
	c, _ := Random(rand.Reader)

	lhs := a.Mul(b.Add(c))
	rhs := a.Mul(b).Add(a.Mul(c))
	if !lhs.Equal(rhs) {
		t.Errorf("a*(b+c) != a*b+a*c")
	}
}

func TestInverse(t *testing.T) {
	for i := 0; i < 16; i++ {
		a, err := Random(rand.Reader)
		if err != nil {
			t.Fatal(err)
		}
		if a.IsZero() {
			continue
		}
		inv := a.Inverse()
		if !a.Mul(inv).Equal(One()) {
			t.Errorf("a*a^-1 != 1 for a=%v", a)
		}
	}
}

func TestBytesRoundtrip(t *testing.T) {
	a, err := Random(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	b := FromBytes(a.Bytes())
	if !a.Equal(b) {
		t.Errorf("roundtrip mismatch: %v != %v", a, b)
	}
}

func TestHashDeterministic(t *testing.T) {
	a, _ := Random(rand.Reader)
	x, _ := Random(rand.Reader)

	if !HashToField(x).Equal(HashToField(x)) {
		t.Errorf("HashToField not deterministic")
	}
	if !Hash(a, x).Equal(Hash(a, x)) {
		t.Errorf("Hash not deterministic")
	}
	if HashToField(x).Equal(Hash(a, x)) {
		t.Errorf("HashToField and Hash collided on domain separation (possible but vanishingly unlikely)")
	}
}
