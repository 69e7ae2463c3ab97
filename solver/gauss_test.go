//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package solver

import (
	"crypto/rand"
	"testing"

	"github.com/markkurossi/mpsi/field"
)

func eltFromUint(v uint64) field.Elt {
	return field.Elt{Lo: v}
}

func TestGaussianEliminationEdgeCase1(t *testing.T) {
	matrix := []cp{{bits: []bool{true, false, false}, val: eltFromUint(1)}}

	res, err := gaussianElimination(matrix)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].col != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !res[0].target.Equal(eltFromUint(1)) {
		t.Errorf("target = %v, want 1", res[0].target)
	}
}

func TestGaussianEliminationEdgeCase2(t *testing.T) {
	matrix := []cp{{bits: []bool{false, false, true}, val: eltFromUint(1)}}

	res, err := gaussianElimination(matrix)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].col != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGaussianEliminationSingleColumn(t *testing.T) {
	matrix := []cp{{bits: []bool{true}, val: eltFromUint(1)}}

	res, err := gaussianElimination(matrix)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].col != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGaussianEliminationEmptyRow(t *testing.T) {
	matrix := []cp{{bits: nil, val: eltFromUint(1)}}

	_, err := gaussianElimination(matrix)
	if err == nil {
		t.Fatal("expected error for empty row")
	}
}

func TestGaussianEliminationNoSolutionZeroRow(t *testing.T) {
	matrix := []cp{{bits: []bool{false, false, false}, val: eltFromUint(1)}}

	res, err := gaussianElimination(matrix)
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Errorf("expected no solution, got %+v", res)
	}
}

func TestGaussianEliminationNoSolutionTwoRows(t *testing.T) {
	matrix := []cp{
		{bits: []bool{true, false, false}, val: eltFromUint(1)},
		{bits: []bool{false, false, false}, val: eltFromUint(1)},
	}

	res, err := gaussianElimination(matrix)
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Errorf("expected no solution, got %+v", res)
	}
}

func TestGaussianEliminationNoSolutionDuplicateRows(t *testing.T) {
	matrix := []cp{
		{bits: []bool{true, false, false}, val: eltFromUint(1)},
		{bits: []bool{true, false, false}, val: eltFromUint(1)},
	}

	res, err := gaussianElimination(matrix)
	if err != nil {
		t.Fatal(err)
	}
	if res != nil {
		t.Errorf("expected no solution, got %+v", res)
	}
}

// TestGaussianEliminationRandom builds a random full-rank system,
// solves it, assigns free variables at random, and checks the
// original equations hold.
func TestGaussianEliminationRandom(t *testing.T) {
	n, m := 5, 12

	matrix := make([]cp, n)
	for i := range matrix {
		bits := make([]bool, m)
		for j := range bits {
			var b [1]byte
			rand.Read(b[:])
			bits[j] = b[0]&1 == 1
		}
		val, _ := field.Random(rand.Reader)
		matrix[i] = cp{bits: bits, val: val}
	}

	res, err := gaussianElimination(append([]cp(nil), matrix...))
	if err != nil {
		t.Fatal(err)
	}
	if res == nil {
		t.Skip("random system happened to have no solution")
	}

	vecR := make([]field.Elt, m)
	for i := range vecR {
		e, _ := field.Random(rand.Reader)
		vecR[i] = e
	}
	adjustVecR(res, vecR)

	for _, row := range matrix {
		sum := field.Zero()
		for j, b := range row.bits {
			if b {
				sum = sum.Add(vecR[j])
			}
		}
		if !sum.Equal(row.val) {
			t.Errorf("row not satisfied: sum=%v, want %v", sum, row.val)
		}
	}
}
