//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package solver

import (
	"fmt"

	"github.com/markkurossi/mpsi/field"
)

// gaussRow is one row of the linear system being reduced: an R-bit
// coefficient vector and its target field value.
type gaussRow struct {
	bits   []bool
	target field.Elt
}

func (r *gaussRow) addOther(o *gaussRow, from int) {
	for i := from; i < len(r.bits); i++ {
		r.bits[i] = r.bits[i] != o.bits[i]
	}
	r.target = r.target.Add(o.target)
}

// pivotRow pairs the column a row was pivoted on with the row itself,
// the solver's analogue of an R_i = ... equation.
type pivotRow struct {
	col    int
	bits   []bool
	target field.Elt
}

// gaussianElimination row-reduces matrix (a set of constraint rows
// collected by the cuckoo graph's first DFS) into row-echelon form
// over GF(2), returning one pivotRow per input row. It returns (nil,
// nil) when the system has no solution — callers regenerate aux and
// retry the whole encoding, matching the source's `Option<Vec<...>>`
// return.
func gaussianElimination(matrix []cp) ([]pivotRow, error) {
	if err := checkMatrix(matrix); err != nil {
		return nil, err
	}

	n := len(matrix)
	m := len(matrix[0].bits)

	rows := make([]gaussRow, n)
	for i, c := range matrix {
		rows[i] = gaussRow{bits: append([]bool(nil), c.bits...), target: c.val}
	}

	firstIndices := make([]int, 0, n)

	i, j := 0, 0
	for i < n {
		if j >= m {
			return nil, nil
		}

		pivot := -1
		for k := i; k < n; k++ {
			if rows[k].bits[j] {
				pivot = k
				break
			}
		}

		if pivot == -1 {
			j++
			if j >= m {
				return nil, nil
			}
			continue
		}

		rows[i], rows[pivot] = rows[pivot], rows[i]

		for k := 0; k < n; k++ {
			if k != i && rows[k].bits[j] {
				rows[k].addOther(&rows[i], j)
			}
		}

		firstIndices = append(firstIndices, j)
		i++
		j++
	}

	result := make([]pivotRow, n)
	for idx, col := range firstIndices {
		result[idx] = pivotRow{col: col, bits: rows[idx].bits, target: rows[idx].target}
	}
	return result, nil
}

func checkMatrix(matrix []cp) error {
	n := len(matrix)
	if n == 0 {
		return fmt.Errorf("solver: constraint matrix is empty")
	}
	m := len(matrix[0].bits)
	if n > m {
		return fmt.Errorf("solver: constraint matrix has more rows (%d) than columns (%d)", n, m)
	}
	if m == 0 {
		return fmt.Errorf("solver: constraint matrix rows are empty")
	}
	for i, c := range matrix {
		if len(c.bits) != m {
			return fmt.Errorf("solver: constraint row %d has length %d, want %d", i, len(c.bits), m)
		}
	}
	return nil
}

// adjustVecR patches vecR in place so that every pivot row's equation
// is satisfied: R[p] = target + sum of R[j] for every other set bit j
// in the row.
func adjustVecR(equations []pivotRow, vecR []field.Elt) {
	for _, eq := range equations {
		sum := eq.target
		for j, b := range eq.bits {
			if j == eq.col || !b {
				continue
			}
			sum = sum.Add(vecR[j])
		}
		vecR[eq.col] = sum
	}
}
