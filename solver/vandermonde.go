//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package solver

import (
	"github.com/markkurossi/mpsi/field"
)

// VandermondeEncode interpolates the unique degree-(n-1) polynomial
// through points and returns its coefficients in ascending order
// (constant term first). It has no aux and no retry: with distinct x
// values the interpolation always succeeds. Cost is O(n^3); intended
// only for small n, as an alternative to the PaXoS solver.
func VandermondeEncode(points []Point) ([]field.Elt, error) {
	n := len(points)
	if n == 0 {
		return nil, nil
	}

	// Lagrange interpolation, expanded into monomial form by building
	// each basis polynomial L_i(x) = prod_{j!=i} (x-x_j)/(x_i-x_j) as
	// a coefficient vector and accumulating y_i * L_i.
	coeffs := make([]field.Elt, n)

	for i := 0; i < n; i++ {
		basis := []field.Elt{field.One()}
		denom := field.One()

		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			basis = mulLinear(basis, points[j].X)
			diff := points[i].X.Sub(points[j].X)
			denom = denom.Mul(diff)
		}

		invDenom := denom.Inverse()
		scale := points[i].Y.Mul(invDenom)

		for k := range basis {
			coeffs[k] = coeffs[k].Add(basis[k].Mul(scale))
		}
	}

	return coeffs, nil
}

// mulLinear multiplies polynomial p (ascending-order coefficients) by
// the linear factor (x - root), i.e. (x + root) in characteristic 2.
func mulLinear(p []field.Elt, root field.Elt) []field.Elt {
	result := make([]field.Elt, len(p)+1)
	for i, c := range p {
		result[i+1] = result[i+1].Add(c)
		result[i] = result[i].Add(c.Mul(root))
	}
	return result
}

// VandermondeDecode evaluates the code vector p (ascending-order
// polynomial coefficients) at x via Horner's method.
func VandermondeDecode(p []field.Elt, x field.Elt) field.Elt {
	sum := field.Zero()
	for i := len(p) - 1; i >= 0; i-- {
		sum = sum.Mul(x).Add(p[i])
	}
	return sum
}
