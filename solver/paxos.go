//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package solver

import (
	"io"

	"github.com/markkurossi/mpsi/field"
	"github.com/markkurossi/mpsi/mpsierr"
)

// Point is an input (x,y) pair to be encoded: the code vector must
// decode to y at x.
type Point struct {
	X, Y field.Elt
}

// Encode runs the PaXoS encoding algorithm once against the given
// aux: cuckoo graph construction, constraint collection, GF(2)
// elimination and a second pass computing the left segment. It
// returns mpsierr.SolverTooManyConstraints or mpsierr.SolverNoSolution
// if this aux does not admit a solution; callers retry with a fresh
// Aux, matching the two-attempt policy used at the OPRF/OPPRF call
// sites rather than inside Encode itself.
func Encode(rng io.Reader, points []Point, aux Aux, params Params) ([]field.Elt, error) {
	g := buildGraph(points, aux, params)

	vecL := make([]field.Elt, params.L)
	vecR := make([]field.Elt, params.R)
	for i := range vecL {
		e, err := field.Random(rng)
		if err != nil {
			return nil, mpsierr.Wrap(mpsierr.InvariantViolation, err)
		}
		vecL[i] = e
	}
	for i := range vecR {
		e, err := field.Random(rng)
		if err != nil {
			return nil, mpsierr.Wrap(mpsierr.InvariantViolation, err)
		}
		vecR[i] = e
	}

	constraints := g.findConstraints()

	if len(constraints) > params.R {
		return nil, mpsierr.New(mpsierr.SolverTooManyConstraints,
			"%d constraints exceed R=%d", len(constraints), params.R)
	}

	if len(constraints) > 0 {
		equations, err := gaussianElimination(constraints)
		if err != nil {
			return nil, mpsierr.Wrap(mpsierr.SolverNoSolution, err)
		}
		if equations == nil {
			return nil, mpsierr.New(mpsierr.SolverNoSolution,
				"constraint system has no solution")
		}
		adjustVecR(equations, vecR)
	}

	g.calcVecL(vecR, vecL)

	result := make([]field.Elt, 0, params.CodeLength())
	result = append(result, vecL...)
	result = append(result, vecR...)
	return result, nil
}

// Decode evaluates the code vector p at x, per the fixed decoding
// rule: P[h1(x)] + P[h2(x)] + <r(x), R-segment>.
func Decode(p []field.Elt, x field.Elt, aux Aux, params Params) field.Elt {
	i := hashToIndex(aux.K1, x, params.L)
	j := hashToIndex(aux.K2, x, params.L)

	l1 := p[i]
	l2 := p[j]
	vecR := p[params.L:]
	bits := rBits(aux.K3, x, params.R)
	inner := innerProductR(bits, vecR)

	return l1.Add(l2).Add(inner)
}
