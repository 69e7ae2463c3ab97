//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package solver

import "github.com/markkurossi/mpsi/field"

// visitStatus tracks a node or edge's progress through the two DFS
// passes: the first pass (findConstraints) marks visitedOnce, the
// second pass (calcVecL) marks visitedTwice.
type visitStatus int

const (
	notVisited visitStatus = iota
	visitedOnce
	visitedTwice
)

// cp is a constraint accumulator: an R-bit vector paired with a field
// value, combined by XOR on the bits and addition on the value.
type cp struct {
	bits []bool
	val  field.Elt
}

func zeroCP(rSize int) cp {
	return cp{bits: make([]bool, rSize)}
}

func (c cp) add(o cp) cp {
	bits := make([]bool, len(c.bits))
	for i := range bits {
		bits[i] = c.bits[i] != o.bits[i]
	}
	return cp{bits: bits, val: c.val.Add(o.val)}
}

// node is an arena-allocated cuckoo graph vertex. id is its position
// in [0,L), the index it occupies in the L segment of the code
// vector; edges holds the indices, into graph.edges, of every edge
// incident to it (an edge appears twice in its own list for a
// self-loop).
type node struct {
	id    int
	edges []int
	visit visitStatus
	acc   cp
}

// edge is an arena-allocated cuckoo graph edge between node indices a
// and b (a==b for a self-loop), labelled with the original (x,y)
// point.
type edge struct {
	a, b     int
	x, y     field.Elt
	visit    visitStatus
	backEdge bool
}

// graph is the cuckoo graph built by buildGraph: nodes and edges live
// in flat arenas addressed by integer index, replacing the source's
// Rc<RefCell<Weak<...>>> linkage.
type graph struct {
	nodes  []node
	edges  []edge
	active []int // arena indices of nodes that have at least one incident edge, in creation order
	aux    Aux
	params Params
}

func buildGraph(points []Point, aux Aux, params Params) *graph {
	g := &graph{aux: aux, params: params}

	slot := make([]int, params.L)
	for i := range slot {
		slot[i] = -1
	}

	upsert := func(i int) int {
		if slot[i] != -1 {
			return slot[i]
		}
		ni := len(g.nodes)
		g.nodes = append(g.nodes, node{id: i, acc: zeroCP(params.R)})
		slot[i] = ni
		g.active = append(g.active, ni)
		return ni
	}

	for _, pt := range points {
		i := hashToIndex(aux.K1, pt.X, params.L)
		j := hashToIndex(aux.K2, pt.X, params.L)

		ni := upsert(i)
		nj := upsert(j)

		ei := len(g.edges)
		g.edges = append(g.edges, edge{a: ni, b: nj, x: pt.X, y: pt.Y})
		g.nodes[ni].edges = append(g.nodes[ni].edges, ei)
		g.nodes[nj].edges = append(g.nodes[nj].edges, ei)
	}

	return g
}

// otherEnd returns the endpoint of edge ei opposite to node from.
func (g *graph) otherEnd(ei, from int) int {
	e := &g.edges[ei]
	if e.a == from {
		return e.b
	}
	return e.a
}

// edgeVisited reports whether edge ei counts as visited under mode:
// for findConstraints, any visit at all; for calcVecL, specifically
// visitedTwice.
func (g *graph) edgeVisited(ei int, calcVecL bool) bool {
	v := g.edges[ei].visit
	if calcVecL {
		return v == visitedTwice
	}
	return v != notVisited
}

// findConstraints runs the first DFS over the graph, returning the
// linear constraints collected from back edges. Constraint rows use
// params.R bits.
func (g *graph) findConstraints() []cp {
	var constraints []cp
	for _, ni := range g.active {
		if g.nodes[ni].visit != notVisited {
			continue
		}
		g.findConstraintsRec(ni, zeroCP(g.params.R), &constraints)
	}
	return constraints
}

// findConstraintsRec visits node n carrying accumulator total from
// its parent, recording a constraint for every back edge discovered.
// It returns the node's own accumulator and true when n was already
// visited (signalling a back edge to the caller), mirroring the
// source's TofcRecRes::BackEdge variant.
func (g *graph) findConstraintsRec(n int, total cp, constraints *[]cp) (cp, bool) {
	if g.nodes[n].visit != notVisited {
		return g.nodes[n].acc, true
	}

	g.nodes[n].visit = visitedOnce
	g.nodes[n].acc = total

	for _, ei := range g.nodes[n].edges {
		if g.edgeVisited(ei, false) {
			// Self-loop's second direction, or an edge already
			// claimed by a sibling traversal.
			continue
		}
		g.edges[ei].visit = visitedOnce

		e := &g.edges[ei]
		edgeCP := cp{bits: rBits(g.aux.K3, e.x, g.params.R), val: e.y}
		nextTotal := total.add(edgeCP)

		other := g.otherEnd(ei, n)
		backCP, isBack := g.findConstraintsRec(other, nextTotal, constraints)
		if isBack {
			g.edges[ei].backEdge = true
			row := nextTotal.add(backCP)
			*constraints = append(*constraints, row)
		}
	}

	return cp{}, false
}

// calcVecL runs the second DFS, filling vecL (indexed by node.id) from
// the now-solved vecR.
func (g *graph) calcVecL(vecR, vecL []field.Elt) {
	for _, ni := range g.active {
		if g.nodes[ni].visit == visitedTwice {
			continue
		}
		g.calcVecLRec(ni, vecR, vecL)
	}
}

func (g *graph) calcVecLRec(n int, vecR, vecL []field.Elt) {
	g.nodes[n].visit = visitedTwice
	u := g.nodes[n].id

	for _, ei := range g.nodes[n].edges {
		e := &g.edges[ei]
		if e.visit == visitedTwice || e.backEdge {
			continue
		}
		e.visit = visitedTwice

		other := g.otherEnd(ei, n)
		v := g.nodes[other].id

		bits := rBits(g.aux.K3, e.x, g.params.R)
		inner := innerProductR(bits, vecR)
		vecL[v] = vecL[u].Add(inner).Add(e.y)

		g.calcVecLRec(other, vecR, vecL)
	}
}
