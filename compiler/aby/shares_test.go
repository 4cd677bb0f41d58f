//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"testing"

	"github.com/markkurossi/abyc/compiler/assign"
	"github.com/markkurossi/abyc/compiler/ir"
	"github.com/markkurossi/abyc/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareMap(t *testing.T) {
	b := ir.NewBuilder()
	m := NewShareMap()

	// Enough terms to share buckets.
	var terms []*ir.Term
	for i := 0; i < 20000; i++ {
		terms = append(terms, b.Const(ir.Uint64Value(uint64(i), 32)))
	}
	for _, term := range terms {
		m.Alloc(term, 2)
	}
	assert.Equal(t, len(terms), m.Len())
	assert.Equal(t, 2*len(terms), m.NextShare())

	for idx, term := range terms {
		shares, ok := m.Get(term)
		require.True(t, ok)
		assert.Equal(t, []int{2 * idx, 2*idx + 1}, shares)
	}
	assert.Panics(t, func() {
		m.Set(terms[0], []int{0})
	})
}

func testLowerer(t *testing.T, prog *ir.Program, c *ir.Computation,
	smap assign.SharingMap) *Lowerer {

	l, err := NewLowerer(stem, prog, map[string]assign.SharingMap{
		c.Name: smap,
	}, testParams(t))
	require.NoError(t, err)
	l.comp = c
	l.smap = smap
	l.inputs = make(map[*ir.Term]bool)
	l.cstats = &ComputationStats{
		Gates: make(map[string]int),
	}
	return l
}

func TestShareMemoized(t *testing.T) {
	prog := ir.NewProgram()
	b := prog.Builder
	c := ir.NewComputation("main")

	x := b.Var("x", types.BitVector(32))
	tup := apply(t, b, ir.Tuple, x, x, b.Const(ir.BoolValue(false)))
	smap := assign.SharingMap{
		x:   assign.Arithmetic,
		tup: assign.Yao,
	}
	l := testLowerer(t, prog, c, smap)

	s, err := l.Share(x)
	require.NoError(t, err)
	assert.Equal(t, 0, s)
	s, err = l.Share(x)
	require.NoError(t, err)
	assert.Equal(t, 0, s)

	shares, err := l.Shares(tup)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, shares)

	// Callers get copies of the share vectors.
	shares[0] = 100
	again, err := l.Shares(tup)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, again)

	_, err = l.Share(tup)
	assert.ErrorIs(t, err, ErrSortMismatch)

	assert.Equal(t, []string{"0 a\n", "1 y\n", "2 y\n", "3 y\n"}, l.out.shares)

	_, err = l.Share(tup.Args[2])
	assert.ErrorIs(t, err, ErrSharingMissing)
	assert.Equal(t, 4, l.shares.NextShare())
}
