//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ir

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/markkurossi/abyc/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashConsing(t *testing.T) {
	b := NewBuilder()

	x := b.Var("x", types.BitVector(32))
	y := b.Var("y", types.BitVector(32))
	assert.Same(t, x, b.Var("x", types.BitVector(32)))
	assert.NotSame(t, x, b.Var("x", types.BitVector(16)))

	s1, err := b.Apply(BvAdd, x, y)
	require.NoError(t, err)
	s2, err := b.Apply(BvAdd, x, y)
	require.NoError(t, err)
	assert.Same(t, s1, s2)

	s3, err := b.Apply(BvAdd, y, x)
	require.NoError(t, err)
	assert.NotSame(t, s1, s3)

	c1 := b.Const(Uint64Value(7, 32))
	c2 := b.Const(BitVectorValue(big.NewInt(7), 32))
	assert.Same(t, c1, c2)

	f0, err := b.Term(FieldOp(0), b.Const(TupleValue(BoolValue(true))))
	require.NoError(t, err)
	f1, err := b.Term(FieldOp(0), b.Const(TupleValue(BoolValue(true))))
	require.NoError(t, err)
	assert.Same(t, f0, f1)

	assert.Equal(t, 8, b.NumTerms())
	assert.Less(t, x.ID, s1.ID)
}

func TestTypeCheck(t *testing.T) {
	b := NewBuilder()

	x := b.Var("x", types.BitVector(32))
	c := b.Var("c", types.Bool())
	arr := b.Var("a", types.Array(types.BitVector(32), types.Bool(), 4))

	tests := []struct {
		op   Op
		args []*Term
		sort types.Sort
		err  bool
	}{
		{NewOp(Eq), []*Term{x, x}, types.Bool(), false},
		{NewOp(Eq), []*Term{x, c}, types.Undefined, true},
		{NewOp(Ite), []*Term{c, x, x}, types.BitVector(32), false},
		{NewOp(Ite), []*Term{x, x, x}, types.Undefined, true},
		{NewOp(Not), []*Term{c, c}, types.Undefined, true},
		{NewOp(BvUlt), []*Term{x, x}, types.Bool(), false},
		{NewOp(Select), []*Term{arr, x}, types.Bool(), false},
		{NewOp(Select), []*Term{arr, c}, types.Undefined, true},
		{NewOp(Store), []*Term{arr, x, c}, arr.Sort(), false},
		{NewOp(Store), []*Term{arr, x, x}, types.Undefined, true},
		{NewOp(Tuple), []*Term{x, c},
			types.Tuple(types.BitVector(32), types.Bool()), false},
		{FieldOp(1), []*Term{x}, types.Undefined, true},
		{CallOp("f", []types.Sort{types.Bool()}, []types.Sort{types.Bool()}),
			[]*Term{c}, types.Tuple(types.Bool()), false},
		{CallOp("f", []types.Sort{types.Bool()}, nil),
			[]*Term{x}, types.Undefined, true},
	}
	for idx, test := range tests {
		term, err := b.Term(test.op, test.args...)
		if test.err {
			assert.Error(t, err, "test %d", idx)
			continue
		}
		require.NoError(t, err, "test %d", idx)
		assert.True(t, term.Sort().Equal(test.sort),
			"test %d: got %s, expected %s", idx, term.Sort(), test.sort)
	}
}

func TestPostOrder(t *testing.T) {
	b := NewBuilder()

	x := b.Var("x", types.Bool())
	y := b.Var("y", types.Bool())
	and, err := b.Apply(And, x, y)
	require.NoError(t, err)
	or, err := b.Apply(Or, and, x)
	require.NoError(t, err)
	root, err := b.Apply(Xor, or, and)
	require.NoError(t, err)

	var order []*Term
	for term := range PostOrder(root) {
		order = append(order, term)
	}
	assert.Equal(t, []*Term{x, y, and, or, root}, order)
	assert.Equal(t, 5, Count(root))
	assert.Equal(t, 5, Count(root, and, x))

	// Early termination.
	var n int
	for range PostOrder(root) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestComputationPP(t *testing.T) {
	prog := NewProgram()
	b := prog.Builder
	c := NewComputation("main")

	x := b.Var("x", types.BitVector(8))
	party := Party1
	require.NoError(t, c.Metadata.AddInput(x, &party))
	sum, err := b.Apply(BvAdd, x, b.Const(Uint64Value(1, 8)))
	require.NoError(t, err)
	c.Outputs = []*Term{sum, x}
	require.NoError(t, prog.Add(c))
	assert.Error(t, prog.Add(NewComputation("main")))

	var buf bytes.Buffer
	c.PP(&buf)
	assert.Equal(t, `computation main:
  in  x: bv8 party1
  t2	= (bvadd x (#bv 1 8))	: bv8
  out⁰ t2
  out¹ x
`, buf.String())
}
