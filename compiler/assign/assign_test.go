//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package assign

import (
	"context"
	"testing"

	"github.com/markkurossi/abyc/compiler/ir"
	"github.com/markkurossi/abyc/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProgram(t *testing.T) (*ir.Program, *ir.Term, *ir.Term) {
	prog := ir.NewProgram()
	b := prog.Builder

	x := b.Var("main_f0_lex0_x_v0", types.BitVector(32))
	y := b.Var("main_f0_lex0_y_v0", types.BitVector(32))
	sum, err := b.Apply(ir.BvAdd, x, y)
	require.NoError(t, err)
	lt, err := b.Apply(ir.BvUlt, sum, y)
	require.NoError(t, err)

	c := ir.NewComputation("main")
	c.Outputs = []*ir.Term{lt}
	require.NoError(t, prog.Add(c))

	return prog, sum, lt
}

func TestSchemeChar(t *testing.T) {
	assert.Equal(t, byte('a'), Arithmetic.Char())
	assert.Equal(t, byte('b'), Boolean.Char())
	assert.Equal(t, byte('y'), Yao.Char())
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"b", "y", "a+b", "a+y"} {
		_, err := Lookup(name)
		assert.NoError(t, err, name)
	}
	_, err := Lookup("lp")
	assert.Error(t, err)
}

func TestAll(t *testing.T) {
	prog, sum, lt := testProgram(t)

	maps, err := All(context.Background(), prog, "a+y")
	require.NoError(t, err)
	require.Contains(t, maps, "main")

	m := maps["main"]
	assert.Len(t, m, 4)

	s, ok := m.Get(sum)
	require.True(t, ok)
	assert.Equal(t, Arithmetic, s)

	s, ok = m.Get(lt)
	require.True(t, ok)
	assert.Equal(t, Yao, s)

	maps, err = All(context.Background(), prog, "b")
	require.NoError(t, err)
	for _, s := range maps["main"] {
		assert.Equal(t, Boolean, s)
	}
}
