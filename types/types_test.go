//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUndefined(t *testing.T) {
	undef := Sort{}
	assert.True(t, undef.Undefined())
	assert.False(t, Bool().Undefined())
}

func TestEqual(t *testing.T) {
	arr := Array(BitVector(32), BitVector(32), 4)

	assert.True(t, Bool().Equal(Bool()))
	assert.True(t, BitVector(8).Equal(BitVector(8)))
	assert.False(t, BitVector(8).Equal(BitVector(16)))
	assert.True(t, arr.Equal(Array(BitVector(32), BitVector(32), 4)))
	assert.False(t, arr.Equal(Array(BitVector(32), BitVector(32), 5)))
	assert.True(t, Tuple(Bool(), arr).Equal(Tuple(Bool(), arr)))
	assert.False(t, Tuple(Bool(), arr).Equal(Tuple(arr, Bool())))
	assert.False(t, Bool().Equal(BitVector(1)))
}

func TestString(t *testing.T) {
	assert.Equal(t, "bool", Bool().String())
	assert.Equal(t, "(bv 32)", BitVector(32).String())
	assert.Equal(t, "(array (bv 32) bool 3)",
		Array(BitVector(32), Bool(), 3).String())
	assert.Equal(t, "(tuple bool (bv 8))",
		Tuple(Bool(), BitVector(8)).String())
	assert.Equal(t, "[3]bv8", Array(BitVector(32), BitVector(8), 3).ShortString())
}
