//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ir

import (
	"testing"

	"github.com/markkurossi/abyc/types"
)

var foldTests = []struct {
	op     Operator
	a, b   uint64
	result uint64
}{
	{BvAdd, 250, 10, 4},
	{BvMul, 16, 17, 16},
	{BvSub, 1, 2, 255},
	{BvUdiv, 200, 7, 28},
	{BvUdiv, 5, 0, 255},
	{BvUrem, 200, 7, 4},
	{BvUrem, 5, 0, 5},
	{BvShl, 3, 2, 12},
	{BvShl, 3, 8, 0},
	{BvLshr, 0x80, 7, 1},
	{BvAshr, 0x80, 7, 255},
	{BvAshr, 0x40, 8, 0},
	{BvAnd, 0xf0, 0x3c, 0x30},
	{BvOr, 0xf0, 0x0f, 0xff},
	{BvXor, 0xff, 0x0f, 0xf0},
}

func TestFold(t *testing.T) {
	b := NewBuilder()
	f, err := NewFolder(DefaultFoldCacheSize)
	if err != nil {
		t.Fatal(err)
	}

	for _, test := range foldTests {
		term, err := b.Apply(test.op, b.Const(Uint64Value(test.a, 8)),
			b.Const(Uint64Value(test.b, 8)))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 2; i++ {
			v, ok := f.Fold(term)
			if !ok {
				t.Fatalf("%s: fold failed", term)
			}
			if v.Int.Uint64() != test.result {
				t.Errorf("%s: got %s, expected %d", term, v.Int, test.result)
			}
		}
	}
}

func TestFoldBool(t *testing.T) {
	b := NewBuilder()
	f, err := NewFolder(2)
	if err != nil {
		t.Fatal(err)
	}
	one := b.Const(Uint64Value(1, 8))
	minus := b.Const(Uint64Value(0xff, 8))

	slt, err := b.Apply(BvSlt, minus, one)
	if err != nil {
		t.Fatal(err)
	}
	ult, err := b.Apply(BvUlt, minus, one)
	if err != nil {
		t.Fatal(err)
	}
	ite, err := b.Apply(Ite, slt, one, minus)
	if err != nil {
		t.Fatal(err)
	}

	v, ok := f.Fold(slt)
	if !ok || !v.Bool {
		t.Errorf("%s: expected true", slt)
	}
	v, ok = f.Fold(ult)
	if !ok || v.Bool {
		t.Errorf("%s: expected false", ult)
	}
	v, ok = f.Fold(ite)
	if !ok || v.Int.Uint64() != 1 {
		t.Errorf("%s: expected 1", ite)
	}
}

func TestFoldNonConstant(t *testing.T) {
	b := NewBuilder()
	f, err := NewFolder(DefaultFoldCacheSize)
	if err != nil {
		t.Fatal(err)
	}
	x := b.Var("x", types.BitVector(8))
	sum, err := b.Apply(BvAdd, x, b.Const(Uint64Value(1, 8)))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Fold(sum); ok {
		t.Errorf("%s: folded non-constant term", sum)
	}
	if _, err := NewFolder(0); err == nil {
		t.Errorf("NewFolder(0) succeeded")
	}
}
