//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"errors"
	"math/big"
	"testing"

	"github.com/markkurossi/abyc/types"
)

var sortLenTests = []struct {
	sort types.Sort
	len  int
}{
	{types.Bool(), 1},
	{types.BitVector(8), 1},
	{types.BitVector(64), 1},
	{types.Array(types.BitVector(32), types.Bool(), 7), 7},
	{types.Tuple(), 0},
	{types.Tuple(types.Bool(), types.BitVector(32)), 2},
	{
		types.Tuple(
			types.Array(types.BitVector(32), types.BitVector(32), 4),
			types.Tuple(types.Bool(), types.Bool()),
			types.BitVector(16)),
		7,
	},
}

func TestSortLen(t *testing.T) {
	for idx, test := range sortLenTests {
		n, err := SortLen(test.sort)
		if err != nil {
			t.Fatalf("test %d: SortLen(%s) failed: %s", idx, test.sort, err)
		}
		if n != test.len {
			t.Errorf("test %d: SortLen(%s)=%d, expected %d",
				idx, test.sort, n, test.len)
		}
	}
}

func TestSortLenUnsupported(t *testing.T) {
	for _, s := range []types.Sort{
		types.Int(),
		types.Field(big.NewInt(101)),
		types.Tuple(types.Bool(), types.Int()),
	} {
		_, err := SortLen(s)
		if !errors.Is(err, ErrUnsupportedSort) {
			t.Errorf("SortLen(%s): expected ErrUnsupportedSort, got %v", s, err)
		}
	}
}

func TestFieldRange(t *testing.T) {
	tuple := types.Tuple(
		types.BitVector(8),
		types.Array(types.BitVector(32), types.Bool(), 3),
		types.Bool())

	expected := [][2]int{{0, 1}, {1, 3}, {4, 1}}
	var sum int
	for i, e := range expected {
		offset, n, err := fieldRange(tuple, i)
		if err != nil {
			t.Fatalf("fieldRange(%d): %s", i, err)
		}
		if offset != e[0] || n != e[1] {
			t.Errorf("fieldRange(%d)=%d,%d, expected %d,%d",
				i, offset, n, e[0], e[1])
		}
		sum += n
	}
	total, err := SortLen(tuple)
	if err != nil {
		t.Fatal(err)
	}
	if sum != total {
		t.Errorf("field sizes sum to %d, expected %d", sum, total)
	}

	_, _, err = fieldRange(tuple, 3)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("fieldRange(3): expected ErrOutOfBounds, got %v", err)
	}
	_, _, err = fieldRange(types.Bool(), 0)
	if !errors.Is(err, ErrSortMismatch) {
		t.Errorf("fieldRange(bool): expected ErrSortMismatch, got %v", err)
	}
}
