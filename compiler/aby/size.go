//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"fmt"

	"github.com/markkurossi/abyc/types"
)

// SortLen returns the number of shares a value of the sort occupies.
func SortLen(s types.Sort) (int, error) {
	switch s.Type {
	case types.TBool, types.TBitVector:
		return 1, nil

	case types.TArray:
		return int(s.ArraySize), nil

	case types.TTuple:
		var sum int
		for _, f := range s.Fields {
			n, err := SortLen(f)
			if err != nil {
				return 0, err
			}
			sum += n
		}
		return sum, nil

	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedSort, s)
	}
}

// fieldRange returns the offset and length of the tuple field in the
// tuple's share vector.
func fieldRange(tuple types.Sort, field int) (int, int, error) {
	if tuple.Type != types.TTuple {
		return 0, 0, fmt.Errorf("%w: field of non-tuple %s",
			ErrSortMismatch, tuple)
	}
	if field < 0 || field >= len(tuple.Fields) {
		return 0, 0, fmt.Errorf("%w: field %d of %s",
			ErrOutOfBounds, field, tuple)
	}
	var offset int
	for i := 0; i < field; i++ {
		n, err := SortLen(tuple.Fields[i])
		if err != nil {
			return 0, 0, err
		}
		offset += n
	}
	n, err := SortLen(tuple.Fields[field])
	if err != nil {
		return 0, 0, err
	}
	return offset, n, nil
}

// rewirable tests if values of the sort can be rewired between
// calls instead of being copied.
func rewirable(s types.Sort) (bool, error) {
	switch s.Type {
	case types.TArray:
		return true, nil
	case types.TBool, types.TBitVector, types.TTuple:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedSort, s)
	}
}
