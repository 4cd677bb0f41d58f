//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ir

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/markkurossi/abyc/types"
)

// Value implements constant values.
type Value struct {
	Sort  types.Sort
	Bool  bool
	Int   *big.Int
	Array *ArrayValue
	Tuple []*Value
}

// ArrayValue defines constant arrays: entries not listed in Map have
// the Default value.
type ArrayValue struct {
	Size    int
	Default *Value
	Map     map[int]*Value
}

// BoolValue creates a boolean value.
func BoolValue(b bool) *Value {
	return &Value{
		Sort: types.Bool(),
		Bool: b,
	}
}

// BitVectorValue creates a bit-vector value. The argument is reduced
// modulo 2^bits.
func BitVectorValue(v *big.Int, bits types.Size) *Value {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	val := new(big.Int).Mod(v, mod)
	return &Value{
		Sort: types.BitVector(bits),
		Int:  val,
	}
}

// Uint64Value creates a bit-vector value from an unsigned integer.
func Uint64Value(v uint64, bits types.Size) *Value {
	return BitVectorValue(new(big.Int).SetUint64(v), bits)
}

// ArrayConst creates an array value with the default element value.
func ArrayConst(index types.Sort, def *Value, size int,
	entries map[int]*Value) *Value {
	if entries == nil {
		entries = make(map[int]*Value)
	}
	return &Value{
		Sort: types.Array(index, def.Sort, types.Size(size)),
		Array: &ArrayValue{
			Size:    size,
			Default: def,
			Map:     entries,
		},
	}
}

// TupleValue creates a tuple value.
func TupleValue(fields ...*Value) *Value {
	var sorts []types.Sort
	for _, f := range fields {
		sorts = append(sorts, f.Sort)
	}
	return &Value{
		Sort:  types.Tuple(sorts...),
		Tuple: fields,
	}
}

// Signed returns the two's complement signed interpretation of a
// bit-vector value.
func (v *Value) Signed() *big.Int {
	bits := uint(v.Sort.Bits)
	if v.Int.Bit(int(bits)-1) == 0 {
		return new(big.Int).Set(v.Int)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), bits)
	return new(big.Int).Sub(v.Int, mod)
}

// Get returns the array element at the argument index.
func (arr *ArrayValue) Get(idx int) *Value {
	v, ok := arr.Map[idx]
	if ok {
		return v
	}
	return arr.Default
}

func (v *Value) String() string {
	switch v.Sort.Type {
	case types.TBool:
		if v.Bool {
			return "true"
		}
		return "false"

	case types.TBitVector:
		return fmt.Sprintf("(#bv %s %d)", v.Int, v.Sort.Bits)

	case types.TArray:
		var keys []int
		for k := range v.Array.Map {
			keys = append(keys, k)
		}
		sort.Ints(keys)

		var sb strings.Builder
		fmt.Fprintf(&sb, "(#a %s %s %d (", v.Sort.Index, v.Array.Default,
			v.Array.Size)
		for idx, k := range keys {
			if idx > 0 {
				sb.WriteRune(' ')
			}
			fmt.Fprintf(&sb, "(%d %s)", k, v.Array.Map[k])
		}
		sb.WriteString("))")
		return sb.String()

	case types.TTuple:
		var sb strings.Builder
		sb.WriteString("(#t")
		for _, f := range v.Tuple {
			sb.WriteRune(' ')
			sb.WriteString(f.String())
		}
		sb.WriteRune(')')
		return sb.String()

	default:
		return fmt.Sprintf("{Value %s}", v.Sort)
	}
}
