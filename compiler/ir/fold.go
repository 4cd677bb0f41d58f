//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ir

import (
	"math/big"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/markkurossi/abyc/types"
)

// DefaultFoldCacheSize is the default number of memoized fold
// results.
const DefaultFoldCacheSize = 4096

// Folder evaluates terms built from constants.
type Folder struct {
	cache *simplelru.LRU[*Term, *Value]
}

// NewFolder creates a new constant folder with the argument cache
// size.
func NewFolder(size int) (*Folder, error) {
	cache, err := simplelru.NewLRU[*Term, *Value](size, nil)
	if err != nil {
		return nil, err
	}
	return &Folder{
		cache: cache,
	}, nil
}

// Fold evaluates the term. It returns false if the term does not
// reduce to a constant.
func (f *Folder) Fold(t *Term) (*Value, bool) {
	if t.Op.Op == Const {
		return t.Op.Value, true
	}
	if v, ok := f.cache.Get(t); ok {
		return v, true
	}
	v, ok := f.fold(t)
	if ok {
		f.cache.Add(t, v)
	}
	return v, ok
}

func (f *Folder) args(t *Term) ([]*Value, bool) {
	var result []*Value
	for _, arg := range t.Args {
		v, ok := f.Fold(arg)
		if !ok {
			return nil, false
		}
		result = append(result, v)
	}
	return result, true
}

func (f *Folder) fold(t *Term) (*Value, bool) {
	switch t.Op.Op {
	case Var, Select, Store, Tuple, Field, Update, Call:
		return nil, false

	case Ite:
		sel, ok := f.Fold(t.Args[0])
		if !ok {
			return nil, false
		}
		if sel.Bool {
			return f.Fold(t.Args[1])
		}
		return f.Fold(t.Args[2])
	}

	args, ok := f.args(t)
	if !ok {
		return nil, false
	}

	switch t.Op.Op {
	case Eq:
		if args[0].Sort.Type == types.TBool {
			return BoolValue(args[0].Bool == args[1].Bool), true
		}
		if args[0].Sort.Type == types.TBitVector {
			return BoolValue(args[0].Int.Cmp(args[1].Int) == 0), true
		}
		return nil, false

	case Not:
		return BoolValue(!args[0].Bool), true

	case And, Or, Xor:
		result := args[0].Bool
		for _, arg := range args[1:] {
			switch t.Op.Op {
			case And:
				result = result && arg.Bool
			case Or:
				result = result || arg.Bool
			case Xor:
				result = result != arg.Bool
			}
		}
		return BoolValue(result), true

	case Implies:
		return BoolValue(!args[0].Bool || args[1].Bool), true

	case BvAnd, BvOr, BvXor, BvAdd, BvMul:
		result := new(big.Int).Set(args[0].Int)
		for _, arg := range args[1:] {
			switch t.Op.Op {
			case BvAnd:
				result.And(result, arg.Int)
			case BvOr:
				result.Or(result, arg.Int)
			case BvXor:
				result.Xor(result, arg.Int)
			case BvAdd:
				result.Add(result, arg.Int)
			case BvMul:
				result.Mul(result, arg.Int)
			}
		}
		return BitVectorValue(result, t.Sort().Bits), true

	case BvSub, BvUdiv, BvUrem, BvShl, BvLshr, BvAshr:
		return foldBinary(t.Op.Op, args[0], args[1], t.Sort().Bits), true

	case BvNot:
		mask := new(big.Int).Lsh(big.NewInt(1), uint(t.Sort().Bits))
		mask.Sub(mask, big.NewInt(1))
		return BitVectorValue(new(big.Int).Xor(args[0].Int, mask),
			t.Sort().Bits), true

	case BvNeg:
		return BitVectorValue(new(big.Int).Neg(args[0].Int),
			t.Sort().Bits), true

	case BvUgt:
		return BoolValue(args[0].Int.Cmp(args[1].Int) > 0), true
	case BvUlt:
		return BoolValue(args[0].Int.Cmp(args[1].Int) < 0), true
	case BvUge:
		return BoolValue(args[0].Int.Cmp(args[1].Int) >= 0), true
	case BvUle:
		return BoolValue(args[0].Int.Cmp(args[1].Int) <= 0), true
	case BvSgt:
		return BoolValue(args[0].Signed().Cmp(args[1].Signed()) > 0), true
	case BvSlt:
		return BoolValue(args[0].Signed().Cmp(args[1].Signed()) < 0), true
	case BvSge:
		return BoolValue(args[0].Signed().Cmp(args[1].Signed()) >= 0), true
	case BvSle:
		return BoolValue(args[0].Signed().Cmp(args[1].Signed()) <= 0), true

	default:
		return nil, false
	}
}

func foldBinary(op Operator, a, b *Value, bits types.Size) *Value {
	result := new(big.Int)

	switch op {
	case BvSub:
		result.Sub(a.Int, b.Int)

	case BvUdiv:
		if b.Int.Sign() == 0 {
			// Division by zero yields all ones.
			result.Lsh(big.NewInt(1), uint(bits))
			result.Sub(result, big.NewInt(1))
		} else {
			result.Div(a.Int, b.Int)
		}

	case BvUrem:
		if b.Int.Sign() == 0 {
			result.Set(a.Int)
		} else {
			result.Mod(a.Int, b.Int)
		}

	case BvShl:
		if b.Int.IsUint64() && b.Int.Uint64() < uint64(bits) {
			result.Lsh(a.Int, uint(b.Int.Uint64()))
		}

	case BvLshr:
		if b.Int.IsUint64() && b.Int.Uint64() < uint64(bits) {
			result.Rsh(a.Int, uint(b.Int.Uint64()))
		}

	case BvAshr:
		count := uint(bits)
		if b.Int.IsUint64() && b.Int.Uint64() < uint64(bits) {
			count = uint(b.Int.Uint64())
		}
		result.Rsh(a.Signed(), count)
	}

	return BitVectorValue(result, bits)
}
