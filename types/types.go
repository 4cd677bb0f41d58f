//
// types.go
//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"fmt"
	"math/big"
	"strings"
)

// Type specifies a sort kind.
type Type int8

// Size specify bit widths and element counts.
type Size int32

func (t Type) String() string {
	for k, v := range Types {
		if v == t {
			return k
		}
	}
	return fmt.Sprintf("{Type %d}", t)
}

// ShortString returns a short string name for the type.
func (t Type) ShortString() string {
	name, ok := shortTypes[t]
	if ok {
		return name
	}
	return t.String()
}

// Sort kinds.
const (
	TUndefined Type = iota
	TBool
	TBitVector
	TField
	TInt
	TArray
	TTuple
)

// Types define sort kinds and their names.
var Types = map[string]Type{
	"<Undefined>": TUndefined,
	"bool":        TBool,
	"bv":          TBitVector,
	"field":       TField,
	"int":         TInt,
	"array":       TArray,
	"tuple":       TTuple,
}

var shortTypes = map[Type]string{
	TUndefined: "?",
	TBool:      "b",
	TBitVector: "bv",
	TField:     "f",
	TInt:       "i",
	TArray:     "arr",
	TTuple:     "tup",
}

// Sort specifies the static type of a term.
type Sort struct {
	Type      Type
	Bits      Size
	Index     *Sort
	Element   *Sort
	ArraySize Size
	Fields    []Sort
	Modulus   *big.Int
}

// Undefined defines the undefined sort.
var Undefined = Sort{
	Type: TUndefined,
}

// Bool returns the boolean sort.
func Bool() Sort {
	return Sort{
		Type: TBool,
	}
}

// BitVector returns the bit-vector sort of the argument width.
func BitVector(bits Size) Sort {
	return Sort{
		Type: TBitVector,
		Bits: bits,
	}
}

// Array returns the array sort with the argument index and element
// sorts and size.
func Array(index, element Sort, size Size) Sort {
	return Sort{
		Type:      TArray,
		Index:     &index,
		Element:   &element,
		ArraySize: size,
	}
}

// Tuple returns the tuple sort of the argument fields.
func Tuple(fields ...Sort) Sort {
	return Sort{
		Type:   TTuple,
		Fields: fields,
	}
}

// Field returns the prime field sort of the argument modulus.
func Field(modulus *big.Int) Sort {
	return Sort{
		Type:    TField,
		Modulus: modulus,
	}
}

// Int returns the unbounded integer sort.
func Int() Sort {
	return Sort{
		Type: TInt,
	}
}

// Undefined tests if the sort is undefined.
func (s Sort) Undefined() bool {
	return s.Type == TUndefined
}

// Scalar tests if the sort is a single-wire sort.
func (s Sort) Scalar() bool {
	return s.Type == TBool || s.Type == TBitVector
}

func (s Sort) String() string {
	switch s.Type {
	case TBool, TInt:
		return s.Type.String()

	case TBitVector:
		return fmt.Sprintf("(bv %d)", s.Bits)

	case TField:
		return fmt.Sprintf("(field %v)", s.Modulus)

	case TArray:
		return fmt.Sprintf("(array %s %s %d)", s.Index, s.Element, s.ArraySize)

	case TTuple:
		var sb strings.Builder
		sb.WriteString("(tuple")
		for _, f := range s.Fields {
			sb.WriteRune(' ')
			sb.WriteString(f.String())
		}
		sb.WriteRune(')')
		return sb.String()

	default:
		return s.Type.String()
	}
}

// ShortString returns a short string name for the sort.
func (s Sort) ShortString() string {
	switch s.Type {
	case TBitVector:
		return fmt.Sprintf("bv%d", s.Bits)

	case TArray:
		return fmt.Sprintf("[%d]%s", s.ArraySize, s.Element.ShortString())

	default:
		return s.Type.ShortString()
	}
}

// Equal tests if the argument sort is equal to this sort.
func (s Sort) Equal(o Sort) bool {
	if s.Type != o.Type {
		return false
	}
	switch s.Type {
	case TUndefined, TBool, TInt:
		return true

	case TBitVector:
		return s.Bits == o.Bits

	case TField:
		return s.Modulus.Cmp(o.Modulus) == 0

	case TArray:
		return s.ArraySize == o.ArraySize &&
			s.Index.Equal(*o.Index) && s.Element.Equal(*o.Element)

	case TTuple:
		if len(s.Fields) != len(o.Fields) {
			return false
		}
		for idx, f := range s.Fields {
			if !f.Equal(o.Fields[idx]) {
				return false
			}
		}
		return true

	default:
		panic(fmt.Sprintf("Sort.Equal called for %v", s.Type))
	}
}
