//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ir

import (
	"fmt"
	"strings"

	"github.com/markkurossi/abyc/types"
)

// TermID defines unique term IDs. IDs are assigned in construction
// order so a term's ID is always larger than its arguments' IDs.
type TermID uint32

// Term implements a node in the hash-consed term graph. Terms are
// immutable and two terms with the same operator and the same
// arguments are the same *Term.
type Term struct {
	ID   TermID
	Op   Op
	Args []*Term
	sort types.Sort
}

// Sort returns the term's sort.
func (t *Term) Sort() types.Sort {
	return t.sort
}

// IsConst tests if the term is a constant.
func (t *Term) IsConst() bool {
	return t.Op.Op == Const
}

func (t *Term) String() string {
	if len(t.Args) == 0 {
		return t.Op.String()
	}
	var sb strings.Builder
	sb.WriteRune('(')
	sb.WriteString(t.Op.String())
	for _, arg := range t.Args {
		if len(arg.Args) == 0 {
			fmt.Fprintf(&sb, " %s", arg.Op)
		} else {
			fmt.Fprintf(&sb, " t%d", arg.ID)
		}
	}
	sb.WriteRune(')')
	return sb.String()
}

// Builder creates hash-consed terms.
type Builder struct {
	terms  map[string]*Term
	nextID TermID
}

// NewBuilder creates a new term builder.
func NewBuilder() *Builder {
	return &Builder{
		terms: make(map[string]*Term),
	}
}

// NumTerms returns the number of unique terms created.
func (b *Builder) NumTerms() int {
	return len(b.terms)
}

// Term returns the term for the operator and arguments. It type
// checks new terms and returns an error for ill-sorted applications.
func (b *Builder) Term(op Op, args ...*Term) (*Term, error) {
	var sb strings.Builder
	sb.WriteString(op.key())
	for _, arg := range args {
		fmt.Fprintf(&sb, " %d", arg.ID)
	}
	key := sb.String()

	t, ok := b.terms[key]
	if ok {
		return t, nil
	}
	sort, err := check(op, args)
	if err != nil {
		return nil, err
	}
	t = &Term{
		ID:   b.nextID,
		Op:   op,
		Args: args,
		sort: sort,
	}
	b.nextID++
	b.terms[key] = t

	return t, nil
}

// Var returns the variable term.
func (b *Builder) Var(name string, sort types.Sort) *Term {
	t, err := b.Term(VarOp(name, sort))
	if err != nil {
		panic(err)
	}
	return t
}

// Const returns the constant leaf term for the value.
func (b *Builder) Const(v *Value) *Term {
	t, err := b.Term(ConstOp(v))
	if err != nil {
		panic(err)
	}
	return t
}

// Apply returns the term for the parameterless operator.
func (b *Builder) Apply(op Operator, args ...*Term) (*Term, error) {
	return b.Term(NewOp(op), args...)
}

func check(op Op, args []*Term) (types.Sort, error) {
	arity := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s: expected %d arguments, got %d",
				op, n, len(args))
		}
		return nil
	}
	sameSort := func(expected types.Type, from int) (types.Sort, error) {
		if len(args) <= from {
			return types.Undefined, fmt.Errorf("%s: too few arguments", op)
		}
		s := args[from].Sort()
		if expected != types.TUndefined && s.Type != expected {
			return types.Undefined, fmt.Errorf("%s: invalid argument sort %s",
				op, s)
		}
		for _, arg := range args[from+1:] {
			if !arg.Sort().Equal(s) {
				return types.Undefined, fmt.Errorf("%s: sort mismatch: %s != %s",
					op, arg.Sort(), s)
			}
		}
		return s, nil
	}

	switch op.Op {
	case Var:
		if err := arity(0); err != nil {
			return types.Undefined, err
		}
		if op.Sort.Undefined() {
			return types.Undefined, fmt.Errorf("variable %s: sort not set",
				op.Name)
		}
		return op.Sort, nil

	case Const:
		if err := arity(0); err != nil {
			return types.Undefined, err
		}
		return op.Value.Sort, nil

	case Eq:
		if err := arity(2); err != nil {
			return types.Undefined, err
		}
		if _, err := sameSort(types.TUndefined, 0); err != nil {
			return types.Undefined, err
		}
		return types.Bool(), nil

	case Ite:
		if err := arity(3); err != nil {
			return types.Undefined, err
		}
		if args[0].Sort().Type != types.TBool {
			return types.Undefined, fmt.Errorf("%s: non-boolean selector %s",
				op, args[0].Sort())
		}
		return sameSort(types.TUndefined, 1)

	case Not:
		if err := arity(1); err != nil {
			return types.Undefined, err
		}
		return sameSort(types.TBool, 0)

	case And, Or, Xor:
		return sameSort(types.TBool, 0)

	case Implies:
		if err := arity(2); err != nil {
			return types.Undefined, err
		}
		return sameSort(types.TBool, 0)

	case BvAnd, BvOr, BvXor, BvAdd, BvMul:
		return sameSort(types.TBitVector, 0)

	case BvSub, BvUdiv, BvUrem, BvShl, BvLshr, BvAshr:
		if err := arity(2); err != nil {
			return types.Undefined, err
		}
		return sameSort(types.TBitVector, 0)

	case BvNot, BvNeg:
		if err := arity(1); err != nil {
			return types.Undefined, err
		}
		return sameSort(types.TBitVector, 0)

	case BvUgt, BvUlt, BvUge, BvUle, BvSgt, BvSlt, BvSge, BvSle:
		if err := arity(2); err != nil {
			return types.Undefined, err
		}
		if _, err := sameSort(types.TBitVector, 0); err != nil {
			return types.Undefined, err
		}
		return types.Bool(), nil

	case Select:
		if err := arity(2); err != nil {
			return types.Undefined, err
		}
		arr := args[0].Sort()
		if arr.Type != types.TArray {
			return types.Undefined, fmt.Errorf("%s: non-array argument %s",
				op, arr)
		}
		if !arr.Index.Equal(args[1].Sort()) {
			return types.Undefined, fmt.Errorf("%s: invalid index sort %s",
				op, args[1].Sort())
		}
		return *arr.Element, nil

	case Store:
		if err := arity(3); err != nil {
			return types.Undefined, err
		}
		arr := args[0].Sort()
		if arr.Type != types.TArray {
			return types.Undefined, fmt.Errorf("%s: non-array argument %s",
				op, arr)
		}
		if !arr.Index.Equal(args[1].Sort()) {
			return types.Undefined, fmt.Errorf("%s: invalid index sort %s",
				op, args[1].Sort())
		}
		if !arr.Element.Equal(args[2].Sort()) {
			return types.Undefined, fmt.Errorf("%s: invalid value sort %s",
				op, args[2].Sort())
		}
		return arr, nil

	case Tuple:
		var fields []types.Sort
		for _, arg := range args {
			fields = append(fields, arg.Sort())
		}
		return types.Tuple(fields...), nil

	case Field:
		if err := arity(1); err != nil {
			return types.Undefined, err
		}
		tup := args[0].Sort()
		if tup.Type != types.TTuple {
			return types.Undefined, fmt.Errorf("%s: non-tuple argument %s",
				op, tup)
		}
		if op.Index < 0 || op.Index >= len(tup.Fields) {
			return types.Undefined, fmt.Errorf("%s: index out of range for %s",
				op, tup)
		}
		return tup.Fields[op.Index], nil

	case Update:
		if err := arity(2); err != nil {
			return types.Undefined, err
		}
		tup := args[0].Sort()
		if tup.Type != types.TTuple {
			return types.Undefined, fmt.Errorf("%s: non-tuple argument %s",
				op, tup)
		}
		if op.Index < 0 || op.Index >= len(tup.Fields) {
			return types.Undefined, fmt.Errorf("%s: index out of range for %s",
				op, tup)
		}
		if !tup.Fields[op.Index].Equal(args[1].Sort()) {
			return types.Undefined, fmt.Errorf("%s: invalid value sort %s",
				op, args[1].Sort())
		}
		return tup, nil

	case Call:
		if err := arity(len(op.ArgSorts)); err != nil {
			return types.Undefined, err
		}
		for idx, arg := range args {
			if !arg.Sort().Equal(op.ArgSorts[idx]) {
				return types.Undefined,
					fmt.Errorf("%s: argument %d: sort mismatch: %s != %s",
						op, idx, arg.Sort(), op.ArgSorts[idx])
			}
		}
		return types.Tuple(op.RetSorts...), nil

	default:
		return types.Undefined, fmt.Errorf("unknown operator %s", op)
	}
}
