//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"fmt"

	"github.com/markkurossi/abyc/compiler/ir"
	"github.com/markkurossi/abyc/types"
)

// embedStruct lowers array and tuple valued terms. The rules operate
// on share vectors.
func (l *Lowerer) embedStruct(t *ir.Term) error {
	switch t.Op.Op {
	case ir.Const:
		if t.Sort().Type == types.TArray {
			return l.embedArrayConst(t)
		}
		return l.embedTupleConst(t)

	case ir.Ite:
		return l.embedStructIte(t)

	case ir.Store:
		return l.embedStore(t)

	case ir.Field:
		return l.embedField(t)

	case ir.Update:
		return l.embedUpdate(t)

	case ir.Tuple:
		var shares []int
		for _, arg := range t.Args {
			s, err := l.Shares(arg)
			if err != nil {
				return err
			}
			shares = append(shares, s...)
		}
		l.alias(t, shares)
		return nil

	case ir.Call:
		return l.embedCall(t)

	default:
		return unsupported(t)
	}
}

func (l *Lowerer) embedArrayConst(t *ir.Term) error {
	scheme, err := l.scheme(t)
	if err != nil {
		return err
	}
	arr := t.Op.Value.Array

	var shares []int
	for i := 0; i < arr.Size; i++ {
		v := arr.Get(i)
		if !v.Sort.Scalar() {
			return fmt.Errorf("%w: array element %s", ErrUnsupportedSort,
				v.Sort)
		}
		elem := l.prog.Builder.Const(v)
		s, created, err := l.constShare(elem, scheme)
		if err != nil {
			return err
		}
		if created {
			if err := l.emitConst(v, s); err != nil {
				return err
			}
		}
		shares = append(shares, s)
	}
	n, err := SortLen(t.Sort())
	if err != nil {
		return err
	}
	if len(shares) != n {
		return fmt.Errorf("%w: array constant has %d elements, expected %d",
			ErrSortMismatch, len(shares), n)
	}
	l.alias(t, shares)
	return nil
}

func (l *Lowerer) embedTupleConst(t *ir.Term) error {
	shares, err := l.Shares(t)
	if err != nil {
		return err
	}
	fields := t.Op.Value.Tuple
	if len(fields) != len(shares) {
		return fmt.Errorf("%w: nested tuple constant %s",
			ErrUnsupportedSort, t.Sort())
	}
	for idx, v := range fields {
		if err := l.emitConst(v, shares[idx]); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) embedStructIte(t *ir.Term) error {
	sel, err := l.Share(t.Args[0])
	if err != nil {
		return err
	}
	tv, err := l.Shares(t.Args[1])
	if err != nil {
		return err
	}
	fv, err := l.Shares(t.Args[2])
	if err != nil {
		return err
	}
	result, err := l.Shares(t)
	if err != nil {
		return err
	}
	if len(tv) != len(result) || len(fv) != len(result) {
		return fmt.Errorf("%w: branches have %d and %d shares, expected %d",
			ErrSortMismatch, len(tv), len(fv), len(result))
	}
	in := []int{sel}
	in = append(in, tv...)
	in = append(in, fv...)
	l.emit(OpMux, in, result)
	return nil
}

func (l *Lowerer) embedStore(t *ir.Term) error {
	arr, err := l.Shares(t.Args[0])
	if err != nil {
		return err
	}
	idx, ok := constIndex(t.Args[1])
	if ok {
		if idx < 0 || idx >= len(arr) {
			return fmt.Errorf("%w: store %d to %d elements",
				ErrOutOfBounds, idx, len(arr))
		}
		v, err := l.Share(t.Args[2])
		if err != nil {
			return err
		}
		arr[idx] = v
		l.alias(t, arr)
		return nil
	}
	is, err := l.Share(t.Args[1])
	if err != nil {
		return err
	}
	v, err := l.Share(t.Args[2])
	if err != nil {
		return err
	}
	result, err := l.Shares(t)
	if err != nil {
		return err
	}
	l.emit(OpStore, append(arr, is, v), result)
	return nil
}

func (l *Lowerer) embedUpdate(t *ir.Term) error {
	offset, n, err := fieldRange(t.Args[0].Sort(), t.Op.Index)
	if err != nil {
		return err
	}
	shares, err := l.Shares(t.Args[0])
	if err != nil {
		return err
	}
	v, err := l.Shares(t.Args[1])
	if err != nil {
		return err
	}
	if len(v) != n || offset+n > len(shares) {
		return fmt.Errorf("%w: update field %d", ErrOutOfBounds, t.Op.Index)
	}
	copy(shares[offset:], v)
	l.alias(t, shares)
	return nil
}

func (l *Lowerer) embedCall(t *ir.Term) error {
	var in []int
	for idx, arg := range t.Args {
		// Rewirable arguments are passed by wires like the rest for
		// now.
		if _, err := rewirable(t.Op.ArgSorts[idx]); err != nil {
			return err
		}
		s, err := l.Shares(arg)
		if err != nil {
			return err
		}
		in = append(in, s...)
	}
	result, err := l.Shares(t)
	if err != nil {
		return err
	}

	var nin, nout int
	for _, s := range t.Op.ArgSorts {
		n, err := SortLen(s)
		if err != nil {
			return err
		}
		nin += n
	}
	for _, s := range t.Op.RetSorts {
		n, err := SortLen(s)
		if err != nil {
			return err
		}
		nout += n
	}
	if nin != len(in) || nout != len(result) {
		return fmt.Errorf("%w: call %s", ErrSortMismatch, t.Op.Name)
	}
	l.emit(fmt.Sprintf("CALL(%s)", t.Op.Name), in, result)
	return nil
}
