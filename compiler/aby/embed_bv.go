//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"fmt"

	"github.com/markkurossi/abyc/compiler/ir"
)

func (l *Lowerer) embedBv(t *ir.Term) error {
	op := t.Op.Op

	switch op {
	case ir.Var:
		return l.embedInput(t, bvInputBits)

	case ir.Const:
		return l.embedConst(t)

	case ir.Ite:
		return l.embedGate(t, OpMux, t.Args[0], t.Args[1], t.Args[2])

	case ir.BvAnd, ir.BvOr, ir.BvXor, ir.BvAdd, ir.BvMul:
		if len(t.Args) < 2 {
			return unsupported(t)
		}
		return l.embedGate(t, opcodes[op], t.Args[0], t.Args[1])

	case ir.BvSub, ir.BvUdiv, ir.BvUrem:
		return l.embedGate(t, opcodes[op], t.Args[0], t.Args[1])

	case ir.BvShl, ir.BvLshr:
		return l.embedShift(t)

	case ir.Field:
		return l.embedField(t)

	case ir.Select:
		return l.embedSelect(t)

	default:
		return unsupported(t)
	}
}

// embedShift lowers shifts by constant amounts. The amount is
// encoded as an immediate operand.
func (l *Lowerer) embedShift(t *ir.Term) error {
	v, ok := l.folder.Fold(t.Args[1])
	if !ok || v.Int == nil {
		return fmt.Errorf("%w: shift amount %s", ErrNotConstant, t.Args[1])
	}
	if !v.Int.IsInt64() {
		return fmt.Errorf("%w: shift amount %s", ErrOutOfBounds, v)
	}
	a, err := l.Share(t.Args[0])
	if err != nil {
		return err
	}
	s, err := l.Share(t)
	if err != nil {
		return err
	}
	l.emit(opcodes[t.Op.Op], []int{a, int(v.Int.Int64())}, []int{s})
	return nil
}
