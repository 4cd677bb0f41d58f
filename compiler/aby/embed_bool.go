//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"github.com/markkurossi/abyc/compiler/ir"
)

func (l *Lowerer) embedBool(t *ir.Term) error {
	op := t.Op.Op

	switch op {
	case ir.Var:
		return l.embedInput(t, boolInputBits)

	case ir.Const:
		return l.embedConst(t)

	case ir.Eq:
		return l.embedGate(t, OpEq, t.Args[0], t.Args[1])

	case ir.Ite:
		return l.embedGate(t, OpMux, t.Args[0], t.Args[1], t.Args[2])

	case ir.Not:
		return l.embedGate(t, OpNot, t.Args[0])

	case ir.And, ir.Or, ir.Xor:
		if len(t.Args) == 1 {
			if op != ir.And {
				return unsupported(t)
			}
			// The result share is allocated before the operand
			// share replaces it.
			if _, err := l.Share(t); err != nil {
				return err
			}
			s, err := l.Share(t.Args[0])
			if err != nil {
				return err
			}
			l.rebind(t, []int{s})
			return nil
		}
		if len(t.Args) == 0 {
			return unsupported(t)
		}
		return l.embedGate(t, opcodes[op], t.Args[0], t.Args[1])

	case ir.BvUgt, ir.BvUlt, ir.BvUge, ir.BvUle:
		return l.embedGate(t, opcodes[op], t.Args[0], t.Args[1])

	case ir.Select:
		return l.embedSelect(t)

	case ir.Field:
		return l.embedField(t)

	default:
		return unsupported(t)
	}
}
