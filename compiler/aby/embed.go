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

// Bytecode opcodes.
const (
	OpIn     = "IN"
	OpOut    = "OUT"
	OpEq     = "EQ"
	OpMux    = "MUX"
	OpNot    = "NOT"
	OpAnd    = "AND"
	OpOr     = "OR"
	OpXor    = "XOR"
	OpGt     = "GT"
	OpLt     = "LT"
	OpGe     = "GE"
	OpLe     = "LE"
	OpAdd    = "ADD"
	OpMul    = "MUL"
	OpSub    = "SUB"
	OpDiv    = "DIV"
	OpRem    = "REM"
	OpShl    = "SHL"
	OpLshr   = "LSHR"
	OpSelect = "SELECT"
	OpStore  = "STORE"
)

// Public input bit widths.
const (
	boolInputBits = 1
	bvInputBits   = 32
)

var opcodes = map[ir.Operator]string{
	ir.Eq:     OpEq,
	ir.Ite:    OpMux,
	ir.Not:    OpNot,
	ir.And:    OpAnd,
	ir.Or:     OpOr,
	ir.Xor:    OpXor,
	ir.BvAnd:  OpAnd,
	ir.BvOr:   OpOr,
	ir.BvXor:  OpXor,
	ir.BvAdd:  OpAdd,
	ir.BvMul:  OpMul,
	ir.BvSub:  OpSub,
	ir.BvUdiv: OpDiv,
	ir.BvUrem: OpRem,
	ir.BvShl:  OpShl,
	ir.BvLshr: OpLshr,
	ir.BvUgt:  OpGt,
	ir.BvUlt:  OpLt,
	ir.BvUge:  OpGe,
	ir.BvUle:  OpLe,
}

// embed lowers all terms reachable from the root in post-order.
// Terms that already have shares are skipped.
func (l *Lowerer) embed(root *ir.Term) error {
	for t := range ir.PostOrder(root) {
		if l.shares.Has(t) && !l.pendingInput(t) {
			continue
		}
		var err error
		switch t.Sort().Type {
		case types.TBool:
			err = l.embedBool(t)
		case types.TBitVector:
			err = l.embedBv(t)
		case types.TArray, types.TTuple:
			err = l.embedStruct(t)
		default:
			err = fmt.Errorf("%w: %s", ErrUnsupportedSort, t.Sort())
		}
		if err != nil {
			return fmt.Errorf("%s: t%d %s: %w", l.comp.Name, t.ID, t, err)
		}
		if err := l.out.flush(l.comp.Name, false); err != nil {
			return err
		}
	}
	return nil
}

// pendingInput tests if the term is a declared input of the current
// computation that has not been emitted as an input yet. Input
// variables can have shares from earlier computations.
func (l *Lowerer) pendingInput(t *ir.Term) bool {
	if t.Op.Op != ir.Var || l.inputs[t] {
		return false
	}
	return l.comp.Metadata.IsInput(t.Op.Name)
}

func unsupported(t *ir.Term) error {
	return fmt.Errorf("%w: %s of sort %s",
		ErrUnsupportedOperator, t.Op, t.Sort())
}

func instruction(op string, in, out []int) string {
	operands := make([]int, 0, len(in)+len(out))
	operands = append(operands, in...)
	operands = append(operands, out...)

	return fmt.Sprintf("%d %d %s %s\n", len(in), len(out),
		sharesString(operands), op)
}

// emit adds the gate instruction to the bytecode output.
func (l *Lowerer) emit(op string, in, out []int) {
	l.out.bytecode = append(l.out.bytecode, instruction(op, in, out))
	l.cstats.Gates[op]++
}

// emitConst adds the constant value for the share.
func (l *Lowerer) emitConst(v *ir.Value, share int) error {
	var line string
	switch v.Sort.Type {
	case types.TBool:
		var bit int
		if v.Bool {
			bit = 1
		}
		line = fmt.Sprintf("1 1 %d %d CONS_bool\n", bit, share)

	case types.TBitVector:
		line = fmt.Sprintf("1 1 %s %d CONS_bv\n", v.Signed(), share)

	default:
		return fmt.Errorf("%w: constant %s", ErrUnsupportedSort, v.Sort)
	}
	l.out.consts = append(l.out.consts, line)
	l.cstats.Consts++
	return nil
}

// embedInput emits the input instruction for the variable term.
func (l *Lowerer) embedInput(t *ir.Term, bits int) error {
	md := l.comp.Metadata
	if !md.IsInput(t.Op.Name) {
		// Internal variables only get a share.
		_, err := l.Share(t)
		return err
	}
	if l.inputs[t] {
		return nil
	}
	name, err := VarName(t.Op.Name)
	if err != nil {
		return err
	}
	s, err := l.Share(t)
	if err != nil {
		return err
	}
	vis := md.Visibility(t.Op.Name)
	if vis == ir.Public {
		l.out.inputs[name] = fmt.Sprintf("3 1 %s %d %d %d %s\n",
			name, vis, bits, s, OpIn)
	} else {
		l.out.inputs[name] = fmt.Sprintf("2 1 %s %d %d %s\n",
			name, vis, s, OpIn)
	}
	l.inputs[t] = true
	return nil
}

// embedConst emits the scalar constant term.
func (l *Lowerer) embedConst(t *ir.Term) error {
	s, err := l.Share(t)
	if err != nil {
		return err
	}
	return l.emitConst(t.Op.Value, s)
}

// embedGate allocates the result share of the term and emits the
// instruction over the argument shares.
func (l *Lowerer) embedGate(t *ir.Term, op string, args ...*ir.Term) error {
	var in []int
	for _, arg := range args {
		s, err := l.Share(arg)
		if err != nil {
			return err
		}
		in = append(in, s)
	}
	s, err := l.Share(t)
	if err != nil {
		return err
	}
	l.emit(op, in, []int{s})
	return nil
}

// alias binds the shares to the term without emitting instructions.
func (l *Lowerer) alias(t *ir.Term, shares []int) {
	l.shares.Set(t, shares)
}

// rebind replaces the term's allocated shares with the argument
// shares.
func (l *Lowerer) rebind(t *ir.Term, shares []int) {
	l.shares.Rebind(t, shares)
}

// constIndex returns the integer value of the constant index term.
func constIndex(t *ir.Term) (int, bool) {
	if !t.IsConst() || t.Op.Value.Int == nil {
		return 0, false
	}
	v := t.Op.Value.Int
	if !v.IsInt64() {
		return -1, true
	}
	return int(v.Int64()), true
}

// embedSelect lowers the array read for scalar results. Constant
// indices select the element share directly.
func (l *Lowerer) embedSelect(t *ir.Term) error {
	arr, err := l.Shares(t.Args[0])
	if err != nil {
		return err
	}
	idx, ok := constIndex(t.Args[1])
	if ok {
		if idx < 0 || idx >= len(arr) {
			return fmt.Errorf("%w: select %d from %d elements",
				ErrOutOfBounds, idx, len(arr))
		}
		l.alias(t, []int{arr[idx]})
		return nil
	}
	is, err := l.Share(t.Args[1])
	if err != nil {
		return err
	}
	s, err := l.Share(t)
	if err != nil {
		return err
	}
	l.emit(OpSelect, append(arr, is), []int{s})
	return nil
}

// embedField lowers the tuple field projection.
func (l *Lowerer) embedField(t *ir.Term) error {
	tuple := t.Args[0]
	offset, n, err := fieldRange(tuple.Sort(), t.Op.Index)
	if err != nil {
		return err
	}
	shares, err := l.Shares(tuple)
	if err != nil {
		return err
	}
	if offset+n > len(shares) {
		return fmt.Errorf("%w: field %d of %d shares",
			ErrOutOfBounds, t.Op.Index, len(shares))
	}
	l.alias(t, shares[offset:offset+n])
	return nil
}
