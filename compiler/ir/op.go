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

// Operator specifies term operators.
type Operator uint8

// Term operators.
const (
	Var Operator = iota
	Const
	Eq
	Ite
	Not
	And
	Or
	Xor
	Implies
	BvAnd
	BvOr
	BvXor
	BvAdd
	BvMul
	BvSub
	BvUdiv
	BvUrem
	BvShl
	BvLshr
	BvAshr
	BvNot
	BvNeg
	BvUgt
	BvUlt
	BvUge
	BvUle
	BvSgt
	BvSlt
	BvSge
	BvSle
	Select
	Store
	Tuple
	Field
	Update
	Call
)

var operators = map[Operator]string{
	Var:     "var",
	Const:   "const",
	Eq:      "=",
	Ite:     "ite",
	Not:     "not",
	And:     "and",
	Or:      "or",
	Xor:     "xor",
	Implies: "=>",
	BvAnd:   "bvand",
	BvOr:    "bvor",
	BvXor:   "bvxor",
	BvAdd:   "bvadd",
	BvMul:   "bvmul",
	BvSub:   "bvsub",
	BvUdiv:  "bvudiv",
	BvUrem:  "bvurem",
	BvShl:   "bvshl",
	BvLshr:  "bvlshr",
	BvAshr:  "bvashr",
	BvNot:   "bvnot",
	BvNeg:   "bvneg",
	BvUgt:   "bvugt",
	BvUlt:   "bvult",
	BvUge:   "bvuge",
	BvUle:   "bvule",
	BvSgt:   "bvsgt",
	BvSlt:   "bvslt",
	BvSge:   "bvsge",
	BvSle:   "bvsle",
	Select:  "select",
	Store:   "store",
	Tuple:   "tuple",
	Field:   "field",
	Update:  "update",
	Call:    "call",
}

// Operators maps operator names to operators.
var Operators = make(map[string]Operator)

func init() {
	for k, v := range operators {
		Operators[v] = k
	}
}

func (op Operator) String() string {
	name, ok := operators[op]
	if ok {
		return name
	}
	return fmt.Sprintf("{Operator %d}", op)
}

// BoolNary tests if the operator is an n-ary boolean operator.
func (op Operator) BoolNary() bool {
	return op == And || op == Or || op == Xor
}

// BvNary tests if the operator is an n-ary bit-vector operator.
func (op Operator) BvNary() bool {
	return op >= BvAnd && op <= BvMul
}

// BvBinary tests if the operator is a binary bit-vector operator.
func (op Operator) BvBinary() bool {
	return op >= BvSub && op <= BvAshr
}

// BvUnary tests if the operator is an unary bit-vector operator.
func (op Operator) BvUnary() bool {
	return op == BvNot || op == BvNeg
}

// BvPred tests if the operator is a bit-vector comparison predicate.
func (op Operator) BvPred() bool {
	return op >= BvUgt && op <= BvSle
}

// Op specifies a term operator and its parameters.
type Op struct {
	Op Operator

	// Name is the variable name for Var and the callee for Call.
	Name string

	// Sort is the variable sort for Var.
	Sort types.Sort

	// Value is the constant value for Const.
	Value *Value

	// Index is the field index for Field and Update.
	Index int

	// ArgSorts and RetSorts define the callee signature for Call.
	ArgSorts []types.Sort
	RetSorts []types.Sort
}

// NewOp creates a parameterless operator.
func NewOp(op Operator) Op {
	return Op{
		Op: op,
	}
}

// VarOp creates a variable operator.
func VarOp(name string, sort types.Sort) Op {
	return Op{
		Op:   Var,
		Name: name,
		Sort: sort,
	}
}

// ConstOp creates a constant operator.
func ConstOp(v *Value) Op {
	return Op{
		Op:    Const,
		Value: v,
	}
}

// FieldOp creates a tuple field projection operator.
func FieldOp(index int) Op {
	return Op{
		Op:    Field,
		Index: index,
	}
}

// UpdateOp creates a tuple field update operator.
func UpdateOp(index int) Op {
	return Op{
		Op:    Update,
		Index: index,
	}
}

// CallOp creates a function call operator.
func CallOp(name string, args, rets []types.Sort) Op {
	return Op{
		Op:       Call,
		Name:     name,
		ArgSorts: args,
		RetSorts: rets,
	}
}

func (op Op) String() string {
	switch op.Op {
	case Var:
		return op.Name

	case Const:
		return op.Value.String()

	case Field, Update:
		return fmt.Sprintf("(%s %d)", op.Op, op.Index)

	case Call:
		var sb strings.Builder
		fmt.Fprintf(&sb, "(call %s (", op.Name)
		for idx, s := range op.ArgSorts {
			if idx > 0 {
				sb.WriteRune(' ')
			}
			sb.WriteString(s.String())
		}
		sb.WriteString(") (")
		for idx, s := range op.RetSorts {
			if idx > 0 {
				sb.WriteRune(' ')
			}
			sb.WriteString(s.String())
		}
		sb.WriteString("))")
		return sb.String()

	default:
		return op.Op.String()
	}
}

// key returns the structural identity key of the operator.
func (op Op) key() string {
	if op.Op == Var {
		return fmt.Sprintf("var:%s:%s", op.Name, op.Sort)
	}
	return op.String()
}
