//
// parser.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package ir

import (
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/markkurossi/abyc/compiler/utils"
	"github.com/markkurossi/abyc/types"
)

// Parser parses the textual program format:
//
//	(computation NAME
//	  (inputs (VAR SORT [VIS]) ...)
//	  (let ((ID TERM) ...) (outputs TERM ...)))
type Parser struct {
	source string
	logger *utils.Logger
	lexer  *Lexer
	prog   *Program
}

// NewParser creates a new parser for the named input.
func NewParser(source string, logger *utils.Logger, in io.Reader) *Parser {
	return &Parser{
		source: source,
		logger: logger,
		lexer:  NewLexer(source, in),
		prog:   NewProgram(),
	}
}

type env struct {
	parent   *env
	bindings map[string]*Term
}

func (e *env) lookup(name string) (*Term, bool) {
	for ; e != nil; e = e.parent {
		t, ok := e.bindings[name]
		if ok {
			return t, true
		}
	}
	return nil, false
}

func (e *env) push() *env {
	return &env{
		parent:   e,
		bindings: make(map[string]*Term),
	}
}

// Parse parses the input program.
func (p *Parser) Parse() (*Program, error) {
	for {
		e, err := ReadSExp(p.lexer)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if !e.MatchSymbol("computation") || len(e.List) < 2 ||
			e.List[1].IsList {
			return nil, p.errf(e, "expected (computation NAME ...)")
		}
		comp, err := p.parseComputation(e)
		if err != nil {
			return nil, err
		}
		if err := p.prog.Add(comp); err != nil {
			return nil, p.errf(e, "%s", err)
		}
	}
	return p.prog, nil
}

func (p *Parser) errf(loc utils.Locator, format string,
	a ...interface{}) error {
	return p.logger.Errorf(loc.Location(), format, a...)
}

func (p *Parser) parseComputation(e *SExp) (*Computation, error) {
	comp := NewComputation(e.List[1].Symbol)
	scope := &env{
		bindings: make(map[string]*Term),
	}

	for _, item := range e.List[2:] {
		switch {
		case item.MatchSymbol("inputs"):
			if err := p.parseInputs(comp, scope, item); err != nil {
				return nil, err
			}

		case item.MatchSymbol("let"), item.MatchSymbol("outputs"):
			if len(comp.Outputs) > 0 {
				return nil, p.errf(item, "outputs already defined")
			}
			outputs, err := p.parseBody(scope, item)
			if err != nil {
				return nil, err
			}
			comp.Outputs = outputs

		default:
			return nil, p.errf(item, "unexpected computation item: %s", item)
		}
	}
	if len(comp.Outputs) == 0 {
		return nil, p.errf(e, "computation %s has no outputs", comp.Name)
	}
	return comp, nil
}

func (p *Parser) parseInputs(comp *Computation, scope *env, e *SExp) error {
	for _, decl := range e.List[1:] {
		if !decl.IsList || len(decl.List) < 2 || len(decl.List) > 3 ||
			decl.List[0].IsList {
			return p.errf(decl, "expected (NAME SORT [VISIBILITY])")
		}
		name := decl.List[0].Symbol
		sort, err := p.parseSort(decl.List[1])
		if err != nil {
			return err
		}
		var party *Visibility
		if len(decl.List) == 3 {
			vis := decl.List[2]
			switch vis.Symbol {
			case "public":
			case "0", "1":
				v := Visibility(vis.Symbol[0] - '0')
				party = &v
			default:
				return p.errf(vis, "invalid visibility: %s", vis)
			}
		}
		t := p.prog.Builder.Var(name, sort)
		if err := comp.Metadata.AddInput(t, party); err != nil {
			return p.errf(decl, "%s", err)
		}
		scope.bindings[name] = t
	}
	return nil
}

func (p *Parser) parseBody(scope *env, e *SExp) ([]*Term, error) {
	if e.MatchSymbol("outputs") {
		var result []*Term
		for _, o := range e.List[1:] {
			t, err := p.parseTerm(scope, o)
			if err != nil {
				return nil, err
			}
			result = append(result, t)
		}
		return result, nil
	}
	if len(e.List) != 3 {
		return nil, p.errf(e, "expected (let BINDINGS BODY)")
	}
	inner, err := p.parseBindings(scope, e.List[1])
	if err != nil {
		return nil, err
	}
	if !e.List[2].MatchSymbol("let") && !e.List[2].MatchSymbol("outputs") {
		return nil, p.errf(e.List[2], "expected let or outputs")
	}
	return p.parseBody(inner, e.List[2])
}

func (p *Parser) parseBindings(scope *env, e *SExp) (*env, error) {
	if !e.IsList {
		return nil, p.errf(e, "expected binding list")
	}
	inner := scope.push()
	for _, b := range e.List {
		if !b.IsList || len(b.List) != 2 || b.List[0].IsList {
			return nil, p.errf(b, "expected (NAME TERM)")
		}
		name := b.List[0].Symbol
		if _, ok := scope.lookup(name); ok {
			p.logger.Warningf(b.Location(), "%s shadows an earlier binding",
				name)
		}
		t, err := p.parseTerm(inner, b.List[1])
		if err != nil {
			return nil, err
		}
		inner.bindings[name] = t
	}
	return inner, nil
}

func (p *Parser) parseTerm(scope *env, e *SExp) (*Term, error) {
	b := p.prog.Builder

	if !e.IsList {
		t, ok := scope.lookup(e.Symbol)
		if ok {
			return t, nil
		}
		if !isConstSymbol(e.Symbol) {
			return nil, p.errf(e, "undefined: %s", e.Symbol)
		}
		v, err := p.parseValue(e)
		if err != nil {
			return nil, err
		}
		return b.Const(v), nil
	}
	if len(e.List) == 0 {
		return nil, p.errf(e, "empty term")
	}

	head := e.List[0]
	if !head.IsList {
		switch head.Symbol {
		case "#bv", "#t", "#a":
			v, err := p.parseValue(e)
			if err != nil {
				return nil, err
			}
			return b.Const(v), nil

		case "let":
			if len(e.List) != 3 {
				return nil, p.errf(e, "expected (let BINDINGS TERM)")
			}
			inner, err := p.parseBindings(scope, e.List[1])
			if err != nil {
				return nil, err
			}
			return p.parseTerm(inner, e.List[2])
		}
	}

	var op Op
	var err error
	if head.IsList {
		op, err = p.parseOp(head)
		if err != nil {
			return nil, err
		}
	} else {
		operator, ok := Operators[head.Symbol]
		if !ok || operator == Var || operator == Const ||
			operator == Field || operator == Update || operator == Call {
			return nil, p.errf(head, "unknown operator: %s", head.Symbol)
		}
		op = NewOp(operator)
	}

	var args []*Term
	for _, a := range e.List[1:] {
		t, err := p.parseTerm(scope, a)
		if err != nil {
			return nil, err
		}
		args = append(args, t)
	}
	t, err := b.Term(op, args...)
	if err != nil {
		return nil, p.errf(e, "%s", err)
	}
	return t, nil
}

func (p *Parser) parseOp(e *SExp) (Op, error) {
	if len(e.List) == 0 || e.List[0].IsList {
		return Op{}, p.errf(e, "invalid operator: %s", e)
	}
	switch e.List[0].Symbol {
	case "field", "update":
		if len(e.List) != 2 {
			return Op{}, p.errf(e, "expected (%s INDEX)", e.List[0].Symbol)
		}
		idx, err := p.parseInt(e.List[1])
		if err != nil {
			return Op{}, err
		}
		if e.List[0].Symbol == "field" {
			return FieldOp(idx), nil
		}
		return UpdateOp(idx), nil

	case "call":
		if len(e.List) != 4 || e.List[1].IsList || !e.List[2].IsList ||
			!e.List[3].IsList {
			return Op{}, p.errf(e, "expected (call NAME (ARGS) (RETS))")
		}
		var args, rets []types.Sort
		for _, s := range e.List[2].List {
			sort, err := p.parseSort(s)
			if err != nil {
				return Op{}, err
			}
			args = append(args, sort)
		}
		for _, s := range e.List[3].List {
			sort, err := p.parseSort(s)
			if err != nil {
				return Op{}, err
			}
			rets = append(rets, sort)
		}
		return CallOp(e.List[1].Symbol, args, rets), nil

	default:
		return Op{}, p.errf(e, "unknown operator: %s", e)
	}
}

func (p *Parser) parseInt(e *SExp) (int, error) {
	if e.IsList {
		return 0, p.errf(e, "expected integer: %s", e)
	}
	v, err := strconv.Atoi(e.Symbol)
	if err != nil {
		return 0, p.errf(e, "invalid integer: %s", e.Symbol)
	}
	return v, nil
}

func (p *Parser) parseSort(e *SExp) (types.Sort, error) {
	if !e.IsList {
		sort, err := types.Parse(e.Symbol)
		if err != nil {
			return types.Undefined, p.errf(e, "%s", err)
		}
		return sort, nil
	}
	if len(e.List) == 0 || e.List[0].IsList {
		return types.Undefined, p.errf(e, "invalid sort: %s", e)
	}
	switch e.List[0].Symbol {
	case "bv":
		if len(e.List) != 2 {
			return types.Undefined, p.errf(e, "expected (bv WIDTH)")
		}
		w, err := p.parseInt(e.List[1])
		if err != nil {
			return types.Undefined, err
		}
		if w <= 0 {
			return types.Undefined, p.errf(e, "invalid width: %d", w)
		}
		return types.BitVector(types.Size(w)), nil

	case "array":
		if len(e.List) != 4 {
			return types.Undefined, p.errf(e, "expected (array IDX ELEM SIZE)")
		}
		idx, err := p.parseSort(e.List[1])
		if err != nil {
			return types.Undefined, err
		}
		elem, err := p.parseSort(e.List[2])
		if err != nil {
			return types.Undefined, err
		}
		n, err := p.parseInt(e.List[3])
		if err != nil {
			return types.Undefined, err
		}
		return types.Array(idx, elem, types.Size(n)), nil

	case "tuple":
		var fields []types.Sort
		for _, f := range e.List[1:] {
			sort, err := p.parseSort(f)
			if err != nil {
				return types.Undefined, err
			}
			fields = append(fields, sort)
		}
		return types.Tuple(fields...), nil

	case "field":
		if len(e.List) != 2 || e.List[1].IsList {
			return types.Undefined, p.errf(e, "expected (field MODULUS)")
		}
		mod, ok := new(big.Int).SetString(e.List[1].Symbol, 0)
		if !ok {
			return types.Undefined, p.errf(e, "invalid modulus: %s",
				e.List[1].Symbol)
		}
		return types.Field(mod), nil

	default:
		return types.Undefined, p.errf(e, "invalid sort: %s", e)
	}
}

func isConstSymbol(sym string) bool {
	return sym == "true" || sym == "false" ||
		strings.HasPrefix(sym, "#b") || strings.HasPrefix(sym, "#x")
}

func (p *Parser) parseValue(e *SExp) (*Value, error) {
	if !e.IsList {
		sym := e.Symbol
		switch {
		case sym == "true":
			return BoolValue(true), nil

		case sym == "false":
			return BoolValue(false), nil

		case strings.HasPrefix(sym, "#b") && len(sym) > 2:
			v, ok := new(big.Int).SetString(sym[2:], 2)
			if !ok {
				return nil, p.errf(e, "invalid binary constant: %s", sym)
			}
			return BitVectorValue(v, types.Size(len(sym)-2)), nil

		case strings.HasPrefix(sym, "#x") && len(sym) > 2:
			v, ok := new(big.Int).SetString(sym[2:], 16)
			if !ok {
				return nil, p.errf(e, "invalid hex constant: %s", sym)
			}
			return BitVectorValue(v, types.Size(4*(len(sym)-2))), nil
		}
		return nil, p.errf(e, "invalid constant: %s", sym)
	}

	switch {
	case e.MatchSymbol("#bv"):
		if len(e.List) != 3 || e.List[1].IsList {
			return nil, p.errf(e, "expected (#bv VALUE WIDTH)")
		}
		v, ok := new(big.Int).SetString(e.List[1].Symbol, 0)
		if !ok {
			return nil, p.errf(e, "invalid integer: %s", e.List[1].Symbol)
		}
		w, err := p.parseInt(e.List[2])
		if err != nil {
			return nil, err
		}
		if w <= 0 {
			return nil, p.errf(e, "invalid width: %d", w)
		}
		return BitVectorValue(v, types.Size(w)), nil

	case e.MatchSymbol("#t"):
		var fields []*Value
		for _, f := range e.List[1:] {
			v, err := p.parseValue(f)
			if err != nil {
				return nil, err
			}
			fields = append(fields, v)
		}
		return TupleValue(fields...), nil

	case e.MatchSymbol("#a"):
		if len(e.List) < 4 || len(e.List) > 5 {
			return nil, p.errf(e, "expected (#a IDX DEFAULT SIZE [ENTRIES])")
		}
		idx, err := p.parseSort(e.List[1])
		if err != nil {
			return nil, err
		}
		def, err := p.parseValue(e.List[2])
		if err != nil {
			return nil, err
		}
		size, err := p.parseInt(e.List[3])
		if err != nil {
			return nil, err
		}
		entries := make(map[int]*Value)
		if len(e.List) == 5 {
			if !e.List[4].IsList {
				return nil, p.errf(e.List[4], "expected entry list")
			}
			for _, entry := range e.List[4].List {
				if !entry.IsList || len(entry.List) != 2 {
					return nil, p.errf(entry, "expected (INDEX VALUE)")
				}
				i, err := p.parseInt(entry.List[0])
				if err != nil {
					return nil, err
				}
				if i < 0 || i >= size {
					return nil, p.errf(entry, "index %d out of range", i)
				}
				v, err := p.parseValue(entry.List[1])
				if err != nil {
					return nil, err
				}
				if !v.Sort.Equal(def.Sort) {
					return nil, p.errf(entry, "sort mismatch: %s != %s",
						v.Sort, def.Sort)
				}
				entries[i] = v
			}
		}
		return ArrayConst(idx, def, size, entries), nil

	default:
		return nil, p.errf(e, "invalid constant: %s", e)
	}
}
