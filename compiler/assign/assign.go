//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package assign

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/markkurossi/abyc/compiler/ir"
	"golang.org/x/sync/errgroup"
)

// Scheme specifies a secret sharing scheme.
type Scheme uint8

// Sharing schemes.
const (
	Arithmetic Scheme = iota
	Boolean
	Yao
)

// Char returns the scheme's share map character.
func (s Scheme) Char() byte {
	switch s {
	case Arithmetic:
		return 'a'
	case Boolean:
		return 'b'
	case Yao:
		return 'y'
	default:
		panic(fmt.Sprintf("invalid scheme %d", s))
	}
}

func (s Scheme) String() string {
	switch s {
	case Arithmetic:
		return "arithmetic"
	case Boolean:
		return "boolean"
	case Yao:
		return "yao"
	default:
		return fmt.Sprintf("{Scheme %d}", s)
	}
}

// SharingMap maps terms to their sharing schemes.
type SharingMap map[*ir.Term]Scheme

// Get returns the term's sharing scheme.
func (m SharingMap) Get(t *ir.Term) (Scheme, bool) {
	s, ok := m[t]
	return s, ok
}

// Set sets the term's sharing scheme.
func (m SharingMap) Set(t *ir.Term, s Scheme) {
	m[t] = s
}

// Strategy assigns sharing schemes for a computation.
type Strategy func(c *ir.Computation) SharingMap

var strategies = map[string]Strategy{
	"b":   AllBoolean,
	"y":   AllYao,
	"a+b": ArithmeticAnd(Boolean),
	"a+y": ArithmeticAnd(Yao),
}

// Strategies returns the names of the available strategies.
func Strategies() []string {
	var names []string
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds the named strategy.
func Lookup(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unsupported sharing scheme: %s (%s)",
			name, strings.Join(Strategies(), ", "))
	}
	return s, nil
}

func uniform(c *ir.Computation, scheme Scheme) SharingMap {
	result := make(SharingMap)
	for _, o := range c.Outputs {
		for t := range ir.PostOrder(o) {
			result[t] = scheme
		}
	}
	return result
}

// AllBoolean assigns the boolean circuit scheme for all terms.
func AllBoolean(c *ir.Computation) SharingMap {
	return uniform(c, Boolean)
}

// AllYao assigns the Yao garbled circuit scheme for all terms.
func AllYao(c *ir.Computation) SharingMap {
	return uniform(c, Yao)
}

// ArithmeticAnd returns a strategy that assigns the arithmetic scheme
// for bit-vector addition, subtraction, and multiplication and the
// argument scheme for all other terms.
func ArithmeticAnd(other Scheme) Strategy {
	return func(c *ir.Computation) SharingMap {
		result := make(SharingMap)
		for _, o := range c.Outputs {
			for t := range ir.PostOrder(o) {
				switch t.Op.Op {
				case ir.BvAdd, ir.BvSub, ir.BvMul:
					result[t] = Arithmetic
				default:
					result[t] = other
				}
			}
		}
		return result
	}
}

// All assigns sharing schemes for all computations of the program.
// The computations are assigned concurrently.
func All(ctx context.Context, prog *ir.Program, name string) (
	map[string]SharingMap, error) {

	strategy, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	maps := make([]SharingMap, len(prog.Computations))

	eg, ctx := errgroup.WithContext(ctx)
	for idx, c := range prog.Computations {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			maps[idx] = strategy(c)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]SharingMap)
	for idx, c := range prog.Computations {
		result[c.Name] = maps[idx]
	}
	return result, nil
}
