//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ir

import (
	"fmt"
	"io"
	"strings"

	"github.com/markkurossi/abyc/compiler/utils"
)

// SExp implements S-expressions: either a symbol or a list of
// S-expressions.
type SExp struct {
	Point  utils.Point
	Symbol string
	List   []*SExp
	IsList bool
}

// Location implements the utils.Locator interface.
func (s *SExp) Location() utils.Point {
	return s.Point
}

// MatchSymbol tests if the expression is a list starting with the
// argument symbol.
func (s *SExp) MatchSymbol(symbol string) bool {
	return s.IsList && len(s.List) > 0 && !s.List[0].IsList &&
		s.List[0].Symbol == symbol
}

func (s *SExp) String() string {
	if !s.IsList {
		return s.Symbol
	}
	var sb strings.Builder
	sb.WriteRune('(')
	for idx, e := range s.List {
		if idx > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(e.String())
	}
	sb.WriteRune(')')
	return sb.String()
}

// ReadSExp reads the next S-expression from the lexer. It returns
// io.EOF at the end of input.
func ReadSExp(l *Lexer) (*SExp, error) {
	t, err := l.Get()
	if err != nil {
		return nil, err
	}
	switch t.Type {
	case TSymbol:
		return &SExp{
			Point:  t.From,
			Symbol: t.StrVal,
		}, nil

	case TLParen:
		result := &SExp{
			Point:  t.From,
			IsList: true,
		}
		for {
			n, err := l.Get()
			if err != nil {
				if err == io.EOF {
					return nil, fmt.Errorf("%s: unterminated list", t.From)
				}
				return nil, err
			}
			if n.Type == TRParen {
				return result, nil
			}
			l.Unget(n)
			e, err := ReadSExp(l)
			if err != nil {
				return nil, err
			}
			result.List = append(result.List, e)
		}

	default:
		return nil, fmt.Errorf("%s: unexpected '%s'", t.From, t)
	}
}
