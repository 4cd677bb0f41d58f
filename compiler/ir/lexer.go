//
// lexer.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package ir

import (
	"bufio"
	"fmt"
	"io"
	"unicode"

	"github.com/markkurossi/abyc/compiler/utils"
)

// TokenType specifies input token types.
type TokenType int

// Token types.
const (
	TLParen TokenType = iota
	TRParen
	TSymbol
)

var tokenTypes = map[TokenType]string{
	TLParen: "(",
	TRParen: ")",
	TSymbol: "symbol",
}

func (t TokenType) String() string {
	name, ok := tokenTypes[t]
	if ok {
		return name
	}
	return fmt.Sprintf("{TokenType %d}", t)
}

// Token defines an input token.
type Token struct {
	Type   TokenType
	From   utils.Point
	To     utils.Point
	StrVal string
}

func (t *Token) String() string {
	if len(t.StrVal) > 0 {
		return t.StrVal
	}
	return t.Type.String()
}

// Lexer splits the program text into tokens.
type Lexer struct {
	in          *bufio.Reader
	point       utils.Point
	tokenStart  utils.Point
	ungot       *Token
	unread      bool
	unreadRune  rune
	unreadPoint utils.Point
}

// NewLexer creates a new lexer for the named input.
func NewLexer(source string, in io.Reader) *Lexer {
	return &Lexer{
		in: bufio.NewReader(in),
		point: utils.Point{
			Source: source,
			Line:   1,
			Col:    0,
		},
	}
}

// ReadRune reads the next input rune.
func (l *Lexer) ReadRune() (rune, error) {
	if l.unread {
		l.point, l.unreadPoint = l.unreadPoint, l.point
		l.unread = false
		return l.unreadRune, nil
	}
	r, _, err := l.in.ReadRune()
	if err != nil {
		return 0, err
	}

	l.unreadPoint = l.point
	if r == '\n' {
		l.point.Line++
		l.point.Col = 0
	} else {
		l.point.Col++
	}

	return r, nil
}

// UnreadRune pushes the rune back to the input.
func (l *Lexer) UnreadRune(r rune) {
	l.point, l.unreadPoint = l.unreadPoint, l.point
	l.unreadRune = r
	l.unread = true
}

// FlushEOL skips input until the end of line.
func (l *Lexer) FlushEOL() error {
	for {
		r, err := l.ReadRune()
		if err != nil {
			if err != io.EOF {
				return err
			}
			return nil
		}
		if r == '\n' {
			return nil
		}
	}
}

func isDelimiter(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == ')' || r == ';'
}

// Get returns the next token. It returns io.EOF at the end of input.
func (l *Lexer) Get() (*Token, error) {
	if l.ungot != nil {
		token := l.ungot
		l.ungot = nil
		return token, nil
	}

	for {
		l.tokenStart = l.point
		r, err := l.ReadRune()
		if err != nil {
			return nil, err
		}
		if unicode.IsSpace(r) {
			continue
		}
		switch r {
		case ';':
			if err := l.FlushEOL(); err != nil {
				return nil, err
			}
			continue

		case '(':
			return l.Token(TLParen), nil

		case ')':
			return l.Token(TRParen), nil

		default:
			if !unicode.IsPrint(r) {
				return nil, fmt.Errorf("%s: unexpected character '%s'",
					l.point, string(r))
			}
			symbol := []rune{r}
			for {
				r, err := l.ReadRune()
				if err != nil {
					if err != io.EOF {
						return nil, err
					}
					break
				}
				if isDelimiter(r) {
					l.UnreadRune(r)
					break
				}
				symbol = append(symbol, r)
			}
			token := l.Token(TSymbol)
			token.StrVal = string(symbol)
			return token, nil
		}
	}
}

// Unget pushes the token back to the lexer.
func (l *Lexer) Unget(t *Token) {
	l.ungot = t
}

// Token creates a token of the type, spanning from the current token
// start to the current input position.
func (l *Lexer) Token(t TokenType) *Token {
	return &Token{
		Type: t,
		From: l.tokenStart,
		To:   l.point,
	}
}
