//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ir

import (
	"io"
	"strings"
	"testing"

	"github.com/markkurossi/abyc/compiler/utils"
	"github.com/markkurossi/abyc/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	l := NewLexer("test", strings.NewReader(`(a ; comment
  #b101)`))

	var tokens []string
	var points []string
	for {
		token, err := l.Get()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		tokens = append(tokens, token.String())
		points = append(points, token.From.String())
	}
	assert.Equal(t, []string{"(", "a", "#b101", ")"}, tokens)
	assert.Equal(t, []string{
		"test:1:0", "test:1:1", "test:2:2", "test:2:7",
	}, points)
}

func TestReadSExp(t *testing.T) {
	l := NewLexer("test", strings.NewReader("(a (b c) ()) d"))

	e, err := ReadSExp(l)
	require.NoError(t, err)
	assert.Equal(t, "(a (b c) ())", e.String())
	assert.True(t, e.MatchSymbol("a"))

	e, err = ReadSExp(l)
	require.NoError(t, err)
	assert.False(t, e.IsList)
	assert.Equal(t, "d", e.Symbol)

	_, err = ReadSExp(l)
	assert.Equal(t, io.EOF, err)

	_, err = ReadSExp(NewLexer("test", strings.NewReader("(a (b)")))
	assert.ErrorContains(t, err, "unterminated list")
}

func parse(t *testing.T, code string) (*Program, error) {
	t.Helper()
	logger := utils.NewLogger(io.Discard)
	return NewParser("test", logger, strings.NewReader(code)).Parse()
}

func TestParse(t *testing.T) {
	prog, err := parse(t, `
(computation main
  (inputs (x (bv 32) 0)
          (y u32 1)
          (b bool)
          (t (tuple bool (bv 8)) public))
  (let ((s (bvadd x y))
        (c (bvult s #x0000000a)))
    (let ((r (ite c s (#bv -1 32))))
      (outputs r ((field 1) t) (and b c)))))

(computation other
  (inputs (a (array (bv 32) bool 4) public))
  (outputs (select a (#bv 2 32))
           (store a (#bv 0 32) true)))
`)
	require.NoError(t, err)
	require.Len(t, prog.Computations, 2)

	main := prog.Lookup("main")
	require.NotNil(t, main)
	md := main.Metadata
	assert.Equal(t, []string{"x", "y", "b", "t"}, md.Inputs)
	assert.Equal(t, Party0, md.Visibility("x"))
	assert.Equal(t, Party1, md.Visibility("y"))
	assert.Equal(t, Public, md.Visibility("b"))
	assert.Equal(t, Public, md.Visibility("t"))

	require.Len(t, main.Outputs, 3)
	r := main.Outputs[0]
	assert.Equal(t, Ite, r.Op.Op)
	assert.True(t, r.Sort().Equal(types.BitVector(32)))
	assert.Equal(t, "4294967295", r.Args[2].Op.Value.Int.String())

	f := main.Outputs[1]
	assert.Equal(t, Field, f.Op.Op)
	assert.Equal(t, 1, f.Op.Index)
	assert.True(t, f.Sort().Equal(types.BitVector(8)))

	// The let bound c is shared between the outputs.
	assert.Same(t, r.Args[0], main.Outputs[2].Args[1])

	other := prog.Lookup("other")
	require.NotNil(t, other)
	assert.True(t, other.Outputs[0].Sort().Equal(types.Bool()))
	assert.True(t, other.Outputs[1].Sort().Equal(
		types.Array(types.BitVector(32), types.Bool(), 4)))
}

func TestParseValues(t *testing.T) {
	prog, err := parse(t, `
(computation main
  (outputs #b1010 #xff (#t true (#bv 3 4))
           (#a (bv 32) false 3 ((1 true)))))
`)
	require.NoError(t, err)
	outputs := prog.Computations[0].Outputs

	assert.Equal(t, "(#bv 10 4)", outputs[0].String())
	assert.Equal(t, "(#bv 255 8)", outputs[1].String())
	assert.Equal(t, "(#t true (#bv 3 4))", outputs[2].String())
	assert.Equal(t, "(#a (bv 32) false 3 ((1 true)))", outputs[3].String())

	arr := outputs[3].Op.Value.Array
	assert.False(t, arr.Get(0).Bool)
	assert.True(t, arr.Get(1).Bool)
}

func TestParseCall(t *testing.T) {
	prog, err := parse(t, `
(computation main
  (inputs (x (bv 8)))
  (outputs ((call f ((bv 8)) ((bv 8) bool)) x)))
`)
	require.NoError(t, err)
	call := prog.Computations[0].Outputs[0]
	assert.Equal(t, Call, call.Op.Op)
	assert.Equal(t, "f", call.Op.Name)
	assert.True(t, call.Sort().Equal(
		types.Tuple(types.BitVector(8), types.Bool())))
}

var parseErrorTests = []struct {
	code string
	msg  string
}{
	{`(foo)`, "test:1:0: expected (computation NAME ...)"},
	{`(computation main (inputs (x bool)))`, "has no outputs"},
	{`(computation main (outputs y))`, "test:1:27: undefined: y"},
	{`(computation main (inputs (x bool 2)) (outputs x))`,
		"invalid visibility: 2"},
	{`(computation main (inputs (x bool) (x bool)) (outputs x))`,
		"already declared"},
	{`(computation main (inputs (x bool)) (outputs (bvadd x x)))`,
		"invalid argument sort bool"},
	{`(computation main (inputs (x bool)) (outputs (frob x)))`,
		"unknown operator: frob"},
	{`(computation main (outputs (#bv 1 0)))`, "invalid width: 0"},
	{`(computation main (outputs true)) (computation main (outputs false))`,
		"computation main already defined"},
}

func TestParseErrors(t *testing.T) {
	for _, test := range parseErrorTests {
		_, err := parse(t, test.code)
		if err == nil {
			t.Errorf("%s: parse succeeded", test.code)
			continue
		}
		if !strings.Contains(err.Error(), test.msg) {
			t.Errorf("%s: got error %q, expected %q", test.code, err, test.msg)
		}
	}
}
