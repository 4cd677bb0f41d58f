//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"errors"
	"testing"
)

var varNameTests = []struct {
	in  string
	out string
}{
	{"main_f0_lex0_x_v0", "x"},
	{"main_f0_lex0_a_b_v0", "a_v0"},
	{"main_f0_lex0_a_b_c_v1", "a_b_v1"},
	{"main.f0.lex0.y.v3", "y"},
	{"lex0_z_v0", "z"},
}

func TestVarName(t *testing.T) {
	for _, test := range varNameTests {
		name, err := VarName(test.in)
		if err != nil {
			t.Errorf("VarName(%q) failed: %s", test.in, err)
			continue
		}
		if name != test.out {
			t.Errorf("VarName(%q)=%q, expected %q", test.in, name, test.out)
		}
	}
}

func TestVarNameMalformed(t *testing.T) {
	for _, in := range []string{"x", "main_f0_x_v0", "main_lex0_x", "lex0"} {
		_, err := VarName(in)
		if !errors.Is(err, ErrMalformedName) {
			t.Errorf("VarName(%q): expected ErrMalformedName, got %v", in, err)
		}
	}
}
