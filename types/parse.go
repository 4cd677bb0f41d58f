//
// parse.go
//
// Copyright (c) 2021-2026 Markku Rossi
//
// All rights reserved.
//

package types

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	reArr   = regexp.MustCompilePOSIX(`^\[([[:digit:]]+)\](.+)$`)
	reSized = regexp.MustCompilePOSIX(`^([[:alpha:]]+)([[:digit:]]*)$`)
)

// Parse parses the short sort notation: b, bool, bvN, uN, int, and
// [N]S for arrays indexed by 32-bit bit-vectors.
func Parse(val string) (sort Sort, err error) {
	switch val {
	case "b", "bool":
		return Bool(), nil

	case "i", "int":
		return Int(), nil
	}

	m := reSized.FindStringSubmatch(val)
	if m != nil {
		switch m[1] {
		case "bv", "u":
			if len(m[2]) == 0 {
				return sort, fmt.Errorf("types.Parse: missing width: %s", val)
			}
			var bits int64
			bits, err = strconv.ParseInt(m[2], 10, 32)
			if err != nil {
				return
			}
			if bits <= 0 {
				return sort, fmt.Errorf("types.Parse: invalid width: %s", val)
			}
			return BitVector(Size(bits)), nil

		default:
			return sort, fmt.Errorf("types.Parse: unknown type: %s", val)
		}
	}

	m = reArr.FindStringSubmatch(val)
	if m == nil {
		return sort, fmt.Errorf("types.Parse: unknown type: %s", val)
	}
	var elType Sort
	elType, err = Parse(m[2])
	if err != nil {
		return
	}
	var ival int64
	ival, err = strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return
	}
	return Array(BitVector(32), elType, Size(ival)), nil
}
