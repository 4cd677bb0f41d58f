//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"fmt"
	"strings"
)

// lexMarker separates the scope prefix from the variable name in the
// front-end's internal variable names.
const lexMarker = "lex0"

// VarName returns the display name of the internal variable name.
// The name is split into '_' separated segments ('.' counts as '_')
// and the segments following the lex0 marker define the name. With
// two segments the name is the first one. Longer names join all but
// the last two segments and append the last one.
func VarName(name string) (string, error) {
	segments := strings.Split(strings.ReplaceAll(name, ".", "_"), "_")

	offset := -1
	for idx, s := range segments {
		if s == lexMarker {
			offset = idx
			break
		}
	}
	if offset < 0 {
		return "", fmt.Errorf("%w: %s", ErrMalformedName, name)
	}
	tail := segments[offset+1:]

	switch l := len(tail); {
	case l == 2:
		return tail[0], nil

	case l > 2:
		return strings.Join(tail[:l-2], "_") + "_" + tail[l-1], nil

	default:
		return "", fmt.Errorf("%w: %s", ErrMalformedName, name)
	}
}
