//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"errors"
)

// Lowering errors. All of them abort the compilation.
var (
	ErrUnsupportedOperator = errors.New("unsupported operator")
	ErrUnsupportedSort     = errors.New("unsupported sort")
	ErrMalformedName       = errors.New("malformed variable name")
	ErrSharingMissing      = errors.New("sharing assignment missing")
	ErrOutOfBounds         = errors.New("index out of bounds")
	ErrSortMismatch        = errors.New("sort mismatch")
	ErrNotConstant         = errors.New("value is not constant")
)
