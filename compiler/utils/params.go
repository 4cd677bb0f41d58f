//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package utils

import (
	"io"
	"os"
)

// WriteSize is the default number of buffered output lines that
// triggers a flush to the output files.
const WriteSize = 65536

// Params specify compiler parameters.
type Params struct {
	Verbose bool
	Stats   bool

	// OutDir specifies the directory for the generated files.
	OutDir string

	// Lang specifies the target dialect label used in the output
	// file names.
	Lang string

	// Strategy names the sharing assignment strategy.
	Strategy string

	// WriteSize specifies the output buffer flush threshold in
	// lines.
	WriteSize int

	// Logger receives diagnostics and progress messages.
	Logger *Logger

	// StatsOut receives the statistics report if Stats is set.
	StatsOut io.Writer
}

// NewParams returns new compiler params object, initialized with the
// default values.
func NewParams() *Params {
	return &Params{
		OutDir:    ".",
		Lang:      "mpc",
		Strategy:  "b",
		WriteSize: WriteSize,
		Logger:    NewLogger(os.Stderr),
		StatsOut:  os.Stdout,
	}
}
