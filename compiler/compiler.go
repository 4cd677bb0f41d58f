//
// compiler.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package compiler

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/markkurossi/abyc/compiler/aby"
	"github.com/markkurossi/abyc/compiler/assign"
	"github.com/markkurossi/abyc/compiler/ir"
	"github.com/markkurossi/abyc/compiler/utils"
)

// Compiler implements the term graph to ABY bytecode compiler.
type Compiler struct {
	params *utils.Params
}

// New creates a new compiler instance.
func New(params *utils.Params) *Compiler {
	if params == nil {
		params = utils.NewParams()
	}
	return &Compiler{
		params: params,
	}
}

// Parse parses the program from the data.
func (c *Compiler) Parse(name, data string) (*ir.Program, error) {
	return ir.NewParser(name, c.params.Logger,
		strings.NewReader(data)).Parse()
}

// ParseFile parses the program from the file.
func (c *Compiler) ParseFile(file string) (*ir.Program, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ir.NewParser(file, c.params.Logger, f).Parse()
}

// Compile compiles the program from the data. The output files are
// named after the name.
func (c *Compiler) Compile(name, data string) (*aby.Stats, error) {
	return c.compile(name, strings.NewReader(data))
}

// CompileFile compiles the program file.
func (c *Compiler) CompileFile(file string) (*aby.Stats, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.compile(file, f)
}

func (c *Compiler) compile(name string, in io.Reader) (*aby.Stats, error) {
	prog, err := ir.NewParser(name, c.params.Logger, in).Parse()
	if err != nil {
		return nil, err
	}
	maps, err := assign.All(context.Background(), prog, c.params.Strategy)
	if err != nil {
		return nil, err
	}
	stats, err := aby.Lower(aby.Stem(name), prog, maps, c.params)
	if err != nil {
		return nil, err
	}
	if c.params.Stats {
		stats.Print(c.params.StatsOut)
		stats.Timing.Print(c.params.StatsOut)
	}
	return stats, nil
}
