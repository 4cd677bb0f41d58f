//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package ir

import (
	"fmt"
	"io"

	"github.com/markkurossi/text/superscript"
)

// Visibility specifies which party provides an input. Public inputs
// are known to all parties.
type Visibility uint8

// Input visibilities.
const (
	Party0 Visibility = 0
	Party1 Visibility = 1
	Public Visibility = 2
)

func (v Visibility) String() string {
	switch v {
	case Party0, Party1:
		return fmt.Sprintf("party%d", v)
	case Public:
		return "public"
	default:
		return fmt.Sprintf("{Visibility %d}", v)
	}
}

// Metadata describes a computation's inputs.
type Metadata struct {
	// Inputs lists all declared input names in declaration order.
	Inputs []string

	// InputVis maps input names to their providing party. Inputs
	// without a party are public.
	InputVis map[string]*Visibility

	// InputTerms maps input names to their variable terms.
	InputTerms map[string]*Term
}

// NewMetadata creates empty computation metadata.
func NewMetadata() *Metadata {
	return &Metadata{
		InputVis:   make(map[string]*Visibility),
		InputTerms: make(map[string]*Term),
	}
}

// AddInput declares a new input. The party is nil for public inputs.
func (md *Metadata) AddInput(t *Term, party *Visibility) error {
	if t.Op.Op != Var {
		return fmt.Errorf("input %s is not a variable", t)
	}
	name := t.Op.Name
	if _, ok := md.InputVis[name]; ok {
		return fmt.Errorf("input %s already declared", name)
	}
	md.Inputs = append(md.Inputs, name)
	md.InputVis[name] = party
	md.InputTerms[name] = t
	return nil
}

// IsInput tests if the name is a declared input.
func (md *Metadata) IsInput(name string) bool {
	_, ok := md.InputVis[name]
	return ok
}

// Visibility returns the input's visibility. Undeclared inputs and
// inputs without a party are public.
func (md *Metadata) Visibility(name string) Visibility {
	party, ok := md.InputVis[name]
	if !ok || party == nil {
		return Public
	}
	return *party
}

// Computation defines a named term graph with designated outputs.
type Computation struct {
	Name     string
	Outputs  []*Term
	Metadata *Metadata
}

// NewComputation creates a new computation.
func NewComputation(name string) *Computation {
	return &Computation{
		Name:     name,
		Metadata: NewMetadata(),
	}
}

// NumTerms returns the number of unique terms reachable from the
// computation outputs.
func (c *Computation) NumTerms() int {
	return Count(c.Outputs...)
}

// Program defines an ordered set of computations and the builder
// owning their terms.
type Program struct {
	Builder      *Builder
	Computations []*Computation
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{
		Builder: NewBuilder(),
	}
}

// Add adds a computation to the program.
func (p *Program) Add(c *Computation) error {
	if p.Lookup(c.Name) != nil {
		return fmt.Errorf("computation %s already defined", c.Name)
	}
	p.Computations = append(p.Computations, c)
	return nil
}

// Lookup finds the computation by name.
func (p *Program) Lookup(name string) *Computation {
	for _, c := range p.Computations {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PP pretty-prints the computation, one term per line in dependency
// order.
func (c *Computation) PP(out io.Writer) {
	fmt.Fprintf(out, "computation %s:\n", c.Name)
	for _, name := range c.Metadata.Inputs {
		t := c.Metadata.InputTerms[name]
		fmt.Fprintf(out, "  in  %s: %s %s\n",
			name, t.Sort().ShortString(), c.Metadata.Visibility(name))
	}
	seen := make(map[*Term]bool)
	for _, o := range c.Outputs {
		for t := range PostOrder(o) {
			if seen[t] || len(t.Args) == 0 {
				continue
			}
			seen[t] = true
			fmt.Fprintf(out, "  t%d\t= %s\t: %s\n",
				t.ID, t, t.Sort().ShortString())
		}
	}
	for idx, o := range c.Outputs {
		if len(o.Args) == 0 {
			fmt.Fprintf(out, "  out%s %s\n", superscript.Itoa(idx), o)
		} else {
			fmt.Fprintf(out, "  out%s t%d\n", superscript.Itoa(idx), o.ID)
		}
	}
}
