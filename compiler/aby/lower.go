//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package aby

import (
	"fmt"
	"time"

	"github.com/markkurossi/abyc/compiler/assign"
	"github.com/markkurossi/abyc/compiler/ir"
	"github.com/markkurossi/abyc/compiler/utils"
)

// Lowerer lowers term graphs into ABY bytecode. The term shares and
// the share counter persist over all computations of the program.
type Lowerer struct {
	params *utils.Params
	prog   *ir.Program
	maps   map[string]assign.SharingMap
	folder *ir.Folder
	shares *ShareMap
	out    *output

	// Current computation.
	comp   *ir.Computation
	smap   assign.SharingMap
	inputs map[*ir.Term]bool
	cstats *ComputationStats
}

// NewLowerer creates a new lowerer for the program. The output files
// are named after the stem.
func NewLowerer(stem string, prog *ir.Program,
	maps map[string]assign.SharingMap, params *utils.Params) (
	*Lowerer, error) {

	folder, err := ir.NewFolder(ir.DefaultFoldCacheSize)
	if err != nil {
		return nil, err
	}
	limit := params.WriteSize
	if limit <= 0 {
		limit = utils.WriteSize
	}
	out := newOutput(params.OutDir, stem, params.Lang, limit, params.Logger)

	return &Lowerer{
		params: params,
		prog:   prog,
		maps:   maps,
		folder: folder,
		shares: NewShareMap(),
		out:    out,
	}, nil
}

// Path returns the output file path for the computation and file
// kind. The program level files have an empty computation name.
func (l *Lowerer) Path(comp, kind string) string {
	return l.out.Path(comp, kind)
}

// Lower lowers all computations of the program and writes the
// constant, share map, and bytecode files.
func Lower(stem string, prog *ir.Program, maps map[string]assign.SharingMap,
	params *utils.Params) (*Stats, error) {

	l, err := NewLowerer(stem, prog, maps, params)
	if err != nil {
		return nil, err
	}
	return l.Lower()
}

// Lower lowers all computations of the program.
func (l *Lowerer) Lower() (*Stats, error) {
	stats := &Stats{
		Timing: utils.NewTiming(),
	}
	if err := truncate(l.Path("", KindConst)); err != nil {
		return nil, err
	}
	if err := truncate(l.Path("", KindShareMap)); err != nil {
		return nil, err
	}
	for _, comp := range l.prog.Computations {
		cstats, err := l.lowerComputation(comp)
		if err != nil {
			return nil, err
		}
		stats.Computations = append(stats.Computations, cstats)
		sample := stats.Timing.Sample(comp.Name, []string{
			fmt.Sprintf("%d", cstats.Shares),
			fmt.Sprintf("%d", cstats.NumGates()),
		})
		sample.SubSample("embed", cstats.embedded)
		sample.SubSample("write", sample.End)
	}
	if err := l.out.flush("", true); err != nil {
		return nil, err
	}
	stats.Shares = l.shares.NextShare()

	return stats, nil
}

func (l *Lowerer) lowerComputation(comp *ir.Computation) (
	*ComputationStats, error) {

	start := time.Now()
	smap, ok := l.maps[comp.Name]
	if !ok {
		return nil, fmt.Errorf("%w: computation %s", ErrSharingMissing,
			comp.Name)
	}
	l.comp = comp
	l.smap = smap
	l.inputs = make(map[*ir.Term]bool)
	l.cstats = &ComputationStats{
		Name:  comp.Name,
		Terms: comp.NumTerms(),
		Gates: make(map[string]int),
	}
	l.out.reset()
	firstShare := l.shares.NextShare()

	l.params.Logger.Infof("starting: %s, %d", comp.Name, l.cstats.Terms)

	if err := truncate(l.Path(comp.Name, KindBytecodeOutput)); err != nil {
		return nil, err
	}
	var outputs []string
	for _, o := range comp.Outputs {
		if err := l.embed(o); err != nil {
			return nil, err
		}
		shares, err := l.Shares(o)
		if err != nil {
			return nil, err
		}
		for _, s := range shares {
			outputs = append(outputs, instruction(OpOut, []int{s}, nil))
		}
	}
	// Output instructions follow all gates.
	l.out.bytecode = append(l.out.bytecode, outputs...)
	l.cstats.Outputs = len(outputs)

	l.cstats.embedded = time.Now()

	inputs, err := l.inputSection()
	if err != nil {
		return nil, err
	}
	l.cstats.Inputs = len(inputs)

	if err := l.out.flush(comp.Name, true); err != nil {
		return nil, err
	}
	if err := l.out.merge(comp.Name, inputs); err != nil {
		return nil, err
	}
	l.params.Logger.WithField("computation", comp.Name).
		Debugf("wrote %s", l.Path(comp.Name, KindBytecode))

	l.cstats.Shares = l.shares.NextShare() - firstShare
	l.cstats.Duration = time.Since(start)

	return l.cstats, nil
}

// inputSection returns the input instructions in the declaration
// order. Declared inputs that the computation does not use get a
// placeholder instruction.
func (l *Lowerer) inputSection() ([]string, error) {
	md := l.comp.Metadata

	var result []string
	for _, input := range md.Inputs {
		name, err := VarName(input)
		if err != nil {
			return nil, err
		}
		line, ok := l.out.inputs[name]
		if !ok {
			line = fmt.Sprintf("2 1 %s %d 0 %s\n",
				name, md.Visibility(input), OpIn)
		}
		result = append(result, line)
	}
	return result, nil
}
