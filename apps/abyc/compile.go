//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"os"
	"strings"

	"github.com/markkurossi/abyc/compiler"
	"github.com/markkurossi/abyc/compiler/aby"
	"github.com/markkurossi/abyc/compiler/assign"
	"github.com/markkurossi/abyc/compiler/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file(s)",
	Short: "compile programs into ABY bytecode.",
	Long: `Compile the computations of the program file(s) into ABY bytecode.
	Each program produces a constant file, a share map file, and one
	bytecode file per computation.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		params := newParams(cmd)
		params.OutDir = getString(cmd, "out")
		params.Lang = getString(cmd, "lang")
		params.Strategy = getString(cmd, "strategy")
		params.Stats = getFlag(cmd, "stats")

		if _, err := assign.Lookup(params.Strategy); err != nil {
			log.Fatal(err)
		}
		if err := os.MkdirAll(params.OutDir, 0755); err != nil {
			log.Fatal(err)
		}

		c := compiler.New(params)
		for _, file := range args {
			stats, err := c.CompileFile(file)
			if err != nil {
				log.Fatalf("%s: %s", file, err)
			}
			if params.Verbose {
				reportFiles(params, file, stats)
			}
		}
	},
}

func reportFiles(params *utils.Params, file string, stats *aby.Stats) {
	path := func(comp, kind string) string {
		return aby.OutputPath(params.OutDir, aby.Stem(file), params.Lang,
			comp, kind)
	}
	paths := []string{
		path("", aby.KindConst),
		path("", aby.KindShareMap),
	}
	for _, c := range stats.Computations {
		paths = append(paths, path(c.Name, aby.KindBytecode))
	}
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		log.WithField("size", utils.FileSize(fi.Size()).String()).
			Debugf("wrote %s", p)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("out", "o", ".", "output directory")
	compileCmd.Flags().String("lang", "mpc", "target dialect label")
	compileCmd.Flags().StringP("strategy", "s", "b",
		"sharing strategy: "+strings.Join(assign.Strategies(), ", "))
	compileCmd.Flags().Bool("stats", false, "print compilation statistics")
}
