//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"os"

	"github.com/markkurossi/abyc/compiler"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file(s)",
	Short: "parse and type check programs.",
	Long: `Parse and type check the program file(s) and print their
	computations.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := compiler.New(newParams(cmd))
		quiet := getFlag(cmd, "quiet")

		for _, file := range args {
			prog, err := c.ParseFile(file)
			if err != nil {
				log.Fatalf("%s: %s", file, err)
			}
			if quiet {
				continue
			}
			for _, comp := range prog.Computations {
				comp.PP(os.Stdout)
			}
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("quiet", "q", false, "do not print computations")
}
