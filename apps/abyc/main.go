//
// main.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/markkurossi/abyc/compiler/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at link time.
var Version string

var rootCmd = &cobra.Command{
	Use:   "abyc",
	Short: "Term graph to ABY bytecode compiler.",
	Long: `Compile typed term graph programs into ABY bytecode, constant,
and share map files for the mixed-protocol MPC runtime.`,
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "version") {
			fmt.Print("abyc ")
			if len(Version) > 0 {
				fmt.Print(Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Print(info.Main.Version)
			} else {
				fmt.Print("(unknown version)")
			}
			fmt.Println()
			return
		}
		cmd.Usage()
	},
}

func init() {
	rootCmd.Flags().Bool("version", false, "report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"increase logging verbosity")
	rootCmd.PersistentFlags().Bool("trace", false,
		"log output buffer flushes")
}

func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		log.Fatal(err)
	}
	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		log.Fatal(err)
	}
	return r
}

// newParams creates compiler parameters from the common flags.
func newParams(cmd *cobra.Command) *utils.Params {
	params := utils.NewParams()
	params.Verbose = getFlag(cmd, "verbose")
	params.Logger.SetVerbose(params.Verbose)
	if params.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	params.Logger.SetTrace(getFlag(cmd, "trace"))
	return params
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
