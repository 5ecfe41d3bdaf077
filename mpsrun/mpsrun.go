//==============================================================================
// mpsrun: Executable exposing the mps library on the command line.
//
// This file contains the command wrapper demonstrating how the main mps
// functions are used: reading a model, summarizing it, writing its JSON
// form, and generating its dual as MPS text.
//
//	mpsrun -i afiro.mps --summarize
//	mpsrun -i afiro.mps -o afiro.json --fill --verbose
//	mpsrun -i afiro.mps -o afiro_dual.mps --dual --sense MAX
//==============================================================================

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-opt/mps"
)

// Command-line flags populated by cobra.
var (
	flagInput     string // MPS input file
	flagOutput    string // output file, JSON or dual MPS, or "" for none
	flagFill      bool   // fill format-implicit defaults
	flagVerbose   bool   // show diagnostics for skipped records and fills
	flagDual      bool   // write the dual as MPS instead of JSON
	flagSense     string // optimization sense of the dual output
	flagSummarize bool   // print a summary of the parsed model
)

//==============================================================================

// runParse reads the model, optionally summarizes it, and writes either its
// JSON form or its dual. In case of failure, it returns an error.
func runParse(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Generating the dual needs a dense, fully bounded model.
	if flagDual {
		flagFill = true
	}

	opt := mps.Options{Fill: flagFill, Verbose: flagVerbose}
	prob, err := mps.ReadMpsFile(flagInput, opt)
	if err != nil {
		return errors.Wrap(err, "mpsrun failed to read model")
	}

	if flagSummarize {
		var stats mps.Statistics
		if err := mps.GetStatistics(prob, &stats); err != nil {
			return errors.Wrap(err, "mpsrun failed to get statistics")
		}
		if err := mps.PrintStatistics(os.Stdout, stats); err != nil {
			return errors.Wrap(err, "mpsrun failed to print statistics")
		}
	}

	if flagOutput == "" {
		return nil
	}

	if flagDual {
		dual, err := mps.MakeDual(prob, flagSense)
		if err != nil {
			return errors.Wrap(err, "mpsrun failed to generate dual")
		}
		if err := dual.WriteMpsFile(flagOutput); err != nil {
			return errors.Wrap(err, "mpsrun failed to write dual MPS file")
		}
	} else {
		if err := prob.WriteJSONFile(flagOutput); err != nil {
			return errors.Wrap(err, "mpsrun failed to write JSON file")
		}
	}

	fmt.Printf("Data saved to %s\n", flagOutput)
	return nil
}

//==============================================================================

// newRootCmd assembles the cobra command with all flags registered.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mpsrun",
		Short:         "Parse fixed-format MPS files and generate LP duals",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runParse,
	}

	rootCmd.Flags().StringVarP(&flagInput, "input", "i", "", "MPS file to parse")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "",
		"output file; JSON format unless --dual is provided")
	rootCmd.Flags().BoolVar(&flagFill, "fill", false,
		"fill missing RHS values with 0 and missing bounds with 0 <= var <= +inf")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "show verbose warnings")
	rootCmd.Flags().BoolVar(&flagDual, "dual", false,
		"write the dual representation as MPS text (implies --fill)")
	rootCmd.Flags().StringVar(&flagSense, "sense", mps.SenseMax,
		"optimization sense of the dual output (MAX or MIN)")
	rootCmd.Flags().BoolVarP(&flagSummarize, "summarize", "s", false,
		"print a summary of the parsed model to stdout")

	_ = rootCmd.MarkFlagRequired("input")
	return rootCmd
}

// main executes the root command. It accepts no arguments and returns no
// values.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

//============================ END OF FILE =====================================
