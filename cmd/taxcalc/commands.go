package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cyphera/cyphera-tax/libs/go/constants"
	"github.com/cyphera/cyphera-tax/libs/go/helpers"
	"github.com/cyphera/cyphera-tax/libs/go/interfaces"
	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/cyphera/cyphera-tax/libs/go/services"
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/states"
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"

	"github.com/spf13/cobra"
)

const formatText = "text"

// cliOptions holds the persistent flags and the calculator they configure.
type cliOptions struct {
	format   string
	logLevel string

	newCalc func() interfaces.ReturnCalculator
	calc    interfaces.ReturnCalculator
}

// calculator builds the calculator on first use. Services capture the global
// logger when constructed, so this must run after PersistentPreRunE.
func (o *cliOptions) calculator() interfaces.ReturnCalculator {
	if o.calc == nil {
		o.calc = o.newCalc()
	}
	return o.calc
}

// newRootCmd builds the command tree around the built-in calculator.
func newRootCmd() *cobra.Command {
	return newRootCmdWithCalculator(func() interfaces.ReturnCalculator {
		return services.NewReturnService(states.NewRegistry())
	})
}

func newRootCmdWithCalculator(newCalc func() interfaces.ReturnCalculator) *cobra.Command {
	opts := &cliOptions{newCalc: newCalc}

	rootCmd := &cobra.Command{
		Use:   "taxcalc",
		Short: "Compute U.S. federal and state income tax returns",
		Long: `taxcalc computes Form 1040 or 1040-NR and any requested state returns
from a JSON or YAML tax return, and explains how any line was derived.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatText, constants.FormatJSON, constants.FormatYAML:
			default:
				return fmt.Errorf("unknown --format %q (want text, json or yaml)", opts.format)
			}
			// Logs go to stderr so stdout stays machine-readable.
			logger.InitLoggerWithConfig(logger.LoggerConfig{
				Level:    opts.logLevel,
				Stage:    constants.LocalEnvironment,
				TaxYears: taxdata.SupportedYears(),
			})
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "o", formatText, "output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newComputeCmd(opts),
		newExplainCmd(opts),
		newStatesCmd(opts),
		newValidateCmd(opts),
	)
	return rootCmd
}

func newComputeCmd(opts *cliOptions) *cobra.Command {
	var (
		summaryOnly  bool
		includeNodes bool
		nonresident  bool
	)

	cmd := &cobra.Command{
		Use:   "compute [return file]",
		Short: "Compute a return (reads stdin when no file or - is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ret, err := loadReturn(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ctx := cmd.Context()
			calc := opts.calculator()

			if nonresident {
				res, err := calc.ComputeNonresident(ctx, ret)
				if err != nil {
					return err
				}
				if !includeNodes {
					stripped := *res
					stripped.Nodes = nil
					res = &stripped
				}
				if opts.format == formatText {
					return writeNonresidentText(out, res)
				}
				return writeStructured(out, opts.format, res)
			}

			comp, err := calc.Compute(ctx, ret)
			if err != nil {
				return err
			}
			summary := business.Summarize(ret.ID, comp)

			logger.NewStructuredLogger(logger.ComponentCLI).
				WithReturn(ret.ID, ret.TaxYear).
				LogReturnComputed(string(summary.FilingStatus), summary.TotalTax, summary.Refund, summary.AmountOwed, len(summary.States))

			switch {
			case opts.format == formatText:
				return writeSummaryText(out, summary)
			case summaryOnly:
				return writeStructured(out, opts.format, summary)
			case !includeNodes:
				comp = comp.WithoutNodes()
			}
			return writeStructured(out, opts.format, comp)
		},
	}
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "print only the bottom line (json and yaml)")
	cmd.Flags().BoolVar(&includeNodes, "nodes", false, "include provenance node lists in structured output")
	cmd.Flags().BoolVar(&nonresident, "nonresident", false, "compute Form 1040-NR only")
	return cmd
}

func newExplainCmd(opts *cliOptions) *cobra.Command {
	var nodeID string

	cmd := &cobra.Command{
		Use:   "explain [return file] --node <id>",
		Short: "Show the provenance tree of one computed line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ret, err := loadReturn(cmd, args)
			if err != nil {
				return err
			}
			exp, err := opts.calculator().Explain(cmd.Context(), ret, strings.TrimSpace(nodeID))
			if err != nil {
				return err
			}
			if opts.format == formatText {
				writeExplanationText(cmd.OutOrStdout(), exp, 0)
				return nil
			}
			return writeStructured(cmd.OutOrStdout(), opts.format, exp)
		},
	}
	cmd.Flags().StringVar(&nodeID, "node", "", "node id to explain, e.g. f1040.line24")
	_ = cmd.MarkFlagRequired("node")
	return cmd
}

// yearLister is implemented by calculators that can report data confidence
// for a specific tax year.
type yearLister interface {
	ListSupportedStatesForYear(taxYear int) []statemodule.StateInfo
}

func newStatesCmd(opts *cliOptions) *cobra.Command {
	var taxYear int
	cmd := &cobra.Command{
		Use:   "states",
		Short: "List the supported states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := opts.calculator()
			infos := calc.ListSupportedStates()
			if y, ok := calc.(yearLister); ok && taxYear != 0 {
				infos = y.ListSupportedStatesForYear(taxYear)
			}
			if opts.format == formatText {
				return writeStatesText(cmd.OutOrStdout(), infos)
			}
			return writeStructured(cmd.OutOrStdout(), opts.format, infos)
		},
	}
	cmd.Flags().IntVar(&taxYear, "tax-year", 0, "report data confidence for this tax year instead of the latest")
	return cmd
}

func newValidateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [return file]",
		Short: "Check a return for input problems without computing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadReturn(cmd, args); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

// loadReturn reads and validates the return named by args, or stdin.
func loadReturn(cmd *cobra.Command, args []string) (*business.TaxReturn, error) {
	var (
		r    io.Reader = cmd.InOrStdin()
		name           = "stdin"
	)
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("open return: %w", err)
		}
		defer f.Close()
		r, name = f, args[0]
	}

	ret, err := decodeReturn(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if err := helpers.ValidateReturn(ret); err != nil {
		return nil, err
	}
	return ret, nil
}
