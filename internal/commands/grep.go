package commands

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements2csv/internal/grep"
)

func newGrepCommand(global *globalOptions) *cobra.Command {
	var years []int
	var file string
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "grep PATTERN",
		Short: "Search converted transactions by year and regular expression",
		Long: `Search a CSV previously produced by statements2csv.

Rows are kept when their date falls in one of the given years (default: the
previous calendar year) and the row matches PATTERN, a regular expression, or
with --fuzzy a term whose letters appear in order in the description. Matches are printed
tab-separated with plain decimal amounts, ready to paste into a spreadsheet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrep(cmd, *global, args[0], years, file, fuzzy)
		},
	}

	cmd.Flags().IntSliceVarP(&years, "year", "y", nil, "statement years to search (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV to search (default grep.snapshot from config, else stdin)")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "treat PATTERN as a fuzzy description search instead of a regular expression")

	return cmd
}

func runGrep(cmd *cobra.Command, global globalOptions, pattern string, years []int, file string, fuzzy bool) error {
	cfg, logger, err := setup(cmd, global)
	if err != nil {
		return err
	}

	opts := grep.Options{Years: years}
	if fuzzy {
		opts.Fuzzy = pattern
	} else if opts.Pattern, err = regexp.Compile(pattern); err != nil {
		return fmt.Errorf("compiling pattern: %w", err)
	}
	if len(opts.Years) == 0 {
		opts.Years = grep.LastYear(time.Now())
	}
	if file == "" {
		file = cfg.Grep.Snapshot
	}

	var in io.Reader = cmd.InOrStdin()
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("opening transactions: %w", err)
		}
		defer f.Close()
		in = f
	}

	n, err := grep.Filter(in, cmd.OutOrStdout(), opts)
	if err != nil {
		return err
	}
	logger.Debug("grep finished", "matches", n, "years", opts.Years)
	return nil
}
