package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements2csv/internal/batch"
	"github.com/cleared-dev/statements2csv/internal/buildinfo"
	"github.com/cleared-dev/statements2csv/internal/config"
	"github.com/cleared-dev/statements2csv/internal/csvout"
	"github.com/cleared-dev/statements2csv/internal/dates"
	"github.com/cleared-dev/statements2csv/internal/extractor"
	"github.com/cleared-dev/statements2csv/internal/logging"
	"github.com/cleared-dev/statements2csv/internal/merge"
	"github.com/cleared-dev/statements2csv/internal/model"
	"github.com/cleared-dev/statements2csv/internal/source"
	"github.com/cleared-dev/statements2csv/internal/statement"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&source.PDF{})
}

func newRootCommand(src source.Source) *cobra.Command {
	var global globalOptions
	var flavor string
	var workers int

	rootCmd := &cobra.Command{
		Use:     "statements2csv FILES...",
		Short:   "Convert bank statement PDFs to CSV on stdout",
		Version: buildinfo.Summary(),
		Args:    cobra.MinimumNArgs(1),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, src, global, flavor, workers, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "config file (default ./"+config.FileName+" if present)")
	rootCmd.PersistentFlags().StringVar(&global.logLevel, "log-level", "", "log level: debug, info, warn, error (default $"+logging.EnvVar+" or config)")
	rootCmd.Flags().StringVar(&flavor, "flavor", "", "table detection flavor: stream or network (default depends on the bank)")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "documents processed in parallel (default from config, else half the CPUs)")

	rootCmd.AddCommand(newGrepCommand(&global))

	return rootCmd
}

// setup loads the config and builds the logger shared by all commands.
func setup(cmd *cobra.Command, global globalOptions) (*config.Config, *log.Logger, error) {
	var cfg *config.Config
	var err error
	if global.configPath != "" {
		cfg, err = config.Load(global.configPath)
	} else {
		cfg, err = config.LoadOrDefault(config.FileName)
	}
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), logging.Level(global.logLevel, cfg.LogLevel))
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runConvert(cmd *cobra.Command, src source.Source, global globalOptions, flavorName string, workers int, files []string) error {
	cfg, logger, err := setup(cmd, global)
	if err != nil {
		return err
	}

	var flavor source.Flavor
	if flavorName != "" {
		if flavor, err = source.ParseFlavor(flavorName); err != nil {
			return err
		}
	}
	policy, err := cfg.Policy()
	if err != nil {
		return fmt.Errorf("reading flavor policy: %w", err)
	}
	if workers < 1 {
		workers = cfg.Workers
	}
	if workers < 1 {
		workers = batch.DefaultLimit()
	}

	proc := &statement.Processor{
		Source:   src,
		Registry: extractor.DefaultRegistry(),
		Resolver: dates.New(),
		Policy:   policy,
		Logger:   logger,
	}
	results := batch.Run(files, workers, func(path string) ([]*model.Extraction, error) {
		return proc.Extract(path, flavor)
	})

	var docs [][]merge.FileExtraction
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			logger.Error("extraction failed", "file", r.Path, "err", r.Err)
			failed++
			continue
		}
		if len(r.Extractions) == 0 {
			logger.Warn("had nothing to extract", "file", r.Path)
			continue
		}
		doc := make([]merge.FileExtraction, len(r.Extractions))
		for i, ext := range r.Extractions {
			doc[i] = merge.New(r.Path, ext)
		}
		docs = append(docs, doc)
	}

	if err := csvout.Write(cmd.OutOrStdout(), merge.Flatten(docs)); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(files))
	}
	return nil
}
