package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tlkify/internal/builder"
	"tlkify/internal/config"
	"tlkify/internal/logging"
)

func newBuildCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Run a full localization build",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, counter, err := logging.NewCountingFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}
			if exists {
				logger.Debug("configuration loaded", "path", path)
			} else {
				logger.Debug("no configuration file; using defaults")
			}

			b := builder.New(cfg, logger, builder.WithCounter(counter))
			summary, err := b.Run(cmd.Context())
			if err != nil {
				return err
			}

			printSummary(cmd, summary)
			return nil
		},
	}
}

const summaryDurationUnit = time.Millisecond

func printSummary(cmd *cobra.Command, summary *builder.Summary) {
	out := cmd.OutOrStdout()

	rows := [][]string{
		{"Run", summary.RunID},
		{"Categories", strconv.Itoa(len(summary.Categories))},
		{"Entries added", strconv.Itoa(summary.EntriesAdded)},
		{"Total entries", strconv.Itoa(summary.TotalEntries)},
		{"Warnings", strconv.Itoa(summary.Warnings)},
		{"Duration", summary.Duration.Round(summaryDurationUnit).String()},
		{"TLK", strings.Join(summary.TLKPaths, "\n")},
		{"HAK", strings.Join(summary.HAKPaths, "\n")},
	}

	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(out, renderTable([]string{"Build", "Result"}, rows, []columnAlignment{alignLeft, alignLeft}))
		return
	}

	for _, row := range rows {
		fmt.Fprintf(out, "%s: %s\n", strings.ToLower(row[0]), strings.ReplaceAll(row[1], "\n", " "))
	}
}
