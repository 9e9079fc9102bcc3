/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/kuroshiolab/kurodb/internal/iodb"
	"github.com/kuroshiolab/kurodb/internal/iodedup"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/spf13/cobra"
)

// getDedupCmd returns the dedup command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getDedupCmd() *cobra.Command {
	var (
		dryRun bool
		prefer string
	)

	dedupCmd := &cobra.Command{
		Use:   "dedup",
		Short: "Merge duplicate observations into single records",
		Long: `Merge observations that share an occurrence identifier.

OBIS republishes many GBIF datasets, so a sweep over both sources
stores some events twice. This command finds groups of records with
the same occurrence_id, keeps one record per group, fills its gaps
from the discarded copies and marks it as merged from both sources.

The preferred source wins field conflicts; the other records only
contribute values the winner lacks. Each group is merged in its own
transaction, so an interrupted run leaves no group half-done.

Use --dry-run first to see what a run would change.

Examples:
  # Report what would be merged, change nothing
  kurodb dedup --dry-run

  # Merge, letting GBIF values win conflicts
  kurodb dedup --prefer GBIF`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDedup(cmd, dryRun, prefer)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dedupCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"report planned merges without touching the store")
	dedupCmd.Flags().StringVar(&prefer, "prefer", "",
		"source that wins field conflicts, OBIS or GBIF")

	return dedupCmd
}

func runDedup(cmd *cobra.Command, dryRun bool, prefer string) error {
	// Build options from explicitly set flags
	var dedupOpts []config.Option
	if cmd.Flags().Changed("dry-run") {
		dedupOpts = append(dedupOpts, config.OptDedupDryRun(dryRun))
	}
	if cmd.Flags().Changed("prefer") {
		dedupOpts = append(dedupOpts, config.OptDedupPrefer(prefer))
	}
	cfg.Update(dedupOpts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	op := iodb.NewPgxOperator()
	err := op.Connect(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database <em>%s</em>", cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		return iodb.EmptyDatabaseError(
			cfg.Database.Host, cfg.Database.Database,
		)
	}

	_, err = iodedup.NewDeduper(op).Dedup(ctx, cfg)
	return err
}
