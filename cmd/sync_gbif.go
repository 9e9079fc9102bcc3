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
	"github.com/kuroshiolab/kurodb/internal/iogbif"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/spf13/cobra"
)

// getSyncGBIFCmd returns the sync gbif command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getSyncGBIFCmd() *cobra.Command {
	var (
		year      string
		taxonKey  int
		pageLimit int
		shared    syncFlags
	)

	gbifCmd := &cobra.Command{
		Use:   "gbif",
		Short: "Import occurrences from the GBIF API",
		Long: `Import occurrence records from the GBIF occurrence search.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Partitions the sweep by the configured strategy
  3. Pages the GBIF occurrence search, one transaction per page
  4. Cleans records, resolves names through WoRMS and skips
     occurrence identifiers already in the store
  5. Records the run in the ingest_runs table

The default strategy sweeps the configured OBIS network of marine
datasets. The GBIF API caps pages at 300 records; larger --limit
values are clamped.

Examples:
  # Whole-network sweep for one year
  kurodb sync gbif --year 2024

  # Year range, capped at 50000 saved records
  kurodb sync gbif --year 2015,2024 --max-records 50000

  # One polygon, replacing older GBIF records
  kurodb sync gbif --year 2024 --strategy geometry \
    --geometry "POLYGON((130 30, 145 30, 145 45, 130 45, 130 30))" \
    --clear-existing --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSyncGBIF(cmd, year, taxonKey, pageLimit, &shared)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	gbifCmd.Flags().StringVarP(&year, "year", "y", "",
		"year or year range, e.g. 2024 or 2015,2024")
	gbifCmd.Flags().IntVar(&taxonKey, "taxon-key", 0,
		"GBIF taxon key to filter by")
	gbifCmd.Flags().IntVarP(&pageLimit, "limit", "l", 0,
		"records per page, capped at 300")
	registerSyncFlags(gbifCmd, &shared)

	return gbifCmd
}

func runSyncGBIF(
	cmd *cobra.Command,
	year string,
	taxonKey, pageLimit int,
	shared *syncFlags,
) error {
	// Build options from explicitly set flags
	syncOpts := syncOptions(cmd, shared)
	if cmd.Flags().Changed("year") {
		syncOpts = append(syncOpts, config.OptIngestYear(year))
	}
	if cmd.Flags().Changed("taxon-key") {
		syncOpts = append(syncOpts, config.OptIngestTaxonKey(taxonKey))
	}
	if cmd.Flags().Changed("limit") {
		syncOpts = append(syncOpts, config.OptGBIFPageLimit(pageLimit))
	}
	cfg.Update(syncOpts)

	// Stop paging cleanly on Ctrl-C; committed pages stay.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runSync(
		ctx, iogbif.New(&cfg.GBIF), shared.clearExisting, shared.force,
	)
}
