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
	"github.com/kuroshiolab/kurodb/internal/ioobis"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/spf13/cobra"
)

// getSyncOBISCmd returns the sync obis command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getSyncOBISCmd() *cobra.Command {
	var (
		taxonID   int
		startDate string
		endDate   string
		shared    syncFlags
	)

	obisCmd := &cobra.Command{
		Use:   "obis",
		Short: "Import occurrences from the OBIS API",
		Long: `Import occurrence records from the OBIS occurrence endpoint.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Partitions the sweep by the configured strategy
  3. Pages the OBIS occurrence endpoint, one transaction per page
  4. Cleans records, resolves names through WoRMS and skips
     occurrence identifiers already in the store
  5. Records the run in the ingest_runs table

OBIS serves marine records only, so sweeps need no network filter.
Dates use the YYYY-MM-DD form.

Examples:
  # Whole-domain sweep for a season
  kurodb sync obis --start-date 2024-03-01 --end-date 2024-05-31

  # One taxon inside the configured ocean basins
  kurodb sync obis --taxon-id 127160 --strategy oceans

  # Replace older OBIS records without a prompt
  kurodb sync obis --clear-existing --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSyncOBIS(cmd, taxonID, startDate, endDate, &shared)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	obisCmd.Flags().IntVar(&taxonID, "taxon-id", 0,
		"OBIS taxon identifier to filter by")
	obisCmd.Flags().StringVar(&startDate, "start-date", "",
		"first observation date, YYYY-MM-DD")
	obisCmd.Flags().StringVar(&endDate, "end-date", "",
		"last observation date, YYYY-MM-DD")
	registerSyncFlags(obisCmd, &shared)

	return obisCmd
}

func runSyncOBIS(
	cmd *cobra.Command,
	taxonID int,
	startDate, endDate string,
	shared *syncFlags,
) error {
	// Build options from explicitly set flags
	syncOpts := syncOptions(cmd, shared)
	if cmd.Flags().Changed("taxon-id") {
		syncOpts = append(syncOpts, config.OptIngestTaxonID(taxonID))
	}
	if cmd.Flags().Changed("start-date") {
		syncOpts = append(syncOpts, config.OptIngestStartDate(startDate))
	}
	if cmd.Flags().Changed("end-date") {
		syncOpts = append(syncOpts, config.OptIngestEndDate(endDate))
	}
	cfg.Update(syncOpts)

	// Stop paging cleanly on Ctrl-C; committed pages stay.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runSync(
		ctx, ioobis.New(&cfg.OBIS), shared.clearExisting, shared.force,
	)
}
