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
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/kuroshiolab/kurodb/internal/iodb"
	"github.com/kuroshiolab/kurodb/internal/iogeo"
	"github.com/kuroshiolab/kurodb/internal/ioingest"
	"github.com/kuroshiolab/kurodb/internal/ioworms"
	"github.com/kuroshiolab/kurodb/pkg/ingest"
	"github.com/spf13/cobra"
)

// getSyncCmd returns the sync parent command. The occurrence sources
// hang off it as subcommands.
func getSyncCmd() *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Import occurrences from a source API",
		Long: `Sync imports occurrence records from one of the supported
source APIs into the observations table.

Every record passes the same pipeline: quality gate, measurement
cleaning, WoRMS taxonomy resolution and an occurrence_id check
against the store, so re-running a sync never duplicates records.
Pages are saved in their own transactions; an interrupted run keeps
its committed pages.

See the subcommands for source-specific filters:
  kurodb sync obis --help
  kurodb sync gbif --help`,
	}

	syncCmd.AddCommand(getSyncGBIFCmd())
	syncCmd.AddCommand(getSyncOBISCmd())

	return syncCmd
}

// runSync is the shared body of the sync subcommands. The subcommand
// has already applied its flags to the config by the time it runs.
func runSync(
	ctx context.Context,
	src ingest.Source,
	clearExisting, force bool,
) error {
	// Create database operator
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	// Check if database has tables
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		return iodb.EmptyDatabaseError(
			cfg.Database.Host, cfg.Database.Database)
	}

	ing := ioingest.NewIngestor(op, ioworms.New(&cfg.WoRMS), iogeo.New(cfg))

	if clearExisting {
		question := fmt.Sprintf(
			"Delete all stored %s records before the import?", src.Name())
		if !force && !confirm(question) {
			gn.Info("Aborted. No changes made.")
			return nil
		}
		var n int64
		if n, err = ing.ClearSource(ctx, src.Name()); err != nil {
			return err
		}
		gn.Info("Removed <em>%s</em> stored %s records",
			humanize.Comma(n), src.Name())
	}

	if _, err = ing.Ingest(ctx, cfg, src); err != nil {
		return err
	}

	gn.Info(`Next steps:
	 - Run '<em>kurodb dedup</em>' after importing from both sources
	 - Run '<em>kurodb stats</em>' to profile the store
`)

	return nil
}
