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

	"github.com/gnames/gn"
	"github.com/kuroshiolab/kurodb/internal/iodb"
	"github.com/kuroshiolab/kurodb/internal/iostats"
	"github.com/spf13/cobra"
)

// getStatsCmd returns the stats command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getStatsCmd() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a profile of the observation store",
		Long: `Show summary statistics for the observation store.

The report covers record totals per source, the observation date
range, how many records carry depth and common-name enrichment,
the most recorded species and how many duplicate groups remain
for 'kurodb dedup' to merge.

Example:
  kurodb stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runStats()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return statsCmd
}

func runStats() error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	err := op.Connect(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer op.Close()

	_, err = iostats.NewReporter(op).Report(ctx, cfg)
	return err
}
