// Package iostats implements the Reporter interface: concurrent
// read-only aggregates over the observations table.
package iostats

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/kuroshiolab/kurodb/internal/iodb"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/db"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/lifecycle"
	"github.com/kuroshiolab/kurodb/pkg/stats"
	"golang.org/x/sync/errgroup"
)

// reporter implements the Reporter interface.
type reporter struct {
	operator db.Operator
}

// NewReporter creates a new Reporter.
func NewReporter(op db.Operator) lifecycle.Reporter {
	return &reporter{operator: op}
}

// Report runs the aggregate queries concurrently, prints the summary
// and returns it. Every query fills its own Summary fields, so the
// goroutines never share a column.
func (r *reporter) Report(
	ctx context.Context,
	cfg *config.Config,
) (*stats.Summary, error) {
	pool := r.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	exists, err := r.operator.TableExists(ctx, "observations")
	if err != nil {
		return nil, iodb.TableCheckError(err)
	}
	if !exists {
		return nil, iodb.EmptyDatabaseError(
			cfg.Database.Host, cfg.Database.Database)
	}

	startTime := time.Now()
	slog.Info("Collecting store statistics",
		"jobs", cfg.JobsNumber,
	)

	sum := &stats.Summary{BySource: make(map[dwc.Source]int64)}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.JobsNumber > 0 {
		g.SetLimit(cfg.JobsNumber)
	}
	g.Go(func() error { return r.total(gctx, sum) })
	g.Go(func() error { return r.bySource(gctx, sum) })
	g.Go(func() error { return r.dateRange(gctx, sum) })
	g.Go(func() error { return r.enrichment(gctx, sum) })
	g.Go(func() error { return r.topSpecies(gctx, sum) })
	g.Go(func() error { return r.duplicateGroups(gctx, sum) })
	if err = g.Wait(); err != nil {
		return nil, err
	}

	printSummary(sum)

	slog.Info("Store statistics collected",
		"total", sum.Total,
		"duplicate_groups", sum.DuplicateGroups,
		"duration", gnfmt.TimeString(time.Since(startTime).Seconds()),
	)
	return sum, nil
}

// printSummary renders the user-facing report.
func printSummary(sum *stats.Summary) {
	fmt.Println(strings.Repeat("─", 60))
	gn.Info("Store statistics")
	fmt.Println(strings.Repeat("─", 60))

	if sum.Total == 0 {
		gn.Message("<em>The store is empty</em>")
		gn.Message(
			"Run <em>kurodb sync gbif</em> or <em>kurodb sync obis</em> " +
				"to import occurrences")
		return
	}

	gn.Message("Observations: <em>%s</em>", humanize.Comma(sum.Total))
	gn.Message("  OBIS %s, GBIF %s, merged %s",
		humanize.Comma(sum.BySource[dwc.SourceOBIS]),
		humanize.Comma(sum.BySource[dwc.SourceGBIF]),
		humanize.Comma(sum.BySource[dwc.SourceBoth]),
	)
	gn.Message("Observation dates: %s to %s",
		sum.First.Format("2006-01-02"),
		sum.Last.Format("2006-01-02"),
	)
	gn.Message("With depth: %s (%s)",
		humanize.Comma(sum.WithDepth),
		percent(sum.WithDepth, sum.Total),
	)
	gn.Message("With common name: %s (%s)",
		humanize.Comma(sum.WithCommonName),
		percent(sum.WithCommonName, sum.Total),
	)
	gn.Message("Duplicate identifier groups: %s",
		humanize.Comma(sum.DuplicateGroups))

	if len(sum.TopSpecies) > 0 {
		gn.Info("Top species")
		for i, sc := range sum.TopSpecies {
			gn.Message("%2d. %s (%s)", i+1, sc.SpeciesName,
				humanize.Comma(sc.Records))
		}
	}
}

// percent renders n as a share of total.
func percent(n, total int64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}
