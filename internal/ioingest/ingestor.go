// Package ioingest implements the Ingestor interface: one occurrence
// sweep from a source API into PostgreSQL.
// This is an impure I/O package that pages a remote API, enriches
// records through the taxonomy resolver and performs bulk inserts.
package ioingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/db"
	"github.com/kuroshiolab/kurodb/pkg/geo"
	"github.com/kuroshiolab/kurodb/pkg/ingest"
	"github.com/kuroshiolab/kurodb/pkg/lifecycle"
	"github.com/kuroshiolab/kurodb/pkg/taxon"
)

// ingestor implements the Ingestor interface.
type ingestor struct {
	operator db.Operator
	resolver taxon.Resolver
	oceans   geo.Oceans
}

// NewIngestor creates a new Ingestor.
func NewIngestor(
	op db.Operator,
	res taxon.Resolver,
	oceans geo.Oceans,
) lifecycle.Ingestor {
	return &ingestor{operator: op, resolver: res, oceans: oceans}
}

// Ingest runs one sweep of src. It partitions the configured strategy,
// pages every partition and persists each page in its own transaction,
// so an aborted run keeps its committed pages. The returned stats are
// valid even when the run failed.
func (ing *ingestor) Ingest(
	ctx context.Context,
	cfg *config.Config,
	src ingest.Source,
) (*ingest.Stats, error) {
	stats := ingest.NewStats()

	pool := ing.operator.Pool()
	if pool == nil {
		return stats, NotConnectedError()
	}

	startTime := time.Now()
	slog.Info("Starting ingestion run",
		"source", src.Name(),
		"strategy", cfg.Ingest.Strategy,
		"max_records", cfg.Ingest.MaxRecords,
	)

	parts, err := ing.partitions(cfg)
	if err != nil {
		return stats, err
	}

	gn.Info("(1/2) Loading known occurrence identifiers...")
	seen, err := ing.snapshotSeen(ctx)
	if err != nil {
		return stats, err
	}
	gn.Message("<em>%s identifiers already in the store</em>",
		humanize.Comma(int64(len(seen))))

	runID, err := ing.startRun(ctx, cfg, src.Name())
	if err != nil {
		return stats, err
	}

	// One memoization cache per run: a name resolved once is never
	// asked again, negative answers included.
	cache := taxon.NewCache(ing.resolver)

	sweeps := "sweep"
	if len(parts) > 1 {
		sweeps += "s"
	}
	gn.Info("(2/2) Fetching from <em>%s</em> in %d %s...",
		src.Name(), len(parts), sweeps)

	var runErr error
	for i, part := range parts {
		select {
		case <-ctx.Done():
			runErr = CancelledError(ctx.Err())
		default:
		}
		if runErr != nil {
			break
		}

		fmt.Println() // Blank line between sweeps
		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Sweep [%d/%d]: %s", i+1, len(parts), part.Name)
		fmt.Println(strings.Repeat("─", 60))

		slog.Info("Sweeping partition",
			"index", i+1,
			"total", len(parts),
			"partition", part.Name,
		)

		var stop bool
		stop, runErr = ing.sweepPartition(
			ctx, cfg, src, cache, part, seen, stats,
		)
		if runErr != nil {
			break
		}
		if stop {
			slog.Info("Record budget reached",
				"max_records", cfg.Ingest.MaxRecords,
				"saved", stats.Saved,
			)
			gn.Message("<em>Record budget reached, stopping the run</em>")
			break
		}
	}

	ing.finishRun(ctx, runID, stats, runErr)

	elapsed := time.Since(startTime)
	slog.Info("Ingestion run complete",
		"source", src.Name(),
		"processed", stats.Processed,
		"saved", stats.Saved,
		"duplicates", stats.Duplicates,
		"rejected", stats.Rejected,
		"names_resolved", cache.Size(),
		"duration", gnfmt.TimeString(elapsed.Seconds()),
	)
	if stats.Rejected > 0 {
		slog.Info("Rejection breakdown", "by_reason", stats.RejectedBy)
	}

	gn.Info(`Ingestion complete
Processed %s records: saved %s, duplicates %s, rejected %s.
		Elapsed time: <em>%s</em>
`,
		humanize.Comma(int64(stats.Processed)),
		humanize.Comma(int64(stats.Saved)),
		humanize.Comma(int64(stats.Duplicates)),
		humanize.Comma(int64(stats.Rejected)),
		gnfmt.TimeString(elapsed.Seconds()),
	)

	return stats, runErr
}

// partitions expands the configured strategy into sweep slices. The
// basin table is loaded only when the oceans strategy asks for it.
func (ing *ingestor) partitions(
	cfg *config.Config,
) ([]ingest.Partition, error) {
	var oceans *geo.OceansConfig
	if cfg.Ingest.Strategy == ingest.StrategyOceans {
		var err error
		oceans, err = ing.oceans.Load()
		if err != nil {
			return nil, err
		}
	}

	parts, err := ingest.Partitions(cfg, oceans)
	if err != nil {
		return nil, BadStrategyError(cfg.Ingest.Strategy, err)
	}
	return parts, nil
}

// sweepPartition pages one partition until it is exhausted, the record
// budget runs out, or a full page comes back almost entirely known.
// The stop result is true when the budget ended the whole run.
func (ing *ingestor) sweepPartition(
	ctx context.Context,
	cfg *config.Config,
	src ingest.Source,
	cache *taxon.Cache,
	part ingest.Partition,
	seen map[string]struct{},
	runStats *ingest.Stats,
) (bool, error) {
	f := ingest.Filters{
		Geometry:   part.Geometry,
		NetworkKey: part.NetworkKey,
		Year:       cfg.Ingest.Year,
		TaxonKey:   cfg.Ingest.TaxonKey,
		TaxonID:    cfg.Ingest.TaxonID,
		StartDate:  cfg.Ingest.StartDate,
		EndDate:    cfg.Ingest.EndDate,
	}
	requested := requestedPageSize(cfg, src.Name())

	var bar *pb.ProgressBar
	defer func() {
		if bar != nil {
			bar.Finish()
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return false, CancelledError(err)
		}

		records, total := src.Fetch(ctx, f)
		if len(records) == 0 {
			break
		}

		if bar == nil && total > 0 {
			bar = pb.Full.Start(total)
			bar.Set("prefix", part.Name+": ")
			bar.Set(pb.CleanOnFinish, true)
		}

		pageStats, err := ing.processPage(ctx, cfg, cache, records, seen)
		runStats.Add(pageStats)
		if bar != nil {
			bar.Add(len(records))
		}
		if err != nil {
			return false, err
		}

		if cfg.Ingest.MaxRecords > 0 &&
			runStats.Saved >= cfg.Ingest.MaxRecords {
			return true, nil
		}
		if pageStats.MostlyDuplicates(requested) {
			slog.Info("Region already ingested, leaving partition",
				"partition", part.Name,
				"offset", f.Offset,
				"duplicates", pageStats.Duplicates,
			)
			break
		}
		if len(records) < requested {
			break
		}

		f.Offset += len(records)
		if total > 0 && f.Offset >= total {
			break
		}
	}
	return false, nil
}
