package ioingest

import (
	"context"
	"database/sql"

	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/ingest"
	"github.com/kuroshiolab/kurodb/pkg/quality"
	"github.com/kuroshiolab/kurodb/pkg/schema"
	"github.com/kuroshiolab/kurodb/pkg/taxon"
)

// processPage pushes one fetched page through the gate, the dedup
// check, enrichment and the normalizer, then persists the survivors in
// a single transaction. The returned stats cover this page only and
// are valid even when the save failed.
func (ing *ingestor) processPage(
	ctx context.Context,
	cfg *config.Config,
	cache *taxon.Cache,
	records []dwc.Record,
	seen map[string]struct{},
) (*ingest.Stats, error) {
	stats := ingest.NewStats()
	stats.Processed = len(records)

	rows := buildPage(ctx, cache, records, seen, stats)
	if len(rows) == 0 {
		return stats, nil
	}

	if err := ing.savePage(ctx, cfg, rows); err != nil {
		stats.Reject(quality.ReasonSaveFailed)
		return stats, err
	}
	stats.Saved = len(rows)
	return stats, nil
}

// buildPage filters and converts one page, updating stats and the seen
// set as it goes. It never touches the store, so the page rules are
// testable without a database.
func buildPage(
	ctx context.Context,
	cache *taxon.Cache,
	records []dwc.Record,
	seen map[string]struct{},
	stats *ingest.Stats,
) []*schema.Observation {
	rows := make([]*schema.Observation, 0, len(records))
	for i := range records {
		rec := &records[i]

		if ok, reason := quality.Check(rec); !ok {
			stats.Reject(reason)
			continue
		}
		if rec.OccurrenceID == "" && rec.NativeID == "" {
			stats.Reject(quality.ReasonMissingIdentifier)
			continue
		}

		key := rec.DedupKey()
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}

		enr, resolved := cache.Resolve(ctx, rec.ScientificName, rec.AphiaID)
		obs, reason := ingest.Normalize(rec, enr, resolved)
		if obs == nil {
			stats.Reject(reason)
			continue
		}

		// The stored identifier is the dedup key, so synthesized
		// identities collide across runs too.
		obs.OccurrenceID = sql.NullString{String: key, Valid: true}

		seen[key] = struct{}{}
		rows = append(rows, obs)
	}
	return rows
}

// requestedPageSize mirrors the page size the source client actually
// requests, so the exhaustion check compares like with like. The GBIF
// API caps pages at 300 records.
func requestedPageSize(cfg *config.Config, source dwc.Source) int {
	if source == dwc.SourceGBIF {
		if cfg.GBIF.PageLimit > 300 {
			return 300
		}
		return cfg.GBIF.PageLimit
	}
	return cfg.OBIS.PageSize
}
