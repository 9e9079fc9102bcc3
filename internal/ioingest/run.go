package ioingest

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/ingest"
)

// snapshotSeen loads every stored occurrence identifier into the run's
// deduplication set.
func (ing *ingestor) snapshotSeen(
	ctx context.Context,
) (map[string]struct{}, error) {
	rows, err := ing.operator.Pool().Query(ctx,
		`SELECT occurrence_id FROM observations
		  WHERE occurrence_id IS NOT NULL`)
	if err != nil {
		return nil, SnapshotError(err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, SnapshotError(err)
		}
		seen[id] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, SnapshotError(err)
	}

	slog.Info("Loaded dedup snapshot", "identifiers", len(seen))
	return seen, nil
}

// startRun opens the accounting row of this run in ingest_runs.
func (ing *ingestor) startRun(
	ctx context.Context,
	cfg *config.Config,
	source dwc.Source,
) (string, error) {
	id := uuid.New().String()
	_, err := ing.operator.Pool().Exec(ctx,
		`INSERT INTO ingest_runs
		   (id, source, strategy, filters, started_at,
		    processed, saved, duplicates, rejected)
		 VALUES ($1, $2, $3, $4, $5, 0, 0, 0, 0)`,
		id, string(source), cfg.Ingest.Strategy,
		filtersSummary(cfg), time.Now())
	if err != nil {
		return "", RunRecordError("create", err)
	}

	slog.Info("Ingest run recorded", "run_id", id, "source", source)
	return id, nil
}

// finishRun closes the accounting row. It runs even when the sweep was
// cancelled, so the context is detached; a failure here is logged and
// never masks the run error.
func (ing *ingestor) finishRun(
	ctx context.Context,
	runID string,
	stats *ingest.Stats,
	runErr error,
) {
	var errMsg sql.NullString
	if runErr != nil {
		errMsg = sql.NullString{String: runErr.Error(), Valid: true}
	}

	_, err := ing.operator.Pool().Exec(context.WithoutCancel(ctx),
		`UPDATE ingest_runs
		    SET finished_at = $2, processed = $3, saved = $4,
		        duplicates = $5, rejected = $6, error = $7
		  WHERE id = $1`,
		runID, time.Now(), stats.Processed, stats.Saved,
		stats.Duplicates, stats.Rejected, errMsg)
	if err != nil {
		slog.Error("Failed to close ingest run record",
			"run_id", runID, "error", err)
	}
}

// filtersSummary renders the run's filter flags for the ingest_runs
// row, one key=value pair per set flag.
func filtersSummary(cfg *config.Config) string {
	var parts []string
	add := func(key, val string) {
		if val != "" {
			parts = append(parts, key+"="+val)
		}
	}

	add("year", cfg.Ingest.Year)
	add("geometry", cfg.Ingest.Geometry)
	if cfg.Ingest.TaxonKey != 0 {
		add("taxon_key", strconv.Itoa(cfg.Ingest.TaxonKey))
	}
	if cfg.Ingest.TaxonID != 0 {
		add("taxon_id", strconv.Itoa(cfg.Ingest.TaxonID))
	}
	add("start_date", cfg.Ingest.StartDate)
	add("end_date", cfg.Ingest.EndDate)
	if cfg.Ingest.MaxRecords > 0 {
		add("max_records", strconv.Itoa(cfg.Ingest.MaxRecords))
	}

	return strings.Join(parts, " ")
}

// ClearSource removes every stored observation of one source.
func (ing *ingestor) ClearSource(
	ctx context.Context,
	source dwc.Source,
) (int64, error) {
	pool := ing.operator.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}

	tag, err := pool.Exec(ctx,
		"DELETE FROM observations WHERE source = $1", string(source))
	if err != nil {
		return 0, ClearSourceError(source, err)
	}

	slog.Info("Cleared source records",
		"source", source, "deleted", tag.RowsAffected())
	return tag.RowsAffected(), nil
}
