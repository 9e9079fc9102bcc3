package ioingest

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/schema"
)

// insertObservationSQL inserts one observation. The location parameter
// arrives as EWKT; created_at comes from the server clock because the
// merge engine orders duplicate groups by it.
const insertObservationSQL = `
	INSERT INTO observations (
		occurrence_id, species_name, name_key, common_name,
		observation_date, observed_at, location, location_name,
		machine_observation, validated, depth_min, depth_max,
		bathymetry, temperature, notes, sex, source, dataset_name,
		created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, now()
	)`

// savePage writes one processed page in its own transaction. Inserts
// travel in pgx batches chunked by Database.BatchSize; the page still
// commits or rolls back as a whole.
func (ing *ingestor) savePage(
	ctx context.Context,
	cfg *config.Config,
	rows []*schema.Observation,
) error {
	tx, err := ing.operator.Pool().Begin(ctx)
	if err != nil {
		return PageBeginError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batchSize := cfg.Database.BatchSize
	if batchSize <= 0 {
		batchSize = len(rows)
	}
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		if err = ing.sendBatch(ctx, tx, rows[start:end]); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return PageCommitError(err)
	}
	return nil
}

// sendBatch queues one INSERT per observation and reads the results
// back one by one, so a failing row is reported with its own context.
func (ing *ingestor) sendBatch(
	ctx context.Context,
	tx pgx.Tx,
	rows []*schema.Observation,
) error {
	b := &pgx.Batch{}
	for _, obs := range rows {
		b.Queue(insertObservationSQL, insertArgs(obs)...)
	}

	br := tx.SendBatch(ctx, b)
	for i := range rows {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			slog.Error("Failed to save observation",
				"occurrence_id", rows[i].OccurrenceID.String,
				"species", rows[i].SpeciesName,
				"source", rows[i].Source,
				"error", err,
			)
			return SaveError(rows[i].OccurrenceID.String, err)
		}
	}
	return br.Close()
}

func insertArgs(obs *schema.Observation) []any {
	return []any{
		obs.OccurrenceID,
		obs.SpeciesName,
		obs.NameKey,
		obs.CommonName,
		obs.ObservationDate,
		obs.ObservedAt,
		obs.Location,
		obs.LocationName,
		obs.MachineObservation,
		obs.Validated,
		obs.DepthMin,
		obs.DepthMax,
		obs.Bathymetry,
		obs.Temperature,
		obs.Notes,
		string(obs.Sex),
		string(obs.Source),
		obs.DatasetName,
	}
}
