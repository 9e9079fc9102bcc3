package iodedup

import (
	"context"
	"database/sql"

	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/schema"
)

// findDuplicates returns every occurrence_id stored more than once.
// NULL identifiers never group; the pipeline always stores a dedup
// key, so NULLs only exist in hand-curated rows.
func (d *deduper) findDuplicates(ctx context.Context) ([]string, error) {
	rows, err := d.operator.Pool().Query(ctx, `
		SELECT occurrence_id
		FROM observations
		WHERE occurrence_id IS NOT NULL
		GROUP BY occurrence_id
		HAVING count(*) > 1
		ORDER BY occurrence_id`,
	)
	if err != nil {
		return nil, FindError(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, FindError(err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, FindError(err)
	}
	return ids, nil
}

// loadGroup fetches the records sharing one occurrence_id in the order
// the planner expects. Only the columns the planner reads are loaded.
func (d *deduper) loadGroup(
	ctx context.Context,
	id string,
) ([]schema.Observation, error) {
	rows, err := d.operator.Pool().Query(ctx, `
		SELECT id, source, common_name, observed_at, depth_min,
			depth_max, bathymetry, temperature, sex, dataset_name
		FROM observations
		WHERE occurrence_id = $1
		ORDER BY source, created_at`,
		id,
	)
	if err != nil {
		return nil, LoadGroupError(id, err)
	}
	defer rows.Close()

	var records []schema.Observation
	for rows.Next() {
		var (
			o           schema.Observation
			source, sex string
		)
		err = rows.Scan(
			&o.ID, &source, &o.CommonName, &o.ObservedAt,
			&o.DepthMin, &o.DepthMax, &o.Bathymetry, &o.Temperature,
			&sex, &o.DatasetName,
		)
		if err != nil {
			return nil, LoadGroupError(id, err)
		}
		o.Source = dwc.Source(source)
		o.Sex = dwc.Sex(sex)
		o.OccurrenceID = sql.NullString{String: id, Valid: true}
		records = append(records, o)
	}
	if err = rows.Err(); err != nil {
		return nil, LoadGroupError(id, err)
	}
	return records, nil
}
