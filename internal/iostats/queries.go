package iostats

import (
	"context"
	"database/sql"

	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/stats"
)

func (r *reporter) total(
	ctx context.Context, sum *stats.Summary,
) error {
	err := r.operator.Pool().QueryRow(
		ctx, "SELECT count(*) FROM observations",
	).Scan(&sum.Total)
	if err != nil {
		return QueryError("total", err)
	}
	return nil
}

func (r *reporter) bySource(
	ctx context.Context, sum *stats.Summary,
) error {
	rows, err := r.operator.Pool().Query(ctx, `
		SELECT source, count(*)
		FROM observations
		GROUP BY source`,
	)
	if err != nil {
		return QueryError("source", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			src string
			n   int64
		)
		if err = rows.Scan(&src, &n); err != nil {
			return QueryError("source", err)
		}
		sum.BySource[dwc.Source(src)] = n
	}
	if err = rows.Err(); err != nil {
		return QueryError("source", err)
	}
	return nil
}

func (r *reporter) dateRange(
	ctx context.Context, sum *stats.Summary,
) error {
	var first, last sql.NullTime
	err := r.operator.Pool().QueryRow(ctx, `
		SELECT min(observation_date), max(observation_date)
		FROM observations`,
	).Scan(&first, &last)
	if err != nil {
		return QueryError("date range", err)
	}
	if first.Valid {
		sum.First = first.Time
	}
	if last.Valid {
		sum.Last = last.Time
	}
	return nil
}

func (r *reporter) enrichment(
	ctx context.Context, sum *stats.Summary,
) error {
	err := r.operator.Pool().QueryRow(ctx, `
		SELECT count(*) FILTER (WHERE depth_min IS NOT NULL),
			count(*) FILTER (WHERE common_name IS NOT NULL)
		FROM observations`,
	).Scan(&sum.WithDepth, &sum.WithCommonName)
	if err != nil {
		return QueryError("enrichment", err)
	}
	return nil
}

func (r *reporter) topSpecies(
	ctx context.Context, sum *stats.Summary,
) error {
	rows, err := r.operator.Pool().Query(ctx, `
		SELECT species_name, count(*) AS records
		FROM observations
		GROUP BY species_name
		ORDER BY records DESC, species_name
		LIMIT 10`,
	)
	if err != nil {
		return QueryError("species", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc stats.SpeciesCount
		if err = rows.Scan(&sc.SpeciesName, &sc.Records); err != nil {
			return QueryError("species", err)
		}
		sum.TopSpecies = append(sum.TopSpecies, sc)
	}
	if err = rows.Err(); err != nil {
		return QueryError("species", err)
	}
	return nil
}

func (r *reporter) duplicateGroups(
	ctx context.Context, sum *stats.Summary,
) error {
	err := r.operator.Pool().QueryRow(ctx, `
		SELECT count(*) FROM (
			SELECT occurrence_id
			FROM observations
			WHERE occurrence_id IS NOT NULL
			GROUP BY occurrence_id
			HAVING count(*) > 1
		) AS dups`,
	).Scan(&sum.DuplicateGroups)
	if err != nil {
		return QueryError("duplicate", err)
	}
	return nil
}
