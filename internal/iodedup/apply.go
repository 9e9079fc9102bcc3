package iodedup

import (
	"context"

	"github.com/kuroshiolab/kurodb/pkg/dedup"
	"github.com/kuroshiolab/kurodb/pkg/schema"
)

// updatePrimarySQL rewrites the enrichment columns of the surviving
// record and re-sources it to BOTH.
const updatePrimarySQL = `
	UPDATE observations
	SET common_name = $2,
		observed_at = $3,
		depth_min = $4,
		depth_max = $5,
		bathymetry = $6,
		temperature = $7,
		sex = $8,
		source = $9,
		dataset_name = $10
	WHERE id = $1`

// applyPlan executes one merge plan in its own transaction, so a
// failing group leaves the store as the scan found it.
func (d *deduper) applyPlan(
	ctx context.Context,
	id string,
	plan dedup.Plan,
) error {
	tx, err := d.operator.Pool().Begin(ctx)
	if err != nil {
		return MergeError(id, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// A cleaned group keeps its BOTH record untouched.
	if plan.Action == dedup.ActionMerged {
		if _, err = tx.Exec(
			ctx, updatePrimarySQL, updateArgs(plan.Primary)...,
		); err != nil {
			return MergeError(id, err)
		}
	}

	if len(plan.DeleteIDs) > 0 {
		if _, err = tx.Exec(ctx,
			"DELETE FROM observations WHERE id = ANY($1)",
			plan.DeleteIDs,
		); err != nil {
			return DeleteError(id, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return MergeError(id, err)
	}
	return nil
}

func updateArgs(primary *schema.Observation) []any {
	return []any{
		primary.ID,
		primary.CommonName,
		primary.ObservedAt,
		primary.DepthMin,
		primary.DepthMax,
		primary.Bathymetry,
		primary.Temperature,
		string(primary.Sex),
		string(primary.Source),
		primary.DatasetName,
	}
}
