package lifecycle

import (
	"context"

	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/dedup"
)

// Deduper defines the interface for the post-hoc merge engine.
//
// Deduplication scans for occurrence_ids that landed from more than
// one source, merges each group into a single BOTH record, and removes
// the leftovers. Each group merges in its own transaction; a failing
// group is reported and skipped so one broken record cannot stall the
// whole cleanup.
type Deduper interface {
	// Dedup merges all duplicate groups and reports what happened.
	// With cfg.Dedup.DryRun the store is left untouched and the
	// report counts what would have been merged.
	Dedup(ctx context.Context, cfg *config.Config) (*dedup.Report, error)
}
