// Package dedup provides the planning half of the merge engine. The
// pipeline lets the same occurrence land once per source; this package
// decides how such duplicate groups collapse into a single record.
// Loading groups and executing plans against the store happens in
// internal/iodedup.
package dedup

import (
	"github.com/kuroshiolab/kurodb/pkg/schema"
)

// Action classifies what the merge engine did, or would do, with one
// duplicate group.
type Action string

const (
	// ActionSkip means the group had fewer than two records by the
	// time it was loaded.
	ActionSkip Action = "skip"

	// ActionCleaned means the group already contained a merged BOTH
	// record and only the leftovers were removed.
	ActionCleaned Action = "cleaned"

	// ActionWouldMerge is a merge reported but not executed (dry run).
	ActionWouldMerge Action = "would_merge"

	// ActionMerged means the group collapsed into one BOTH record.
	ActionMerged Action = "merged"
)

// Plan describes the store changes one duplicate group needs.
type Plan struct {
	// Action is what executing this plan amounts to.
	Action Action

	// Primary is the surviving record, already enriched and
	// re-sourced. It is nil for ActionSkip and needs no UPDATE for
	// ActionCleaned.
	Primary *schema.Observation

	// DeleteIDs are the rows to remove.
	DeleteIDs []int64
}

// Report summarizes one merge run.
type Report struct {
	// Groups is the number of duplicate occurrence_ids found.
	Groups int

	// Merged counts executed merges, or reported ones in a dry run.
	Merged int

	// Cleaned counts groups that only needed leftovers removed.
	Cleaned int

	// Skipped counts groups that vanished between scan and load.
	Skipped int

	// Deleted is the total number of rows removed.
	Deleted int

	// Errors counts groups whose merge failed and was skipped.
	Errors int

	// DryRun is true when no changes were written.
	DryRun bool
}
