// Package stats holds the read-only summary shapes the stats engine
// fills from the store.
package stats

import (
	"time"

	"github.com/kuroshiolab/kurodb/pkg/dwc"
)

// SpeciesCount is one row of the species leaderboard.
type SpeciesCount struct {
	// SpeciesName is the stored scientific name.
	SpeciesName string

	// Records is how many observations carry the name.
	Records int64
}

// Summary is a point-in-time profile of the observations table. The
// aggregates run concurrently, so rows written during collection may
// count in some fields and not in others.
type Summary struct {
	// Total is the number of stored observations.
	Total int64

	// BySource maps source tags to their record counts.
	BySource map[dwc.Source]int64

	// First and Last bound the stored observation dates. Both are
	// zero when the store is empty.
	First time.Time
	Last  time.Time

	// WithDepth counts records carrying a sampling depth.
	WithDepth int64

	// WithCommonName counts records carrying a vernacular name.
	WithCommonName int64

	// TopSpecies is the species leaderboard, largest first, at most
	// ten entries.
	TopSpecies []SpeciesCount

	// DuplicateGroups counts occurrence_ids stored more than once,
	// the work a merge run would find.
	DuplicateGroups int64
}
