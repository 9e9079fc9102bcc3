package ingest

import (
	"github.com/kuroshiolab/kurodb/pkg/quality"
)

// DuplicatePageRatio is the share of duplicates above which a page with
// no saved records signals an already-ingested region and stops the
// sweep of the current partition.
const DuplicatePageRatio = 0.8

// Stats accumulates the accounting of an ingestion run. One Stats
// tracks a page, a partition or the whole run; Add rolls them up.
type Stats struct {
	// Processed counts every record fetched from the source.
	Processed int

	// Saved counts records written to the observations table.
	Saved int

	// Duplicates counts records skipped because their identity was
	// already present in the store or earlier in the run.
	Duplicates int

	// Rejected counts records dropped by the quality gate or the
	// normalizer.
	Rejected int

	// RejectedBy breaks rejections down by reason.
	RejectedBy map[quality.Reason]int
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{RejectedBy: make(map[quality.Reason]int)}
}

// Reject records one rejection with its reason.
func (s *Stats) Reject(r quality.Reason) {
	s.Rejected++
	if s.RejectedBy == nil {
		s.RejectedBy = make(map[quality.Reason]int)
	}
	s.RejectedBy[r]++
}

// Add rolls page or partition totals up into s.
func (s *Stats) Add(page *Stats) {
	s.Processed += page.Processed
	s.Saved += page.Saved
	s.Duplicates += page.Duplicates
	s.Rejected += page.Rejected
	for r, n := range page.RejectedBy {
		if s.RejectedBy == nil {
			s.RejectedBy = make(map[quality.Reason]int)
		}
		s.RejectedBy[r] += n
	}
}

// MostlyDuplicates reports whether a page indicates the region was
// already ingested: nothing saved and more than DuplicatePageRatio of
// the page skipped as duplicates.
func (s *Stats) MostlyDuplicates(pageSize int) bool {
	if pageSize <= 0 {
		return false
	}
	return s.Saved == 0 &&
		float64(s.Duplicates) > DuplicatePageRatio*float64(pageSize)
}
