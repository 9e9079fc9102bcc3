// Package ingest provides the pure core of the occurrence ingestion
// pipeline: the client contract, run accounting, sweep partitioning and
// the normalizer that turns raw Darwin Core records into observations.
// Fetching, enrichment I/O and persistence live in internal/ioingest.
package ingest

import (
	"context"

	"github.com/kuroshiolab/kurodb/pkg/dwc"
)

// Ingest strategies partition a sweep geographically.
const (
	// StrategyNetwork sweeps a whole GBIF network (for OBIS the API
	// itself is the network, so the sweep is unfiltered).
	StrategyNetwork = "network"

	// StrategyGeometry sweeps a single user-supplied WKT polygon.
	StrategyGeometry = "geometry"

	// StrategyOceans sweeps the major ocean basins one by one.
	StrategyOceans = "oceans"
)

// Filters narrows an occurrence fetch. Zero values mean "no filter".
type Filters struct {
	// Geometry is a WKT polygon limiting results spatially.
	Geometry string

	// NetworkKey limits GBIF results to one publishing network.
	NetworkKey string

	// Year limits GBIF results: "2024", or "2015,2024" for a range.
	Year string

	// TaxonKey limits GBIF results to one taxon.
	TaxonKey int

	// TaxonID limits OBIS results to one AphiaID.
	TaxonID int

	// StartDate and EndDate bound OBIS results (YYYY-MM-DD).
	StartDate string
	EndDate   string

	// Limit and Offset page through results.
	Limit  int
	Offset int
}

// Source is an occurrence API client.
//
// Fetch returns one page of records and the total number of matches
// reported by the API. Implementations never fail: transport, status
// and decode errors are logged and produce an empty page, so one bad
// page cannot abort a multi-day run.
type Source interface {
	// Name returns the source tag records of this client carry.
	Name() dwc.Source

	// Fetch returns one page of records and the total match count.
	Fetch(ctx context.Context, f Filters) ([]dwc.Record, int)
}
