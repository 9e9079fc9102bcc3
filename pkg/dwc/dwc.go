// Package dwc defines the shared occurrence vocabulary exchanged between
// source API clients and the ingestion pipeline.
//
// Both upstream APIs publish Darwin Core-flavored JSON, but their field
// names and types differ. Each client validates its wire format into the
// Record type defined here, so the quality gate and the normalizer never
// see source-specific shapes.
package dwc

import "fmt"

// Source identifies where an observation came from.
type Source string

const (
	// SourceOBIS marks records from the OBIS network.
	SourceOBIS Source = "OBIS"

	// SourceGBIF marks records from the GBIF aggregator.
	SourceGBIF Source = "GBIF"

	// SourceBoth marks records consolidated from both sources by the
	// merge engine. Clients never emit it.
	SourceBoth Source = "BOTH"
)

// Valid reports whether s is a known source value.
func (s Source) Valid() bool {
	switch s {
	case SourceOBIS, SourceGBIF, SourceBoth:
		return true
	}
	return false
}

// Sex is the normalized sex of an observed organism.
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Record is the strict intermediate shape of one occurrence as it leaves
// a source client. Pointer fields distinguish absent values from zeroes;
// a latitude of 0.0 is a real coordinate, a nil latitude is a missing one.
type Record struct {
	// Source is the originating network, never empty.
	Source Source

	// NativeID is the source's own record identifier (GBIF key, OBIS id).
	NativeID string

	// OccurrenceID is the Darwin Core occurrence identifier. Often empty;
	// DedupKey falls back to a synthesized identifier then.
	OccurrenceID string

	// ScientificName is the raw name as published by the source.
	ScientificName string

	// VernacularName is a source-provided common name, usually empty for
	// the aggregator source.
	VernacularName string

	// AphiaID is the WoRMS taxon identifier when the source publishes
	// one, zero otherwise.
	AphiaID int

	// EventDate is the raw, unparsed date string.
	EventDate string

	Latitude  *float64
	Longitude *float64

	// Depth is a single sampling depth. The normalizer fills DepthMin and
	// DepthMax from it when those are absent.
	Depth      *float64
	DepthMin   *float64
	DepthMax   *float64
	Bathymetry *float64

	// Temperature is the water temperature at the event, when published.
	Temperature *float64

	Sex           string
	BasisOfRecord string
	LocationName  string
	DatasetName   string
}

// DedupKey returns the identity used for duplicate detection. Records
// without an occurrenceID get a synthesized "SOURCE:nativeID" key, so two
// fetches of the same upstream record always collide.
func (r *Record) DedupKey() string {
	if r.OccurrenceID != "" {
		return r.OccurrenceID
	}
	return fmt.Sprintf("%s:%s", r.Source, r.NativeID)
}
