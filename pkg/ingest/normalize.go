package ingest

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kuroshiolab/kurodb/pkg/clean"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/geo"
	"github.com/kuroshiolab/kurodb/pkg/quality"
	"github.com/kuroshiolab/kurodb/pkg/schema"
	"github.com/kuroshiolab/kurodb/pkg/taxon"
)

// Validated is written into every observation the pipeline persists.
const Validated = "validated"

// Normalize turns a gate-passed record and its enrichment into an
// observation row. A nil result means the record was rejected with the
// returned reason.
//
// Name policy differs by source. GBIF aggregates many datasets of mixed
// quality, so a GBIF record whose name cannot be resolved is rejected.
// OBIS is itself a curated marine network, so an unresolved OBIS record
// keeps its raw name.
func Normalize(
	rec *dwc.Record,
	enr taxon.Enrichment,
	resolved bool,
) (*schema.Observation, quality.Reason) {
	if rec.Latitude == nil || rec.Longitude == nil {
		return nil, quality.ReasonMissingCoordinates
	}

	date, eventTime, ok := clean.EventDate(rec.EventDate)
	if !ok {
		return nil, quality.ReasonUnparseableDate
	}

	pt, err := geo.NewPoint(*rec.Longitude, *rec.Latitude)
	if err != nil {
		return nil, quality.ReasonInvalidCoordinates
	}

	speciesName := strings.TrimSpace(rec.ScientificName)
	if resolved && enr.ScientificName != "" {
		speciesName = enr.ScientificName
	} else if rec.Source == dwc.SourceGBIF {
		return nil, quality.ReasonUnresolvedName
	}

	// A record-level vernacular name wins over the resolved one.
	commonName := strings.TrimSpace(rec.VernacularName)
	if commonName == "" {
		commonName = enr.CommonName
	}
	commonName = clean.Label(commonName)

	depthMin, depthMax := clean.Depth(rec.Depth, rec.DepthMin, rec.DepthMax)

	locationName := strings.TrimSpace(rec.LocationName)

	obs := &schema.Observation{
		OccurrenceID:       nullString(strings.TrimSpace(rec.OccurrenceID)),
		SpeciesName:        clean.Truncate(speciesName, 255),
		NameKey:            nullString(enr.NameKey),
		CommonName:         nullString(clean.Truncate(commonName, 255)),
		ObservationDate:    date,
		ObservedAt:         nullTime(eventTime),
		Location:           &pt,
		LocationName:       nullString(clean.Truncate(locationName, 512)),
		MachineObservation: nullString(clean.Label(rec.BasisOfRecord)),
		Validated:          nullString(Validated),
		DepthMin:           nullFloat(depthMin),
		DepthMax:           nullFloat(depthMax),
		Bathymetry:         nullFloat(rec.Bathymetry),
		Temperature:        nullFloat(rec.Temperature),
		Notes:              nullString(importNote(rec)),
		Sex:                clean.Sex(rec.Sex),
		Source:             rec.Source,
		DatasetName:        nullString(clean.Truncate(strings.TrimSpace(rec.DatasetName), 255)),
	}
	return obs, ""
}

// importNote builds the provenance note of an imported record.
func importNote(rec *dwc.Record) string {
	ds := strings.TrimSpace(rec.DatasetName)
	if ds == "" {
		ds = "Unknown"
	}
	return fmt.Sprintf("Imported from %s dataset: %s", rec.Source, ds)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
