package ingest_test

import (
	"testing"
	"time"

	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/ingest"
	"github.com/kuroshiolab/kurodb/pkg/quality"
	"github.com/kuroshiolab/kurodb/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

// gbifRecord returns a record shaped like a typical GBIF occurrence.
func gbifRecord() *dwc.Record {
	return &dwc.Record{
		Source:         dwc.SourceGBIF,
		NativeID:       "5006670102",
		OccurrenceID:   "urn:catalog:CLO:EBIRD:OBS2129722",
		ScientificName: "Gadus morhua (Linnaeus, 1758)",
		EventDate:      "2024-03-15T10:30:00",
		Latitude:       ptr(35.6),
		Longitude:      ptr(139.7),
		Depth:          ptr(12.5),
		BasisOfRecord:  "HumanObservation",
		DatasetName:    "eBird Observation Dataset",
	}
}

func codEnrichment() taxon.Enrichment {
	return taxon.Enrichment{
		ScientificName: "Gadus morhua",
		CommonName:     "Atlantic cod",
		Canonical:      "Gadus morhua",
		NameKey:        "c4cb0645-1a6e-5058-a92b-000000000000",
		AphiaID:        126436,
	}
}

func TestNormalizeResolvedGBIF(t *testing.T) {
	rec := gbifRecord()
	obs, reason := ingest.Normalize(rec, codEnrichment(), true)

	require.NotNil(t, obs, "unexpected rejection: %s", reason)

	// Resolved name replaces the raw one
	assert.Equal(t, "Gadus morhua", obs.SpeciesName)
	require.True(t, obs.NameKey.Valid)

	// Vernacular name is title-cased
	require.True(t, obs.CommonName.Valid)
	assert.Equal(t, "Atlantic Cod", obs.CommonName.String)

	// Date splits into calendar date and precise timestamp
	assert.Equal(t,
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), obs.ObservationDate)
	require.True(t, obs.ObservedAt.Valid)
	assert.Equal(t,
		time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), obs.ObservedAt.Time)

	// Coordinates become a geography point
	require.NotNil(t, obs.Location)
	assert.InDelta(t, 139.7, obs.Location.Lon, 1e-9)
	assert.InDelta(t, 35.6, obs.Location.Lat, 1e-9)

	// Darwin Core labels are humanized
	require.True(t, obs.MachineObservation.Valid)
	assert.Equal(t, "Human Observation", obs.MachineObservation.String)

	// A single known depth fills both bounds
	require.True(t, obs.DepthMin.Valid)
	require.True(t, obs.DepthMax.Valid)
	assert.Equal(t, 12.5, obs.DepthMin.Float64)
	assert.Equal(t, 12.5, obs.DepthMax.Float64)

	// Provenance fields
	require.True(t, obs.Validated.Valid)
	assert.Equal(t, "validated", obs.Validated.String)
	require.True(t, obs.Notes.Valid)
	assert.Equal(t,
		"Imported from GBIF dataset: eBird Observation Dataset",
		obs.Notes.String)
	assert.Equal(t, dwc.SourceGBIF, obs.Source)
	assert.Equal(t, dwc.SexUnknown, obs.Sex)
	require.True(t, obs.OccurrenceID.Valid)
	assert.Equal(t, "urn:catalog:CLO:EBIRD:OBS2129722", obs.OccurrenceID.String)
}

func TestNormalizeUnresolvedGBIFRejected(t *testing.T) {
	rec := gbifRecord()

	// GBIF aggregates datasets of mixed quality: no resolution, no record.
	obs, reason := ingest.Normalize(rec, taxon.Enrichment{}, false)
	assert.Nil(t, obs)
	assert.Equal(t, quality.ReasonUnresolvedName, reason)
}

func TestNormalizeUnresolvedOBISKeepsRawName(t *testing.T) {
	rec := gbifRecord()
	rec.Source = dwc.SourceOBIS
	rec.ScientificName = "Mysterius cryptus"

	// The cache still derives a name key for unresolved names.
	enr := taxon.Enrichment{
		Canonical: "Mysterius cryptus",
		NameKey:   "7b0d3a10-0000-5000-8000-000000000000",
	}

	obs, reason := ingest.Normalize(rec, enr, false)
	require.NotNil(t, obs, "unexpected rejection: %s", reason)
	assert.Equal(t, "Mysterius cryptus", obs.SpeciesName)
	require.True(t, obs.NameKey.Valid)
	assert.Equal(t, dwc.SourceOBIS, obs.Source)
}

func TestNormalizeVernacularPolicy(t *testing.T) {
	t.Run("record-level vernacular wins", func(t *testing.T) {
		rec := gbifRecord()
		rec.Source = dwc.SourceOBIS
		rec.VernacularName = "Japanese eel"

		obs, _ := ingest.Normalize(rec, codEnrichment(), true)
		require.NotNil(t, obs)
		assert.Equal(t, "Japanese Eel", obs.CommonName.String)
	})

	t.Run("falls back to resolved vernacular", func(t *testing.T) {
		rec := gbifRecord()
		rec.VernacularName = ""

		obs, _ := ingest.Normalize(rec, codEnrichment(), true)
		require.NotNil(t, obs)
		assert.Equal(t, "Atlantic Cod", obs.CommonName.String)
	})

	t.Run("no vernacular at all stays null", func(t *testing.T) {
		rec := gbifRecord()
		enr := codEnrichment()
		enr.CommonName = ""

		obs, _ := ingest.Normalize(rec, enr, true)
		require.NotNil(t, obs)
		assert.False(t, obs.CommonName.Valid)
	})
}

func TestNormalizeRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dwc.Record)
		reason quality.Reason
	}{
		{
			name:   "unparseable date",
			mutate: func(r *dwc.Record) { r.EventDate = "last spring" },
			reason: quality.ReasonUnparseableDate,
		},
		{
			name:   "date range",
			mutate: func(r *dwc.Record) { r.EventDate = "2008-01-05/2008-01-08" },
			reason: quality.ReasonUnparseableDate,
		},
		{
			name:   "latitude out of range",
			mutate: func(r *dwc.Record) { r.Latitude = ptr(95.0) },
			reason: quality.ReasonInvalidCoordinates,
		},
		{
			name:   "longitude out of range",
			mutate: func(r *dwc.Record) { r.Longitude = ptr(-190.0) },
			reason: quality.ReasonInvalidCoordinates,
		},
		{
			name:   "coordinates lost before normalization",
			mutate: func(r *dwc.Record) { r.Latitude = nil },
			reason: quality.ReasonMissingCoordinates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := gbifRecord()
			tt.mutate(rec)

			obs, reason := ingest.Normalize(rec, codEnrichment(), true)
			assert.Nil(t, obs)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestNormalizeFieldCleaning(t *testing.T) {
	t.Run("zero depth is a real surface value", func(t *testing.T) {
		rec := gbifRecord()
		rec.Depth = ptr(0.0)

		obs, _ := ingest.Normalize(rec, codEnrichment(), true)
		require.NotNil(t, obs)
		require.True(t, obs.DepthMin.Valid)
		assert.Equal(t, 0.0, obs.DepthMin.Float64)
		assert.Equal(t, 0.0, obs.DepthMax.Float64)
	})

	t.Run("date-only event has no timestamp", func(t *testing.T) {
		rec := gbifRecord()
		rec.EventDate = "2021-06-09"

		obs, _ := ingest.Normalize(rec, codEnrichment(), true)
		require.NotNil(t, obs)
		assert.False(t, obs.ObservedAt.Valid)
		assert.Equal(t,
			time.Date(2021, 6, 9, 0, 0, 0, 0, time.UTC), obs.ObservationDate)
	})

	t.Run("sex labels are normalized", func(t *testing.T) {
		rec := gbifRecord()
		rec.Sex = "FEMALE"

		obs, _ := ingest.Normalize(rec, codEnrichment(), true)
		require.NotNil(t, obs)
		assert.Equal(t, dwc.SexFemale, obs.Sex)
	})

	t.Run("dataset name is capped at 255 bytes", func(t *testing.T) {
		rec := gbifRecord()
		long := make([]byte, 300)
		for i := range long {
			long[i] = 'x'
		}
		rec.DatasetName = string(long)

		obs, _ := ingest.Normalize(rec, codEnrichment(), true)
		require.NotNil(t, obs)
		assert.LessOrEqual(t, len(obs.DatasetName.String), 255)
	})

	t.Run("missing dataset name notes Unknown", func(t *testing.T) {
		rec := gbifRecord()
		rec.Source = dwc.SourceOBIS
		rec.DatasetName = ""

		obs, _ := ingest.Normalize(rec, codEnrichment(), true)
		require.NotNil(t, obs)
		assert.Equal(t,
			"Imported from OBIS dataset: Unknown", obs.Notes.String)
		assert.False(t, obs.DatasetName.Valid)
	})

	t.Run("temperature and bathymetry pass through", func(t *testing.T) {
		rec := gbifRecord()
		rec.Temperature = ptr(18.4)
		rec.Bathymetry = ptr(240.0)

		obs, _ := ingest.Normalize(rec, codEnrichment(), true)
		require.NotNil(t, obs)
		assert.Equal(t, 18.4, obs.Temperature.Float64)
		assert.Equal(t, 240.0, obs.Bathymetry.Float64)
	})

	t.Run("bathymetry never fills depth bounds", func(t *testing.T) {
		rec := gbifRecord()
		rec.Depth = nil
		rec.Bathymetry = ptr(240.0)

		obs, _ := ingest.Normalize(rec, codEnrichment(), true)
		require.NotNil(t, obs)
		assert.False(t, obs.DepthMin.Valid)
		assert.False(t, obs.DepthMax.Valid)
		assert.Equal(t, 240.0, obs.Bathymetry.Float64)
	})
}
