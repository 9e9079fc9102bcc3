package iogbif

import (
	"strconv"

	"github.com/kuroshiolab/kurodb/pkg/clean"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
)

// searchResponse is one page of /occurrence/search.
type searchResponse struct {
	Offset       int          `json:"offset"`
	Limit        int          `json:"limit"`
	EndOfRecords bool         `json:"endOfRecords"`
	Count        int          `json:"count"`
	Results      []occurrence `json:"results"`
}

// occurrence is the subset of a GBIF occurrence the pipeline reads.
// Measurement fields are typed any because the API serializes some of
// them as strings.
type occurrence struct {
	Key              int64  `json:"key"`
	OccurrenceID     string `json:"occurrenceID"`
	ScientificName   string `json:"scientificName"`
	EventDate        string `json:"eventDate"`
	DecimalLatitude  any    `json:"decimalLatitude"`
	DecimalLongitude any    `json:"decimalLongitude"`
	MinimumDepth     any    `json:"minimumDepthInMeters"`
	MaximumDepth     any    `json:"maximumDepthInMeters"`
	Depth            any    `json:"depth"`
	WaterTemperature any    `json:"waterTemperature"`
	Sex              string `json:"sex"`
	BasisOfRecord    string `json:"basisOfRecord"`
	DatasetName      string `json:"datasetName"`
}

// record converts a wire occurrence into the shared vocabulary.
func (o *occurrence) record() dwc.Record {
	return dwc.Record{
		Source:         dwc.SourceGBIF,
		NativeID:       strconv.FormatInt(o.Key, 10),
		OccurrenceID:   o.OccurrenceID,
		ScientificName: o.ScientificName,
		EventDate:      o.EventDate,
		Latitude:       clean.Float(o.DecimalLatitude),
		Longitude:      clean.Float(o.DecimalLongitude),
		// GBIF's "depth" is the seafloor depth at the event site; the
		// explicit minimum/maximum fields carry the sampling interval.
		DepthMin:      clean.Float(o.MinimumDepth),
		DepthMax:      clean.Float(o.MaximumDepth),
		Bathymetry:    clean.Float(o.Depth),
		Temperature:   clean.Float(o.WaterTemperature),
		Sex:           o.Sex,
		BasisOfRecord: o.BasisOfRecord,
		DatasetName:   o.DatasetName,
	}
}
