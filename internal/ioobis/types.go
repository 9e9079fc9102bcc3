package ioobis

import (
	"github.com/kuroshiolab/kurodb/pkg/clean"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
)

type searchResponse struct {
	Total   int          `json:"total"`
	Results []occurrence `json:"results"`
}

// occurrence is the wire shape of one OBIS result. Measurement fields
// are typed any because the API serializes some of them as strings.
type occurrence struct {
	ID               string `json:"id"`
	OccurrenceID     string `json:"occurrenceID"`
	ScientificName   string `json:"scientificName"`
	VernacularName   string `json:"vernacularName"`
	AphiaID          int    `json:"aphiaID"`
	EventDate        string `json:"eventDate"`
	DecimalLatitude  any    `json:"decimalLatitude"`
	DecimalLongitude any    `json:"decimalLongitude"`
	Depth            any    `json:"depth"`
	MinimumDepth     any    `json:"minimumDepthInMeters"`
	MaximumDepth     any    `json:"maximumDepthInMeters"`
	Bathymetry       any    `json:"bathymetry"`
	SST              any    `json:"sst"`
	Sex              string `json:"sex"`
	BasisOfRecord    string `json:"basisOfRecord"`
	DatasetName      string `json:"datasetName"`
}

func (o *occurrence) record() dwc.Record {
	rec := dwc.Record{
		Source:         dwc.SourceOBIS,
		NativeID:       o.ID,
		OccurrenceID:   o.OccurrenceID,
		ScientificName: o.ScientificName,
		VernacularName: o.VernacularName,
		AphiaID:        o.AphiaID,
		EventDate:      o.EventDate,
		Latitude:       clean.Float(o.DecimalLatitude),
		Longitude:      clean.Float(o.DecimalLongitude),
		Depth:          clean.Float(o.Depth),
		DepthMin:       clean.Float(o.MinimumDepth),
		DepthMax:       clean.Float(o.MaximumDepth),
		Bathymetry:     clean.Float(o.Bathymetry),
		Temperature:    clean.Float(o.SST),
		Sex:            o.Sex,
		BasisOfRecord:  o.BasisOfRecord,
		DatasetName:    o.DatasetName,
	}

	// The portal labels points by the dataset that contributed them.
	rec.LocationName = o.DatasetName
	if rec.LocationName == "" {
		rec.LocationName = "OBIS record"
	}
	return rec
}
