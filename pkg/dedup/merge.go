package dedup

import (
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/schema"
)

// PlanMerge decides how one group of records sharing an occurrence_id
// collapses. Records must be ordered by (source, created_at), the order
// the store query produces.
//
// The primary is the oldest record of the preferred source, or the
// first record overall when the preferred source is absent. Every other
// record donates its enrichment values and is deleted. A group that
// already contains a BOTH record was merged before: the first such
// record is kept as is and the rest are dropped.
func PlanMerge(records []schema.Observation, prefer dwc.Source) Plan {
	if len(records) < 2 {
		return Plan{Action: ActionSkip}
	}

	for i := range records {
		if records[i].Source == dwc.SourceBoth {
			keep := records[i]
			var del []int64
			for j := range records {
				if records[j].ID != keep.ID {
					del = append(del, records[j].ID)
				}
			}
			return Plan{
				Action:    ActionCleaned,
				Primary:   &keep,
				DeleteIDs: del,
			}
		}
	}

	var obis, gbif []schema.Observation
	for _, r := range records {
		switch r.Source {
		case dwc.SourceOBIS:
			obis = append(obis, r)
		case dwc.SourceGBIF:
			gbif = append(gbif, r)
		}
	}

	var primary schema.Observation
	var secondary []schema.Observation
	switch {
	case prefer == dwc.SourceOBIS && len(obis) > 0:
		primary = obis[0]
		secondary = append(append([]schema.Observation{}, gbif...), obis[1:]...)
	case prefer == dwc.SourceGBIF && len(gbif) > 0:
		primary = gbif[0]
		secondary = append(append([]schema.Observation{}, obis...), gbif[1:]...)
	default:
		primary = records[0]
		secondary = records[1:]
	}

	for i := range secondary {
		fillFrom(&primary, &secondary[i])
	}
	primary.Source = dwc.SourceBoth

	del := make([]int64, len(secondary))
	for i, s := range secondary {
		del[i] = s.ID
	}

	return Plan{
		Action:    ActionMerged,
		Primary:   &primary,
		DeleteIDs: del,
	}
}

// fillFrom copies enrichment values the secondary has and the primary
// lacks. Absence is the SQL null flag, never a zero check: a depth or
// temperature of 0.0 is a real measurement and is kept.
func fillFrom(primary, sec *schema.Observation) {
	if !primary.CommonName.Valid && sec.CommonName.Valid {
		primary.CommonName = sec.CommonName
	}
	if !primary.ObservedAt.Valid && sec.ObservedAt.Valid {
		primary.ObservedAt = sec.ObservedAt
	}
	if !primary.DepthMin.Valid && sec.DepthMin.Valid {
		primary.DepthMin = sec.DepthMin
	}
	if !primary.DepthMax.Valid && sec.DepthMax.Valid {
		primary.DepthMax = sec.DepthMax
	}
	if !primary.Bathymetry.Valid && sec.Bathymetry.Valid {
		primary.Bathymetry = sec.Bathymetry
	}
	if !primary.Temperature.Valid && sec.Temperature.Valid {
		primary.Temperature = sec.Temperature
	}
	// Sex carries "unknown" instead of null, so unknown counts as
	// absent here.
	if primary.Sex == dwc.SexUnknown &&
		sec.Sex != "" && sec.Sex != dwc.SexUnknown {
		primary.Sex = sec.Sex
	}
	if !primary.DatasetName.Valid && sec.DatasetName.Valid {
		primary.DatasetName = sec.DatasetName
	}
}
