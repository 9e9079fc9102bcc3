// Package quality holds the minimum-quality gate for incoming occurrence
// records and the typed rejection vocabulary shared with the pipeline.
package quality

import (
	"strings"

	"github.com/kuroshiolab/kurodb/pkg/dwc"
)

// Reason classifies why a record was rejected. Gate reasons come from
// Check; the remaining reasons are raised later in the pipeline but share
// the same vocabulary so run statistics stay uniform.
type Reason string

const (
	ReasonMissingCoordinates Reason = "missing_coordinates"
	ReasonMissingSpecies     Reason = "missing_species"
	ReasonMissingDate        Reason = "missing_date"

	// Raised by the pipeline after the gate.
	ReasonMissingIdentifier  Reason = "missing_identifier"
	ReasonUnparseableDate    Reason = "unparseable_date"
	ReasonInvalidCoordinates Reason = "invalid_coordinates"
	ReasonUnresolvedName     Reason = "unresolved_name"
	ReasonSaveFailed         Reason = "save_failed"
)

// Check verifies that a record satisfies the minimum requirements for
// ingestion. Checks run in a fixed order and short-circuit on the first
// failure: coordinates, then species, then date. A record missing all
// three is always reported as missing coordinates.
func Check(rec *dwc.Record) (bool, Reason) {
	if rec.Latitude == nil || rec.Longitude == nil {
		return false, ReasonMissingCoordinates
	}
	if strings.TrimSpace(rec.ScientificName) == "" {
		return false, ReasonMissingSpecies
	}
	if strings.TrimSpace(rec.EventDate) == "" {
		return false, ReasonMissingDate
	}
	return true, ""
}
