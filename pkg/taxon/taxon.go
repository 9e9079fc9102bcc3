// Package taxon resolves raw scientific names to their accepted form
// together with a vernacular name. Resolution is expensive (one or more
// WoRMS API calls per name), so the package wraps any Resolver in a
// run-lifetime memoization cache keyed on canonical name forms.
package taxon

import (
	"context"
)

// Enrichment is the outcome of resolving one raw scientific name.
type Enrichment struct {
	// ScientificName is the currently accepted (valid) name.
	ScientificName string

	// CommonName is the preferred English vernacular name. May be
	// empty even for resolved names.
	CommonName string

	// Canonical is the simple canonical form of ScientificName,
	// without authorship or annotations.
	Canonical string

	// NameKey is UUID v5 of Canonical using DNS:"globalnames.org".
	NameKey string

	// AphiaID is the WoRMS identifier of the accepted name.
	AphiaID int
}

// Resolver turns a raw scientific name into an Enrichment.
//
// A nonzero aphiaID lets implementations skip the fuzzy name search and
// go straight to the taxon record. The boolean result is false when the
// name is unknown to the backend or the backend is unreachable; callers
// decide per source whether an unresolved name rejects the record.
//
// Implementations fill ScientificName, CommonName and AphiaID. Canonical
// and NameKey are derived by Cache, which all pipeline code goes through.
type Resolver interface {
	Resolve(ctx context.Context, name string, aphiaID int) (Enrichment, bool)
}
