// Package schema provides database schema models for kurodb.
// Tables are created with GORM AutoMigrate; indexes that AutoMigrate
// cannot express (partial, descending, GIST) live in IndexDDL methods
// and are applied by the schema manager after migration.
package schema

import (
	"database/sql"
	"time"

	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/geo"
)

// Model defines how schema structs describe their table.
type Model interface {
	// TableName returns the PostgreSQL table name for this model.
	TableName() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string
}

// Observation is one curated species observation. Rows come from the
// OBIS and GBIF ingestion pipelines or from manual curation.
type Observation struct {
	// ID is a serial primary key.
	ID int64 `gorm:"primaryKey"`

	// OccurrenceID is the Darwin Core occurrence identifier shared by
	// aggregators. It is the deduplication identity. The index is not
	// unique: duplicates across sources are allowed to land and are
	// repaired later by the merge engine.
	OccurrenceID sql.NullString `gorm:"type:varchar(255)"`

	// SpeciesName is the scientific name, cleaned through WoRMS when
	// resolution succeeded.
	SpeciesName string `gorm:"type:varchar(255);not null"`

	// NameKey is UUID v5 generated from the canonical form of
	// SpeciesName using DNS:"globalnames.org". Groups records of the
	// same species across spelling variants.
	NameKey sql.NullString `gorm:"type:uuid"`

	// CommonName is the vernacular name, usually English.
	CommonName sql.NullString `gorm:"type:varchar(255)"`

	// ObservationDate is the calendar date of the observation.
	ObservationDate time.Time `gorm:"type:date;not null"`

	// ObservedAt is the precise event timestamp in UTC, when the
	// source supplied a time of day.
	ObservedAt sql.NullTime

	// Location is the observation point in WGS84.
	Location *geo.Point

	// LocationName is a human-readable locality or dataset label.
	LocationName sql.NullString `gorm:"type:varchar(512)"`

	// MachineObservation is the humanized Darwin Core basisOfRecord,
	// e.g. "Human Observation" or "Machine Observation".
	MachineObservation sql.NullString `gorm:"type:varchar(128)"`

	// Validated marks records that passed the ingestion quality gate.
	Validated sql.NullString `gorm:"type:varchar(128)"`

	// DepthMin and DepthMax bound the sampling depth in meters.
	// They are never set independently: a record with only one known
	// depth stores it in both columns.
	DepthMin sql.NullFloat64
	DepthMax sql.NullFloat64

	// Bathymetry is the sea-floor depth at the location, in meters.
	Bathymetry sql.NullFloat64

	// Temperature is the sea-surface temperature in Celsius.
	Temperature sql.NullFloat64

	// Visibility in meters. Curated by hand, never written by the ETL.
	Visibility sql.NullFloat64

	// Notes holds provenance, e.g. "Imported from GBIF dataset: X".
	Notes sql.NullString `gorm:"type:text"`

	// Image is a URL of a photograph. Curated by hand.
	Image sql.NullString `gorm:"type:varchar(200)"`

	// Sex of the observed organism: male, female or unknown.
	Sex dwc.Sex `gorm:"type:varchar(10);not null;default:unknown"`

	// Source names where the record came from: OBIS, GBIF, or BOTH
	// after a cross-source merge.
	Source dwc.Source `gorm:"type:varchar(20);not null"`

	// DatasetName is the publishing dataset, truncated to 255 bytes.
	DatasetName sql.NullString `gorm:"type:varchar(255)"`

	// CreatedAt records when the row was inserted. The merge engine
	// orders duplicate groups by (source, created_at).
	CreatedAt time.Time
}

// IngestRun is the accounting record of one pipeline run.
type IngestRun struct {
	// ID is a UUID v4 assigned when the run starts.
	ID string `gorm:"type:uuid;primaryKey"`

	// Source is the API the run pulled from: OBIS or GBIF.
	Source dwc.Source `gorm:"type:varchar(20);not null"`

	// Strategy is the geographic sweep used: network, geometry, oceans.
	Strategy string `gorm:"type:varchar(20)"`

	// Filters summarizes the run's filter flags for later inspection.
	Filters string `gorm:"type:text"`

	// StartedAt and FinishedAt bound the run in wall-clock time.
	StartedAt  time.Time
	FinishedAt sql.NullTime

	// Processed counts every record fetched from the source.
	Processed int

	// Saved counts records written to the observations table.
	Saved int

	// Duplicates counts records skipped by the deduplication check.
	Duplicates int

	// Rejected counts records dropped by the quality gate or the
	// normalizer.
	Rejected int

	// Error holds the failure message when the run aborted early.
	Error sql.NullString `gorm:"type:text"`
}
