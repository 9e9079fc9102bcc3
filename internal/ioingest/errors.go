package ioingest

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/errcode"
)

// NotConnectedError creates an error for when an ingestion operation
// is attempted without database connection.
func NotConnectedError() error {
	msg := "Ingest operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// SnapshotError creates an error for when the deduplication snapshot
// cannot be loaded.
func SnapshotError(err error) error {
	msg := `Cannot load existing occurrence identifiers

<em>Possible causes:</em>
  - The schema was never created
  - The database connection dropped mid-query

<em>How to fix:</em>
  1. Run <em>kurodb create</em> to set up the schema
  2. Check the database server is still reachable`

	return &gn.Error{
		Code: errcode.IngestSnapshotError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to load dedup snapshot: %w", err),
	}
}

// PageBeginError creates an error for when a page transaction cannot
// be opened.
func PageBeginError(err error) error {
	msg := "Cannot open a page transaction"

	return &gn.Error{
		Code: errcode.IngestPageBeginError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to begin page transaction: %w", err),
	}
}

// PageCommitError creates an error for when a page transaction cannot
// be committed.
func PageCommitError(err error) error {
	msg := "Cannot commit a page transaction"

	return &gn.Error{
		Code: errcode.IngestPageCommitError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to commit page transaction: %w", err),
	}
}

// SaveError creates an error for an observation whose insert failed.
func SaveError(occurrenceID string, err error) error {
	msg := `Failed to save observation <em>%s</em>`
	vars := []any{occurrenceID}

	return &gn.Error{
		Code: errcode.IngestSaveError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to save observation %s: %w", occurrenceID, err),
	}
}

// ClearSourceError creates an error for a failed source cleanup.
func ClearSourceError(source dwc.Source, err error) error {
	msg := `Failed to clear <em>%s</em> records`
	vars := []any{source}

	return &gn.Error{
		Code: errcode.IngestClearSourceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to clear %s records: %w", source, err),
	}
}

// RunRecordError creates an error for when the ingest_runs accounting
// row cannot be written.
func RunRecordError(op string, err error) error {
	msg := "Failed to write the ingest run record"

	return &gn.Error{
		Code: errcode.IngestRunRecordError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to %s run record: %w", op, err),
	}
}

// BadStrategyError creates an error for an unusable sweep strategy.
func BadStrategyError(strategy string, err error) error {
	msg := `Cannot build a sweep for strategy <em>%s</em>

<em>Valid strategies:</em>
  * network  - whole-network sweep using the configured network key
  * geometry - one WKT polygon passed with --geometry
  * oceans   - every basin of the ocean table, one sweep per basin

<em>How to fix:</em>
  1. Pass a valid --strategy value
  2. For geometry runs, check the WKT polygon syntax`

	vars := []any{strategy}

	return &gn.Error{
		Code: errcode.IngestBadStrategyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot build sweep: %w", err),
	}
}

// CancelledError creates an error for when an ingestion run is
// cancelled.
func CancelledError(err error) error {
	msg := "Ingestion run was cancelled"

	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("ingestion cancelled: %w", err),
	}
}
