package iodedup

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kuroshiolab/kurodb/pkg/errcode"
)

// NotConnectedError creates an error for when a merge operation is
// attempted without database connection.
func NotConnectedError() error {
	msg := "Dedup operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// FindError creates an error for when the duplicate scan fails.
func FindError(err error) error {
	msg := `Cannot scan the store for duplicate identifiers

<em>Possible causes:</em>
  - The schema was never created
  - The database connection dropped mid-query

<em>How to fix:</em>
  1. Run <em>kurodb create</em> to set up the schema
  2. Check the database server is still reachable`

	return &gn.Error{
		Code: errcode.DedupFindError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to scan for duplicates: %w", err),
	}
}

// LoadGroupError creates an error for a duplicate group that could
// not be loaded.
func LoadGroupError(occurrenceID string, err error) error {
	msg := `Failed to load duplicate group <em>%s</em>`
	vars := []any{occurrenceID}

	return &gn.Error{
		Code: errcode.DedupLoadGroupError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to load group %s: %w", occurrenceID, err),
	}
}

// MergeError creates an error for a merge transaction that failed.
func MergeError(occurrenceID string, err error) error {
	msg := `Failed to merge duplicate group <em>%s</em>`
	vars := []any{occurrenceID}

	return &gn.Error{
		Code: errcode.DedupMergeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to merge group %s: %w", occurrenceID, err),
	}
}

// DeleteError creates an error for leftover records that could not be
// removed.
func DeleteError(occurrenceID string, err error) error {
	msg := `Failed to remove leftover records of <em>%s</em>`
	vars := []any{occurrenceID}

	return &gn.Error{
		Code: errcode.DedupDeleteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to delete leftovers of %s: %w", occurrenceID, err),
	}
}

// CancelledError creates an error for when a merge run is cancelled.
func CancelledError(err error) error {
	msg := "Merge run was cancelled"

	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("merge cancelled: %w", err),
	}
}
