package iostats

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kuroshiolab/kurodb/pkg/errcode"
)

// NotConnectedError creates an error for when a stats report is
// requested without database connection.
func NotConnectedError() error {
	msg := "Stats operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// QueryError creates an error for a failed statistics query.
func QueryError(part string, err error) error {
	msg := `Failed to collect <em>%s</em> statistics`
	vars := []any{part}

	return &gn.Error{
		Code: errcode.StatsQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to query %s stats: %w", part, err),
	}
}
