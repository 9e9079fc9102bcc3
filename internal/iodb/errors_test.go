package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/kuroshiolab/kurodb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionError(t *testing.T) {
	rootCause := errors.New("connection refused")

	err := ConnectionError("db.example.org", 5433, "kurodb", "app", rootCause)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.Contains(t, gnErr.Msg, "Possible causes")
	assert.Contains(t, gnErr.Msg, "How to fix")

	// Vars fill both the diagnostics commands and the settings block.
	assert.Contains(t, gnErr.Vars, "db.example.org")
	assert.Contains(t, gnErr.Vars, 5433)
	assert.Contains(t, gnErr.Vars, "kurodb")
	assert.Contains(t, gnErr.Vars, "app")

	require.NotNil(t, gnErr.Err)
	assert.ErrorIs(t, gnErr.Err, rootCause)
	assert.Contains(t, gnErr.Err.Error(), "db.example.org:5433/kurodb")
}

func TestNotConnectedError(t *testing.T) {
	err := NotConnectedError()

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

func TestTableErrors(t *testing.T) {
	rootCause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"TableExistsCheckError",
			TableExistsCheckError("observations", rootCause),
			errcode.DBTableExistsCheckError},
		{"TableCheckError", TableCheckError(rootCause),
			errcode.DBTableCheckError},
		{"QueryTablesError", QueryTablesError(rootCause),
			errcode.DBQueryTablesError},
		{"ScanTableError", ScanTableError(rootCause),
			errcode.DBScanTableError},
		{"DropTableError", DropTableError("observations", rootCause),
			errcode.DBDropTableError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.ErrorIs(t, gnErr.Err, rootCause)
		})
	}
}

func TestEmptyDatabaseError(t *testing.T) {
	err := EmptyDatabaseError("localhost", "kurodb")

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBEmptyDatabaseError, gnErr.Code)
	assert.Contains(t, gnErr.Msg, "kurodb create")
	assert.Contains(t, gnErr.Msg, "kurodb sync")
}
