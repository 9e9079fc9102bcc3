package ioingest

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestErrors(t *testing.T) {
	rootCause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"SnapshotError", SnapshotError(rootCause),
			errcode.IngestSnapshotError},
		{"PageBeginError", PageBeginError(rootCause),
			errcode.IngestPageBeginError},
		{"PageCommitError", PageCommitError(rootCause),
			errcode.IngestPageCommitError},
		{"SaveError", SaveError("OBIS:42", rootCause),
			errcode.IngestSaveError},
		{"ClearSourceError", ClearSourceError(dwc.SourceGBIF, rootCause),
			errcode.IngestClearSourceError},
		{"RunRecordError", RunRecordError("create", rootCause),
			errcode.IngestRunRecordError},
		{"BadStrategyError", BadStrategyError("spiral", rootCause),
			errcode.IngestBadStrategyError},
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

func TestSnapshotError_PointsAtCreate(t *testing.T) {
	err := SnapshotError(errors.New("relation does not exist"))

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Contains(t, gnErr.Msg, "kurodb create")
	assert.Contains(t, gnErr.Msg, "How to fix")
}

func TestBadStrategyError_ListsStrategies(t *testing.T) {
	err := BadStrategyError("spiral", errors.New("unknown strategy"))

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Contains(t, gnErr.Msg, "network")
	assert.Contains(t, gnErr.Msg, "geometry")
	assert.Contains(t, gnErr.Msg, "oceans")
	assert.Contains(t, gnErr.Vars, "spiral")
}

func TestSaveError_CarriesIdentifier(t *testing.T) {
	err := SaveError("urn:catalog:X:1", errors.New("value too long"))

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Contains(t, gnErr.Vars, "urn:catalog:X:1")
	assert.Contains(t, gnErr.Err.Error(), "urn:catalog:X:1")
}

func TestNotConnectedErrorIngest(t *testing.T) {
	err := NotConnectedError()

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

func TestCancelledError(t *testing.T) {
	err := CancelledError(errors.New("context canceled"))

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.UnknownError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "cancelled")
}
