package clean_test

import (
	"testing"
	"time"

	"github.com/kuroshiolab/kurodb/pkg/clean"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantDate string
		wantTime string // empty = no time component
		ok       bool
	}{
		{
			name:     "rfc3339 utc",
			input:    "2024-03-15T10:30:00Z",
			wantDate: "2024-03-15",
			wantTime: "2024-03-15T10:30:00Z",
			ok:       true,
		},
		{
			name:     "rfc3339 zoned converts to utc",
			input:    "2024-03-15T23:30:00+02:00",
			wantDate: "2024-03-15",
			wantTime: "2024-03-15T21:30:00Z",
			ok:       true,
		},
		{
			name:     "naive datetime assumed utc",
			input:    "2024-03-15T10:30:00",
			wantDate: "2024-03-15",
			wantTime: "2024-03-15T10:30:00Z",
			ok:       true,
		},
		{
			name:     "space separated datetime",
			input:    "2024-03-15 10:30:00",
			wantDate: "2024-03-15",
			wantTime: "2024-03-15T10:30:00Z",
			ok:       true,
		},
		{
			name:     "plain date",
			input:    "2024-03-15",
			wantDate: "2024-03-15",
			ok:       true,
		},
		{
			name:     "slash date",
			input:    "2019/07/02",
			wantDate: "2019-07-02",
			ok:       true,
		},
		{
			name:     "year and month",
			input:    "2021-06",
			wantDate: "2021-06-01",
			ok:       true,
		},
		{
			name:     "bare year",
			input:    "1998",
			wantDate: "1998-01-01",
			ok:       true,
		},
		{name: "empty", input: "", ok: false},
		{name: "blank", input: "   ", ok: false},
		{name: "garbage", input: "last summer", ok: false},
		{name: "date range", input: "2008-01-05/2008-01-08", ok: false},
		{name: "five digits", input: "20240", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, eventTime, ok := clean.EventDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}

			assert.Equal(t, tt.wantDate, date.Format("2006-01-02"))
			assert.Equal(t, time.UTC, date.Location())

			if tt.wantTime == "" {
				assert.Nil(t, eventTime)
				return
			}
			require.NotNil(t, eventTime)
			assert.Equal(
				t, tt.wantTime,
				eventTime.UTC().Format(time.RFC3339),
			)
		})
	}
}
