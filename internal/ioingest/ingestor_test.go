// Integration tests need a PostGIS-enabled PostgreSQL instance, see
// internal/iodb/operator_test.go for the setup. They are skipped in
// short mode.
package ioingest

import (
	"context"
	"testing"

	"github.com/kuroshiolab/kurodb/internal/iodb"
	"github.com/kuroshiolab/kurodb/internal/ioschema"
	"github.com/kuroshiolab/kurodb/internal/iotesting"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/db"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves a fixed page sequence and counts fetches.
type fakeSource struct {
	name  dwc.Source
	pages [][]dwc.Record
	total int
	calls int
}

func (f *fakeSource) Name() dwc.Source { return f.name }

func (f *fakeSource) Fetch(
	_ context.Context, _ ingest.Filters,
) ([]dwc.Record, int) {
	if f.calls >= len(f.pages) {
		return nil, f.total
	}
	page := f.pages[f.calls]
	f.calls++
	return page, f.total
}

func TestIngest_NotConnected(t *testing.T) {
	ing := NewIngestor(iodb.NewPgxOperator(), &fakeResolver{}, nil)

	stats, err := ing.Ingest(
		context.Background(), config.New(),
		&fakeSource{name: dwc.SourceOBIS},
	)
	require.Error(t, err)
	assert.NotNil(t, stats)

	_, err = ing.ClearSource(context.Background(), dwc.SourceOBIS)
	assert.Error(t, err)
}

func TestIngest_BadStrategy(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses the database in short mode")
	}
	ctx := context.Background()
	cfg := iotesting.GetTestConfig()
	op := connectAndReset(t, ctx, cfg)

	cfg.Ingest.Strategy = "spiral"
	ing := NewIngestor(op, &fakeResolver{}, nil)

	_, err := ing.Ingest(ctx, cfg, &fakeSource{name: dwc.SourceOBIS})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spiral")
}

func TestIngestor_SweepAndClear(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses the database in short mode")
	}
	ctx := context.Background()
	cfg := iotesting.GetTestConfig()
	op := connectAndReset(t, ctx, cfg)

	recA := obisRecord("int-a")
	recA.OccurrenceID = "urn:catalog:INT:A"
	recB := obisRecord("int-b")

	src := &fakeSource{
		name:  dwc.SourceOBIS,
		pages: [][]dwc.Record{{recA, recB}},
		total: 2,
	}

	ing := NewIngestor(op, &fakeResolver{}, nil)
	stats, err := ing.Ingest(ctx, cfg, src)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, 2, stats.Saved)
	assert.Zero(t, stats.Duplicates)
	assert.Zero(t, stats.Rejected)

	var n int
	require.NoError(t, op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM observations").Scan(&n))
	assert.Equal(t, 2, n)

	// The record without an occurrenceID landed under its
	// synthesized identity.
	var occID string
	require.NoError(t, op.Pool().QueryRow(ctx,
		`SELECT occurrence_id FROM observations
		  WHERE occurrence_id LIKE 'OBIS:%'`).Scan(&occID))
	assert.Equal(t, "OBIS:int-b", occID)

	// The run record is closed with the totals.
	var saved int
	var finished bool
	require.NoError(t, op.Pool().QueryRow(ctx,
		`SELECT saved, finished_at IS NOT NULL
		   FROM ingest_runs`).Scan(&saved, &finished))
	assert.Equal(t, 2, saved)
	assert.True(t, finished)

	// A second identical sweep finds only duplicates.
	src = &fakeSource{
		name:  dwc.SourceOBIS,
		pages: [][]dwc.Record{{recA, recB}},
		total: 2,
	}
	stats, err = ing.Ingest(ctx, cfg, src)
	require.NoError(t, err)
	assert.Zero(t, stats.Saved)
	assert.Equal(t, 2, stats.Duplicates)

	deleted, err := ing.ClearSource(ctx, dwc.SourceOBIS)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)
	require.NoError(t, op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM observations").Scan(&n))
	assert.Zero(t, n)
}

func TestIngestor_RecordBudget(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses the database in short mode")
	}
	ctx := context.Background()
	cfg := iotesting.GetTestConfig()
	op := connectAndReset(t, ctx, cfg)

	// Full pages, so only the budget can stop the sweep.
	config.OptOBISPageSize(2)(cfg)
	cfg.Ingest.MaxRecords = 1

	src := &fakeSource{
		name: dwc.SourceOBIS,
		pages: [][]dwc.Record{
			{obisRecord("b-1"), obisRecord("b-2")},
			{obisRecord("b-3"), obisRecord("b-4")},
		},
		total: 600,
	}

	ing := NewIngestor(op, &fakeResolver{}, nil)
	stats, err := ing.Ingest(ctx, cfg, src)
	require.NoError(t, err)

	// The budget is checked after each page, so the first page lands
	// whole and the second is never fetched.
	assert.Equal(t, 2, stats.Saved)
	assert.Equal(t, 1, src.calls)
}

// connectAndReset connects to the test database and rebuilds the
// schema from scratch.
func connectAndReset(
	t *testing.T, ctx context.Context, cfg *config.Config,
) db.Operator {
	t.Helper()

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	t.Cleanup(func() { _ = op.Close() })

	require.NoError(t, op.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(op).Create(ctx, cfg))
	return op
}
