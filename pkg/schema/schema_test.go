package schema_test

import (
	"strings"
	"testing"

	"github.com/kuroshiolab/kurodb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestObservationTableName tests TableName method
func TestObservationTableName(t *testing.T) {
	o := schema.Observation{}
	assert.Equal(t, "observations", o.TableName())
}

// TestObservationIndexDDL tests index generation for Observation model
func TestObservationIndexDDL(t *testing.T) {
	o := schema.Observation{}
	indexes := o.IndexDDL()

	require.NotEmpty(t, indexes, "Observation should have secondary indexes")

	// Convert to single string for easier searching
	allIndexes := strings.Join(indexes, "\n")

	// Should index the dedup identity and lookup columns
	assert.Contains(t, allIndexes, "occurrence_id")
	assert.Contains(t, allIndexes, "species_name")
	assert.Contains(t, allIndexes, "name_key")
	assert.Contains(t, allIndexes, "source")

	// Date index is descending for "latest first" queries
	assert.Contains(t, allIndexes, "observation_date DESC")

	// Location needs a GIST index for geography queries
	assert.Contains(t, allIndexes, "USING GIST (location)")

	// Duplicates across sources must be able to land; the merge
	// engine repairs them later
	assert.NotContains(t, allIndexes, "UNIQUE")
}

// TestIngestRunTableName tests TableName method
func TestIngestRunTableName(t *testing.T) {
	r := schema.IngestRun{}
	assert.Equal(t, "ingest_runs", r.TableName())
}

// TestIngestRunIndexDDL tests index generation for IngestRun model
func TestIngestRunIndexDDL(t *testing.T) {
	r := schema.IngestRun{}
	indexes := r.IndexDDL()

	require.NotEmpty(t, indexes)
	assert.Contains(t, strings.Join(indexes, "\n"), "started_at")
}

// TestAllModelsImplementModel tests that all migrated models
// implement the Model interface
func TestAllModelsImplementModel(t *testing.T) {
	models := schema.AllModels()
	require.Len(t, models, 2)

	for _, m := range models {
		model, ok := m.(schema.Model)
		require.True(t, ok, "every migrated struct should implement Model")

		// Each model should return a table name
		tableName := model.TableName()
		assert.NotEmpty(t, tableName, "TableName should return non-empty string")

		// IndexDDL should return a slice (may be empty for some models)
		indexes := model.IndexDDL()
		assert.NotNil(t, indexes, "IndexDDL should return non-nil slice")

		// Index DDL must be idempotent for re-runs of create
		for _, idx := range indexes {
			assert.Contains(t, idx, "IF NOT EXISTS")
			assert.Contains(t, idx, model.TableName())
		}
	}
}
