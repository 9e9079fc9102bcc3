package lifecycle

import (
	"context"

	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/ingest"
)

// Ingestor defines the interface for running one occurrence ingestion
// sweep against the store.
//
// A run partitions the configured strategy into geographic slices,
// pages each slice, and pushes every fetched record through the
// quality gate, the deduplication check, taxonomic enrichment and the
// normalizer. Each page is persisted in its own transaction, so an
// aborted run keeps all fully processed pages.
type Ingestor interface {
	// Ingest runs one sweep of src and returns its accounting. The
	// returned stats are valid even when err is non-nil: they cover
	// the pages committed before the failure.
	Ingest(
		ctx context.Context,
		cfg *config.Config,
		src ingest.Source,
	) (*ingest.Stats, error)

	// ClearSource removes every stored observation of one source and
	// returns the number of deleted rows. The sync commands run it
	// before a full re-import.
	ClearSource(ctx context.Context, source dwc.Source) (int64, error)
}
