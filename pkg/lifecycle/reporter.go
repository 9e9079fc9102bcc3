package lifecycle

import (
	"context"

	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/stats"
)

// Reporter defines the interface for read-only store statistics.
//
// A report never writes. Its aggregate queries run concurrently, so
// the result is a profile of the store, not a transactionally
// consistent snapshot.
type Reporter interface {
	// Report collects and prints the store summary.
	Report(ctx context.Context, cfg *config.Config) (*stats.Summary, error)
}
