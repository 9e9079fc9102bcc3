package ingest

import (
	"fmt"

	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/geo"
)

// Partition is one geographic slice of an ingestion sweep. A run walks
// its partitions in order, paging each until exhaustion or until the
// record budget runs out.
type Partition struct {
	// Name labels the slice in logs and progress output.
	Name string

	// Geometry is the WKT polygon filter of the slice, empty for
	// network sweeps.
	Geometry string

	// NetworkKey is the GBIF network filter, set only for network
	// sweeps. OBIS ignores it.
	NetworkKey string
}

// Partitions expands the configured strategy into sweep slices. The
// oceans strategy needs the basin table; the other strategies ignore it.
func Partitions(
	cfg *config.Config,
	oceans *geo.OceansConfig,
) ([]Partition, error) {
	switch cfg.Ingest.Strategy {
	case StrategyNetwork:
		return []Partition{
			{Name: "network", NetworkKey: cfg.GBIF.NetworkKey},
		}, nil

	case StrategyGeometry:
		if err := geo.ValidatePolygonWKT(cfg.Ingest.Geometry); err != nil {
			return nil, fmt.Errorf("geometry strategy: %w", err)
		}
		return []Partition{
			{Name: "geometry", Geometry: cfg.Ingest.Geometry},
		}, nil

	case StrategyOceans:
		if oceans == nil || len(oceans.Oceans) == 0 {
			return nil, fmt.Errorf("oceans strategy: no basins configured")
		}
		res := make([]Partition, len(oceans.Oceans))
		for i, o := range oceans.Oceans {
			res[i] = Partition{Name: o.Name, Geometry: o.Polygon}
		}
		return res, nil

	default:
		return nil, fmt.Errorf(
			"unknown ingest strategy: %q", cfg.Ingest.Strategy,
		)
	}
}
