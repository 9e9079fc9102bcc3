package geo

import "fmt"

// Oceans loads the named ocean polygon table used by the "oceans"
// ingestion strategy. The implementation reads oceans.yaml from the
// config directory, falling back to the embedded default table.
type Oceans interface {
	Load() (*OceansConfig, error)
}

// OceansConfig is the parsed oceans.yaml file.
type OceansConfig struct {
	Oceans []Ocean `yaml:"oceans"`
}

// Ocean is one named basin with its rough bounding polygon. Polygons are
// coarse boxes, good enough to partition a sweep; upstream services do
// the precise spatial filtering.
type Ocean struct {
	Name    string `yaml:"name"`
	Polygon string `yaml:"polygon"`
}

// Validate checks the ocean table for structural problems: missing names,
// duplicate names, and malformed polygons.
func (c *OceansConfig) Validate() error {
	if len(c.Oceans) == 0 {
		return fmt.Errorf("no oceans specified in configuration")
	}

	seen := make(map[string]struct{})
	for i, o := range c.Oceans {
		if o.Name == "" {
			return fmt.Errorf("ocean %d: name is required", i+1)
		}
		if _, dup := seen[o.Name]; dup {
			return fmt.Errorf("ocean %d: duplicate name %q", i+1, o.Name)
		}
		seen[o.Name] = struct{}{}

		if err := ValidatePolygonWKT(o.Polygon); err != nil {
			return fmt.Errorf("ocean %q: %w", o.Name, err)
		}
	}
	return nil
}
