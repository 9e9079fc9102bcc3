// Package iogeo loads the named ocean polygon table used by the
// "oceans" ingestion strategy.
package iogeo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kuroshiolab/kurodb/internal/iofs"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/geo"
	"gopkg.in/yaml.v3"
)

type iogeo struct {
	cfg *config.Config
}

func New(cfg *config.Config) geo.Oceans {
	res := iogeo{cfg: cfg}
	return &res
}

func (g *iogeo) Load() (*geo.OceansConfig, error) {
	oceansPath := config.OceansFilePath(g.cfg.HomeDir)
	oceansConfig, err := loadOceansConfig(oceansPath)
	if err != nil {
		return nil, OceansConfigError(oceansPath, err)
	}
	return oceansConfig, nil
}

// loadOceansConfig reads and validates an ocean table. A missing file
// falls back to the embedded table, so the oceans strategy works even
// before the config directory is initialized.
func loadOceansConfig(path string) (*geo.OceansConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data = []byte(iofs.OceansYAML)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read oceans config file: %w", err)
	}

	var cfg geo.OceansConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse oceans config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
