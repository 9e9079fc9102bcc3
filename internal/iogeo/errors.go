package iogeo

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kuroshiolab/kurodb/pkg/errcode"
)

// OceansConfigError creates an error for when oceans.yaml
// cannot be loaded.
func OceansConfigError(path string, err error) error {
	msg := `Cannot load the ocean table

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - Invalid YAML format
  - A basin without a name, or a duplicate name
  - A malformed WKT polygon

<em>How to fix:</em>
  1. Validate YAML syntax: <em>less %s</em>
  2. Check every polygon closes on its first position
  3. Delete the file to regenerate the shipped table`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.GeoOceansConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load oceans config: %w", err),
	}
}
