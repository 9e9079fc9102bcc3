package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidatePolygonWKT checks a well-known-text polygon syntactically before
// it is sent upstream as a filter: POLYGON keyword, balanced rings, closed
// rings of at least four positions, and coordinates within WGS84 ranges.
// It is not a full geometry validator; self-intersection checks belong to
// the services consuming the filter.
func ValidatePolygonWKT(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("empty geometry")
	}

	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "POLYGON") {
		return fmt.Errorf("geometry must be a POLYGON, got %q", wktKeyword(s))
	}

	body := strings.TrimSpace(s[len("POLYGON"):])
	if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return fmt.Errorf("polygon body must be parenthesized")
	}

	rings, err := splitRings(body[1 : len(body)-1])
	if err != nil {
		return err
	}
	if len(rings) == 0 {
		return fmt.Errorf("polygon has no rings")
	}

	for i, ring := range rings {
		if err := validateRing(ring); err != nil {
			return fmt.Errorf("ring %d: %w", i+1, err)
		}
	}
	return nil
}

func wktKeyword(s string) string {
	for i, r := range s {
		if r == '(' || r == ' ' {
			return s[:i]
		}
	}
	return s
}

// splitRings separates "(...),(...)" into ring bodies.
func splitRings(s string) ([]string, error) {
	var rings []string
	depth := 0
	start := -1

	for i, r := range s {
		switch r {
		case '(':
			depth++
			if depth == 1 {
				start = i + 1
			}
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses")
			}
			if depth == 0 {
				rings = append(rings, s[start:i])
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	return rings, nil
}

func validateRing(ring string) error {
	positions := strings.Split(ring, ",")
	if len(positions) < 4 {
		return fmt.Errorf("a ring needs at least 4 positions, got %d", len(positions))
	}

	coords := make([][2]float64, 0, len(positions))
	for _, pos := range positions {
		fields := strings.Fields(strings.TrimSpace(pos))
		if len(fields) != 2 {
			return fmt.Errorf("position %q must be 'lon lat'", strings.TrimSpace(pos))
		}
		lon, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fmt.Errorf("bad longitude %q", fields[0])
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("bad latitude %q", fields[1])
		}
		if lon < -180 || lon > 180 {
			return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
		}
		if lat < -90 || lat > 90 {
			return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
		}
		coords = append(coords, [2]float64{lon, lat})
	}

	first, last := coords[0], coords[len(coords)-1]
	if first != last {
		return fmt.Errorf("ring is not closed")
	}
	return nil
}
