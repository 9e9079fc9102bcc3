// Package geo provides the geography types used by the observation store:
// a WGS84 point that maps to a PostGIS geography column, and the named
// ocean polygon table used for partitioned ingestion sweeps.
package geo

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

const earthRadiusKm = 6371.0088

// Point is a WGS84 longitude/latitude pair. It serializes to EWKT for the
// geography(Point,4326) column and scans back from EWKT, WKT, or the hex
// EWKB form PostGIS returns by default.
type Point struct {
	Lon float64
	Lat float64
}

// NewPoint builds a Point, rejecting out-of-range coordinates.
func NewPoint(lon, lat float64) (Point, error) {
	if lon < -180 || lon > 180 {
		return Point{}, fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	if lat < -90 || lat > 90 {
		return Point{}, fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	return Point{Lon: lon, Lat: lat}, nil
}

// EWKT renders the point in extended well-known text with the WGS84 SRID.
func (p Point) EWKT() string {
	return fmt.Sprintf("SRID=4326;POINT(%v %v)", p.Lon, p.Lat)
}

// GormDataType tells GORM which column type to create for Point fields.
func (p Point) GormDataType() string {
	return "geography(Point,4326)"
}

// Value implements driver.Valuer. PostGIS accepts EWKT as geography input.
func (p Point) Value() (driver.Value, error) {
	return p.EWKT(), nil
}

// Scan implements sql.Scanner.
func (p *Point) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return fmt.Errorf("cannot scan NULL into geo.Point")
	case string:
		return p.scanText(v)
	case []byte:
		return p.scanText(string(v))
	}
	return fmt.Errorf("cannot scan %T into geo.Point", src)
}

func (p *Point) scanText(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("cannot scan empty string into geo.Point")
	}

	// EWKT carries an SRID prefix, WKT does not.
	if i := strings.IndexByte(s, ';'); i >= 0 &&
		strings.HasPrefix(strings.ToUpper(s), "SRID=") {
		s = s[i+1:]
	}

	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "POINT") {
		lon, lat, err := parsePointWKT(s)
		if err != nil {
			return err
		}
		p.Lon, p.Lat = lon, lat
		return nil
	}

	return p.scanEWKB(s)
}

func parsePointWKT(s string) (lon, lat float64, err error) {
	open := strings.IndexByte(s, '(')
	closing := strings.LastIndexByte(s, ')')
	if open < 0 || closing < open {
		return 0, 0, fmt.Errorf("malformed point %q", s)
	}
	fields := strings.Fields(s[open+1 : closing])
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("malformed point %q", s)
	}
	if _, err = fmt.Sscanf(fields[0], "%f", &lon); err != nil {
		return 0, 0, fmt.Errorf("malformed point %q", s)
	}
	if _, err = fmt.Sscanf(fields[1], "%f", &lat); err != nil {
		return 0, 0, fmt.Errorf("malformed point %q", s)
	}
	return lon, lat, nil
}

// scanEWKB decodes the hex-encoded extended well-known binary PostGIS
// emits for geography columns.
func (p *Point) scanEWKB(s string) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("cannot scan %q into geo.Point", s)
	}
	if len(raw) < 21 {
		return fmt.Errorf("EWKB too short for a point")
	}

	var order binary.ByteOrder = binary.BigEndian
	if raw[0] == 1 {
		order = binary.LittleEndian
	}

	geomType := order.Uint32(raw[1:5])
	offset := 5
	if geomType&0x20000000 != 0 { // SRID flag
		offset += 4
	}
	if geomType&0x0000FFFF != 1 { // 1 = point
		return fmt.Errorf("EWKB geometry type %d is not a point", geomType&0xFFFF)
	}
	if len(raw) < offset+16 {
		return fmt.Errorf("EWKB too short for a point")
	}

	p.Lon = math.Float64frombits(order.Uint64(raw[offset : offset+8]))
	p.Lat = math.Float64frombits(order.Uint64(raw[offset+8 : offset+16]))
	return nil
}

// DistanceKm returns the great-circle distance to another point using the
// haversine formula on a spherical Earth.
func (p Point) DistanceKm(other Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (other.Lon - p.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
