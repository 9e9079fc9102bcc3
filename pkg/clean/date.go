package clean

import (
	"strings"
	"time"
)

// Layouts with a time component set hasTime; date-only layouts do not.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var dateOnlyLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01",
}

// EventDate parses the loosely formatted event dates the occurrence APIs
// publish: RFC3339 timestamps with or without zone, plain dates, year-month,
// and bare 4-digit years (mapped to January 1). Zoned times convert to UTC;
// naive times are assumed UTC.
//
// The returned date is midnight UTC of the event day. eventTime is non-nil
// only when the input carried a time component. ok is false when nothing
// matched; callers reject such records.
func EventDate(s string) (date time.Time, eventTime *time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil, false
	}

	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		t = t.UTC()
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return d, &t, true
	}

	for _, layout := range dateOnlyLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return d, nil, true
	}

	if y, isYear := bareYear(s); isYear {
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), nil, true
	}

	return time.Time{}, nil, false
}

func bareYear(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	y := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		y = y*10 + int(r-'0')
	}
	return y, true
}
