// Package clean normalizes raw occurrence values into canonical form.
//
// All functions are pure. The ingestion pipeline calls them after the
// quality gate, so inputs may be sloppy (mixed casing, machine tokens,
// string-typed numbers) but are never structurally invalid.
package clean

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gnames/gnlib"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	camelBoundary   = regexp.MustCompile(`([a-z])([A-Z])`)
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	multiSpace      = regexp.MustCompile(`\s+`)

	// Darwin Core publishes some basisOfRecord values as single glued
	// words; they need an explicit split before title casing.
	compoundTokens = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(human)(observation)`),
		regexp.MustCompile(`(?i)(machine)(observation)`),
		regexp.MustCompile(`(?i)(material)(sample)`),
	}
)

// Label converts a machine token such as "HUMAN_OBSERVATION",
// "machineObservation" or "preserved-specimen" into a human-readable
// "Capital Capital" label. Empty input yields an empty string.
func Label(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	s = acronymBoundary.ReplaceAllString(s, "$1 $2")
	for _, re := range compoundTokens {
		s = re.ReplaceAllString(s, "$1 $2")
	}
	s = strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
	if s == "" {
		return ""
	}

	caser := cases.Title(language.English)
	return caser.String(strings.ToLower(s))
}

// Float coerces a decoded JSON value to *float64. The upstream APIs
// occasionally publish numeric fields as strings, so both forms are
// accepted. Anything unparseable comes back nil.
func Float(v any) *float64 {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		return &val
	case float32:
		f := float64(val)
		return &f
	case int:
		f := float64(val)
		return &f
	case int64:
		f := float64(val)
		return &f
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		return &f
	}
	return nil
}

// Sex maps free-text sex values to the male/female/unknown vocabulary.
func Sex(s string) dwc.Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return dwc.SexMale
	case "female", "f":
		return dwc.SexFemale
	}
	return dwc.SexUnknown
}

// Truncate caps s at n bytes without splitting a multi-byte rune.
// Invalid UTF-8 is repaired first, so the result is always valid.
func Truncate(s string, n int) string {
	s = gnlib.FixUtf8(s)
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
