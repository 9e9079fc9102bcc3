// Package ioworms resolves taxonomy against the WoRMS REST service.
// It implements taxon.Resolver; lookup failures are absorbed into a
// negative result, so a flaky taxonomy service never aborts an
// ingestion run.
package ioworms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/taxon"
)

// errNoContent marks the 204 WoRMS sends for queries it has no data
// for. It is a miss, not a failure.
var errNoContent = errors.New("no content")

type resolver struct {
	cfg  *config.WoRMSConfig
	http *http.Client
}

// New creates a taxon.Resolver backed by the WoRMS REST API.
func New(cfg *config.WoRMSConfig) taxon.Resolver {
	return &resolver{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

// Resolve looks up one taxon. With a zero aphiaID the raw name goes
// through AphiaRecordsByName first; the first match wins, as the
// records come back ordered by relevance.
func (r *resolver) Resolve(
	ctx context.Context, name string, aphiaID int,
) (taxon.Enrichment, bool) {
	var enr taxon.Enrichment

	if aphiaID == 0 {
		aphiaID = r.aphiaIDByName(ctx, name)
	}
	if aphiaID == 0 {
		return enr, false
	}

	enr.AphiaID = aphiaID
	enr.ScientificName = r.validName(ctx, aphiaID)
	enr.CommonName = r.commonName(ctx, aphiaID)

	ok := enr.ScientificName != "" || enr.CommonName != ""
	return enr, ok
}

func (r *resolver) aphiaIDByName(ctx context.Context, name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0
	}

	u := fmt.Sprintf("%s/AphiaRecordsByName/%s",
		r.cfg.BaseURL, url.PathEscape(name))

	var records []aphiaRecord
	if err := r.getJSON(ctx, u, &records); err != nil {
		logMiss("name search", name, err)
		return 0
	}
	if len(records) == 0 {
		return 0
	}
	return records[0].AphiaID
}

// validName returns the currently accepted name for a taxon. Falls
// back to the record's own name when the valid_name field is empty.
func (r *resolver) validName(ctx context.Context, aphiaID int) string {
	u := fmt.Sprintf("%s/AphiaRecordByAphiaID/%d", r.cfg.BaseURL, aphiaID)

	var rec aphiaRecord
	if err := r.getJSON(ctx, u, &rec); err != nil {
		logMiss("taxon record", aphiaID, err)
		return ""
	}
	if rec.ValidName != "" {
		return rec.ValidName
	}
	return rec.ScientificName
}

// commonName returns the preferred English vernacular name, or the
// first English one when none is marked preferred.
func (r *resolver) commonName(ctx context.Context, aphiaID int) string {
	u := fmt.Sprintf("%s/AphiaVernacularsByAphiaID/%d",
		r.cfg.BaseURL, aphiaID)

	var names []vernacular
	if err := r.getJSON(ctx, u, &names); err != nil {
		logMiss("vernaculars", aphiaID, err)
		return ""
	}

	var english string
	for _, v := range names {
		if v.Language != "English" || v.Vernacular == "" {
			continue
		}
		if v.IsPreferred {
			return v.Vernacular
		}
		if english == "" {
			english = v.Vernacular
		}
	}
	return english
}

// getJSON fetches url and decodes the JSON body into out.
func (r *resolver) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return errNoContent
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func logMiss(lookup string, query any, err error) {
	if errors.Is(err, errNoContent) {
		slog.Debug("WoRMS has no match",
			"lookup", lookup, "query", query)
		return
	}
	slog.Warn("WoRMS request failed",
		"lookup", lookup, "query", query, "error", err)
}
