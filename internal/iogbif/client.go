// Package iogbif streams occurrence pages from the GBIF search API.
// It implements ingest.Source; request failures surface as an empty
// page, never as an error, so a flaky upstream cannot abort a sweep.
package iogbif

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/ingest"
	"golang.org/x/time/rate"
)

// maxPageLimit is the hard page cap of the occurrence search API.
const maxPageLimit = 300

type client struct {
	cfg     *config.GBIFConfig
	http    *http.Client
	limiter *rate.Limiter
}

// New creates an ingest.Source reading from the GBIF occurrence API.
func New(cfg *config.GBIFConfig) ingest.Source {
	delay := time.Duration(cfg.CourtesyDelayMs) * time.Millisecond
	return &client{
		cfg:  cfg,
		http: &http.Client{Timeout: 60 * time.Second},
		// rate.Every treats a zero delay as "no limit"
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

func (c *client) Name() dwc.Source {
	return dwc.SourceGBIF
}

// Fetch returns one page of occurrences plus the total match count the
// API reports for the filter set.
func (c *client) Fetch(
	ctx context.Context, f ingest.Filters,
) ([]dwc.Record, int) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0
	}

	u := c.searchURL(f)
	slog.Debug("GBIF API call", "url", u)

	var page searchResponse
	if err := c.getJSON(ctx, u, &page); err != nil {
		slog.Error("GBIF API error",
			"error", err, "offset", f.Offset)
		return nil, 0
	}

	records := make([]dwc.Record, 0, len(page.Results))
	for i := range page.Results {
		records = append(records, page.Results[i].record())
	}
	return records, page.Count
}

// searchURL builds the occurrence search query. Every request insists
// on coordinates without geospatial issues; the filters add the
// strategy-specific constraints on top.
func (c *client) searchURL(f ingest.Filters) string {
	q := url.Values{}
	q.Set("hasCoordinate", "true")
	q.Set("hasGeospatialIssue", "false")
	q.Set("limit", strconv.Itoa(c.pageLimit(f.Limit)))
	q.Set("offset", strconv.Itoa(f.Offset))

	if f.Year != "" {
		q.Set("year", f.Year)
	}
	if f.Geometry != "" {
		q.Set("geometry", f.Geometry)
	}
	if f.TaxonKey != 0 {
		q.Set("taxonKey", strconv.Itoa(f.TaxonKey))
	}
	if f.NetworkKey != "" {
		q.Set("networkKey", f.NetworkKey)
	}

	return fmt.Sprintf("%s/occurrence/search?%s",
		c.cfg.BaseURL, q.Encode())
}

// pageLimit resolves the page size, capped at the API maximum.
func (c *client) pageLimit(limit int) int {
	if limit <= 0 {
		limit = c.cfg.PageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return limit
}

func (c *client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
