// Package ioobis streams occurrence pages from the OBIS v3 API.
// It implements ingest.Source; request failures surface as an empty
// page, never as an error, so a flaky upstream cannot abort a sweep.
package ioobis

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

type client struct {
	cfg     *config.OBISConfig
	http    *http.Client
	limiter *rate.Limiter
}

// New creates an ingest.Source reading from the OBIS occurrence API.
func New(cfg *config.OBISConfig) ingest.Source {
	delay := time.Duration(cfg.CourtesyDelayMs) * time.Millisecond
	return &client{
		cfg:  cfg,
		http: &http.Client{Timeout: 60 * time.Second},
		// rate.Every treats a zero delay as "no limit"
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

func (c *client) Name() dwc.Source {
	return dwc.SourceOBIS
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
	slog.Debug("OBIS API call", "url", u)

	var page searchResponse
	if err := c.getJSON(ctx, u, &page); err != nil {
		slog.Error("OBIS API error",
			"error", err, "offset", f.Offset)
		return nil, 0
	}

	records := make([]dwc.Record, 0, len(page.Results))
	for i := range page.Results {
		records = append(records, page.Results[i].record())
	}
	return records, page.Total
}

func (c *client) searchURL(f ingest.Filters) string {
	q := url.Values{}
	q.Set("size", strconv.Itoa(c.pageSize(f.Limit)))
	q.Set("offset", strconv.Itoa(f.Offset))

	if f.Geometry != "" {
		q.Set("geometry", f.Geometry)
	}
	if f.TaxonID != 0 {
		q.Set("taxonid", strconv.Itoa(f.TaxonID))
	}
	if f.StartDate != "" {
		q.Set("startdate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("enddate", f.EndDate)
	}

	return fmt.Sprintf("%s/occurrence?%s", c.cfg.BaseURL, q.Encode())
}

func (c *client) pageSize(limit int) int {
	if limit <= 0 {
		return c.cfg.PageSize
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
