// sample-occurrences pulls a small live page from a source API and runs
// it through the ingest pipeline stages without touching a database.
//
// The tool is a manual smoke check for API drift. The client tests run
// against recorded responses, so a silent change in the OBIS or GBIF
// payloads would not fail them; this tool shows which live records the
// quality gate rejects and what the cleaned observations look like.
//
// Name resolution goes through the real WoRMS service, so runs are
// rate-limited by that API. Keep the limit small.
//
// Usage:
//
//	go run . <source> [limit]
//
// Examples:
//
//	go run . obis
//	go run . gbif 10
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/kuroshiolab/kurodb/internal/iogbif"
	"github.com/kuroshiolab/kurodb/internal/ioobis"
	"github.com/kuroshiolab/kurodb/internal/ioworms"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/ingest"
	"github.com/kuroshiolab/kurodb/pkg/quality"
	"github.com/kuroshiolab/kurodb/pkg/taxon"
)

const (
	// Default number of records to fetch
	defaultLimit = 5

	// Cap to keep WoRMS traffic polite
	maxLimit = 50
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <source> [limit]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  source  occurrence API, obis or gbif\n")
		fmt.Fprintf(os.Stderr, "  limit   records to fetch, default %d, max %d\n\n",
			defaultLimit, maxLimit)
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s obis\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s gbif 10\n", os.Args[0])
		os.Exit(1)
	}

	limit := defaultLimit
	if len(os.Args) == 3 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n < 1 {
			fmt.Fprintf(os.Stderr, "limit must be a positive number, got %q\n",
				os.Args[2])
			os.Exit(1)
		}
		limit = n
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.New()

	var src ingest.Source
	switch os.Args[1] {
	case "obis":
		src = ioobis.New(&cfg.OBIS)
	case "gbif":
		src = iogbif.New(&cfg.GBIF)
	default:
		fmt.Fprintf(os.Stderr, "unknown source %q, want obis or gbif\n",
			os.Args[1])
		os.Exit(1)
	}

	ctx := context.Background()

	logger.Info("sampling live occurrences",
		"source", src.Name(),
		"limit", limit,
	)

	if err := sample(ctx, logger, cfg, src, limit); err != nil {
		logger.Error("sampling failed", "error", err)
		os.Exit(1)
	}
}

// sample fetches one page and pushes every record through the gate,
// the resolver and the normalizer, logging what falls out at each step.
func sample(
	ctx context.Context,
	logger *slog.Logger,
	cfg *config.Config,
	src ingest.Source,
	limit int,
) error {
	recs, total := src.Fetch(ctx, ingest.Filters{Limit: limit})
	if len(recs) == 0 {
		return fmt.Errorf("%s returned no records, check connectivity", src.Name())
	}
	logger.Info("page fetched",
		"records", len(recs),
		"total_matches", total,
	)

	cache := taxon.NewCache(ioworms.New(&cfg.WoRMS))

	var kept, rejected int
	for i := range recs {
		rec := &recs[i]

		ok, reason := quality.Check(rec)
		if !ok {
			rejected++
			logger.Warn("gate rejected record",
				"native_id", rec.NativeID,
				"reason", reason,
			)
			continue
		}

		enr, resolved := cache.Resolve(ctx, rec.ScientificName, rec.AphiaID)

		obs, reason := ingest.Normalize(rec, enr, resolved)
		if obs == nil {
			rejected++
			logger.Warn("normalizer rejected record",
				"native_id", rec.NativeID,
				"name", rec.ScientificName,
				"reason", reason,
			)
			continue
		}

		kept++
		logger.Info("observation ready",
			"species", obs.SpeciesName,
			"common_name", obs.CommonName.String,
			"date", obs.ObservationDate.Format("2006-01-02"),
			"depth_min", obs.DepthMin.Float64,
			"occurrence_id", obs.OccurrenceID.String,
			"resolved", resolved,
		)
	}

	logger.Info("sample complete",
		"source", src.Name(),
		"kept", kept,
		"rejected", rejected,
		"names_cached", cache.Size(),
	)

	return nil
}
