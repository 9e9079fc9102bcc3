// Package iodedup implements the Deduper interface: the post-hoc
// merge engine that collapses records sharing an occurrence_id into a
// single BOTH record.
// This is an impure I/O package; the merge decisions themselves come
// from the pure pkg/dedup planner.
package iodedup

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/kuroshiolab/kurodb/pkg/config"
	"github.com/kuroshiolab/kurodb/pkg/db"
	"github.com/kuroshiolab/kurodb/pkg/dedup"
	"github.com/kuroshiolab/kurodb/pkg/dwc"
	"github.com/kuroshiolab/kurodb/pkg/lifecycle"
)

// deduper implements the Deduper interface.
type deduper struct {
	operator db.Operator
}

// NewDeduper creates a new Deduper.
func NewDeduper(op db.Operator) lifecycle.Deduper {
	return &deduper{operator: op}
}

// Dedup finds every occurrence_id stored more than once and collapses
// each group in its own transaction. A failing group is counted and
// skipped, so one broken record cannot stall the cleanup. The returned
// report is valid even when the run failed.
func (d *deduper) Dedup(
	ctx context.Context,
	cfg *config.Config,
) (*dedup.Report, error) {
	report := &dedup.Report{DryRun: cfg.Dedup.DryRun}

	pool := d.operator.Pool()
	if pool == nil {
		return report, NotConnectedError()
	}

	prefer := preferredSource(cfg.Dedup.Prefer)
	startTime := time.Now()
	slog.Info("Starting merge run",
		"prefer", prefer,
		"dry_run", report.DryRun,
	)

	gn.Info("(1/2) Scanning the store for duplicate identifiers...")
	ids, err := d.findDuplicates(ctx)
	if err != nil {
		return report, err
	}
	report.Groups = len(ids)

	if len(ids) == 0 {
		gn.Message("<em>No duplicates found, the store is clean</em>")
		slog.Info("Merge run complete", "groups", 0)
		return report, nil
	}

	groups := "group"
	if len(ids) > 1 {
		groups += "s"
	}
	verb := "Merging"
	if report.DryRun {
		verb = "Inspecting"
	}
	gn.Info("(2/2) %s %d duplicate %s...", verb, len(ids), groups)

	bar := pb.Full.Start(len(ids))
	bar.Set("prefix", verb+": ")
	bar.Set(pb.CleanOnFinish, true)

	var runErr error
	for _, id := range ids {
		select {
		case <-ctx.Done():
			runErr = CancelledError(ctx.Err())
		default:
		}
		if runErr != nil {
			break
		}

		if err = d.mergeGroup(ctx, id, prefer, report); err != nil {
			report.Errors++
			slog.Error("Failed to merge duplicate group",
				"occurrence_id", id,
				"error", err,
			)
		}
		bar.Increment()
	}
	bar.Finish()

	elapsed := time.Since(startTime)
	slog.Info("Merge run complete",
		"groups", report.Groups,
		"merged", report.Merged,
		"cleaned", report.Cleaned,
		"skipped", report.Skipped,
		"deleted", report.Deleted,
		"errors", report.Errors,
		"dry_run", report.DryRun,
		"duration", gnfmt.TimeString(elapsed.Seconds()),
	)

	if report.DryRun {
		gn.Info(`Dry run complete
Found %s duplicate groups: would merge %s, clean %s and remove %s rows.
		Elapsed time: <em>%s</em>
`,
			humanize.Comma(int64(report.Groups)),
			humanize.Comma(int64(report.Merged)),
			humanize.Comma(int64(report.Cleaned)),
			humanize.Comma(int64(report.Deleted)),
			gnfmt.TimeString(elapsed.Seconds()),
		)
	} else {
		gn.Info(`Merge complete
Found %s duplicate groups: merged %s, cleaned %s, removed %s rows.
		Elapsed time: <em>%s</em>
`,
			humanize.Comma(int64(report.Groups)),
			humanize.Comma(int64(report.Merged)),
			humanize.Comma(int64(report.Cleaned)),
			humanize.Comma(int64(report.Deleted)),
			gnfmt.TimeString(elapsed.Seconds()),
		)
	}

	return report, runErr
}

// mergeGroup loads one duplicate group, plans its merge and applies
// the plan. In a dry run the plan is only counted.
func (d *deduper) mergeGroup(
	ctx context.Context,
	id string,
	prefer dwc.Source,
	report *dedup.Report,
) error {
	records, err := d.loadGroup(ctx, id)
	if err != nil {
		return err
	}

	plan := dedup.PlanMerge(records, prefer)
	if plan.Action == dedup.ActionSkip {
		report.Skipped++
		return nil
	}

	if !report.DryRun {
		if err = d.applyPlan(ctx, id, plan); err != nil {
			return err
		}
	}

	switch plan.Action {
	case dedup.ActionMerged:
		report.Merged++
	case dedup.ActionCleaned:
		report.Cleaned++
	}
	report.Deleted += len(plan.DeleteIDs)

	action := plan.Action
	if report.DryRun && action == dedup.ActionMerged {
		action = dedup.ActionWouldMerge
	}
	slog.Debug("Planned duplicate group",
		"occurrence_id", id,
		"action", action,
		"records", len(records),
		"deleted", len(plan.DeleteIDs),
	)
	return nil
}

// preferredSource maps the configured preference onto a source tag.
// Anything but GBIF falls back to the OBIS default.
func preferredSource(prefer string) dwc.Source {
	if strings.EqualFold(prefer, string(dwc.SourceGBIF)) {
		return dwc.SourceGBIF
	}
	return dwc.SourceOBIS
}
