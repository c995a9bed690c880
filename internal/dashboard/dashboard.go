// Package dashboard runs one dashboard build end to end: load, normalize,
// derive, summarize, render and write.
package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"training-expiry-dashboard/internal/config"
	"training-expiry-dashboard/internal/loader"
	"training-expiry-dashboard/internal/logging"
	"training-expiry-dashboard/internal/report"
	"training-expiry-dashboard/internal/training"
)

// Result describes a finished build.
type Result struct {
	RunID string
	// Source names the input with any credentials redacted.
	Source     string
	OutputPath string
	Records    []training.Record
	Document   report.Document
}

// Run builds the dashboard described by opts. opts must already be
// validated. Nothing is written unless every stage succeeds.
func Run(ctx context.Context, opts *config.Options, log *logging.Logger) (Result, error) {
	runID := uuid.New().String()
	log = log.With("run_id", runID)

	table, err := loader.Load(ctx, loader.Source{
		Path:  opts.InputPath,
		Sheet: opts.Sheet,
		Table: opts.Table,
	})
	if err != nil {
		return Result{}, errors.Wrap(err, "load input")
	}
	log.Debug("input loaded", "source", table.Source, "columns", len(table.Headers), "rows", len(table.Rows))

	records, issues, err := training.Normalize(table, opts.DateOrder)
	if err != nil {
		return Result{}, errors.Wrapf(err, "%s", table.Source)
	}
	for _, issue := range issues {
		log.Debug("cell coerced to absent", "row", issue.Row, "column", issue.Column, "value", issue.Value)
	}
	if len(issues) > 0 {
		log.Warn("cells could not be read and were left empty", "count", len(issues), "source", table.Source)
	}

	records = training.Derive(records, opts.AsOf)
	summary := training.Summarize(records)
	log.Info("records classified",
		"as_of", opts.AsOf.Format("2006-01-02"),
		"total", summary.Total,
		"overdue", summary.Overdue,
		"due_soon", summary.DueSoon,
		"on_track", summary.OnTrack,
		"undefined", summary.Undefined,
	)

	doc := report.NewDocument(records, summary, opts.AsOf, runID)
	html, err := report.RenderHTML(doc)
	if err != nil {
		return Result{}, err
	}
	if err := report.WriteFile(opts.OutputPath, html); err != nil {
		return Result{}, errors.Wrap(err, "write dashboard")
	}
	log.Info("dashboard written", "path", opts.OutputPath, "bytes", len(html))

	return Result{
		RunID:      runID,
		Source:     table.Source,
		OutputPath: opts.OutputPath,
		Records:    records,
		Document:   doc,
	}, nil
}
