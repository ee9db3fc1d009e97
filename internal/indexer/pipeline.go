package indexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"docs-search-index/internal/artifact"
	"docs-search-index/internal/catalog"
	"docs-search-index/internal/contextutil"
	"docs-search-index/internal/docsource"
	"docs-search-index/internal/metrics"
	"docs-search-index/internal/storage"
)

// Pipeline builds the search index from a catalog of documents.
type Pipeline struct {
	entries    []catalog.Entry
	source     docsource.Source
	outputPath string
	auditor    *OutlineAuditor
	mirror     storage.PageStore
	recorder   metrics.Recorder
	logger     *slog.Logger
}

// Option configures optional Pipeline collaborators.
type Option func(*Pipeline)

// WithMirror also writes every build into store.
func WithMirror(store storage.PageStore) Option {
	return func(p *Pipeline) { p.mirror = store }
}

// WithRecorder reports build metrics to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// NewPipeline creates a pipeline over entries, reading documents from source
// and writing the artifact to outputPath.
// The catalog is validated and copied; later changes to entries have no effect.
func NewPipeline(entries []catalog.Entry, source docsource.Source, outputPath string, opts ...Option) (*Pipeline, error) {
	if source == nil {
		return nil, errors.New("document source is required")
	}
	if outputPath == "" {
		return nil, errors.New("output path is required")
	}
	if err := catalog.Validate(entries); err != nil {
		return nil, err
	}

	p := &Pipeline{
		entries:    append([]catalog.Entry(nil), entries...),
		source:     source,
		outputPath: outputPath,
		auditor:    NewOutlineAuditor(),
		recorder:   metrics.NoopRecorder{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// getLogger extracts logger from context or returns the pipeline logger.
func (p *Pipeline) getLogger(ctx context.Context) *slog.Logger {
	if contextutil.HasLogger(ctx) {
		return contextutil.LoggerFromContext(ctx)
	}
	return p.logger
}

// Build processes every catalog entry in order and returns one result per entry.
// An entry whose source cannot be loaded is logged and skipped; it never fails the build.
// Only context cancellation makes Build return an error.
func (p *Pipeline) Build(ctx context.Context) (*Report, error) {
	logger := p.getLogger(ctx)
	logger.InfoContext(ctx, "starting search index build", "entries", len(p.entries))

	report := &Report{Results: make([]EntryResult, 0, len(p.entries))}
	for _, entry := range p.entries {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := p.indexEntry(ctx, entry)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, result)
		p.recorder.IncEntryResult(string(result.Status))
	}

	return report, nil
}

// indexEntry loads, extracts and strips one document.
// The error return is reserved for context cancellation.
func (p *Pipeline) indexEntry(ctx context.Context, entry catalog.Entry) (EntryResult, error) {
	logger := p.getLogger(ctx)

	raw, err := p.source.Load(ctx, entry.SourcePath)
	if err != nil {
		if ctx.Err() != nil {
			return EntryResult{}, ctx.Err()
		}
		logger.WarnContext(ctx, "could not read source, skipping entry",
			"slug", entry.Slug, "source", entry.SourcePath, "error", err)
		return EntryResult{Entry: entry, Status: StatusSkipped, Err: err}, nil
	}

	text := string(raw)
	headings := ExtractHeadings(text)
	content := StripMarkup(text)
	record := NewRecord(entry, content, headings)

	mismatches := p.auditor.Audit(raw)
	for _, m := range mismatches {
		logger.DebugContext(ctx, "outline heading disagrees with CommonMark",
			"slug", entry.Slug, "line", m.Line, "level", m.Level, "id", m.ID, "text", m.Text, "reason", m.Reason)
	}

	logger.DebugContext(ctx, "indexed page", "slug", entry.Slug, "headings", len(headings), "content_bytes", len(content))
	return EntryResult{
		Entry:             entry,
		Status:            StatusIndexed,
		Record:            &record,
		OutlineMismatches: mismatches,
	}, nil
}

// Result is the outcome of a successful Run.
type Result struct {
	Report     *Report
	OutputPath string
	Stats      BuildStats
}

// Run builds the index and writes the artifact, replacing any previous one in full.
// Failing to write the artifact or the configured mirror is fatal.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	logger := p.getLogger(ctx)
	begin := time.Now()

	report, err := p.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build search index: %w", err)
	}

	records := report.Records()
	data, err := artifact.Encode(records)
	if err != nil {
		return nil, err
	}
	if err := artifact.WriteFile(p.outputPath, data); err != nil {
		return nil, err
	}

	if p.mirror != nil {
		if err := p.mirror.ReplaceAll(ctx, toPageRecords(records)); err != nil {
			return nil, fmt.Errorf("failed to mirror search index: %w", err)
		}
	}

	stats := computeStats(report, data)
	p.recorder.SetRecords(stats.Pages)
	p.recorder.SetArtifactBytes(stats.ArtifactBytes)
	p.recorder.ObserveBuildDuration(time.Since(begin))

	logger.InfoContext(ctx, "search index built",
		"pages", stats.Pages,
		"skipped", stats.Skipped,
		"headings", stats.Headings,
		"outline_mismatches", stats.OutlineMismatches,
		"bytes", stats.ArtifactBytes,
		"checksum", stats.Checksum,
		"path", p.outputPath,
	)

	return &Result{Report: report, OutputPath: p.outputPath, Stats: stats}, nil
}

// toPageRecords converts index records into mirror rows, keeping catalog order.
func toPageRecords(records []Record) []storage.PageRecord {
	pages := make([]storage.PageRecord, len(records))
	for i, r := range records {
		headings := make([]storage.HeadingRecord, len(r.HeadingsWithIDs))
		for j, h := range r.HeadingsWithIDs {
			headings[j] = storage.HeadingRecord{
				Position: j,
				Level:    h.Level,
				Text:     h.Text,
				AnchorID: h.ID,
			}
		}
		pages[i] = storage.PageRecord{
			Slug:       r.Slug,
			Position:   i,
			Title:      r.Title,
			Content:    r.Content,
			SearchText: r.SearchText,
			Headings:   headings,
		}
	}
	return pages
}
