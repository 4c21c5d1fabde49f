// Package app wires the pipeline stages into one run: read the contract
// CSV, normalize and group contacts, sort, and write the summary CSV.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/opptrack/pocsift/internal/adapters/csvio"
	"github.com/opptrack/pocsift/internal/config"
	"github.com/opptrack/pocsift/internal/domain/aggregate"
	"github.com/opptrack/pocsift/internal/domain/normalize"
	"github.com/opptrack/pocsift/internal/domain/rank"
	"github.com/opptrack/pocsift/pkg/logger"
	"github.com/opptrack/pocsift/pkg/metrics"
)

// Summary reports what one pipeline run did.
type Summary struct {
	RunID         string
	RowsExtracted int // contact rows pulled from input
	RowsAccepted  int // rows whose name passed normalization
	RowsRejected  int // rows dropped by normalization
	UniquePOCs    int
	Duration      time.Duration
}

// Pipeline runs the full read -> normalize -> aggregate -> sort -> write
// sequence. It is single-pass and single-goroutine: the aggregation map is
// owned by Run for the whole invocation, so no locking is needed anywhere.
type Pipeline struct {
	input  string
	output string

	sortKey       rank.Key
	fieldPolicy   aggregate.FieldPolicy
	dedupeTitles  bool
	maxNameTokens int
	listDelim     string

	reader  *csvio.Reader
	logger  logger.Logger
	metrics *metrics.Manager
}

// New constructs a Pipeline with default configuration.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		sortKey:       rank.ByName,
		fieldPolicy:   aggregate.FirstWins,
		dedupeTitles:  true,
		maxNameTokens: 0, // 0 keeps the normalizer default
		listDelim:     csvio.ListDelimiter,
		reader:        csvio.NewReader(),
		metrics:       metrics.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = logger.Get()
	}
	return p
}

// FromConfig builds a Pipeline from loaded configuration. Invalid sort keys
// and field policies fail here, before any input is read.
func FromConfig(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	key, err := rank.Parse(cfg.SortBy)
	if err != nil {
		return nil, fmt.Errorf("sort_by %q: %w", cfg.SortBy, err)
	}
	policy, err := aggregate.ParseFieldPolicy(cfg.FieldPolicy)
	if err != nil {
		return nil, fmt.Errorf("field_policy %q: %w", cfg.FieldPolicy, err)
	}

	base := []Option{
		WithInput(cfg.Input),
		WithOutput(cfg.Output),
		WithSortKey(key),
		WithFieldPolicy(policy),
		WithTitleDedupe(cfg.DedupeTitles),
		WithMaxNameTokens(cfg.MaxNameTokens),
		WithListDelimiter(cfg.ListDelimiter),
	}
	if !cfg.MetricsEnabled {
		base = append(base, WithMetricsManager(metrics.NewManager(metrics.WithEnabled(false))))
	}
	return New(append(base, opts...)...), nil
}

// Run opens the configured input and output files and processes them.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	in, err := os.Open(p.input)
	if err != nil {
		p.metrics.RecordRun("error")
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(p.output)
	if err != nil {
		p.metrics.RecordRun("error")
		return nil, fmt.Errorf("create output: %w", err)
	}

	summary, err := p.Process(ctx, in, out)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	return summary, err
}

// Process runs the pipeline against explicit streams.
func (p *Pipeline) Process(ctx context.Context, in io.Reader, out io.Writer) (*Summary, error) {
	runID := uuid.NewString()
	log := p.logger.Named("pipeline")
	started := time.Now()

	log.Info(ctx, "run started",
		logger.String("run_id", runID),
		logger.String("sort_by", string(p.sortKey)),
		logger.String("field_policy", string(p.fieldPolicy)),
		logger.Bool("dedupe_titles", p.dedupeTitles),
	)

	summary, err := p.process(ctx, runID, log, in, out)
	if err != nil {
		p.metrics.RecordRun("error")
		log.Error(ctx, "run failed", logger.String("run_id", runID), logger.Error(err))
		return nil, err
	}

	summary.Duration = time.Since(started)
	p.metrics.ObserveRunDuration(summary.Duration)
	p.metrics.RecordRun("ok")

	log.Info(ctx, "run finished",
		logger.String("run_id", runID),
		logger.Int("rows_extracted", summary.RowsExtracted),
		logger.Int("rows_accepted", summary.RowsAccepted),
		logger.Int("rows_rejected", summary.RowsRejected),
		logger.Int("unique_pocs", summary.UniquePOCs),
		logger.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (p *Pipeline) process(ctx context.Context, runID string, log logger.Logger, in io.Reader, out io.Writer) (*Summary, error) {
	// Read
	readStart := time.Now()
	rows, err := p.reader.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	p.metrics.ObserveStageDuration(metrics.StageRead, time.Since(readStart))
	for range rows {
		p.metrics.RecordRowExtracted()
	}
	log.Debug(ctx, "input read", logger.String("run_id", runID), logger.Int("rows", len(rows)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Normalize + aggregate
	aggStart := time.Now()
	agg := aggregate.New(
		aggregate.WithNormalizer(p.normalizer()),
		aggregate.WithFieldPolicy(p.fieldPolicy),
		aggregate.WithTitleDedupe(p.dedupeTitles),
	)
	for _, row := range rows {
		before := agg.Size()
		if !agg.Add(row) {
			p.metrics.RecordRowRejected()
			continue
		}
		p.metrics.RecordRowAccepted()
		if agg.Size() == before {
			p.metrics.RecordDuplicateMerged()
		}
	}
	p.metrics.ObserveStageDuration(metrics.StageAggregate, time.Since(aggStart))
	p.metrics.UpdateUniquePOCs(agg.Size())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Sort
	sortStart := time.Now()
	sorted, err := rank.Sort(agg.Records(), p.sortKey)
	if err != nil {
		return nil, fmt.Errorf("sort records: %w", err)
	}
	p.metrics.ObserveStageDuration(metrics.StageSort, time.Since(sortStart))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Write
	writeStart := time.Now()
	writer := csvio.NewWriter(csvio.WithListDelimiter(p.listDelim))
	if err := writer.WriteAll(out, sorted); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}
	p.metrics.ObserveStageDuration(metrics.StageWrite, time.Since(writeStart))

	return &Summary{
		RunID:         runID,
		RowsExtracted: len(rows),
		RowsAccepted:  agg.Accepted(),
		RowsRejected:  agg.Rejected(),
		UniquePOCs:    agg.Size(),
	}, nil
}

func (p *Pipeline) normalizer() *normalize.Normalizer {
	if p.maxNameTokens > 0 {
		return normalize.New(normalize.WithMaxTokens(p.maxNameTokens))
	}
	return normalize.New()
}
