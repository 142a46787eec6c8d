// =============================================================================
// Back Order Report Generator - Pipeline Orchestration
// =============================================================================
//
// The Generator runs the whole pipeline for one input file:
//
//   ingest -> resolve columns -> validate -> normalize -> aggregate (+sort)
//          -> assemble -> write workbook
//
// Single-threaded and synchronous: the input is fully read into memory, then
// processed end to end, then written as one artifact. Terminal errors
// (unreadable input, missing required column, unsupported tier, write
// failure) abort the run immediately; row-level validation issues never do -
// bad rows are dropped, counted, and reported in the run statistics, which
// always accompany a successful result.
//
// =============================================================================

package pipeline

import (
	"time"

	"github.com/ginjaninja78/backorder-report-generator/internal/config"
	"github.com/ginjaninja78/backorder-report-generator/internal/engine"
	"github.com/ginjaninja78/backorder-report-generator/internal/ingest"
	"github.com/ginjaninja78/backorder-report-generator/internal/report"
	"github.com/ginjaninja78/backorder-report-generator/internal/xlsxwriter"
)

// progressEvery is the row interval between validation progress checkpoints.
const progressEvery = 250

// =============================================================================
// PROGRESS REPORTING
// =============================================================================

// Progress receives best-effort checkpoint callbacks from the pipeline: per
// N rows validated and per stage. It decouples progress display from any
// particular front end; implementations must be cheap, they are called from
// the hot loop.
type Progress interface {
	// Step reports progress within a named stage. total may be 0 when the
	// stage has no meaningful row count.
	Step(stage string, done, total int)
}

// NopProgress ignores all checkpoints.
type NopProgress struct{}

// Step implements Progress.
func (NopProgress) Step(string, int, int) {}

// =============================================================================
// RESULTS
// =============================================================================

// RunStats is the run-statistics record that accompanies every successful
// result so the caller can surface data-quality warnings even on success.
type RunStats struct {
	// RowsRead is the number of non-empty data rows in the input.
	RowsRead int

	// RowsSkipped is the number of rows excluded by validation.
	RowsSkipped int

	// DuplicatesRemoved is the number of duplicate records collapsed.
	DuplicatesRemoved int

	// ValidRecords is the number of canonical records that reached
	// aggregation.
	ValidRecords int

	// Issues are all collected validation issues, in row order.
	Issues []engine.ValidationIssue

	// SkippedByKind counts skipped rows by their first issue kind.
	SkippedByKind map[engine.IssueKind]int

	// BucketCounts maps aging bucket label to line count.
	BucketCounts map[string]int

	// Elapsed is the total run duration.
	Elapsed time.Duration
}

// Result is the outcome of one run.
type Result struct {
	// InputFile is the file that was processed.
	InputFile string

	// OutputFile is the workbook that was written; empty on failure.
	OutputFile string

	// Tier is the report tier the run produced.
	Tier report.Tier

	// Success reports whether the run completed.
	Success bool

	// Error is the terminal error on failure, nil otherwise.
	Error error

	// Stats is always populated as far as the run progressed.
	Stats RunStats
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator runs report generation for one configuration.
type Generator struct {
	cfg      *config.Config
	logger   engine.Logger
	progress Progress
	now      func() time.Time
}

// Option customizes a Generator.
type Option func(*Generator)

// WithLogger replaces the default logger.
func WithLogger(logger engine.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithProgress attaches a progress reporter.
func WithProgress(progress Progress) Option {
	return func(g *Generator) { g.progress = progress }
}

// WithClock fixes the run date, used by tests for deterministic aging.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a Generator.
func NewGenerator(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg,
		logger:   engine.NewLogger(cfg.Logging.Level),
		progress: NopProgress{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RunOptions are the per-run inputs.
type RunOptions struct {
	// InputPath is the raw export to process.
	InputPath string

	// OutputPath is the destination workbook.
	OutputPath string

	// ReportType overrides the configured default tier when non-empty.
	ReportType string
}

// =============================================================================
// RUN
// =============================================================================

// Run executes the full pipeline and writes the workbook.
func (g *Generator) Run(opts RunOptions) Result {
	start := time.Now()

	result := Result{InputFile: opts.InputPath}
	fail := func(err error) Result {
		result.Error = err
		result.Stats.Elapsed = time.Since(start)
		g.logger.Error("run failed: %v", err)
		return result
	}

	// Tier errors abort before any data work, let alone output.
	tierName := opts.ReportType
	if tierName == "" {
		tierName = g.cfg.Processing.DefaultReportType
	}
	tier, err := report.ParseTier(tierName)
	if err != nil {
		return fail(err)
	}
	result.Tier = tier

	agg, stats, err := g.analyze(opts.InputPath)
	if err != nil {
		return fail(err)
	}
	result.Stats = *stats

	g.progress.Step("assemble", 0, 0)
	rpt, err := report.Assemble(tier, agg, g.now(), report.Options{
		IncludeCharts: g.cfg.IncludeCharts(),
		MaxChartItems: g.cfg.Excel.MaxChartItems,
	})
	if err != nil {
		return fail(err)
	}

	g.progress.Step("write", 0, 0)
	writer := xlsxwriter.New(xlsxwriter.Options{
		ApplyStyling:      g.cfg.ApplyStyling(),
		FreezeHeaderRow:   g.cfg.FreezeHeaderRow(),
		AutoAdjustColumns: g.cfg.AutoAdjustColumns(),
	})
	if err := writer.Write(rpt, opts.OutputPath); err != nil {
		return fail(err)
	}

	result.OutputFile = opts.OutputPath
	result.Success = true
	result.Stats.Elapsed = time.Since(start)

	g.logger.Info("report written to %s (%d valid records, %d skipped, %d duplicates removed)",
		opts.OutputPath, result.Stats.ValidRecords, result.Stats.RowsSkipped, result.Stats.DuplicatesRemoved)

	return result
}

// Analyze runs the pipeline up to aggregation without writing a workbook.
// It backs the `validate` command's dry inspection of an input file.
func (g *Generator) Analyze(inputPath string) (*engine.Aggregates, RunStats, error) {
	agg, stats, err := g.analyze(inputPath)
	if err != nil {
		return nil, RunStats{}, err
	}
	return agg, *stats, nil
}

// analyze ingests, validates, normalizes and aggregates one input file.
func (g *Generator) analyze(inputPath string) (*engine.Aggregates, *RunStats, error) {
	stats := &RunStats{
		SkippedByKind: make(map[engine.IssueKind]int),
		BucketCounts:  make(map[string]int),
	}

	g.progress.Step("ingest", 0, 0)
	dataset, err := ingest.Read(inputPath)
	if err != nil {
		return nil, stats, err
	}
	stats.RowsRead = len(dataset.Rows)
	g.logger.Info("loaded %d rows from %s", stats.RowsRead, inputPath)

	columns, err := engine.ResolveColumns(dataset.Headers)
	if err != nil {
		return nil, stats, err
	}
	g.logger.Debug("resolved %d canonical columns", len(columns))

	strict := g.cfg.ValidateData()
	validator := engine.NewValidator(columns, strict, g.logger)
	normalizer := engine.NewNormalizer(columns)

	records := make([]engine.CanonicalRecord, 0, len(dataset.Rows))
	for i, row := range dataset.Rows {
		issues, ok := validator.Check(row)
		stats.Issues = append(stats.Issues, issues...)

		if !ok {
			stats.RowsSkipped++
			if len(issues) > 0 {
				stats.SkippedByKind[issues[0].Kind]++
			}
			continue
		}

		records = append(records, normalizer.Normalize(row, len(records)))

		if (i+1)%progressEvery == 0 {
			g.progress.Step("validate", i+1, len(dataset.Rows))
		}
	}
	g.progress.Step("validate", len(dataset.Rows), len(dataset.Rows))

	if g.cfg.Processing.RemoveDuplicates {
		var dropped int
		records, dropped = engine.Dedupe(records)
		stats.DuplicatesRemoved = dropped
		if dropped > 0 {
			g.logger.Info("removed %d duplicate record(s)", dropped)
		}
	}
	stats.ValidRecords = len(records)

	if len(records) == 0 {
		g.logger.Warn("no valid records after validation; report will be empty")
	}

	g.progress.Step("aggregate", 0, 0)
	sortField := engine.SortPreference{
		OrderNumber: g.cfg.Sort.OrderNumber,
		Dock:        g.cfg.Sort.Dock,
		Salesman:    g.cfg.Sort.Salesman,
		DueDate:     g.cfg.Sort.DueDate,
	}.Resolve()

	agg := engine.Aggregate(records, columns, sortField, g.now())

	for _, bucket := range agg.Aging {
		stats.BucketCounts[bucket.Bucket.Label] = bucket.Lines
	}

	return agg, stats, nil
}
