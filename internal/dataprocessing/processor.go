package dataprocessing

import (
	"context"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"tmdblens/pkg/contracts/domain"
)

// Processor runs the full cleaning pipeline in its mandatory order:
// parse, coerce (with derived metrics), assemble/dedup, validity-filter.
// Each stage assumes the invariants established upstream, so the order is
// fixed. The run is single-threaded and single-batch.
type Processor struct {
	logger    *slog.Logger
	parser    *Parser
	coercer   *Coercer
	assembler *Assembler
	filter    *Filter
	validate  *validator.Validate
}

// ProcessorConfig holds the pipeline's tunables.
type ProcessorConfig struct {
	Schema Schema       // nil selects DefaultSchema
	Filter FilterConfig // zero fields fall back to defaults
}

// NewProcessor creates a pipeline processor.
func NewProcessor(logger *slog.Logger, config ProcessorConfig) *Processor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		logger:    logger,
		parser:    NewParser(logger),
		coercer:   NewCoercer(logger, config.Schema),
		assembler: NewAssembler(logger),
		filter:    NewFilter(logger, config.Filter),
		validate:  validator.New(),
	}
}

// Result is the outcome of one pipeline run: the clean analytical table and
// the per-stage row accounting.
type Result struct {
	Table domain.Table
	Stats domain.PipelineStats
}

// ProcessFile runs the pipeline over the CSV file at path.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	records, parseErrors, err := p.parser.ParseFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return p.process(ctx, records, parseErrors)
}

// Process runs the pipeline over CSV data read from r.
func (p *Processor) Process(ctx context.Context, r io.Reader) (*Result, error) {
	records, parseErrors, err := p.parser.Parse(ctx, r)
	if err != nil {
		return nil, err
	}
	return p.process(ctx, records, parseErrors)
}

func (p *Processor) process(ctx context.Context, records []domain.RawRecord, parseErrors int) (*Result, error) {
	stats := domain.PipelineStats{
		RowsRead:    len(records) + parseErrors,
		ParseErrors: parseErrors,
	}

	movies := make([]domain.Movie, 0, len(records))
	for i, record := range records {
		row := i + 1

		movie, err := p.coercer.Coerce(record, row)
		if err != nil {
			stats.ConversionErrors++
			p.logger.WarnContext(ctx, "dropping row that failed coercion",
				slog.Int("row", row),
				slog.String("error", err.Error()))
			continue
		}

		// Contract check on the coerced entity. A movie violating its
		// own structural invariants is dropped like any other
		// conversion failure rather than poisoning the table.
		if err := p.validate.Struct(movie); err != nil {
			stats.ConversionErrors++
			p.logger.WarnContext(ctx, "dropping row that failed contract validation",
				slog.Int("row", row),
				slog.Int("id", movie.ID),
				slog.String("error", err.Error()))
			continue
		}

		movies = append(movies, movie)
	}

	table, duplicates := p.assembler.Assemble(ctx, movies)
	stats.DuplicatesRemoved = duplicates

	clean, excluded := p.filter.Apply(ctx, table)
	stats.ValidityExcluded = excluded
	stats.Retained = len(clean)

	p.logger.InfoContext(ctx, "pipeline run complete",
		slog.Int("rows_read", stats.RowsRead),
		slog.Int("parse_errors", stats.ParseErrors),
		slog.Int("conversion_errors", stats.ConversionErrors),
		slog.Int("duplicates_removed", stats.DuplicatesRemoved),
		slog.Int("validity_excluded", stats.ValidityExcluded),
		slog.Int("retained", stats.Retained),
		slog.Float64("attrition_percent", stats.AttritionPercent()))

	return &Result{Table: clean, Stats: stats}, nil
}
