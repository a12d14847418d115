package dataprocessing

import (
	"context"
	"log/slog"

	"tmdblens/pkg/contracts/domain"
)

// Assembler collects coerced movies into a Table, removing duplicate IDs.
//
// Policy: first occurrence wins. When several records share an ID, the one
// encountered earliest in input order is kept and the rest are discarded.
// The choice is arbitrary but consequential, so it is fixed here rather
// than left to map iteration order.
type Assembler struct {
	logger *slog.Logger
}

// NewAssembler creates a table assembler.
func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{logger: logger}
}

// Assemble deduplicates movies by ID and returns the table plus the number
// of duplicates removed. Running it on an already-deduplicated table is a
// no-op.
func (a *Assembler) Assemble(ctx context.Context, movies []domain.Movie) (domain.Table, int) {
	table := make(domain.Table, 0, len(movies))
	seen := make(map[int]struct{}, len(movies))
	duplicates := 0

	for _, m := range movies {
		if _, ok := seen[m.ID]; ok {
			duplicates++
			a.logger.DebugContext(ctx, "dropping duplicate movie",
				slog.Int("id", m.ID),
				slog.String("original_title", m.OriginalTitle))
			continue
		}
		seen[m.ID] = struct{}{}
		table = append(table, m)
	}

	a.logger.InfoContext(ctx, "assembled table",
		slog.Int("movies", len(table)),
		slog.Int("duplicates_removed", duplicates))

	return table, duplicates
}

// FilterConfig holds the validity thresholds. The monetary bounds are
// exclusive: a movie passes only when its adjusted figure is strictly
// greater. MaxReleaseYear is an exclusive upper bound.
type FilterConfig struct {
	MinBudgetAdj   int64
	MinRevenueAdj  int64
	MaxReleaseYear int
}

// DefaultFilterConfig returns the thresholds for the reference dataset:
// adjusted budget and revenue must exceed 1 (zero and one are placeholder
// encodings of "unreported"), and the release year must lie in (0, 2016).
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinBudgetAdj:   1,
		MinRevenueAdj:  1,
		MaxReleaseYear: 2016,
	}
}

// Filter removes rows failing the domain-validity predicates. Exclusion is
// a designed outcome, not an error: with this dataset the filter removes
// the majority of rows, so the excluded count is always reported.
type Filter struct {
	logger *slog.Logger
	config FilterConfig
}

// NewFilter creates a validity filter. A wholly zero-valued config selects
// DefaultFilterConfig; any other config is used as given, so an explicit
// monetary threshold of 0 is honored. A non-positive MaxReleaseYear still
// falls back to the default, because the bound is exclusive and would
// otherwise reject every row.
func NewFilter(logger *slog.Logger, config FilterConfig) *Filter {
	if logger == nil {
		logger = slog.Default()
	}
	if config == (FilterConfig{}) {
		config = DefaultFilterConfig()
	} else if config.MaxReleaseYear <= 0 {
		config.MaxReleaseYear = DefaultFilterConfig().MaxReleaseYear
	}
	return &Filter{logger: logger, config: config}
}

// Valid reports whether a movie satisfies all validity predicates.
func (f *Filter) Valid(m domain.Movie) bool {
	return m.BudgetAdj > f.config.MinBudgetAdj &&
		m.RevenueAdj > f.config.MinRevenueAdj &&
		m.ReleaseYear > 0 &&
		m.ReleaseYear < f.config.MaxReleaseYear
}

// Apply returns the table restricted to valid rows plus the excluded count.
// The predicate is deterministic and idempotent: applying it twice yields
// the same table as applying it once.
func (f *Filter) Apply(ctx context.Context, table domain.Table) (domain.Table, int) {
	kept := make(domain.Table, 0, len(table))
	excluded := 0

	for _, m := range table {
		if !f.Valid(m) {
			excluded++
			continue
		}
		kept = append(kept, m)
	}

	f.logger.InfoContext(ctx, "applied validity filter",
		slog.Int("rows_in", len(table)),
		slog.Int("rows_out", len(kept)),
		slog.Int("excluded", excluded))

	return kept, excluded
}
