package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"tmdblens/pkg/contracts/domain"
)

// Summarizer computes descriptive statistics over a clean table: per-column
// count/mean/std/quartile summaries, genre prevalence, and optionally the
// grouped medians used to compare financial outcomes across release years
// and genres.
type Summarizer struct {
	logger                *slog.Logger
	includeGroupedMedians bool
	topCategories         int
}

// SummarizerConfig holds configuration options for the Summarizer.
type SummarizerConfig struct {
	IncludeGroupedMedians bool // Include per-year and per-genre median breakdowns
	TopCategories         int  // Cap on genre-share entries in the summary (0 = all)
}

// NewSummarizer creates a new table summarizer with the given configuration.
func NewSummarizer(logger *slog.Logger, config SummarizerConfig) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Summarizer{
		logger:                logger,
		includeGroupedMedians: config.IncludeGroupedMedians,
		topCategories:         config.TopCategories,
	}
}

// DefaultSummarizerConfig returns a configuration for typical use cases.
func DefaultSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{
		IncludeGroupedMedians: false,
		TopCategories:         20,
	}
}

// ExtendedSummarizerConfig returns a configuration with grouped medians
// enabled.
func ExtendedSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{
		IncludeGroupedMedians: true,
		TopCategories:         20,
	}
}

// numericColumns maps summary column names to their value selectors.
var numericColumns = map[string]func(domain.Movie) float64{
	"budget_adj":   func(m domain.Movie) float64 { return float64(m.BudgetAdj) },
	"revenue_adj":  func(m domain.Movie) float64 { return float64(m.RevenueAdj) },
	"profit":       func(m domain.Movie) float64 { return float64(m.Profit) },
	"runtime":      func(m domain.Movie) float64 { return float64(m.Runtime) },
	"vote_average": func(m domain.Movie) float64 { return m.VoteAverage },
	"popularity":   func(m domain.Movie) float64 { return m.Popularity },
}

// Summarize computes the descriptive-statistics view of the table.
func (s *Summarizer) Summarize(ctx context.Context, table domain.Table) *domain.TableSummary {
	s.logger.InfoContext(ctx, "summarizing clean table",
		slog.Int("rows", len(table)))

	summary := &domain.TableSummary{
		Columns: make(map[string]domain.ColumnStats, len(numericColumns)),
	}

	for name, selector := range numericColumns {
		values := make([]float64, len(table))
		for i, m := range table {
			values[i] = selector(m)
		}
		summary.Columns[name] = Describe(values)
	}

	shares := RankedShares(table, SelectGenres, s.topCategories)
	summary.GenreShares = make(map[string]float64, len(shares))
	for _, share := range shares {
		summary.GenreShares[share.Label] = share.Share
	}

	if s.includeGroupedMedians {
		summary.MediansByYear = s.mediansByYear(table)
		summary.MediansByGenre = s.mediansByGenre(table)
	}

	return summary
}

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max for one numeric column. Quartiles use linear interpolation
// between closest ranks. An empty column yields the zero value.
func Describe(values []float64) domain.ColumnStats {
	if len(values) == 0 {
		return domain.ColumnStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	var std float64
	if len(sorted) > 1 {
		var sq float64
		for _, v := range sorted {
			d := v - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(len(sorted)-1))
	}

	return domain.ColumnStats{
		Count:  len(sorted),
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		P25:    percentile(sorted, 0.25),
		Median: percentile(sorted, 0.5),
		P75:    percentile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// percentile returns the q-th percentile of sorted values with linear
// interpolation between closest ranks.
func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// median returns the median of unsorted values.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentile(sorted, 0.5)
}

// groupMedians computes the median financial figures for one group.
func groupMedians(movies []domain.Movie) domain.GroupMedians {
	budgets := make([]float64, len(movies))
	revenues := make([]float64, len(movies))
	profits := make([]float64, len(movies))
	runtimes := make([]float64, len(movies))

	for i, m := range movies {
		budgets[i] = float64(m.BudgetAdj)
		revenues[i] = float64(m.RevenueAdj)
		profits[i] = float64(m.Profit)
		runtimes[i] = float64(m.Runtime)
	}

	return domain.GroupMedians{
		Count:      len(movies),
		BudgetAdj:  median(budgets),
		RevenueAdj: median(revenues),
		Profit:     median(profits),
		Runtime:    median(runtimes),
	}
}

// mediansByYear groups movies by release year.
func (s *Summarizer) mediansByYear(table domain.Table) map[int]domain.GroupMedians {
	groups := make(map[int][]domain.Movie)
	for _, m := range table {
		groups[m.ReleaseYear] = append(groups[m.ReleaseYear], m)
	}

	medians := make(map[int]domain.GroupMedians, len(groups))
	for year, movies := range groups {
		medians[year] = groupMedians(movies)
	}
	return medians
}

// mediansByGenre groups movies by genre, flattening multi-genre movies
// into every genre they carry.
func (s *Summarizer) mediansByGenre(table domain.Table) map[string]domain.GroupMedians {
	groups := make(map[string][]domain.Movie)
	for _, m := range table {
		for _, genre := range m.Genres {
			if genre == "" {
				continue
			}
			groups[genre] = append(groups[genre], m)
		}
	}

	medians := make(map[string]domain.GroupMedians, len(groups))
	for genre, movies := range groups {
		medians[genre] = groupMedians(movies)
	}
	return medians
}
