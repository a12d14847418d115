package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmdblens/pkg/contracts/domain"
)

func TestNewSummarizer(t *testing.T) {
	tests := []struct {
		name        string
		logger      *slog.Logger
		config      SummarizerConfig
		wantGrouped bool
		wantTop     int
	}{
		{
			name:        "default config",
			logger:      slog.Default(),
			config:      DefaultSummarizerConfig(),
			wantGrouped: false,
			wantTop:     20,
		},
		{
			name:        "extended config",
			logger:      slog.Default(),
			config:      ExtendedSummarizerConfig(),
			wantGrouped: true,
			wantTop:     20,
		},
		{
			name:        "nil logger uses default",
			logger:      nil,
			config:      SummarizerConfig{TopCategories: 5},
			wantGrouped: false,
			wantTop:     5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summarizer := NewSummarizer(tt.logger, tt.config)

			assert.NotNil(t, summarizer)
			assert.Equal(t, tt.wantGrouped, summarizer.includeGroupedMedians)
			assert.Equal(t, tt.wantTop, summarizer.topCategories)
			assert.NotNil(t, summarizer.logger)
		})
	}
}

func TestDescribe(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		stats := Describe([]float64{1, 2, 3, 4, 5})

		assert.Equal(t, 5, stats.Count)
		assert.InDelta(t, 3.0, stats.Mean, 1e-9)
		// Sample standard deviation: sqrt(10/4)
		assert.InDelta(t, 1.5811388300841898, stats.Std, 1e-9)
		assert.InDelta(t, 1.0, stats.Min, 1e-9)
		assert.InDelta(t, 2.0, stats.P25, 1e-9)
		assert.InDelta(t, 3.0, stats.Median, 1e-9)
		assert.InDelta(t, 4.0, stats.P75, 1e-9)
		assert.InDelta(t, 5.0, stats.Max, 1e-9)
	})

	t.Run("interpolated quartiles", func(t *testing.T) {
		stats := Describe([]float64{1, 2, 3, 4})

		assert.InDelta(t, 1.75, stats.P25, 1e-9)
		assert.InDelta(t, 2.5, stats.Median, 1e-9)
		assert.InDelta(t, 3.25, stats.P75, 1e-9)
	})

	t.Run("unsorted input", func(t *testing.T) {
		stats := Describe([]float64{5, 1, 4, 2, 3})

		assert.InDelta(t, 1.0, stats.Min, 1e-9)
		assert.InDelta(t, 3.0, stats.Median, 1e-9)
		assert.InDelta(t, 5.0, stats.Max, 1e-9)
	})

	t.Run("single value", func(t *testing.T) {
		stats := Describe([]float64{42})

		assert.Equal(t, 1, stats.Count)
		assert.InDelta(t, 42.0, stats.Mean, 1e-9)
		assert.Zero(t, stats.Std)
		assert.InDelta(t, 42.0, stats.Median, 1e-9)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, domain.ColumnStats{}, Describe(nil))
	})
}

func TestSummarizer_Summarize(t *testing.T) {
	ctx := context.Background()

	table := domain.Table{
		{
			ID: 1, BudgetAdj: 100, RevenueAdj: 300, Profit: 200,
			Runtime: 120, VoteAverage: 7.0, Popularity: 1.5,
			ReleaseYear: 2010, Genres: []string{"Drama"},
		},
		{
			ID: 2, BudgetAdj: 200, RevenueAdj: 500, Profit: 300,
			Runtime: 90, VoteAverage: 6.0, Popularity: 0.5,
			ReleaseYear: 2010, Genres: []string{"Drama", "Comedy"},
		},
		{
			ID: 3, BudgetAdj: 300, RevenueAdj: 400, Profit: 100,
			Runtime: 100, VoteAverage: 5.0, Popularity: 2.5,
			ReleaseYear: 2012, Genres: []string{"Comedy"},
		},
	}

	t.Run("column statistics", func(t *testing.T) {
		summarizer := NewSummarizer(slog.Default(), DefaultSummarizerConfig())
		summary := summarizer.Summarize(ctx, table)

		require.Contains(t, summary.Columns, "budget_adj")
		require.Contains(t, summary.Columns, "revenue_adj")
		require.Contains(t, summary.Columns, "profit")
		require.Contains(t, summary.Columns, "runtime")

		budget := summary.Columns["budget_adj"]
		assert.Equal(t, 3, budget.Count)
		assert.InDelta(t, 200.0, budget.Mean, 1e-9)
		assert.InDelta(t, 200.0, budget.Median, 1e-9)

		// No grouped medians in the default config
		assert.Nil(t, summary.MediansByYear)
		assert.Nil(t, summary.MediansByGenre)
	})

	t.Run("genre shares", func(t *testing.T) {
		summarizer := NewSummarizer(slog.Default(), DefaultSummarizerConfig())
		summary := summarizer.Summarize(ctx, table)

		// 2 Drama + 2 Comedy out of 4 occurrences
		assert.InDelta(t, 50.0, summary.GenreShares["Drama"], 1e-9)
		assert.InDelta(t, 50.0, summary.GenreShares["Comedy"], 1e-9)
	})

	t.Run("grouped medians", func(t *testing.T) {
		summarizer := NewSummarizer(slog.Default(), ExtendedSummarizerConfig())
		summary := summarizer.Summarize(ctx, table)

		require.Contains(t, summary.MediansByYear, 2010)
		y2010 := summary.MediansByYear[2010]
		assert.Equal(t, 2, y2010.Count)
		assert.InDelta(t, 150.0, y2010.BudgetAdj, 1e-9)
		assert.InDelta(t, 250.0, y2010.Profit, 1e-9)

		// A two-genre movie contributes to both genre groups
		require.Contains(t, summary.MediansByGenre, "Drama")
		require.Contains(t, summary.MediansByGenre, "Comedy")
		assert.Equal(t, 2, summary.MediansByGenre["Drama"].Count)
		assert.Equal(t, 2, summary.MediansByGenre["Comedy"].Count)
		assert.InDelta(t, 250.0, summary.MediansByGenre["Drama"].Profit, 1e-9)
		assert.InDelta(t, 200.0, summary.MediansByGenre["Comedy"].Profit, 1e-9)
	})

	t.Run("empty table", func(t *testing.T) {
		summarizer := NewSummarizer(slog.Default(), DefaultSummarizerConfig())
		summary := summarizer.Summarize(ctx, domain.Table{})

		assert.Equal(t, 0, summary.Columns["profit"].Count)
		assert.Empty(t, summary.GenreShares)
	})
}
