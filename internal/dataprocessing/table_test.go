package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmdblens/pkg/contracts/domain"
)

func TestAssembler_Assemble(t *testing.T) {
	ctx := context.Background()
	assembler := NewAssembler(slog.Default())

	t.Run("first occurrence wins", func(t *testing.T) {
		movies := []domain.Movie{
			{ID: 2089, OriginalTitle: "TEKKEN"},
			{ID: 135397, OriginalTitle: "Jurassic World"},
			{ID: 2089, OriginalTitle: "TEKKEN (duplicate)"},
		}

		table, duplicates := assembler.Assemble(ctx, movies)

		assert.Equal(t, 1, duplicates)
		require.Len(t, table, 2)
		assert.Equal(t, []int{2089, 135397}, table.IDs())
		// The earliest record is the one kept
		assert.Equal(t, "TEKKEN", table[0].OriginalTitle)
	})

	t.Run("dedup is idempotent", func(t *testing.T) {
		movies := []domain.Movie{
			{ID: 1}, {ID: 2}, {ID: 2}, {ID: 3},
		}

		once, duplicates := assembler.Assemble(ctx, movies)
		assert.Equal(t, 1, duplicates)

		twice, duplicates := assembler.Assemble(ctx, once)
		assert.Zero(t, duplicates)
		assert.Equal(t, once, twice)
	})

	t.Run("empty input", func(t *testing.T) {
		table, duplicates := assembler.Assemble(ctx, nil)
		assert.Empty(t, table)
		assert.Zero(t, duplicates)
	})

	t.Run("input order preserved", func(t *testing.T) {
		movies := []domain.Movie{{ID: 9}, {ID: 4}, {ID: 7}}
		table, _ := assembler.Assemble(ctx, movies)
		assert.Equal(t, []int{9, 4, 7}, table.IDs())
	})
}

// validMovie builds a movie that passes all validity predicates.
func validMovie(id int) domain.Movie {
	return domain.Movie{
		ID:          id,
		BudgetAdj:   25000000,
		RevenueAdj:  80000000,
		Profit:      55000000,
		ReleaseYear: 2010,
	}
}

func TestFilter_Valid(t *testing.T) {
	filter := NewFilter(slog.Default(), DefaultFilterConfig())

	tests := []struct {
		name   string
		mutate func(*domain.Movie)
		want   bool
	}{
		{"all predicates satisfied", func(m *domain.Movie) {}, true},
		{"zero adjusted budget", func(m *domain.Movie) { m.BudgetAdj = 0 }, false},
		{"adjusted budget of one is still a placeholder", func(m *domain.Movie) { m.BudgetAdj = 1 }, false},
		{"adjusted budget of two passes", func(m *domain.Movie) { m.BudgetAdj = 2 }, true},
		{"zero adjusted revenue", func(m *domain.Movie) { m.RevenueAdj = 0 }, false},
		{"adjusted revenue of one", func(m *domain.Movie) { m.RevenueAdj = 1 }, false},
		{"release year 2015 included", func(m *domain.Movie) { m.ReleaseYear = 2015 }, true},
		{"release year 2016 excluded", func(m *domain.Movie) { m.ReleaseYear = 2016 }, false},
		{"release year zero excluded", func(m *domain.Movie) { m.ReleaseYear = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMovie(1)
			tt.mutate(&m)
			assert.Equal(t, tt.want, filter.Valid(m))
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	ctx := context.Background()
	filter := NewFilter(slog.Default(), DefaultFilterConfig())

	invalid := validMovie(2)
	invalid.BudgetAdj = 0

	table := domain.Table{validMovie(1), invalid, validMovie(3)}

	kept, excluded := filter.Apply(ctx, table)

	assert.Equal(t, 1, excluded)
	assert.Equal(t, []int{1, 3}, kept.IDs())
}

func TestFilter_Apply_Idempotent(t *testing.T) {
	ctx := context.Background()
	filter := NewFilter(slog.Default(), DefaultFilterConfig())

	invalid := validMovie(5)
	invalid.ReleaseYear = 2016

	table := domain.Table{validMovie(1), invalid}

	once, excluded := filter.Apply(ctx, table)
	assert.Equal(t, 1, excluded)

	twice, excluded := filter.Apply(ctx, once)
	assert.Zero(t, excluded)
	assert.Equal(t, once, twice)
}

func TestNewFilter_CustomMaxYear(t *testing.T) {
	filter := NewFilter(slog.Default(), FilterConfig{MaxReleaseYear: 2020})

	m := validMovie(1)
	m.ReleaseYear = 2018
	assert.True(t, filter.Valid(m))

	m.ReleaseYear = 2020
	assert.False(t, filter.Valid(m))
}

func TestNewFilter_ZeroConfigFallsBackToDefaults(t *testing.T) {
	filter := NewFilter(nil, FilterConfig{})

	m := validMovie(1)
	assert.True(t, filter.Valid(m))

	m.ReleaseYear = 2016
	assert.False(t, filter.Valid(m))
}

func TestNewFilter_ExplicitZeroThresholdHonored(t *testing.T) {
	// Configured alongside a real max year, a monetary threshold of 0 is
	// a deliberate choice, not an unset field.
	filter := NewFilter(slog.Default(), FilterConfig{
		MinBudgetAdj:   0,
		MinRevenueAdj:  0,
		MaxReleaseYear: 2016,
	})

	m := validMovie(1)
	m.BudgetAdj = 1
	m.RevenueAdj = 1
	assert.True(t, filter.Valid(m))

	m.BudgetAdj = 0
	assert.False(t, filter.Valid(m))
}

func TestNewFilter_PartialConfigDefaultsMaxYear(t *testing.T) {
	filter := NewFilter(slog.Default(), FilterConfig{MinBudgetAdj: 5})

	m := validMovie(1)
	m.BudgetAdj = 6
	m.ReleaseYear = 2015
	assert.True(t, filter.Valid(m))

	m.ReleaseYear = 2016
	assert.False(t, filter.Valid(m))
}
