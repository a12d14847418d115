package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmdblens/pkg/contracts/domain"
)

func TestCategoryShares_CountWeighted(t *testing.T) {
	// Row A contributes one occurrence, row B two: shares are weighted by
	// occurrence count, not averaged per row.
	movies := []domain.Movie{
		{ID: 1, Genres: []string{"Drama"}},
		{ID: 2, Genres: []string{"Drama", "Comedy"}},
	}

	shares := CategoryShares(movies, SelectGenres)

	require.Len(t, shares, 2)
	assert.InDelta(t, 66.67, shares["Drama"], 0.01)
	assert.InDelta(t, 33.33, shares["Comedy"], 0.01)
}

func TestCategoryShares_SumToOneHundred(t *testing.T) {
	movies := []domain.Movie{
		{ID: 1, Genres: []string{"Action", "Thriller"}},
		{ID: 2, Genres: []string{"Action"}},
		{ID: 3, Genres: []string{"Comedy", "Romance", "Drama"}},
	}

	shares := CategoryShares(movies, SelectGenres)

	var total float64
	for _, share := range shares {
		total += share
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestCategoryShares_EmptyInput(t *testing.T) {
	assert.Empty(t, CategoryShares(nil, SelectGenres))
	assert.Empty(t, CategoryShares([]domain.Movie{{ID: 1}}, SelectGenres))
}

func TestCategoryShares_RepeatMembershipsNotDeduplicated(t *testing.T) {
	// A row's multiple memberships all count individually
	movies := []domain.Movie{
		{ID: 1, Keywords: []string{"sequel", "sequel"}},
		{ID: 2, Keywords: []string{"dna"}},
	}

	counts := CategoryCounts(movies, SelectKeywords)

	assert.Equal(t, 2, counts["sequel"])
	assert.Equal(t, 1, counts["dna"])
}

func TestCategoryShares_FieldAgnostic(t *testing.T) {
	// The same multiset shape yields identical shares regardless of which
	// list-valued field carries it.
	movies := []domain.Movie{
		{ID: 1, Genres: []string{"A"}, Cast: []string{"A"}, Director: []string{"A"}},
		{ID: 2, Genres: []string{"A", "B"}, Cast: []string{"A", "B"}, Director: []string{"A", "B"}},
	}

	fromGenres := CategoryShares(movies, SelectGenres)
	fromCast := CategoryShares(movies, SelectCast)
	fromDirector := CategoryShares(movies, SelectDirector)

	assert.Equal(t, fromGenres, fromCast)
	assert.Equal(t, fromGenres, fromDirector)
}

func TestCategoryCounts_IgnoresEmptyLabels(t *testing.T) {
	movies := []domain.Movie{
		{ID: 1, Genres: []string{"Drama", ""}},
		{ID: 2, Genres: []string{}},
	}

	counts := CategoryCounts(movies, SelectGenres)

	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts["Drama"])
}

func TestRankedShares(t *testing.T) {
	movies := []domain.Movie{
		{ID: 1, Genres: []string{"Drama", "Comedy"}},
		{ID: 2, Genres: []string{"Drama"}},
		{ID: 3, Genres: []string{"Drama", "Action"}},
	}

	t.Run("sorted by descending count, ties alphabetical", func(t *testing.T) {
		ranked := RankedShares(movies, SelectGenres, 0)

		require.Len(t, ranked, 3)
		assert.Equal(t, "Drama", ranked[0].Label)
		assert.Equal(t, 3, ranked[0].Count)
		assert.InDelta(t, 60.0, ranked[0].Share, 1e-9)

		// Action and Comedy both have count 1: alphabetical order
		assert.Equal(t, "Action", ranked[1].Label)
		assert.Equal(t, "Comedy", ranked[2].Label)
	})

	t.Run("truncates to top entries", func(t *testing.T) {
		ranked := RankedShares(movies, SelectGenres, 1)

		require.Len(t, ranked, 1)
		assert.Equal(t, "Drama", ranked[0].Label)
	})
}
