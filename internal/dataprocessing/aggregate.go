package dataprocessing

import (
	"sort"

	"tmdblens/pkg/contracts/domain"
)

// FieldSelector picks one list-valued categorical field off a movie. The
// aggregator is agnostic to which field it is given: genres, keywords,
// cast, production companies and director all behave identically.
type FieldSelector func(domain.Movie) []string

// Selectors for the list-valued fields of the dataset.
var (
	SelectGenres              FieldSelector = func(m domain.Movie) []string { return m.Genres }
	SelectKeywords            FieldSelector = func(m domain.Movie) []string { return m.Keywords }
	SelectCast                FieldSelector = func(m domain.Movie) []string { return m.Cast }
	SelectDirector            FieldSelector = func(m domain.Movie) []string { return m.Director }
	SelectProductionCompanies FieldSelector = func(m domain.Movie) []string { return m.ProductionCompanies }
)

// CategoryCounts flattens the selected field across all movies into one
// multiset and counts each distinct label. A movie with three genres
// contributes three occurrences; its own memberships are not deduplicated
// against each other. Empty labels (format artifacts of empty cells) are
// ignored.
func CategoryCounts(movies []domain.Movie, selector FieldSelector) map[string]int {
	counts := make(map[string]int)
	for _, m := range movies {
		for _, label := range selector(m) {
			if label == "" {
				continue
			}
			counts[label]++
		}
	}
	return counts
}

// CategoryShares computes each label's percentage share of the flattened
// multiset. The denominator is the total number of occurrences (the sum of
// all list lengths), not the row count, so shares are count-weighted and
// sum to 100 up to floating-point rounding. A label absent from the input
// is simply absent from the result; callers comparing two aggregations
// treat a missing key as 0% prevalence.
func CategoryShares(movies []domain.Movie, selector FieldSelector) map[string]float64 {
	counts := CategoryCounts(movies, selector)

	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return map[string]float64{}
	}

	shares := make(map[string]float64, len(counts))
	for label, n := range counts {
		shares[label] = 100 * float64(n) / float64(total)
	}
	return shares
}

// CategoryShare pairs one label with its count and percentage share, for
// ranked report output.
type CategoryShare struct {
	Label string
	Count int
	Share float64
}

// RankedShares returns the category shares sorted by descending count,
// ties broken alphabetically. When top > 0 the result is truncated to the
// top entries.
func RankedShares(movies []domain.Movie, selector FieldSelector, top int) []CategoryShare {
	counts := CategoryCounts(movies, selector)
	shares := CategoryShares(movies, selector)

	ranked := make([]CategoryShare, 0, len(counts))
	for label, n := range counts {
		ranked = append(ranked, CategoryShare{
			Label: label,
			Count: n,
			Share: shares[label],
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Label < ranked[j].Label
	})

	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}

	return ranked
}
