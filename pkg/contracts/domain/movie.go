package domain

import (
	"time"
)

// RawRecord is one input row exactly as it appears on the wire: every field,
// scalar or not, is the ordered list of strings obtained by splitting the
// cell on the inner delimiter. No typing has happened yet; the coercion
// layer consumes a RawRecord and produces a Movie without mutating it.
type RawRecord map[string][]string

// Movie represents a single film after type coercion. This is the primary
// data structure for all downstream filtering, aggregation and reporting.
type Movie struct {
	ID                  int       `json:"id" csv:"id" validate:"required,gt=0"`
	IMDbID              string    `json:"imdb_id" csv:"imdb_id"`
	Popularity          float64   `json:"popularity" csv:"popularity" validate:"min=0"`
	Budget              int64     `json:"budget" csv:"budget" validate:"min=0"`
	Revenue             int64     `json:"revenue" csv:"revenue" validate:"min=0"`
	OriginalTitle       string    `json:"original_title" csv:"original_title"`
	Cast                []string  `json:"cast" csv:"cast"`
	Homepage            string    `json:"homepage" csv:"homepage"`
	Director            []string  `json:"director" csv:"director"`
	Tagline             string    `json:"tagline" csv:"tagline"`
	Keywords            []string  `json:"keywords" csv:"keywords"`
	Overview            string    `json:"overview" csv:"overview"`
	Runtime             int       `json:"runtime" csv:"runtime" validate:"min=0"`
	Genres              []string  `json:"genres" csv:"genres"`
	ProductionCompanies []string  `json:"production_companies" csv:"production_companies"`
	ReleaseDate         time.Time `json:"release_date" csv:"release_date"`
	VoteCount           int64     `json:"vote_count" csv:"vote_count" validate:"min=0"`
	VoteAverage         float64   `json:"vote_average" csv:"vote_average" validate:"min=0,max=10"`
	ReleaseYear         int       `json:"release_year" csv:"release_year" validate:"min=0"`
	BudgetAdj           int64     `json:"budget_adj" csv:"budget_adj" validate:"min=0"`
	RevenueAdj          int64     `json:"revenue_adj" csv:"revenue_adj" validate:"min=0"`

	// Profit is derived during coercion as RevenueAdj - BudgetAdj. It is the
	// only field not present in the source data.
	Profit int64 `json:"profit" csv:"profit"`
}

// Table is the assembled analytical table: ordered, deduplicated by ID once
// it has passed through the assembler, and treated as read-only by every
// consumer after the validity filter has run.
type Table []Movie

// IDs returns the movie IDs in table order.
func (t Table) IDs() []int {
	ids := make([]int, len(t))
	for i, m := range t {
		ids[i] = m.ID
	}
	return ids
}
