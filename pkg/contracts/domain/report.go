package domain

import (
	"time"
)

// PipelineStats is the per-stage row accounting for one pipeline run. The
// validity filter is expected to discard the majority of rows in this
// dataset, so attrition is reported rather than treated as anomalous.
type PipelineStats struct {
	RowsRead          int `json:"rows_read" validate:"min=0"`
	ParseErrors       int `json:"parse_errors" validate:"min=0"`
	ConversionErrors  int `json:"conversion_errors" validate:"min=0"`
	DuplicatesRemoved int `json:"duplicates_removed" validate:"min=0"`
	ValidityExcluded  int `json:"validity_excluded" validate:"min=0"`
	Retained          int `json:"retained" validate:"min=0"`
}

// AttritionPercent returns the share of deduplicated rows removed by the
// validity filter, in [0,100].
func (s PipelineStats) AttritionPercent() float64 {
	deduped := s.ValidityExcluded + s.Retained
	if deduped == 0 {
		return 0
	}
	return 100 * float64(s.ValidityExcluded) / float64(deduped)
}

// ColumnStats holds descriptive statistics for one numeric column of the
// clean table, matching the usual count/mean/std/quartile summary.
type ColumnStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// GroupMedians holds the median financial figures for one group of movies
// (one release year, or one genre after flattening).
type GroupMedians struct {
	Count      int     `json:"count"`
	BudgetAdj  float64 `json:"budget_adj"`
	RevenueAdj float64 `json:"revenue_adj"`
	Profit     float64 `json:"profit"`
	Runtime    float64 `json:"runtime"`
}

// TableSummary is the descriptive-statistics view of a clean table.
type TableSummary struct {
	Columns        map[string]ColumnStats  `json:"columns"`
	GenreShares    map[string]float64      `json:"genre_shares,omitempty"`
	MediansByYear  map[int]GroupMedians    `json:"medians_by_year,omitempty"`
	MediansByGenre map[string]GroupMedians `json:"medians_by_genre,omitempty"`
}

// RunReport is the audit record for one pipeline run, written alongside the
// exported tables so the magnitude of data attrition is visible.
type RunReport struct {
	RunID       string        `json:"run_id" validate:"required,uuid"`
	Source      string        `json:"source" validate:"required"`
	Stats       PipelineStats `json:"stats"`
	Summary     *TableSummary `json:"summary,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
}
