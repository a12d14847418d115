package exporter

import (
	"log/slog"
	"strconv"

	"tmdblens/internal/dataprocessing"
	"tmdblens/internal/errors"
	"tmdblens/pkg/contracts/domain"
)

// movieHeader is the column order of the clean-table CSV, mirroring the
// source layout with the derived profit column appended.
var movieHeader = []string{
	"id", "imdb_id", "popularity", "budget", "revenue", "original_title",
	"cast", "homepage", "director", "tagline", "keywords", "overview",
	"runtime", "genres", "production_companies", "release_date",
	"vote_count", "vote_average", "release_year", "budget_adj",
	"revenue_adj", "profit",
}

// TableExporter writes the clean movie table and category-share rankings
// as CSV files.
type TableExporter struct {
	logger    *slog.Logger
	csvWriter *CSVWriter
}

// NewTableExporter creates a new table exporter
func NewTableExporter(logger *slog.Logger) *TableExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableExporter{
		logger:    logger,
		csvWriter: NewCSVWriter(logger),
	}
}

// ExportTable writes the clean table to a CSV file, re-joining list-valued
// fields with the source's inner delimiter.
func (e *TableExporter) ExportTable(path string, table domain.Table) error {
	records := make([][]string, 0, len(table))
	for _, m := range table {
		records = append(records, []string{
			strconv.Itoa(m.ID),
			m.IMDbID,
			strconv.FormatFloat(m.Popularity, 'f', -1, 64),
			formatInt(m.Budget),
			formatInt(m.Revenue),
			m.OriginalTitle,
			formatList(m.Cast),
			m.Homepage,
			formatList(m.Director),
			m.Tagline,
			formatList(m.Keywords),
			m.Overview,
			strconv.Itoa(m.Runtime),
			formatList(m.Genres),
			formatList(m.ProductionCompanies),
			formatDate(m.ReleaseDate),
			formatInt(m.VoteCount),
			strconv.FormatFloat(m.VoteAverage, 'f', -1, 64),
			strconv.Itoa(m.ReleaseYear),
			formatInt(m.BudgetAdj),
			formatInt(m.RevenueAdj),
			formatInt(m.Profit),
		})
	}

	if err := e.csvWriter.WriteSimpleCSV(path, movieHeader, records); err != nil {
		return errors.NewStorageError("failed to write clean table CSV", err).
			WithContext("path", path)
	}

	e.logger.Info("exported clean table",
		slog.String("path", path),
		slog.Int("rows", len(table)))

	return nil
}

// ExportCategoryShares writes one ranked category-share file for a
// list-valued field.
func (e *TableExporter) ExportCategoryShares(path string, shares []dataprocessing.CategoryShare) error {
	records := make([][]string, 0, len(shares))
	for _, share := range shares {
		records = append(records, []string{
			share.Label,
			strconv.Itoa(share.Count),
			formatFloat(share.Share),
		})
	}

	if err := e.csvWriter.WriteSimpleCSV(path, []string{"Label", "Count", "SharePercent"}, records); err != nil {
		return errors.NewStorageError("failed to write category shares CSV", err).
			WithContext("path", path)
	}

	e.logger.Info("exported category shares",
		slog.String("path", path),
		slog.Int("labels", len(shares)))

	return nil
}
