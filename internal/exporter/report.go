package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"tmdblens/internal/errors"
	"tmdblens/pkg/contracts/domain"
)

// ReportExporter writes the per-run audit report as JSON and the summary
// workbook as xlsx.
type ReportExporter struct {
	logger *slog.Logger
}

// NewReportExporter creates a new report exporter
func NewReportExporter(logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{logger: logger}
}

// WriteJSON writes the run report to a JSON file.
func (e *ReportExporter) WriteJSON(path string, report *domain.RunReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for run report", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create run report file", err).
			WithContext("path", path)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		return errors.NewStorageError("failed to encode run report to JSON", err)
	}

	e.logger.Info("wrote run report",
		slog.String("path", path),
		slog.String("run_id", report.RunID))

	return nil
}

// WriteWorkbook writes the summary statistics and genre shares to an xlsx
// workbook for analysts who prefer a spreadsheet over the CSV outputs.
func (e *ReportExporter) WriteWorkbook(path string, report *domain.RunReport) error {
	if report.Summary == nil {
		return errors.NewValidationError("run report has no summary to export")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for workbook", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeStatsSheet(f, report); err != nil {
		return err
	}
	if err := e.writeSharesSheet(f, report.Summary.GenreShares); err != nil {
		return err
	}

	// Drop the default sheet created by excelize
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.NewStorageError("failed to remove default sheet", err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save summary workbook", err).
			WithContext("path", path)
	}

	e.logger.Info("wrote summary workbook",
		slog.String("path", path),
		slog.String("run_id", report.RunID))

	return nil
}

// writeStatsSheet writes run metadata, stage counts and per-column
// descriptive statistics.
func (e *ReportExporter) writeStatsSheet(f *excelize.File, report *domain.RunReport) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewStorageError("failed to create summary sheet", err)
	}

	rows := [][]any{
		{"Run ID", report.RunID},
		{"Source", report.Source},
		{"Generated At", report.GeneratedAt.Format(time.RFC3339)},
		{},
		{"Rows Read", report.Stats.RowsRead},
		{"Parse Errors", report.Stats.ParseErrors},
		{"Conversion Errors", report.Stats.ConversionErrors},
		{"Duplicates Removed", report.Stats.DuplicatesRemoved},
		{"Validity Excluded", report.Stats.ValidityExcluded},
		{"Retained", report.Stats.Retained},
		{"Attrition %", report.Stats.AttritionPercent()},
		{},
		{"Column", "Count", "Mean", "Std", "Min", "P25", "Median", "P75", "Max"},
	}

	columns := make([]string, 0, len(report.Summary.Columns))
	for name := range report.Summary.Columns {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	for _, name := range columns {
		stats := report.Summary.Columns[name]
		rows = append(rows, []any{
			name, stats.Count, stats.Mean, stats.Std,
			stats.Min, stats.P25, stats.Median, stats.P75, stats.Max,
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.NewStorageError("failed to compute cell coordinates", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.NewStorageError("failed to write summary row", err)
		}
	}

	return nil
}

// writeSharesSheet writes the genre prevalence table.
func (e *ReportExporter) writeSharesSheet(f *excelize.File, shares map[string]float64) error {
	const sheet = "Genre Shares"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.NewStorageError("failed to create shares sheet", err)
	}

	labels := make([]string, 0, len(shares))
	for label := range shares {
		labels = append(labels, label)
	}
	// Descending prevalence, ties alphabetical
	sort.Slice(labels, func(i, j int) bool {
		if shares[labels[i]] != shares[labels[j]] {
			return shares[labels[i]] > shares[labels[j]]
		}
		return labels[i] < labels[j]
	})

	header := []any{"Genre", "Share %"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write shares header", err)
	}

	for i, label := range labels {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{label, shares[label]}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.NewStorageError("failed to write shares row", err)
		}
	}

	return nil
}
