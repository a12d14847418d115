// Package exporter writes the pipeline's outputs to disk.
//
// Three components:
//
// CSVWriter: core CSV writing with headers and UTF-8 BOM for Excel
// compatibility.
//
// TableExporter: writes the clean movie table and ranked category-share
// files as CSV.
//
// ReportExporter: writes the JSON run report (run ID, stage counts,
// summary statistics) and the xlsx summary workbook.
package exporter
