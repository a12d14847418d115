package dataprocessing

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"tmdblens/internal/errors"
	"tmdblens/pkg/contracts/domain"
)

// listDelimiter is the inner delimiter of the ingestion format: every cell,
// even a conceptually scalar one, is a listDelimiter-joined list of strings.
const listDelimiter = "|"

// Parser reads the raw delimited movie export and produces RawRecord values,
// one per data row, in input order. This stage is purely syntactic: no type
// inference happens here.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new raw-record parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseFile reads the CSV file at path and returns its raw records along
// with the number of structurally malformed rows that were skipped.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]domain.RawRecord, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.NewStorageError("failed to open input file", err).
			WithContext("path", path)
	}
	defer file.Close()

	return p.Parse(ctx, file)
}

// Parse reads CSV data with a header row from r. A row whose column count
// disagrees with the header is a parse error: it is logged with its row
// index, counted, and skipped; it never aborts the run.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]domain.RawRecord, int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, 0, errors.NewParsingError("input is empty, expected a header row", nil)
		}
		return nil, 0, errors.NewParsingError("failed to read header row", err)
	}

	p.logger.DebugContext(ctx, "parsed header row",
		slog.Int("field_count", len(header)))

	var records []domain.RawRecord
	parseErrors := 0
	row := 0

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++

		if err != nil {
			if stderrors.Is(err, csv.ErrFieldCount) {
				parseErrors++
				p.logger.WarnContext(ctx, "skipping malformed row",
					slog.Int("row", row),
					slog.Int("expected_fields", len(header)),
					slog.Int("got_fields", len(fields)),
					slog.String("error", err.Error()))
				continue
			}
			return nil, parseErrors, errors.NewParsingError("failed to read row", err).
				WithContext("row", row)
		}

		record := make(domain.RawRecord, len(header))
		for i, name := range header {
			record[name] = strings.Split(fields[i], listDelimiter)
		}
		records = append(records, record)
	}

	p.logger.InfoContext(ctx, "parsed raw records",
		slog.Int("rows_read", row),
		slog.Int("records", len(records)),
		slog.Int("parse_errors", parseErrors))

	return records, parseErrors, nil
}
