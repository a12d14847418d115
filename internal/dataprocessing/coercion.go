package dataprocessing

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"tmdblens/internal/errors"
	"tmdblens/pkg/contracts/domain"
)

// releaseDateLayout is the source date format: month/day/two-digit-year,
// without zero padding ("6/9/15").
const releaseDateLayout = "1/2/06"

// releaseDateCenturyCutoff resolves two-digit years: 00-15 belong to the
// 2000s and 16-99 to the 1900s, matching the dataset's 1960-2015 span.
const releaseDateCenturyCutoff = 2015

// Coercer converts RawRecords into typed Movie entities by applying the
// schema's field-indexed conversion rules. The transform is pure: the
// RawRecord is never mutated, so it stays inspectable after a failure.
type Coercer struct {
	logger *slog.Logger
	schema Schema
}

// NewCoercer creates a coercer. A nil schema selects DefaultSchema.
func NewCoercer(logger *slog.Logger, schema Schema) *Coercer {
	if logger == nil {
		logger = slog.Default()
	}
	if schema == nil {
		schema = DefaultSchema()
	}
	return &Coercer{logger: logger, schema: schema}
}

// coerced holds the typed values of one record before assembly into a Movie.
type coerced map[string]any

func (c coerced) str(field string) string {
	v, _ := c[field].(string)
	return v
}

func (c coerced) list(field string) []string {
	v, _ := c[field].([]string)
	return v
}

func (c coerced) integer(field string) int64 {
	v, _ := c[field].(int64)
	return v
}

func (c coerced) float(field string) float64 {
	v, _ := c[field].(float64)
	return v
}

func (c coerced) date(field string) time.Time {
	v, _ := c[field].(time.Time)
	return v
}

// Coerce converts one RawRecord into a Movie. Any field failing its rule
// surfaces a conversion error naming the field and row; the caller is
// expected to drop the row and keep going.
func (c *Coercer) Coerce(record domain.RawRecord, row int) (domain.Movie, error) {
	vals := make(coerced, len(c.schema))

	for field, kind := range c.schema {
		v, err := coerceField(kind, record[field], field, row)
		if err != nil {
			return domain.Movie{}, err
		}
		vals[field] = v
	}

	movie := domain.Movie{
		ID:                  int(vals.integer("id")),
		IMDbID:              vals.str("imdb_id"),
		Popularity:          vals.float("popularity"),
		Budget:              vals.integer("budget"),
		Revenue:             vals.integer("revenue"),
		OriginalTitle:       vals.str("original_title"),
		Cast:                vals.list("cast"),
		Homepage:            vals.str("homepage"),
		Director:            vals.list("director"),
		Tagline:             vals.str("tagline"),
		Keywords:            vals.list("keywords"),
		Overview:            vals.str("overview"),
		Runtime:             int(vals.integer("runtime")),
		Genres:              vals.list("genres"),
		ProductionCompanies: vals.list("production_companies"),
		ReleaseDate:         vals.date("release_date"),
		VoteCount:           vals.integer("vote_count"),
		VoteAverage:         vals.float("vote_average"),
		ReleaseYear:         int(vals.integer("release_year")),
		BudgetAdj:           vals.integer("budget_adj"),
		RevenueAdj:          vals.integer("revenue_adj"),
	}

	movie.Profit = DeriveProfit(movie)

	return movie, nil
}

// DeriveProfit computes the derived adjusted profit: adjusted revenue minus
// adjusted budget. Plain subtraction: the figures are already whole
// currency units, so there is no ratio and no division involved.
func DeriveProfit(m domain.Movie) int64 {
	return m.RevenueAdj - m.BudgetAdj
}

// coerceField applies one conversion rule to one raw value.
func coerceField(kind FieldKind, raw []string, field string, row int) (any, error) {
	if len(raw) == 0 {
		return nil, errors.NewConversionError(field, row, nil).
			WithContext("reason", "field missing from record")
	}

	switch kind {
	case FieldString:
		return raw[0], nil

	case FieldStringList:
		// A single empty string is the format's encoding of an empty
		// cell, not a real one-element list.
		if len(raw) == 1 && raw[0] == "" {
			return []string{}, nil
		}
		return raw, nil

	case FieldInt:
		n, err := strconv.ParseInt(raw[0], 10, 64)
		if err != nil {
			return nil, errors.NewConversionError(field, row, err)
		}
		return n, nil

	case FieldFloat:
		f, err := strconv.ParseFloat(raw[0], 64)
		if err != nil {
			return nil, errors.NewConversionError(field, row, err)
		}
		return f, nil

	case FieldMoneyAdj:
		f, err := strconv.ParseFloat(raw[0], 64)
		if err != nil {
			return nil, errors.NewConversionError(field, row, err)
		}
		// Truncation toward negative infinity, not rounding.
		return int64(math.Floor(f)), nil

	case FieldDate:
		t, err := time.Parse(releaseDateLayout, raw[0])
		if err != nil {
			return nil, errors.NewConversionError(field, row, err)
		}
		// time.Parse pivots two-digit years at 69, which would put
		// 1960-1968 releases a century forward. Anything past the
		// dataset's last year belongs to the previous century.
		if t.Year() > releaseDateCenturyCutoff {
			t = t.AddDate(-100, 0, 0)
		}
		return t, nil

	default:
		return nil, errors.NewConversionError(field, row, nil).
			WithContext("reason", "unknown field kind")
	}
}
