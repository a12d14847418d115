package dataprocessing

// FieldKind identifies the conversion rule applied to one raw field.
type FieldKind int

const (
	// FieldString takes element [0] of the raw sequence unchanged.
	FieldString FieldKind = iota
	// FieldStringList keeps the raw sequence (already the correct shape).
	FieldStringList
	// FieldInt parses element [0] as a base-10 integer.
	FieldInt
	// FieldFloat parses element [0] as a floating point number.
	FieldFloat
	// FieldMoneyAdj parses element [0] as a float and floors it toward
	// negative infinity. The inflation-adjusted figures are stored as
	// floats in the source but treated as whole currency units here.
	FieldMoneyAdj
	// FieldDate parses element [0] as a M/D/YY calendar date. Two-digit
	// years 00-15 map to the 2000s and 16-99 to the 1900s, which covers
	// the dataset's 1960-2015 range.
	FieldDate
)

// String returns the rule name for logging.
func (k FieldKind) String() string {
	switch k {
	case FieldString:
		return "string"
	case FieldStringList:
		return "string_list"
	case FieldInt:
		return "int"
	case FieldFloat:
		return "float"
	case FieldMoneyAdj:
		return "money_adj"
	case FieldDate:
		return "date"
	default:
		return "unknown"
	}
}

// Schema is the explicit field-to-rule conversion table driving the
// coercion layer. Keeping it as data rather than inline logic makes each
// field's rule inspectable and independently testable.
type Schema map[string]FieldKind

// DefaultSchema returns the conversion table for the TMDb movies export.
func DefaultSchema() Schema {
	return Schema{
		"id":                   FieldInt,
		"imdb_id":              FieldString,
		"popularity":           FieldFloat,
		"budget":               FieldInt,
		"revenue":              FieldInt,
		"original_title":       FieldString,
		"cast":                 FieldStringList,
		"homepage":             FieldString,
		"director":             FieldStringList,
		"tagline":              FieldString,
		"keywords":             FieldStringList,
		"overview":             FieldString,
		"runtime":              FieldInt,
		"genres":               FieldStringList,
		"production_companies": FieldStringList,
		"release_date":         FieldDate,
		"vote_count":           FieldInt,
		"vote_average":         FieldFloat,
		"release_year":         FieldInt,
		"budget_adj":           FieldMoneyAdj,
		"revenue_adj":          FieldMoneyAdj,
	}
}
