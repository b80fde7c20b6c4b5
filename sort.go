package query

import "strings"

// SortBy is the direction of a sort directive.
type SortBy string

const (
	SortAsc  SortBy = "ASC"
	SortDesc SortBy = "DESC"
)

// Sort is a parsed sort directive. The textual form is always
// "field-asc" or "field-desc"; rendering is "field ASC" / "field DESC".
// Values are immutable after construction.
type Sort struct {
	Field string
	By    SortBy
}

// ParseSort parses a "field-direction" token. The token is split on the
// first hyphen; the field is taken verbatim with no trimming or validation
// (allow-list checks happen in the URL-query layer before construction).
func ParseSort(token string) (Sort, error) {
	field, direction, ok := strings.Cut(token, "-")
	if !ok {
		return Sort{}, ErrInvalidSort
	}
	switch direction {
	case "asc":
		return Sort{Field: field, By: SortAsc}, nil
	case "desc":
		return Sort{Field: field, By: SortDesc}, nil
	default:
		return Sort{}, ErrInvalidSortBy
	}
}

// String renders the directive with the field verbatim.
func (s Sort) String() string {
	return s.Field + " " + string(s.By)
}

// ToSQL renders the directive with the field case-converted for SQL.
func (s Sort) ToSQL(mode Case) string {
	return convertCase(s.Field, mode) + " " + string(s.By)
}

// Qualified renders the directive with an optional table prefix.
// An empty table means no qualification.
func (s Sort) Qualified(table string, mode Case) string {
	if table != "" {
		return table + "." + s.ToSQL(mode)
	}
	return s.ToSQL(mode)
}
