package query

import "strings"

// Filter is anything that can render itself as a single SQL predicate.
// The builder stays decoupled from operator semantics: it only hands the
// filter a bind position, an optional table qualifier, the active case mode,
// and the dialect, and records the filter's field/value pair as a bind
// argument.
type Filter interface {
	// Predicate renders the SQL fragment for this filter. position is the
	// 1-based bind position to embed; table is empty when the column needs
	// no qualification.
	Predicate(position int, table string, mode Case, d Dialect) string

	// Field returns the model field name this filter constrains.
	Field() string

	// Value returns the raw string value to bind.
	Value() string
}

// operators is the condition vocabulary: token → SQL comparison.
var operators = map[string]string{
	"eq":   "=",
	"ne":   "!=",
	"gt":   ">",
	"ge":   ">=",
	"lt":   "<",
	"le":   "<=",
	"like": "LIKE",
}

// Condition is the stock Filter implementation: a field-operator-value
// triple parsed from a URL query.
type Condition struct {
	field string
	op    string
	value string
}

// NewCondition constructs a condition, validating the operator token.
func NewCondition(field, op, value string) (Condition, error) {
	if _, ok := operators[op]; !ok {
		return Condition{}, ErrInvalidOperator
	}
	return Condition{field: field, op: op, value: value}, nil
}

// ParseCondition parses a "field-operator-value" filter token.
// Values may themselves contain hyphens; only the first two split.
func ParseCondition(token string) (Condition, error) {
	parts := strings.SplitN(token, "-", 3)
	if len(parts) != 3 {
		return Condition{}, ErrInvalidFilter
	}
	return NewCondition(parts[0], parts[1], parts[2])
}

// Field returns the condition's field name.
func (c Condition) Field() string { return c.field }

// Value returns the condition's raw value.
func (c Condition) Value() string { return c.value }

// Operator returns the SQL comparison for the condition's operator token.
func (c Condition) Operator() string { return operators[c.op] }

// Predicate renders "[table.]column <op> <placeholder>".
func (c Condition) Predicate(position int, table string, mode Case, d Dialect) string {
	var sb strings.Builder
	if table != "" {
		sb.WriteString(table)
		sb.WriteString(".")
	}
	sb.WriteString(convertCase(c.field, mode))
	sb.WriteString(" ")
	sb.WriteString(operators[c.op])
	sb.WriteString(" ")
	sb.WriteString(d.Placeholder(position))
	return sb.String()
}
