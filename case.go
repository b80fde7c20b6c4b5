package query

import "github.com/go-openapi/inflect"

// Case selects the identifier case conversion applied to field names before
// they are written into SQL. The zero value converts to snake_case; there is
// no pass-through mode, matching the builder's documented default.
type Case string

const (
	Snake  Case = "snake"
	Camel  Case = "camel"
	Pascal Case = "pascal"
	Kebab  Case = "kebab"
)

// convertCase rewrites an identifier in the requested case. Unrecognized
// modes, including the zero value, fall back to snake_case so every
// identifier-emitting path shares one default.
func convertCase(s string, mode Case) string {
	switch mode {
	case Camel:
		return inflect.CamelizeDownFirst(inflect.Underscore(s))
	case Pascal:
		return inflect.Camelize(inflect.Underscore(s))
	case Kebab:
		return inflect.Dasherize(inflect.Underscore(s))
	default:
		return inflect.Underscore(s)
	}
}

// qualify resolves a field against the ambiguous-column map. A mapped field
// is emitted as table.column; an unmapped field is emitted bare. The field
// itself is always case-converted, the table prefix never is.
func qualify(field string, columns map[string]string, mode Case) string {
	if table, ok := columns[field]; ok {
		return table + "." + convertCase(field, mode)
	}
	return convertCase(field, mode)
}
