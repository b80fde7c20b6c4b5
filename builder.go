// Package query translates a parsed URL query into a parameterized SQL
// statement plus an ordered list of bind arguments.
//
// # Quick Start
//
// Parse the query string against an allow-list:
//
//	parsed, err := query.ParseURLQuery(
//	    "userId=123&filter[]=price-ge-200&sort=price-desc&limit=10",
//	    "userId", "price",
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Build the statement:
//
//	sql, args := query.NewBuilder("orders", []string{"id", "status"}, parsed).Build()
//	// sql:  SELECT id, status FROM orders WHERE user_id = $1 AND price >= $2 ORDER BY price DESC LIMIT 10
//	// args: [{userId 123} {price 200}]
//
// Bind the string arguments to native types and execute through sqlx:
//
//	bound, err := query.BindArgs(args, query.TypeMap{
//	    "userId": query.Int64,
//	    "price":  query.Float64,
//	})
//	err = db.SelectContext(ctx, &orders, sql, bound...)
package query

import (
	"context"
	"strconv"
	"strings"

	"github.com/zoobzio/capitan"
)

// Arg is a bind argument: the model field name and its raw string value.
// The Nth Arg returned by a build corresponds to the Nth placeholder in the
// statement's WHERE clause. Type conversion is the binder's job, not ours.
type Arg struct {
	Field string
	Value string
}

// Source is the structured query model a Builder consumes. *UrlQuery is the
// stock implementation; anything exposing the same shape works.
type Source interface {
	// Filters returns the filters in model order.
	Filters() []Filter
	// GroupField returns the group field, or "" when absent.
	GroupField() string
	// SortDirective returns the sort directive, or nil when absent.
	SortDirective() *Sort
	// CheckLimit returns validated limit text, or an error gating the clause.
	CheckLimit() (string, error)
	// CheckOffset returns validated offset text, or an error gating the clause.
	CheckOffset() (string, error)
}

// Builder assembles a SQL statement from a Source. Configure it with the
// chained setters, then call Build exactly once; the builder is consumed by
// Build and must not be reused or shared between goroutines. Independent
// builders are safe to use concurrently.
//
// Emitted clause order is always WHERE, GROUP BY, ORDER BY, LIMIT, OFFSET,
// independent of configuration order.
type Builder struct {
	src     Source
	dialect Dialect
	columns map[string]string
	shift   int
	mode    Case
	sql     strings.Builder
}

// NewBuilder seeds the statement as "SELECT <columns> FROM <table>".
// An empty column list produces degenerate but accepted SQL ("SELECT  FROM t").
func NewBuilder(table string, columns []string, src Source) *Builder {
	b := &Builder{src: src}
	b.sql.WriteString("SELECT ")
	b.sql.WriteString(strings.Join(columns, ", "))
	b.sql.WriteString(" FROM ")
	b.sql.WriteString(table)
	return b
}

// NewBuilderFromSQL seeds the statement verbatim with a caller-supplied
// SELECT prefix, typically one that already contains joins.
func NewBuilderFromSQL(sql string, src Source) *Builder {
	b := &Builder{src: src}
	b.sql.WriteString(sql)
	return b
}

// Dialect selects the placeholder syntax. The default is Postgres.
func (b *Builder) Dialect(d Dialect) *Builder {
	b.dialect = d
	return b
}

// Append writes a single space and then the fragment verbatim.
// Used for JOIN clauses and other raw additions.
func (b *Builder) Append(fragment string) *Builder {
	b.sql.WriteString(" ")
	b.sql.WriteString(fragment)
	return b
}

// MapColumns supplies a field → table map used to qualify ambiguous columns
// as table.column in WHERE, GROUP BY, and ORDER BY.
func (b *Builder) MapColumns(columns map[string]string) *Builder {
	b.columns = columns
	return b
}

// ShiftBind shifts placeholder numbering for statements whose prefix already
// contains bind placeholders. With a shift of 1 the first appended filter
// renders $2.
func (b *Builder) ShiftBind(n int) *Builder {
	b.shift = n
	return b
}

// ConvertCase sets the identifier case conversion. Unset means snake_case.
func (b *Builder) ConvertCase(mode Case) *Builder {
	b.mode = mode
	return b
}

// AppendWhere renders every filter in model order, joined with " AND ", and
// returns the bind arguments in the same order. The WHERE keyword is written
// only when at least one filter exists; with none this is a no-op returning
// nil.
func (b *Builder) AppendWhere() []Arg {
	filters := b.src.Filters()
	if len(filters) == 0 {
		return nil
	}

	predicates := make([]string, 0, len(filters))
	args := make([]Arg, 0, len(filters))
	for _, f := range filters {
		table := b.columns[f.Field()]
		predicates = append(predicates, f.Predicate(len(args)+b.shift+1, table, b.mode, b.dialect))
		args = append(args, Arg{Field: f.Field(), Value: f.Value()})
	}

	b.sql.WriteString(" WHERE ")
	b.sql.WriteString(strings.Join(predicates, " AND "))
	return args
}

// AppendGroup writes the GROUP BY clause. No-op when the model has no group
// field. The field is a plain identifier: qualified if mapped, never suffixed
// with a direction.
func (b *Builder) AppendGroup() {
	group := b.src.GroupField()
	if group == "" {
		return
	}
	b.sql.WriteString(" GROUP BY ")
	b.sql.WriteString(qualify(group, b.columns, b.mode))
}

// AppendSort writes the ORDER BY clause from the model's sort directive.
// No-op when the model has no sort.
func (b *Builder) AppendSort() {
	sort := b.src.SortDirective()
	if sort == nil {
		return
	}
	b.sql.WriteString(" ORDER BY ")
	b.sql.WriteString(sort.Qualified(b.columns[sort.Field], b.mode))
}

// Build consumes the builder and returns the statement with its bind
// arguments. Limit is appended only when the model validates it; offset only
// when limit succeeded and offset validates. Validation failures omit the
// clause silently rather than failing the statement.
func (b *Builder) Build() (string, []Arg) {
	args := b.AppendWhere()
	b.AppendGroup()
	b.AppendSort()

	if limit, err := b.src.CheckLimit(); err == nil {
		b.sql.WriteString(" LIMIT ")
		b.sql.WriteString(limit)

		if offset, err := b.src.CheckOffset(); err == nil {
			b.sql.WriteString(" OFFSET ")
			b.sql.WriteString(offset)
		}
	}

	sql := b.sql.String()

	capitan.Emit(context.Background(), StatementBuilt,
		KeySQL.Field(sql),
		KeyDialect.Field(b.dialect.String()),
		KeyArgs.Field(strconv.Itoa(len(args))))

	return sql, args
}
