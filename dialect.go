package query

import "strconv"

// Dialect selects the bind-placeholder syntax used in emitted SQL.
// The set is closed; adding a dialect means extending Placeholder.
type Dialect int

const (
	// Postgres numbers placeholders $1, $2, ... in bind order.
	Postgres Dialect = iota
	// MySQL uses the positional ? placeholder for every bind.
	MySQL
)

// Placeholder returns the dialect's placeholder for the 1-based bind position.
// It is a pure function of (dialect, position).
func (d Dialect) Placeholder(position int) string {
	if d == MySQL {
		return "?"
	}
	return "$" + strconv.Itoa(position)
}

// String returns the lowercase dialect name.
func (d Dialect) String() string {
	if d == MySQL {
		return "mysql"
	}
	return "postgres"
}
