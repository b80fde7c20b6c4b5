package query

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/zoobzio/capitan"
)

// Executor runs built statements through sqlx with typed argument binding.
//
// The db parameter accepts sqlx.ExtContext, which is satisfied by both
// *sqlx.DB and *sqlx.Tx, enabling transaction support by passing a
// transaction instead of a database connection.
type Executor struct {
	db    sqlx.ExtContext
	types TypeMap
}

// NewExecutor creates an Executor with the converters used to bind string
// arguments to native database types.
func NewExecutor(db sqlx.ExtContext, types TypeMap) *Executor {
	e := &Executor{db: db, types: types}

	capitan.Emit(context.Background(), ExecutorCreated)

	return e
}

// Select builds the statement, binds its arguments, and scans all rows into
// dest, which must be a pointer to a slice.
func (e *Executor) Select(ctx context.Context, dest any, b *Builder) error {
	stmt, bound, err := e.prepare(b)
	if err != nil {
		return err
	}
	start := time.Now()
	err = sqlx.SelectContext(ctx, e.db, dest, stmt, bound...)
	e.emit(stmt, start, err)
	return err
}

// Get builds the statement, binds its arguments, and scans the first row
// into dest. Returns sql.ErrNoRows when nothing matches.
func (e *Executor) Get(ctx context.Context, dest any, b *Builder) error {
	stmt, bound, err := e.prepare(b)
	if err != nil {
		return err
	}
	start := time.Now()
	err = sqlx.GetContext(ctx, e.db, dest, stmt, bound...)
	e.emit(stmt, start, err)
	return err
}

// Exec builds the statement, binds its arguments, and executes it without
// scanning rows.
func (e *Executor) Exec(ctx context.Context, b *Builder) (sql.Result, error) {
	stmt, bound, err := e.prepare(b)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := e.db.ExecContext(ctx, stmt, bound...)
	e.emit(stmt, start, err)
	return res, err
}

func (e *Executor) prepare(b *Builder) (string, []any, error) {
	stmt, args := b.Build()
	bound, err := BindArgs(args, e.types)
	if err != nil {
		return "", nil, err
	}
	return stmt, bound, nil
}

func (e *Executor) emit(stmt string, start time.Time, err error) {
	if err != nil {
		capitan.Emit(context.Background(), StatementExecuted,
			KeySQL.Field(stmt),
			KeyDuration.Field(time.Since(start)),
			KeyError.Field(err.Error()))
		return
	}
	capitan.Emit(context.Background(), StatementExecuted,
		KeySQL.Field(stmt),
		KeyDuration.Field(time.Since(start)))
}
