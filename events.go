package query

import "github.com/zoobzio/capitan"

// Event keys for structured logging.
var (
	KeySQL      = capitan.NewStringKey("sql")
	KeyDialect  = capitan.NewStringKey("dialect")
	KeyToken    = capitan.NewStringKey("token")
	KeyArgs     = capitan.NewStringKey("args")
	KeyError    = capitan.NewStringKey("error")
	KeyDuration = capitan.NewDurationKey("duration")
)

// Signals emitted by query.
var (
	QueryParsed       = capitan.NewSignal("query.parsed", "URL query parsed into a model")
	ParseFailed       = capitan.NewSignal("query.parse.failed", "URL query rejected")
	StatementBuilt    = capitan.NewSignal("query.statement.built", "SQL statement assembled")
	StatementExecuted = capitan.NewSignal("query.statement.executed", "Statement executed against the database")
	ExecutorCreated   = capitan.NewSignal("query.executor.created", "Executor instance created")
)
