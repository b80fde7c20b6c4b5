package query

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Conv converts a raw string argument into a driver-ready value.
type Conv func(string) (any, error)

// TypeMap assigns a converter to each model field that can appear as a bind
// argument.
type TypeMap map[string]Conv

// Stock converters for TypeMap entries.
var (
	// String passes the raw value through unchanged.
	String Conv = func(s string) (any, error) { return s, nil }

	// Int parses a base-10 int.
	Int Conv = func(s string) (any, error) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	// Int64 parses a base-10 int64.
	Int64 Conv = func(s string) (any, error) {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	// Float64 parses a float64.
	Float64 Conv = func(s string) (any, error) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	// Bool parses a bool with strconv semantics.
	Bool Conv = func(s string) (any, error) {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	// Time parses an RFC 3339 timestamp.
	Time Conv = func(s string) (any, error) {
		v, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	// UUID parses a UUID in any format uuid.Parse accepts.
	UUID Conv = func(s string) (any, error) {
		v, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
)

// BindArgs converts build arguments into a positional value slice whose order
// matches the statement's placeholder numbering. Every argument field must
// have a converter; a missing entry or a conversion failure aborts the whole
// bind, since a partially bound statement cannot execute.
func BindArgs(args []Arg, types TypeMap) ([]any, error) {
	out := make([]any, 0, len(args))
	for _, a := range args {
		conv, ok := types[a.Field]
		if !ok {
			return nil, fmt.Errorf("bind %q: %w", a.Field, ErrUnknownField)
		}
		v, err := conv(a.Value)
		if err != nil {
			return nil, fmt.Errorf("bind %q: %w", a.Field, err)
		}
		out = append(out, v)
	}
	return out, nil
}
