package query

import "errors"

// Parse errors surfaced while constructing a query model. All of them are
// sentinel values so callers can branch with errors.Is.
var (
	// ErrInvalidSort indicates a sort token with no field-direction separator.
	ErrInvalidSort = errors.New("invalid sort: expected field-direction")

	// ErrInvalidSortBy indicates a sort direction other than asc or desc.
	ErrInvalidSortBy = errors.New("invalid sort direction: expected asc or desc")

	// ErrInvalidFilter indicates a filter token that is not field-operator-value.
	ErrInvalidFilter = errors.New("invalid filter: expected field-operator-value")

	// ErrInvalidOperator indicates a filter operator outside the supported vocabulary.
	ErrInvalidOperator = errors.New("invalid filter operator")

	// ErrFieldNotAllowed indicates a field that is not in the caller's allow-list.
	ErrFieldNotAllowed = errors.New("field not allowed")

	// ErrMissingLimit indicates no limit parameter was supplied.
	ErrMissingLimit = errors.New("limit not present")

	// ErrInvalidLimit indicates a limit parameter that is not a non-negative integer.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrMissingOffset indicates no offset parameter was supplied.
	ErrMissingOffset = errors.New("offset not present")

	// ErrInvalidOffset indicates an offset parameter that is not a non-negative integer.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrUnknownField indicates a bind argument with no registered converter.
	ErrUnknownField = errors.New("no converter registered for field")
)
