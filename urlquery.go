package query

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/zoobzio/capitan"
)

// Reserved query-string keys. Any other key is treated as an equality filter.
const (
	keyFilter = "filter[]"
	keySort   = "sort"
	keyGroup  = "group"
	keyLimit  = "limit"
	keyOffset = "offset"
)

// UrlQuery is the structured query model parsed from a raw query string.
// Filters keep their query-string order; group, sort, limit, and offset are
// optional. A UrlQuery satisfies Source and is consumed by a Builder.
type UrlQuery struct {
	filters []Filter
	group   string
	sort    *Sort
	limit   string
	offset  string
}

// ParseURLQuery parses a raw query string against an allow-list of field
// names. Bare key=value pairs become equality filters; filter[]=field-op-value
// tokens carry their own operator; sort, group, limit, and offset are picked
// up from their reserved keys. Every referenced field must appear in the
// allow-list.
func ParseURLQuery(raw string, allowed ...string) (*UrlQuery, error) {
	permit := make(map[string]bool, len(allowed))
	for _, f := range allowed {
		permit[f] = true
	}

	q := &UrlQuery{}
	if err := q.parse(raw, permit); err != nil {
		capitan.Emit(context.Background(), ParseFailed,
			KeyToken.Field(raw),
			KeyError.Field(err.Error()))
		return nil, err
	}

	capitan.Emit(context.Background(), QueryParsed,
		KeyArgs.Field(strconv.Itoa(len(q.filters))))
	return q, nil
}

func (q *UrlQuery) parse(raw string, permit map[string]bool) error {
	raw = strings.TrimPrefix(raw, "?")
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return fmt.Errorf("parse key %q: %w", k, err)
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return fmt.Errorf("parse value %q: %w", v, err)
		}

		switch key {
		case keyFilter:
			cond, err := ParseCondition(value)
			if err != nil {
				return fmt.Errorf("filter %q: %w", value, err)
			}
			if !permit[cond.Field()] {
				return fmt.Errorf("filter field %q: %w", cond.Field(), ErrFieldNotAllowed)
			}
			q.filters = append(q.filters, cond)

		case keySort:
			sort, err := ParseSort(value)
			if err != nil {
				return fmt.Errorf("sort %q: %w", value, err)
			}
			if !permit[sort.Field] {
				return fmt.Errorf("sort field %q: %w", sort.Field, ErrFieldNotAllowed)
			}
			q.sort = &sort

		case keyGroup:
			if !permit[value] {
				return fmt.Errorf("group field %q: %w", value, ErrFieldNotAllowed)
			}
			q.group = value

		case keyLimit:
			q.limit = value

		case keyOffset:
			q.offset = value

		default:
			if !permit[key] {
				return fmt.Errorf("field %q: %w", key, ErrFieldNotAllowed)
			}
			cond, err := NewCondition(key, "eq", value)
			if err != nil {
				return err
			}
			q.filters = append(q.filters, cond)
		}
	}
	return nil
}

// Filters returns the filters in query-string order.
func (q *UrlQuery) Filters() []Filter { return q.filters }

// GroupField returns the group field, or "" when absent.
func (q *UrlQuery) GroupField() string { return q.group }

// SortDirective returns the sort directive, or nil when absent.
func (q *UrlQuery) SortDirective() *Sort { return q.sort }

// CheckLimit returns the limit as validated text. It fails when the limit is
// absent or not a non-negative base-10 integer.
func (q *UrlQuery) CheckLimit() (string, error) {
	if q.limit == "" {
		return "", ErrMissingLimit
	}
	if _, err := strconv.ParseUint(q.limit, 10, 64); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLimit, q.limit)
	}
	return q.limit, nil
}

// CheckOffset returns the offset as validated text. It fails when the offset
// is absent or not a non-negative base-10 integer.
func (q *UrlQuery) CheckOffset() (string, error) {
	if q.offset == "" {
		return "", ErrMissingOffset
	}
	if _, err := strconv.ParseUint(q.offset, 10, 64); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidOffset, q.offset)
	}
	return q.offset, nil
}
