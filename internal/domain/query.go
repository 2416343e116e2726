// Package domain contains the core types shared by the vendor clients,
// the cache-backed facade and the HTTP handlers.
// This package has no external dependencies (only stdlib).
package domain

import (
	"net/url"
	"sort"
	"strings"
)

// Query is the normalized, request-scoped representation of one vendor lookup.
type Query struct {
	Category  Category
	Operation string
	Params    map[string]string
}

// NewQuery builds a Query, dropping params with empty values so that an
// absent optional parameter and an empty one map to the same cache key.
func NewQuery(category Category, operation string, params map[string]string) Query {
	clean := make(map[string]string, len(params))
	for name, value := range params {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		clean[name] = value
	}

	return Query{
		Category:  category,
		Operation: operation,
		Params:    clean,
	}
}

// Param returns the value of the named parameter, or "" when absent.
func (q Query) Param(name string) string {
	return q.Params[name]
}

// Key returns the deterministic cache key for the query.
// Format: category:operation:name1=value1:name2=value2 with names sorted.
//
// Example:
//
//	streaming:search:country=us:title=breaking+bad
func (q Query) Key() string {
	parts := make([]string, 0, len(q.Params)+2)
	parts = append(parts, string(q.Category), q.Operation)

	names := make([]string, 0, len(q.Params))
	for name := range q.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		parts = append(parts, url.QueryEscape(name)+"="+url.QueryEscape(q.Params[name]))
	}

	return strings.Join(parts, ":")
}

// NormalizeText lower-cases s, trims it and collapses inner whitespace.
// Free-text queries are normalized before keying so "Happy  Movies" and
// "happy movies" share one cache entry.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
