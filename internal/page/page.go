// Package page is the shared paged-query engine behind every list endpoint.
// Each entity repository declares a Fields registry (exposed sort key ->
// backing column) and hands the engine its SELECT/COUNT statements; the
// engine validates the request, builds a deterministic ORDER BY and runs the
// count-then-fetch sequence. Only registered names can ever reach an ORDER BY.
package page

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument flags a bad page number, page size or sort field.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	// DefaultSize is applied when a list request carries no pageSize.
	DefaultSize = 5
	// MaxSize bounds pageSize for every entity type.
	MaxSize = 100
)

// Request is one paging request as parsed from the query string.
// Number is 1-based.
type Request struct {
	Number   int
	Size     int
	SortBy   string
	SortDesc bool
}

// Validate checks the paging bounds shared by every list endpoint.
func (r Request) Validate() error {
	if r.Number < 1 {
		return fmt.Errorf("%w: page number must be greater than zero", ErrInvalidArgument)
	}
	if r.Size < 1 || r.Size > MaxSize {
		return fmt.Errorf("%w: page size must be between 1 and %d", ErrInvalidArgument, MaxSize)
	}
	return nil
}

// Offset returns the number of rows skipped before this page.
func (r Request) Offset() int { return (r.Number - 1) * r.Size }

// Result is one page of items plus the total count of the unsliced set.
type Result[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
}

// Field maps one exposed sort key to the column backing it.
type Field struct {
	Name   string
	Column string
}

// Fields is the sortable-attribute registry of one entity type. The id
// column supplies the default order and the tie-break that keeps paging
// deterministic across pages.
type Fields struct {
	idColumn string
	fields   []Field
}

// NewFields builds a registry. idColumn must also appear in fields if it is
// meant to be requestable by name.
func NewFields(idColumn string, fields ...Field) Fields {
	return Fields{idColumn: idColumn, fields: fields}
}

// Names returns the exposed sort keys in declaration order.
func (f Fields) Names() []string {
	names := make([]string, len(f.fields))
	for i, fd := range f.fields {
		names[i] = fd.Name
	}
	return names
}

// Resolve maps a requested sort key to its column. The empty key resolves to
// the empty column (default order). Unknown keys are rejected with the
// allowed names in the error detail.
func (f Fields) Resolve(sortBy string) (string, error) {
	if sortBy == "" {
		return "", nil
	}
	for _, fd := range f.fields {
		if fd.Name == sortBy {
			return fd.Column, nil
		}
	}
	return "", fmt.Errorf("%w: invalid sort field: %s, allowed fields are: %s",
		ErrInvalidArgument, sortBy, strings.Join(f.Names(), ", "))
}

// OrderBy builds the ORDER BY clause for the request. Any explicit sort gets
// an ascending id tie-break so that rows with equal sort values do not drift
// between pages.
func (f Fields) OrderBy(r Request) (string, error) {
	col, err := f.Resolve(r.SortBy)
	if err != nil {
		return "", err
	}
	if col == "" {
		return "ORDER BY " + f.idColumn + " ASC", nil
	}
	dir := "ASC"
	if r.SortDesc {
		dir = "DESC"
	}
	if col == f.idColumn {
		return fmt.Sprintf("ORDER BY %s %s", col, dir), nil
	}
	return fmt.Sprintf("ORDER BY %s %s, %s ASC", col, dir, f.idColumn), nil
}

// Query runs the count-then-fetch sequence: validate, COUNT over the full
// filtered source, then SELECT the slice with ORDER BY/LIMIT/OFFSET. Pages
// past the end return empty items with the correct total. args apply to both
// statements (same WHERE clause).
//
// The two statements are not wrapped in a transaction; under concurrent
// writes the count and the returned rows can reflect different instants.
func Query[T any](ctx context.Context, db *sql.DB, req Request, fields Fields,
	selectSQL, countSQL string, args []any, scan func(*sql.Rows) (T, error)) (Result[T], error) {

	out := Result[T]{Items: []T{}, PageNumber: req.Number, PageSize: req.Size}
	if err := req.Validate(); err != nil {
		return out, err
	}
	orderBy, err := fields.OrderBy(req)
	if err != nil {
		return out, err
	}

	if err := db.QueryRowContext(ctx, countSQL, args...).Scan(&out.TotalCount); err != nil {
		return out, err
	}
	if int64(req.Offset()) >= out.TotalCount {
		return out, nil
	}

	q := selectSQL + " " + orderBy + " LIMIT ? OFFSET ?"
	qArgs := append(append([]any{}, args...), req.Size, req.Offset())
	rows, err := db.QueryContext(ctx, q, qArgs...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return out, err
		}
		out.Items = append(out.Items, item)
	}
	if err := rows.Err(); err != nil {
		return out, err
	}
	return out, nil
}
