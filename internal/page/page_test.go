package page

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func testFields() Fields {
	return NewFields("campaign_id",
		Field{Name: "campaign_id", Column: "campaign_id"},
		Field{Name: "name", Column: "name"},
		Field{Name: "start_date", Column: "start_date"},
	)
}

func TestRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"first page default size", Request{Number: 1, Size: DefaultSize}, false},
		{"max size", Request{Number: 3, Size: MaxSize}, false},
		{"zero page number", Request{Number: 0, Size: 10}, true},
		{"negative page number", Request{Number: -2, Size: 10}, true},
		{"zero size", Request{Number: 1, Size: 0}, true},
		{"size over max", Request{Number: 1, Size: MaxSize + 1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFieldsResolve(t *testing.T) {
	f := testFields()

	col, err := f.Resolve("name")
	if err != nil || col != "name" {
		t.Fatalf("Resolve(name) = %q, %v", col, err)
	}

	col, err = f.Resolve("")
	if err != nil || col != "" {
		t.Fatalf("Resolve(empty) = %q, %v", col, err)
	}

	_, err = f.Resolve("password_hash")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if !strings.Contains(err.Error(), "campaign_id, name, start_date") {
		t.Fatalf("error should list allowed fields, got %q", err)
	}
}

func TestFieldsOrderBy(t *testing.T) {
	f := testFields()
	cases := []struct {
		name string
		req  Request
		want string
	}{
		{"default order", Request{Number: 1, Size: 5}, "ORDER BY campaign_id ASC"},
		{"explicit asc", Request{Number: 1, Size: 5, SortBy: "name"}, "ORDER BY name ASC, campaign_id ASC"},
		{"explicit desc", Request{Number: 1, Size: 5, SortBy: "start_date", SortDesc: true}, "ORDER BY start_date DESC, campaign_id ASC"},
		{"sort by id desc", Request{Number: 1, Size: 5, SortBy: "campaign_id", SortDesc: true}, "ORDER BY campaign_id DESC"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.OrderBy(tc.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("OrderBy = %q, want %q", got, tc.want)
			}
		})
	}
}

type row struct {
	id   int
	name string
}

func scanRow(rows *sql.Rows) (row, error) {
	var r row
	err := rows.Scan(&r.id, &r.name)
	return r, err
}

func TestQueryPaging(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	const (
		selectSQL = "SELECT campaign_id, name FROM campaigns"
		countSQL  = "SELECT COUNT(*) FROM campaigns"
	)
	f := testFields()

	// Page 1 of 2: three rows total, two returned.
	mock.ExpectQuery(countSQL).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(selectSQL + " ORDER BY campaign_id ASC LIMIT ? OFFSET ?").
		WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id", "name"}).
			AddRow(1, "spring push").
			AddRow(2, "summer clearance"))

	res, err := Query(context.Background(), db, Request{Number: 1, Size: 2}, f,
		selectSQL, countSQL, nil, scanRow)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if res.TotalCount != 3 || len(res.Items) != 2 {
		t.Fatalf("page 1: total=%d items=%d", res.TotalCount, len(res.Items))
	}
	if res.Items[0].name != "spring push" || res.Items[1].id != 2 {
		t.Fatalf("page 1: unexpected rows %+v", res.Items)
	}

	// Page 2 of 2: the trailing row.
	mock.ExpectQuery(countSQL).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(selectSQL + " ORDER BY campaign_id ASC LIMIT ? OFFSET ?").
		WithArgs(2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id", "name"}).
			AddRow(3, "back to school"))

	res, err = Query(context.Background(), db, Request{Number: 2, Size: 2}, f,
		selectSQL, countSQL, nil, scanRow)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if res.TotalCount != 3 || len(res.Items) != 1 || res.Items[0].id != 3 {
		t.Fatalf("page 2: total=%d items=%+v", res.TotalCount, res.Items)
	}

	// Page 3 is past the end: only the COUNT runs.
	mock.ExpectQuery(countSQL).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	res, err = Query(context.Background(), db, Request{Number: 3, Size: 2}, f,
		selectSQL, countSQL, nil, scanRow)
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if res.TotalCount != 3 || len(res.Items) != 0 {
		t.Fatalf("page 3: total=%d items=%d", res.TotalCount, len(res.Items))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQueryRejectsBadSort(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	_, err = Query(context.Background(), db, Request{Number: 1, Size: 5, SortBy: "secret"},
		testFields(), "SELECT 1", "SELECT COUNT(*)", nil, scanRow)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no queries should have run: %v", err)
	}
}
