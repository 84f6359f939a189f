package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/promopilot/promopilot-api/internal/page"
)

// Every entity repository must reject a sort key outside its registry
// before any SQL runs.
func TestAllRepositoriesRejectUnknownSortField(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	bad := page.Request{Number: 1, Size: 5, SortBy: "no_such_column"}
	ctx := context.Background()

	lists := map[string]func() error{
		"campaigns": func() error {
			_, err := NewCampaignRepository(db).List(ctx, bad)
			return err
		},
		"budgets": func() error {
			_, err := NewBudgetRepository(db).List(ctx, bad)
			return err
		},
		"engagements": func() error {
			_, err := NewEngagementRepository(db).List(ctx, bad)
			return err
		},
		"execution statuses": func() error {
			_, err := NewExecutionStatusRepository(db).List(ctx, bad)
			return err
		},
		"sales": func() error {
			_, err := NewSaleRepository(db).List(ctx, bad)
			return err
		},
		"products": func() error {
			_, err := NewProductRepository(db).List(ctx, bad)
			return err
		},
		"customers": func() error {
			_, err := NewCustomerRepository(db).List(ctx, bad)
			return err
		},
		"reports": func() error {
			_, err := NewReportRepository(db).List(ctx, bad)
			return err
		},
	}
	for name, list := range lists {
		t.Run(name, func(t *testing.T) {
			if err := list(); !errors.Is(err, page.ErrInvalidArgument) {
				t.Fatalf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no SQL should have run: %v", err)
	}
}

func TestAllRepositoriesRejectBadPageBounds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cases := []page.Request{
		{Number: 0, Size: 5},
		{Number: 1, Size: 0},
		{Number: 1, Size: page.MaxSize + 1},
	}
	repo := NewProductRepository(db)
	for _, req := range cases {
		if _, err := repo.List(context.Background(), req); !errors.Is(err, page.ErrInvalidArgument) {
			t.Fatalf("req %+v: got %v, want ErrInvalidArgument", req, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no SQL should have run: %v", err)
	}
}
