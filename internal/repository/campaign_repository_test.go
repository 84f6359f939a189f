package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/promopilot/promopilot-api/internal/page"
)

func TestCampaignList(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewCampaignRepository(db)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	mock.ExpectQuery(`SELECT COUNT(*) FROM campaigns`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT ` + campaignColumns + ` FROM campaigns ORDER BY name DESC, campaign_id ASC LIMIT ? OFFSET ?`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id", "name", "start_date", "end_date", "target_products", "store_list"}).
			AddRow(2, "winter sale", start, end, "1,2", "StoreA,StoreB").
			AddRow(1, "spring push", start, end, "3", "StoreC"))

	res, err := repo.List(context.Background(), page.Request{Number: 1, Size: 10, SortBy: "name", SortDesc: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.TotalCount != 2 || len(res.Items) != 2 {
		t.Fatalf("total=%d items=%d", res.TotalCount, len(res.Items))
	}
	if res.Items[0].Name != "winter sale" || res.Items[1].CampaignID != 1 {
		t.Fatalf("unexpected rows: %+v", res.Items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCampaignGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewCampaignRepository(db)

	mock.ExpectQuery(`SELECT ` + campaignColumns + ` FROM campaigns WHERE campaign_id = ?`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id"}))

	_, err = repo.GetByID(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
