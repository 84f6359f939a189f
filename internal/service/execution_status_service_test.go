package service

import (
	"context"
	"errors"
	"testing"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
)

type mockExecutionStatusStore struct {
	create  func(ctx context.Context, s *model.ExecutionStatus) error
	getByID func(ctx context.Context, id int) (*model.ExecutionStatus, error)
	list    func(ctx context.Context, req page.Request) (page.Result[model.ExecutionStatus], error)
	update  func(ctx context.Context, s *model.ExecutionStatus) error
	delete  func(ctx context.Context, id int) error
}

func (m *mockExecutionStatusStore) Create(ctx context.Context, s *model.ExecutionStatus) error {
	return m.create(ctx, s)
}
func (m *mockExecutionStatusStore) GetByID(ctx context.Context, id int) (*model.ExecutionStatus, error) {
	return m.getByID(ctx, id)
}
func (m *mockExecutionStatusStore) List(ctx context.Context, req page.Request) (page.Result[model.ExecutionStatus], error) {
	return m.list(ctx, req)
}
func (m *mockExecutionStatusStore) Update(ctx context.Context, s *model.ExecutionStatus) error {
	return m.update(ctx, s)
}
func (m *mockExecutionStatusStore) Delete(ctx context.Context, id int) error {
	return m.delete(ctx, id)
}

func TestCreateExecutionStatus(t *testing.T) {
	store := &mockExecutionStatusStore{
		create: func(_ context.Context, s *model.ExecutionStatus) error { s.StatusID = 5; return nil },
	}
	audit, _ := testAudit()
	svc := NewExecutionStatusService(store, existsFunc(alwaysExists), audit)

	es, err := svc.Create(context.Background(), &model.ExecutionStatus{
		CampaignID: 1, StoreID: 2, Status: model.StatusInProgress,
		Feedback: "shelves restocked on time",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if es.StatusID != 5 {
		t.Fatalf("id = %d", es.StatusID)
	}
}

func TestExecutionStatusValidation(t *testing.T) {
	audit, _ := testAudit()
	svc := NewExecutionStatusService(&mockExecutionStatusStore{}, existsFunc(alwaysExists), audit)

	cases := []struct {
		name string
		es   model.ExecutionStatus
	}{
		{"unknown status", model.ExecutionStatus{CampaignID: 1, Status: "Paused"}},
		{"short feedback", model.ExecutionStatus{CampaignID: 1, Status: model.StatusPending, Feedback: "too slow"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), &tc.es); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("got %v, want ErrInvalidArgument", err)
			}
		})
	}

	// Empty feedback is allowed.
	store := &mockExecutionStatusStore{create: func(context.Context, *model.ExecutionStatus) error { return nil }}
	svc = NewExecutionStatusService(store, existsFunc(alwaysExists), audit)
	if _, err := svc.Create(context.Background(), &model.ExecutionStatus{
		CampaignID: 1, Status: model.StatusCompleted,
	}); err != nil {
		t.Fatalf("empty feedback must pass: %v", err)
	}
}

func TestExecutionStatusUnknownCampaign(t *testing.T) {
	audit, _ := testAudit()
	svc := NewExecutionStatusService(&mockExecutionStatusStore{}, existsFunc(neverExists), audit)

	_, err := svc.Create(context.Background(), &model.ExecutionStatus{
		CampaignID: 9, Status: model.StatusPending,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
