package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
	"github.com/promopilot/promopilot-api/internal/repository"
)

// ExistenceChecker answers whether a referenced entity id is present.
// Campaign and customer repositories both satisfy it.
type ExistenceChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// BudgetStore is the budget storage the service needs.
type BudgetStore interface {
	Create(ctx context.Context, b *model.Budget) error
	GetByID(ctx context.Context, id int) (*model.Budget, error)
	List(ctx context.Context, req page.Request) (page.Result[model.Budget], error)
	Update(ctx context.Context, b *model.Budget) error
	Delete(ctx context.Context, id int) error
}

// BudgetService guards budget allocation. Spend can never exceed allocation.
type BudgetService struct {
	store     BudgetStore
	campaigns ExistenceChecker
	audit     *AuditLogger
}

func NewBudgetService(store BudgetStore, campaigns ExistenceChecker, audit *AuditLogger) *BudgetService {
	return &BudgetService{store: store, campaigns: campaigns, audit: audit}
}

func (s *BudgetService) validate(ctx context.Context, b *model.Budget) error {
	if b.AllocatedAmount < 0 || b.SpentAmount < 0 {
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalidArgument)
	}
	if b.SpentAmount > b.AllocatedAmount {
		return fmt.Errorf("%w: spent amount exceeds allocated amount", ErrConflict)
	}
	ok, err := s.campaigns.Exists(ctx, b.CampaignID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: campaign %d", ErrNotFound, b.CampaignID)
	}
	return nil
}

// Allocate creates a budget for one campaign and store.
func (s *BudgetService) Allocate(ctx context.Context, b *model.Budget) (*model.Budget, error) {
	if err := s.validate(ctx, b); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "Create", "Budget", strconv.Itoa(b.BudgetID), b)
	return b, nil
}

func (s *BudgetService) GetByID(ctx context.Context, id int) (*model.Budget, error) {
	b, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: budget %d", ErrNotFound, id)
	}
	return b, err
}

func (s *BudgetService) List(ctx context.Context, req page.Request) (page.Result[model.Budget], error) {
	res, err := s.store.List(ctx, req)
	if errors.Is(err, page.ErrInvalidArgument) {
		return res, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return res, err
}

func (s *BudgetService) Update(ctx context.Context, b *model.Budget) (*model.Budget, error) {
	if err := s.validate(ctx, b); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: budget %d", ErrNotFound, b.BudgetID)
		}
		return nil, err
	}
	s.audit.Record(ctx, "Update", "Budget", strconv.Itoa(b.BudgetID), b)
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: budget %d", ErrNotFound, id)
		}
		return err
	}
	s.audit.Record(ctx, "Delete", "Budget", strconv.Itoa(id), nil)
	return nil
}
