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

// EngagementStore is the engagement storage the service needs.
type EngagementStore interface {
	Create(ctx context.Context, e *model.Engagement) error
	GetByID(ctx context.Context, id int) (*model.Engagement, error)
	List(ctx context.Context, req page.Request) (page.Result[model.Engagement], error)
	Update(ctx context.Context, e *model.Engagement) error
	Delete(ctx context.Context, id int) error
}

// EngagementService tracks customer interactions with campaigns.
type EngagementService struct {
	store     EngagementStore
	campaigns ExistenceChecker
	customers ExistenceChecker
	audit     *AuditLogger
}

func NewEngagementService(store EngagementStore, campaigns, customers ExistenceChecker, audit *AuditLogger) *EngagementService {
	return &EngagementService{store: store, campaigns: campaigns, customers: customers, audit: audit}
}

func (s *EngagementService) validate(ctx context.Context, e *model.Engagement) error {
	if e.RedemptionCount < 0 {
		return fmt.Errorf("%w: redemption count must not be negative", ErrInvalidArgument)
	}
	if e.PurchaseValue < 0.01 {
		return fmt.Errorf("%w: purchase value must be at least 0.01", ErrInvalidArgument)
	}
	ok, err := s.campaigns.Exists(ctx, e.CampaignID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: campaign %d", ErrNotFound, e.CampaignID)
	}
	ok, err = s.customers.Exists(ctx, e.CustomerID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: customer %d", ErrNotFound, e.CustomerID)
	}
	return nil
}

// Track records one engagement.
func (s *EngagementService) Track(ctx context.Context, e *model.Engagement) (*model.Engagement, error) {
	if err := s.validate(ctx, e); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "Create", "Engagement", strconv.Itoa(e.EngagementID), e)
	return e, nil
}

func (s *EngagementService) GetByID(ctx context.Context, id int) (*model.Engagement, error) {
	e, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: engagement %d", ErrNotFound, id)
	}
	return e, err
}

func (s *EngagementService) List(ctx context.Context, req page.Request) (page.Result[model.Engagement], error) {
	res, err := s.store.List(ctx, req)
	if errors.Is(err, page.ErrInvalidArgument) {
		return res, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return res, err
}

func (s *EngagementService) Update(ctx context.Context, e *model.Engagement) (*model.Engagement, error) {
	if err := s.validate(ctx, e); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: engagement %d", ErrNotFound, e.EngagementID)
		}
		return nil, err
	}
	s.audit.Record(ctx, "Update", "Engagement", strconv.Itoa(e.EngagementID), e)
	return e, nil
}

func (s *EngagementService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: engagement %d", ErrNotFound, id)
		}
		return err
	}
	s.audit.Record(ctx, "Delete", "Engagement", strconv.Itoa(id), nil)
	return nil
}
