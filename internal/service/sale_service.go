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

// SaleStore is the sale storage the service needs.
type SaleStore interface {
	Create(ctx context.Context, s *model.Sale) error
	GetByID(ctx context.Context, id int) (*model.Sale, error)
	List(ctx context.Context, req page.Request) (page.Result[model.Sale], error)
	Update(ctx context.Context, s *model.Sale) error
	Delete(ctx context.Context, id int) error
}

// SaleService records sales made under campaigns.
type SaleService struct {
	store     SaleStore
	campaigns ExistenceChecker
	audit     *AuditLogger
}

func NewSaleService(store SaleStore, campaigns ExistenceChecker, audit *AuditLogger) *SaleService {
	return &SaleService{store: store, campaigns: campaigns, audit: audit}
}

func (s *SaleService) validate(ctx context.Context, sale *model.Sale) error {
	if sale.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidArgument)
	}
	if sale.TotalAmount < 0 {
		return fmt.Errorf("%w: total amount must not be negative", ErrInvalidArgument)
	}
	ok, err := s.campaigns.Exists(ctx, sale.CampaignID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: campaign %d", ErrNotFound, sale.CampaignID)
	}
	return nil
}

// Process records a sale.
func (s *SaleService) Process(ctx context.Context, sale *model.Sale) (*model.Sale, error) {
	if err := s.validate(ctx, sale); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, sale); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "Create", "Sale", strconv.Itoa(sale.SaleID), sale)
	return sale, nil
}

func (s *SaleService) GetByID(ctx context.Context, id int) (*model.Sale, error) {
	sale, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: sale %d", ErrNotFound, id)
	}
	return sale, err
}

func (s *SaleService) List(ctx context.Context, req page.Request) (page.Result[model.Sale], error) {
	res, err := s.store.List(ctx, req)
	if errors.Is(err, page.ErrInvalidArgument) {
		return res, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return res, err
}

func (s *SaleService) Update(ctx context.Context, sale *model.Sale) (*model.Sale, error) {
	if err := s.validate(ctx, sale); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, sale); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: sale %d", ErrNotFound, sale.SaleID)
		}
		return nil, err
	}
	s.audit.Record(ctx, "Update", "Sale", strconv.Itoa(sale.SaleID), sale)
	return sale, nil
}

func (s *SaleService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: sale %d", ErrNotFound, id)
		}
		return err
	}
	s.audit.Record(ctx, "Delete", "Sale", strconv.Itoa(id), nil)
	return nil
}
