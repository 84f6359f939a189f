package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
	"github.com/promopilot/promopilot-api/internal/repository"
)

// ProductStore is the product storage the service needs.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id int) (*model.Product, error)
	List(ctx context.Context, req page.Request) (page.Result[model.Product], error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int) error
}

// ProductService manages the product catalogue.
type ProductService struct {
	store ProductStore
	audit *AuditLogger
}

func NewProductService(store ProductStore, audit *AuditLogger) *ProductService {
	return &ProductService{store: store, audit: audit}
}

func (s *ProductService) validate(p *model.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidArgument)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "Create", "Product", strconv.Itoa(p.ProductID), p)
	return p, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int) (*model.Product, error) {
	p, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	return p, err
}

func (s *ProductService) List(ctx context.Context, req page.Request) (page.Result[model.Product], error) {
	res, err := s.store.List(ctx, req)
	if errors.Is(err, page.ErrInvalidArgument) {
		return res, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return res, err
}

func (s *ProductService) Update(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := s.validate(p); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, p.ProductID)
		}
		return nil, err
	}
	s.audit.Record(ctx, "Update", "Product", strconv.Itoa(p.ProductID), p)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}
	s.audit.Record(ctx, "Delete", "Product", strconv.Itoa(id), nil)
	return nil
}
