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

// CustomerStore is the customer storage the service needs.
type CustomerStore interface {
	Create(ctx context.Context, c *model.Customer) error
	GetByID(ctx context.Context, id int) (*model.Customer, error)
	List(ctx context.Context, req page.Request) (page.Result[model.Customer], error)
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id int) error
}

// CustomerService manages the customer registry.
type CustomerService struct {
	store CustomerStore
	audit *AuditLogger
}

func NewCustomerService(store CustomerStore, audit *AuditLogger) *CustomerService {
	return &CustomerService{store: store, audit: audit}
}

func (s *CustomerService) validate(c *model.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidArgument)
	}
	return nil
}

func (s *CustomerService) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if err := s.validate(c); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "Create", "Customer", strconv.Itoa(c.CustomerID), c)
	return c, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id int) (*model.Customer, error) {
	c, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: customer %d", ErrNotFound, id)
	}
	return c, err
}

func (s *CustomerService) List(ctx context.Context, req page.Request) (page.Result[model.Customer], error) {
	res, err := s.store.List(ctx, req)
	if errors.Is(err, page.ErrInvalidArgument) {
		return res, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return res, err
}

func (s *CustomerService) Update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if err := s.validate(c); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, c.CustomerID)
		}
		return nil, err
	}
	s.audit.Record(ctx, "Update", "Customer", strconv.Itoa(c.CustomerID), c)
	return c, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: customer %d", ErrNotFound, id)
		}
		return err
	}
	s.audit.Record(ctx, "Delete", "Customer", strconv.Itoa(id), nil)
	return nil
}
