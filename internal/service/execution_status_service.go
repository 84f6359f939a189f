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

// ExecutionStatusStore is the execution-status storage the service needs.
type ExecutionStatusStore interface {
	Create(ctx context.Context, s *model.ExecutionStatus) error
	GetByID(ctx context.Context, id int) (*model.ExecutionStatus, error)
	List(ctx context.Context, req page.Request) (page.Result[model.ExecutionStatus], error)
	Update(ctx context.Context, s *model.ExecutionStatus) error
	Delete(ctx context.Context, id int) error
}

const minFeedbackLen = 10

// ExecutionStatusService records how stores are running their campaigns.
type ExecutionStatusService struct {
	store     ExecutionStatusStore
	campaigns ExistenceChecker
	audit     *AuditLogger
}

func NewExecutionStatusService(store ExecutionStatusStore, campaigns ExistenceChecker, audit *AuditLogger) *ExecutionStatusService {
	return &ExecutionStatusService{store: store, campaigns: campaigns, audit: audit}
}

func (s *ExecutionStatusService) validate(ctx context.Context, es *model.ExecutionStatus) error {
	if !model.IsExecutionStatus(es.Status) {
		return fmt.Errorf("%w: status must be one of %s",
			ErrInvalidArgument, strings.Join(model.ExecutionStatuses, ", "))
	}
	if fb := strings.TrimSpace(es.Feedback); fb != "" && len(fb) < minFeedbackLen {
		return fmt.Errorf("%w: feedback must be empty or at least %d characters", ErrInvalidArgument, minFeedbackLen)
	}
	ok, err := s.campaigns.Exists(ctx, es.CampaignID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: campaign %d", ErrNotFound, es.CampaignID)
	}
	return nil
}

// Create records a status update from one store.
func (s *ExecutionStatusService) Create(ctx context.Context, es *model.ExecutionStatus) (*model.ExecutionStatus, error) {
	if err := s.validate(ctx, es); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, es); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "Create", "ExecutionStatus", strconv.Itoa(es.StatusID), es)
	return es, nil
}

func (s *ExecutionStatusService) GetByID(ctx context.Context, id int) (*model.ExecutionStatus, error) {
	es, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: execution status %d", ErrNotFound, id)
	}
	return es, err
}

func (s *ExecutionStatusService) List(ctx context.Context, req page.Request) (page.Result[model.ExecutionStatus], error) {
	res, err := s.store.List(ctx, req)
	if errors.Is(err, page.ErrInvalidArgument) {
		return res, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return res, err
}

func (s *ExecutionStatusService) Update(ctx context.Context, es *model.ExecutionStatus) (*model.ExecutionStatus, error) {
	if err := s.validate(ctx, es); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, es); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: execution status %d", ErrNotFound, es.StatusID)
		}
		return nil, err
	}
	s.audit.Record(ctx, "Update", "ExecutionStatus", strconv.Itoa(es.StatusID), es)
	return es, nil
}

func (s *ExecutionStatusService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: execution status %d", ErrNotFound, id)
		}
		return err
	}
	s.audit.Record(ctx, "Delete", "ExecutionStatus", strconv.Itoa(id), nil)
	return nil
}
