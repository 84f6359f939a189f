package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/promopilot/promopilot-api/internal/model"
	"github.com/promopilot/promopilot-api/internal/page"
	"github.com/promopilot/promopilot-api/internal/repository"
)

// CampaignStore is the campaign storage the service needs.
type CampaignStore interface {
	Create(ctx context.Context, c *model.Campaign) error
	GetByID(ctx context.Context, id int) (*model.Campaign, error)
	List(ctx context.Context, req page.Request) (page.Result[model.Campaign], error)
	Update(ctx context.Context, c *model.Campaign) error
	Delete(ctx context.Context, id int) error
	Exists(ctx context.Context, id int) (bool, error)
	ExistsByNameAndDates(ctx context.Context, name string, start, end time.Time, excludeID int) (bool, error)
	ListOverlapping(ctx context.Context, start, end time.Time, excludeID int) ([]model.Campaign, error)
}

// CampaignService guards the campaign lifecycle: planning, scheduling and
// the overlap rules that keep two campaigns from targeting the same product
// in the same store at the same time.
type CampaignService struct {
	store CampaignStore
	audit *AuditLogger
}

func NewCampaignService(store CampaignStore, audit *AuditLogger) *CampaignService {
	return &CampaignService{store: store, audit: audit}
}

// SplitList splits a comma-separated list into trimmed, non-empty entries.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// listsIntersect reports whether two comma-separated lists share an entry,
// compared case-insensitively.
func listsIntersect(a, b string) bool {
	seen := make(map[string]struct{})
	for _, v := range SplitList(a) {
		seen[strings.ToLower(v)] = struct{}{}
	}
	for _, v := range SplitList(b) {
		if _, ok := seen[strings.ToLower(v)]; ok {
			return true
		}
	}
	return false
}

// MergeStoreLists unions two comma-separated store lists. Matching is
// case-insensitive; the first spelling seen wins and order is preserved.
func MergeStoreLists(existing, added string) string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range append(SplitList(existing), SplitList(added)...) {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return strings.Join(out, ",")
}

func (s *CampaignService) validate(c *model.Campaign) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: campaign name is required", ErrInvalidArgument)
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("%w: end date precedes start date", ErrInvalidArgument)
	}
	return nil
}

// checkConflicts enforces the duplicate and overlap rules. excludeID skips
// the campaign itself on update.
func (s *CampaignService) checkConflicts(ctx context.Context, c *model.Campaign, excludeID int) error {
	dup, err := s.store.ExistsByNameAndDates(ctx, c.Name, c.StartDate, c.EndDate, excludeID)
	if err != nil {
		return err
	}
	if dup {
		return fmt.Errorf("%w: a campaign named %q already covers these dates", ErrConflict, c.Name)
	}

	others, err := s.store.ListOverlapping(ctx, c.StartDate, c.EndDate, excludeID)
	if err != nil {
		return err
	}
	for _, other := range others {
		if listsIntersect(c.StoreList, other.StoreList) && listsIntersect(c.TargetProducts, other.TargetProducts) {
			return fmt.Errorf("%w: overlaps campaign %d on shared stores and products", ErrConflict, other.CampaignID)
		}
	}
	return nil
}

// Plan creates a campaign after the duplicate and overlap checks.
func (s *CampaignService) Plan(ctx context.Context, c *model.Campaign) (*model.Campaign, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := s.validate(c); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, c, 0); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "Create", "Campaign", strconv.Itoa(c.CampaignID), c)
	return c, nil
}

func (s *CampaignService) GetByID(ctx context.Context, id int) (*model.Campaign, error) {
	c, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: campaign %d", ErrNotFound, id)
	}
	return c, err
}

func (s *CampaignService) List(ctx context.Context, req page.Request) (page.Result[model.Campaign], error) {
	res, err := s.store.List(ctx, req)
	if errors.Is(err, page.ErrInvalidArgument) {
		return res, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return res, err
}

// Update rewrites a campaign under the same rules as Plan.
func (s *CampaignService) Update(ctx context.Context, c *model.Campaign) (*model.Campaign, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := s.validate(c); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, c.CampaignID); err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, c, c.CampaignID); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: campaign %d", ErrNotFound, c.CampaignID)
		}
		return nil, err
	}
	s.audit.Record(ctx, "Update", "Campaign", strconv.Itoa(c.CampaignID), c)
	return c, nil
}

// Cancel removes a campaign.
func (s *CampaignService) Cancel(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: campaign %d", ErrNotFound, id)
		}
		return err
	}
	s.audit.Record(ctx, "Delete", "Campaign", strconv.Itoa(id), nil)
	return nil
}

// Schedule extends a campaign's store list with additional stores. The
// merge is a case-insensitive union.
func (s *CampaignService) Schedule(ctx context.Context, id int, stores string) (*model.Campaign, error) {
	if len(SplitList(stores)) == 0 {
		return nil, fmt.Errorf("%w: store list is required", ErrInvalidArgument)
	}
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.StoreList = MergeStoreLists(c.StoreList, stores)
	if err := s.store.Update(ctx, c); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, "Schedule", "Campaign", strconv.Itoa(id), c)
	return c, nil
}
