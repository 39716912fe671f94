package ledger

import (
	"context"

	"chore-coin-go/internal/domain/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Balance is recomputed from the ledger on every call.
func (s *Service) Balance(ctx context.Context, accountID string) (Balance, error) {
	return s.repo.Totals(ctx, accountID)
}

func (s *Service) History(ctx context.Context, accountID string, filter Filter) ([]Entry, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, apperr.Validation("endDate", "endDate must not be before startDate")
	}

	entries, err := s.repo.ListEntries(ctx, accountID, filter)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
