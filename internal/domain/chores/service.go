package chores

import (
	"context"
	"strings"

	"chore-coin-go/internal/domain/apperr"
	"chore-coin-go/internal/domain/ledger"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListChores(ctx context.Context, accountID string) ([]Chore, error) {
	items, err := s.repo.ListChores(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Chore{}
	}
	return items, nil
}

func (s *Service) CreateChore(ctx context.Context, accountID string, input CreateChoreInput) (*Chore, error) {
	name, points, err := validateChore(input.Name, input.Points)
	if err != nil {
		return nil, err
	}

	chore := Chore{
		ID:        uuid.NewString(),
		UserID:    accountID,
		Name:      name,
		Points:    points,
		Recurring: input.Recurring,
	}
	if err := s.repo.CreateChore(ctx, &chore); err != nil {
		return nil, err
	}

	return &chore, nil
}

func (s *Service) UpdateChore(ctx context.Context, accountID string, input UpdateChoreInput) (*Chore, error) {
	name, points, err := validateChore(input.Name, input.Points)
	if err != nil {
		return nil, err
	}

	chore, err := s.repo.GetChore(ctx, accountID, input.ID)
	if err != nil {
		return nil, err
	}

	chore.Name = name
	chore.Points = points
	chore.Recurring = input.Recurring

	updated, err := s.repo.UpdateChore(ctx, chore)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrChoreNotFound
	}

	return chore, nil
}

func (s *Service) DeleteChore(ctx context.Context, accountID, choreID string) error {
	deleted, err := s.repo.DeleteChore(ctx, accountID, choreID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrChoreNotFound
	}
	return nil
}

// CompleteChore appends an earn entry and, for a one-off chore, removes it.
// Both happen in one transaction holding the account lock.
func (s *Service) CompleteChore(ctx context.Context, accountID, choreID string) (*Completion, error) {
	var result Completion
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.LockAccount(ctx, accountID); err != nil {
			return err
		}

		chore, err := tx.GetChore(ctx, accountID, choreID)
		if err != nil {
			return err
		}

		entry := ledger.NewEntry(accountID, ledger.KindEarn, chore.Name, chore.Points)
		if err := tx.AppendEntry(ctx, &entry); err != nil {
			return err
		}

		if !chore.Recurring {
			deleted, err := tx.DeleteChore(ctx, accountID, chore.ID)
			if err != nil {
				return err
			}
			if !deleted {
				return ErrChoreNotFound
			}
		}

		balance, err := tx.Totals(ctx, accountID)
		if err != nil {
			return err
		}

		result = Completion{
			ChoreID:       chore.ID,
			PointsAwarded: chore.Points,
			TotalPoints:   balance.Total,
			Removed:       !chore.Recurring,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func validateChore(name string, points *int) (string, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, apperr.Validation("name", "name is required")
	}
	if points == nil {
		return "", 0, apperr.Validation("points", "points is required")
	}
	if *points <= 0 {
		return "", 0, apperr.Validation("points", "points must be a positive integer")
	}
	if *points > ledger.MaxPoints {
		return "", 0, apperr.Validation("points", "points must not exceed 2147483647")
	}
	return name, *points, nil
}
