package rewards

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

func (s *Service) ListRewards(ctx context.Context, accountID string) ([]Reward, error) {
	items, err := s.repo.ListRewards(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Reward{}
	}
	return items, nil
}

func (s *Service) CreateReward(ctx context.Context, accountID string, input CreateRewardInput) (*Reward, error) {
	name, cost, err := validateReward(input.Name, input.Points)
	if err != nil {
		return nil, err
	}

	reward := Reward{
		ID:     uuid.NewString(),
		UserID: accountID,
		Name:   name,
		Points: cost,
	}
	if err := s.repo.CreateReward(ctx, &reward); err != nil {
		return nil, err
	}

	return &reward, nil
}

func (s *Service) UpdateReward(ctx context.Context, accountID string, input UpdateRewardInput) (*Reward, error) {
	name, cost, err := validateReward(input.Name, input.Points)
	if err != nil {
		return nil, err
	}

	reward, err := s.repo.GetReward(ctx, accountID, input.ID)
	if err != nil {
		return nil, err
	}

	reward.Name = name
	reward.Points = cost

	updated, err := s.repo.UpdateReward(ctx, reward)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrRewardNotFound
	}

	return reward, nil
}

func (s *Service) DeleteReward(ctx context.Context, accountID, rewardID string) error {
	deleted, err := s.repo.DeleteReward(ctx, accountID, rewardID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRewardNotFound
	}
	return nil
}

// ClaimReward checks the balance and appends the claim entry under the
// account lock, so concurrent claims cannot both spend the same points.
func (s *Service) ClaimReward(ctx context.Context, accountID, rewardID string) (*Redemption, error) {
	var result Redemption
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.LockAccount(ctx, accountID); err != nil {
			return err
		}

		reward, err := tx.GetReward(ctx, accountID, rewardID)
		if err != nil {
			return err
		}

		balance, err := tx.Totals(ctx, accountID)
		if err != nil {
			return err
		}
		if balance.Total < reward.Points {
			return &InsufficientPointsError{
				CurrentPoints:  balance.Total,
				RequiredPoints: reward.Points,
			}
		}

		entry := ledger.NewEntry(accountID, ledger.KindClaim, reward.Name, reward.Points)
		if err := tx.AppendEntry(ctx, &entry); err != nil {
			return err
		}

		after, err := tx.Totals(ctx, accountID)
		if err != nil {
			return err
		}

		result = Redemption{
			RewardID:    reward.ID,
			PointsSpent: reward.Points,
			TotalPoints: after.Total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func validateReward(name string, cost *int) (string, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, apperr.Validation("name", "name is required")
	}
	if cost == nil {
		return "", 0, apperr.Validation("points", "points is required")
	}
	if *cost <= 0 {
		return "", 0, apperr.Validation("points", "points must be a positive integer")
	}
	if *cost > ledger.MaxPoints {
		return "", 0, apperr.Validation("points", "points must not exceed 2147483647")
	}
	return name, *cost, nil
}
