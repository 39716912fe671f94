package account

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"chore-coin-go/internal/domain/apperr"
	"github.com/google/uuid"
)

type Service struct {
	repo       Repository
	limiter    AttemptLimiter
	iterations int
}

type Option func(*Service)

func WithAttemptLimiter(limiter AttemptLimiter) Option {
	return func(s *Service) {
		if limiter != nil {
			s.limiter = limiter
		}
	}
}

func WithPasscodeIterations(iterations int) Option {
	return func(s *Service) {
		if iterations > 0 {
			s.iterations = iterations
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		limiter:    noopLimiter{},
		iterations: DefaultPasscodeIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	return s.repo.GetByID(ctx, accountID)
}

// Login creates a child account on the first login of an identity and
// refreshes name and email on later ones.
func (s *Service) Login(ctx context.Context, identity Identity) (*Account, error) {
	subject := strings.TrimSpace(identity.Subject)
	email := strings.TrimSpace(identity.Email)
	if subject == "" {
		return nil, apperr.Validation("sub", "identity subject is required")
	}
	if email == "" {
		return nil, apperr.Validation("email", "identity email is required")
	}

	candidate := Account{
		ID:       uuid.NewString(),
		GoogleID: subject,
		Email:    email,
		Name:     strings.TrimSpace(identity.Name),
		UserType: RoleChild,
	}
	if err := s.repo.UpsertIdentity(ctx, &candidate); err != nil {
		return nil, err
	}

	return s.repo.GetByGoogleID(ctx, subject)
}

func (s *Service) SetPasscode(ctx context.Context, accountID, newPasscode string, currentPasscode *string) (*Account, error) {
	if utf8.RuneCountInString(newPasscode) < MinPasscodeLength {
		return nil, apperr.Validation("newPasscode", fmt.Sprintf("passcode must be at least %d characters", MinPasscodeLength))
	}

	acc, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if acc.HasPasscode() {
		if currentPasscode == nil || *currentPasscode == "" {
			return nil, ErrPasscodeRequired
		}
		if err := s.verify(ctx, acc, *currentPasscode); err != nil {
			return nil, err
		}
	}

	hash, err := HashPasscode(newPasscode, s.iterations)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePasscodeHash(ctx, acc.ID, hash); err != nil {
		return nil, err
	}

	acc.ParentPasscodeHash = &hash
	return acc, nil
}

// ChangeRole switches between parent and child. Every request for parent
// mode verifies the passcode on file, even when the account already is a
// parent; becoming a child is always allowed.
func (s *Service) ChangeRole(ctx context.Context, accountID, role string, passcode *string) (*Account, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != RoleParent && role != RoleChild {
		return nil, apperr.Validation("userType", "invalid user type")
	}

	acc, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if role == RoleParent {
		if !acc.HasPasscode() {
			return nil, ErrPasscodeNotSet
		}
		if passcode == nil || *passcode == "" {
			return nil, ErrPasscodeRequired
		}
		if err := s.verify(ctx, acc, *passcode); err != nil {
			return nil, err
		}
	}

	if acc.UserType == role {
		return acc, nil
	}
	if err := s.repo.UpdateRole(ctx, acc.ID, role); err != nil {
		return nil, err
	}

	acc.UserType = role
	return acc, nil
}

func (s *Service) verify(ctx context.Context, acc *Account, passcode string) error {
	allowed, err := s.limiter.Reserve(ctx, acc.ID)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrTooManyAttempts
	}

	if !VerifyPasscode(passcode, *acc.ParentPasscodeHash) {
		return ErrPasscodeMismatch
	}

	return s.limiter.Reset(ctx, acc.ID)
}
