package account

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"chore-coin-go/internal/domain/apperr"
)

const testIterations = 1000

type fakeAccountRepo struct {
	byID map[string]*Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: make(map[string]*Account)}
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, accountID string) (*Account, error) {
	acc, ok := r.byID[accountID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	copied := *acc
	return &copied, nil
}

func (r *fakeAccountRepo) GetByGoogleID(ctx context.Context, googleID string) (*Account, error) {
	for _, acc := range r.byID {
		if acc.GoogleID == googleID {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (r *fakeAccountRepo) UpsertIdentity(ctx context.Context, account *Account) error {
	for _, acc := range r.byID {
		if acc.GoogleID == account.GoogleID {
			acc.Name = account.Name
			acc.Email = account.Email
			return nil
		}
	}
	copied := *account
	r.byID[account.ID] = &copied
	return nil
}

func (r *fakeAccountRepo) UpdateRole(ctx context.Context, accountID, role string) error {
	acc, ok := r.byID[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	acc.UserType = role
	return nil
}

func (r *fakeAccountRepo) UpdatePasscodeHash(ctx context.Context, accountID, hash string) error {
	acc, ok := r.byID[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	acc.ParentPasscodeHash = &hash
	return nil
}

type countingLimiter struct {
	mu       sync.Mutex
	max      int
	attempts map[string]int
}

func newCountingLimiter(max int) *countingLimiter {
	return &countingLimiter{max: max, attempts: make(map[string]int)}
}

func (l *countingLimiter) Reserve(ctx context.Context, accountID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts[accountID]++
	return l.attempts[accountID] <= l.max, nil
}

func (l *countingLimiter) Reset(ctx context.Context, accountID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, accountID)
	return nil
}

func strPtr(v string) *string {
	return &v
}

func seedAccount(repo *fakeAccountRepo, role string) *Account {
	acc := &Account{ID: "acc-1", GoogleID: "google-1", Email: "kid@example.com", Name: "Kid", UserType: role}
	repo.byID[acc.ID] = acc
	return acc
}

func TestHashAndVerifyPasscode(t *testing.T) {
	encoded, err := HashPasscode("1234", testIterations)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if strings.Count(encoded, ".") != 2 || !strings.HasPrefix(encoded, "1000.") {
		t.Fatalf("unexpected encoding %q", encoded)
	}
	if !VerifyPasscode("1234", encoded) {
		t.Fatalf("expected passcode to verify")
	}
	if VerifyPasscode("4321", encoded) {
		t.Fatalf("wrong passcode must not verify")
	}

	again, _ := HashPasscode("1234", testIterations)
	if again == encoded {
		t.Fatalf("expected a fresh salt per hash")
	}
}

func TestVerifyPasscodeRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{"", "plain", "x.y.z", "1000.!!.!!", "-1.c2FsdA==.a2V5"} {
		if VerifyPasscode("1234", encoded) {
			t.Fatalf("expected %q to be rejected", encoded)
		}
	}
}

func TestLoginCreatesChildThenRefreshesProfile(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewService(repo, WithPasscodeIterations(testIterations))
	ctx := context.Background()

	first, err := svc.Login(ctx, Identity{Subject: "google-7", Email: "a@example.com", Name: "Ann"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if first.UserType != RoleChild || first.ID == "" {
		t.Fatalf("expected new child account, got %+v", first)
	}

	second, err := svc.Login(ctx, Identity{Subject: "google-7", Email: "ann@example.com", Name: "Annie"})
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same account, got %s and %s", first.ID, second.ID)
	}
	if second.Email != "ann@example.com" || second.Name != "Annie" {
		t.Fatalf("expected refreshed profile, got %+v", second)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected one account, got %d", len(repo.byID))
	}
}

func TestLoginRequiresSubjectAndEmail(t *testing.T) {
	svc := NewService(newFakeAccountRepo())

	if _, err := svc.Login(context.Background(), Identity{Email: "a@example.com"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for missing subject, got %v", err)
	}
	if _, err := svc.Login(context.Background(), Identity{Subject: "s"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for missing email, got %v", err)
	}
}

func TestSetPasscodeFirstTime(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, RoleChild)
	svc := NewService(repo, WithPasscodeIterations(testIterations))

	acc, err := svc.SetPasscode(context.Background(), "acc-1", "1234", nil)
	if err != nil {
		t.Fatalf("set passcode: %v", err)
	}
	if !acc.HasPasscode() {
		t.Fatalf("expected passcode on account")
	}
	if *repo.byID["acc-1"].ParentPasscodeHash == "1234" {
		t.Fatalf("passcode must not be stored in plaintext")
	}
}

func TestSetPasscodeTooShort(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, RoleChild)
	svc := NewService(repo, WithPasscodeIterations(testIterations))

	_, err := svc.SetPasscode(context.Background(), "acc-1", "123", nil)
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) || verr.Field != "newPasscode" {
		t.Fatalf("expected newPasscode validation error, got %v", err)
	}
}

func TestSetPasscodeReplaceRequiresCurrent(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, RoleParent)
	svc := NewService(repo, WithPasscodeIterations(testIterations))
	ctx := context.Background()

	if _, err := svc.SetPasscode(ctx, "acc-1", "1234", nil); err != nil {
		t.Fatalf("initial set: %v", err)
	}

	if _, err := svc.SetPasscode(ctx, "acc-1", "5678", nil); !errors.Is(err, ErrPasscodeRequired) {
		t.Fatalf("expected ErrPasscodeRequired, got %v", err)
	}
	if _, err := svc.SetPasscode(ctx, "acc-1", "5678", strPtr("0000")); !errors.Is(err, ErrPasscodeMismatch) {
		t.Fatalf("expected ErrPasscodeMismatch, got %v", err)
	}
	if _, err := svc.SetPasscode(ctx, "acc-1", "5678", strPtr("1234")); err != nil {
		t.Fatalf("replace: %v", err)
	}

	stored := *repo.byID["acc-1"].ParentPasscodeHash
	if !VerifyPasscode("5678", stored) || VerifyPasscode("1234", stored) {
		t.Fatalf("expected only the new passcode to verify")
	}
}

func TestChangeRoleParentGate(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, RoleChild)
	svc := NewService(repo, WithPasscodeIterations(testIterations))
	ctx := context.Background()

	if _, err := svc.ChangeRole(ctx, "acc-1", RoleParent, strPtr("1234")); !errors.Is(err, ErrPasscodeNotSet) {
		t.Fatalf("expected ErrPasscodeNotSet, got %v", err)
	}
	if !errors.Is(ErrPasscodeNotSet, apperr.ErrInvalidOperation) {
		t.Fatalf("ErrPasscodeNotSet must be an invalid operation")
	}

	if _, err := svc.SetPasscode(ctx, "acc-1", "1234", nil); err != nil {
		t.Fatalf("set passcode: %v", err)
	}

	if _, err := svc.ChangeRole(ctx, "acc-1", RoleParent, nil); !errors.Is(err, ErrPasscodeRequired) {
		t.Fatalf("expected ErrPasscodeRequired, got %v", err)
	}
	if _, err := svc.ChangeRole(ctx, "acc-1", RoleParent, strPtr("9999")); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if repo.byID["acc-1"].UserType != RoleChild {
		t.Fatalf("role must not change on failed verification")
	}

	acc, err := svc.ChangeRole(ctx, "acc-1", RoleParent, strPtr("1234"))
	if err != nil {
		t.Fatalf("change to parent: %v", err)
	}
	if acc.UserType != RoleParent || repo.byID["acc-1"].UserType != RoleParent {
		t.Fatalf("expected parent role, got %+v", acc)
	}

	acc, err = svc.ChangeRole(ctx, "acc-1", RoleChild, nil)
	if err != nil {
		t.Fatalf("change to child: %v", err)
	}
	if acc.UserType != RoleChild {
		t.Fatalf("expected child role, got %s", acc.UserType)
	}
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, RoleChild)
	svc := NewService(repo)

	_, err := svc.ChangeRole(context.Background(), "acc-1", "admin", nil)
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) || verr.Field != "userType" {
		t.Fatalf("expected userType validation error, got %v", err)
	}
}

func TestChangeRoleParentToParentStillGated(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, RoleParent)
	svc := NewService(repo, WithPasscodeIterations(testIterations))
	ctx := context.Background()

	if _, err := svc.ChangeRole(ctx, "acc-1", "Parent", nil); !errors.Is(err, apperr.ErrInvalidOperation) {
		t.Fatalf("expected invalid operation without a passcode on file, got %v", err)
	}

	if _, err := svc.SetPasscode(ctx, "acc-1", "1234", nil); err != nil {
		t.Fatalf("set passcode: %v", err)
	}
	if _, err := svc.ChangeRole(ctx, "acc-1", RoleParent, strPtr("9999")); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for a wrong passcode, got %v", err)
	}
	if _, err := svc.ChangeRole(ctx, "acc-1", RoleParent, nil); !errors.Is(err, ErrPasscodeRequired) {
		t.Fatalf("expected ErrPasscodeRequired, got %v", err)
	}

	acc, err := svc.ChangeRole(ctx, "acc-1", RoleParent, strPtr("1234"))
	if err != nil {
		t.Fatalf("expected success with the right passcode, got %v", err)
	}
	if acc.UserType != RoleParent {
		t.Fatalf("expected parent, got %s", acc.UserType)
	}
}

func TestChangeRoleChildToChildIsNoop(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, RoleChild)
	svc := NewService(repo)

	acc, err := svc.ChangeRole(context.Background(), "acc-1", "Child", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if acc.UserType != RoleChild {
		t.Fatalf("expected child, got %s", acc.UserType)
	}
}

func TestPasscodeAttemptsAreLimited(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, RoleChild)
	limiter := newCountingLimiter(3)
	svc := NewService(repo, WithPasscodeIterations(testIterations), WithAttemptLimiter(limiter))
	ctx := context.Background()

	if _, err := svc.SetPasscode(ctx, "acc-1", "1234", nil); err != nil {
		t.Fatalf("set passcode: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.ChangeRole(ctx, "acc-1", RoleParent, strPtr("0000")); !errors.Is(err, ErrPasscodeMismatch) {
			t.Fatalf("attempt %d: expected mismatch, got %v", i, err)
		}
	}

	if _, err := svc.ChangeRole(ctx, "acc-1", RoleParent, strPtr("1234")); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts even with the right passcode, got %v", err)
	}

	limiter.attempts["acc-1"] = 2
	if _, err := svc.ChangeRole(ctx, "acc-1", RoleParent, strPtr("1234")); err != nil {
		t.Fatalf("expected success below the limit, got %v", err)
	}
	if limiter.attempts["acc-1"] != 0 {
		t.Fatalf("expected counter reset after success")
	}
}

func TestConcurrentWrongPasscodesStopAtLimit(t *testing.T) {
	repo := newFakeAccountRepo()
	seedAccount(repo, RoleChild)
	limiter := newCountingLimiter(3)
	svc := NewService(repo, WithPasscodeIterations(testIterations), WithAttemptLimiter(limiter))
	ctx := context.Background()

	if _, err := svc.SetPasscode(ctx, "acc-1", "1234", nil); err != nil {
		t.Fatalf("set passcode: %v", err)
	}

	const guesses = 10
	errs := make(chan error, guesses)
	var wg sync.WaitGroup
	for i := 0; i < guesses; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ChangeRole(ctx, "acc-1", RoleParent, strPtr("0000"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var mismatches, blocked int
	for err := range errs {
		switch {
		case errors.Is(err, ErrPasscodeMismatch):
			mismatches++
		case errors.Is(err, ErrTooManyAttempts):
			blocked++
		default:
			t.Fatalf("unexpected error %v", err)
		}
	}
	if mismatches != 3 || blocked != guesses-3 {
		t.Fatalf("expected 3 checked guesses and %d blocked, got %d and %d", guesses-3, mismatches, blocked)
	}
}
