package handler

import (
	"context"

	accountdomain "chore-coin-go/internal/domain/account"
	choresdomain "chore-coin-go/internal/domain/chores"
	ledgerdomain "chore-coin-go/internal/domain/ledger"
	rewardsdomain "chore-coin-go/internal/domain/rewards"
	"chore-coin-go/pkg/logger"
)

type AccountService interface {
	GetAccount(ctx context.Context, accountID string) (*accountdomain.Account, error)
	Login(ctx context.Context, identity accountdomain.Identity) (*accountdomain.Account, error)
	SetPasscode(ctx context.Context, accountID, newPasscode string, currentPasscode *string) (*accountdomain.Account, error)
	ChangeRole(ctx context.Context, accountID, role string, passcode *string) (*accountdomain.Account, error)
}

type ChoreService interface {
	ListChores(ctx context.Context, accountID string) ([]choresdomain.Chore, error)
	CreateChore(ctx context.Context, accountID string, input choresdomain.CreateChoreInput) (*choresdomain.Chore, error)
	UpdateChore(ctx context.Context, accountID string, input choresdomain.UpdateChoreInput) (*choresdomain.Chore, error)
	DeleteChore(ctx context.Context, accountID, choreID string) error
	CompleteChore(ctx context.Context, accountID, choreID string) (*choresdomain.Completion, error)
}

type RewardService interface {
	ListRewards(ctx context.Context, accountID string) ([]rewardsdomain.Reward, error)
	CreateReward(ctx context.Context, accountID string, input rewardsdomain.CreateRewardInput) (*rewardsdomain.Reward, error)
	UpdateReward(ctx context.Context, accountID string, input rewardsdomain.UpdateRewardInput) (*rewardsdomain.Reward, error)
	DeleteReward(ctx context.Context, accountID, rewardID string) error
	ClaimReward(ctx context.Context, accountID, rewardID string) (*rewardsdomain.Redemption, error)
}

type LedgerService interface {
	Balance(ctx context.Context, accountID string) (ledgerdomain.Balance, error)
	History(ctx context.Context, accountID string, filter ledgerdomain.Filter) ([]ledgerdomain.Entry, error)
}

// IdentityVerifier turns a federated ID token into a verified identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (accountdomain.Identity, error)
}

type TokenIssuer interface {
	Issue(accountID, email string) (string, error)
}

type Deps struct {
	Accounts AccountService
	Chores   ChoreService
	Rewards  RewardService
	Ledger   LedgerService
	Identity IdentityVerifier
	Tokens   TokenIssuer
}

type Handlers struct {
	Accounts AccountService
	Chores   ChoreService
	Rewards  RewardService
	Ledger   LedgerService

	identity     IdentityVerifier
	tokens       TokenIssuer
	log          logger.Logger
	exposeDetail bool
}

// New builds the HTTP handlers. exposeDetail appends internal error text to
// 500 responses and is meant for development only.
func New(deps Deps, log logger.Logger, exposeDetail bool) *Handlers {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handlers{
		Accounts:     deps.Accounts,
		Chores:       deps.Chores,
		Rewards:      deps.Rewards,
		Ledger:       deps.Ledger,
		identity:     deps.Identity,
		tokens:       deps.Tokens,
		log:          log,
		exposeDetail: exposeDetail,
	}
}
