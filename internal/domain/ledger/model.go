package ledger

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Kind string

// MaxPoints bounds a single chore or reward; the points columns are 32-bit.
const MaxPoints = math.MaxInt32

const (
	KindEarn  Kind = "earn"
	KindClaim Kind = "claim"
)

// Entry is an immutable point-affecting fact. Name is a snapshot of the chore
// or reward name at the time of the event, not a reference.
type Entry struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"column:user_id;type:uuid;index;not null"`
	Type      Kind      `gorm:"type:varchar(8);not null"`
	Name      string    `gorm:"not null"`
	Points    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Entry) TableName() string {
	return "history"
}

type Balance struct {
	Earned  int
	Claimed int
	Total   int
}

// Filter bounds are calendar dates and both ends are inclusive.
type Filter struct {
	From *time.Time
	To   *time.Time
}

func NewEntry(accountID string, kind Kind, label string, points int) Entry {
	return Entry{
		ID:        uuid.NewString(),
		UserID:    accountID,
		Type:      kind,
		Name:      label,
		Points:    points,
		CreatedAt: time.Now().UTC(),
	}
}

// Fold derives a balance from the full list of entries of one account.
func Fold(entries []Entry) Balance {
	var balance Balance
	for _, entry := range entries {
		switch entry.Type {
		case KindEarn:
			balance.Earned += entry.Points
		case KindClaim:
			balance.Claimed += entry.Points
		}
	}
	balance.Total = balance.Earned - balance.Claimed
	return balance
}
