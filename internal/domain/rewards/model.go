package rewards

import "time"

// Reward.Points is the cost of claiming the reward.
type Reward struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"column:user_id;type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	Points    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type CreateRewardInput struct {
	Name   string
	Points *int
}

type UpdateRewardInput struct {
	ID     string
	Name   string
	Points *int
}

// Redemption reports the balance after the claim entry was committed.
type Redemption struct {
	RewardID    string
	PointsSpent int
	TotalPoints int
}
