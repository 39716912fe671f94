package chores

import "time"

type Chore struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"column:user_id;type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	Points    int       `gorm:"not null"`
	Recurring bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type CreateChoreInput struct {
	Name      string
	Points    *int
	Recurring bool
}

type UpdateChoreInput struct {
	ID        string
	Name      string
	Points    *int
	Recurring bool
}

// Completion reports the balance after the earn entry was committed.
type Completion struct {
	ChoreID       string
	PointsAwarded int
	TotalPoints   int
	Removed       bool
}
