package account

import "time"

const (
	RoleParent = "parent"
	RoleChild  = "child"
)

type Account struct {
	ID                 string    `gorm:"type:uuid;primaryKey"`
	GoogleID           string    `gorm:"column:google_id;uniqueIndex;not null"`
	Email              string    `gorm:"not null"`
	Name               string    `gorm:"not null"`
	UserType           string    `gorm:"column:user_type;type:varchar(16);not null;default:child"`
	ParentPasscodeHash *string   `gorm:"column:parent_passcode_hash"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (Account) TableName() string {
	return "users"
}

func (a Account) HasPasscode() bool {
	return a.ParentPasscodeHash != nil && *a.ParentPasscodeHash != ""
}

// Identity is what a federated login provider vouches for.
type Identity struct {
	Subject string
	Email   string
	Name    string
}
