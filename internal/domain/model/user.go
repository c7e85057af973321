package model

import "time"

type Role string

const (
	RoleWaiter Role = "Waiter"
	RoleChef   Role = "Chef"
	RoleAdmin  Role = "Admin"
)

// IsValid は既知のロールかどうかを返す
func (r Role) IsValid() bool {
	switch r {
	case RoleWaiter, RoleChef, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         Role   `gorm:"type:varchar(20);not null"`
	TokenVersion int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
