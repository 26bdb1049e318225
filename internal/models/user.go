package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	BaseModel

	Name            string `gorm:"not null"`
	Email           string `gorm:"uniqueIndex;not null"`
	PasswordHash    string `gorm:"not null"`
	Role            Role   `gorm:"size:16;not null"`
	EmailVerifiedAt *time.Time

	// Relationships
	AccessTokens []AccessToken `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) HasVerifiedEmail() bool {
	return u.EmailVerifiedAt != nil
}
