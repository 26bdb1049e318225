package models

import "time"

// AccessToken is an opaque bearer token issued on login. Only the sha256 of
// the raw value is stored.
type AccessToken struct {
	BaseModel

	UserID     uint   `gorm:"not null;index"`
	Name       string `gorm:"not null"`
	TokenHash  string `gorm:"uniqueIndex;not null"`
	LastUsedAt *time.Time
}
