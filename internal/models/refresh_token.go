package models

import (
	"time"
)

// RefreshToken is a stored, revocable refresh token. Rotation on use and
// revocation on logout both happen through the IsRevoked flag; rows are
// kept for audit rather than deleted.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Usable reports whether the token can still mint a new access token.
func (t *RefreshToken) Usable() bool {
	return !t.IsRevoked && time.Now().Before(t.ExpiresAt)
}
