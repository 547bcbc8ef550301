package models

import "time"

const (
	UserTypeCustomer = "customer"
	UserTypeBarber   = "barber"
)

// Session backs an issued token so staff and customers can be logged out
// server-side. TokenID is the jti claim of the signed token.
type Session struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TokenID  string `gorm:"size:64;uniqueIndex;not null" json:"-"`
	UserType string `gorm:"size:10;not null" json:"user_type"`
	UserID   uint   `gorm:"not null" json:"user_id"`

	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
