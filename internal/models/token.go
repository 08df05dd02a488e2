package models

import "time"

// RevokedToken blacklists a JWT by its jti claim after logout. Rows
// become irrelevant once ExpiresAt passes.
type RevokedToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JTI       string    `json:"jti" gorm:"size:64;uniqueIndex"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
