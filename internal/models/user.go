package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // don’t expose hash
	RefreshToken string    `json:"-"` // empty when no session is live
	CreatedAt    time.Time `json:"createdAt"`
}
