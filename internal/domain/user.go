package domain

import "time"

type Role string

const (
	RoleUser   Role = "user"   // renter
	RoleClient Role = "client" // vehicle owner
	RoleAdmin  Role = "admin"
)

type User struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	BusinessName string    `json:"business_name,omitempty"`
	// Registered device endpoints for push delivery. A user may hold tokens
	// for several devices; stale ones are pruned after failed sends.
	PushTokens []string  `json:"push_tokens,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
