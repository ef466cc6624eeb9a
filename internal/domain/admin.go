package domain

import "time"

type Admin struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Credentials struct {
	Username  string
	Password  string
	UserAgent string
}

// Session is the result of a successful login.
type Session struct {
	Admin     Admin
	Token     string
	ExpiresAt time.Time
}
