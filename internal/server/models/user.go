package models

import "time"

// User is an account row. PasswordHash is a bcrypt hash, never the password.
type User struct {
	ID           string
	UserName     string
	PasswordHash []byte
	CreatedAt    time.Time
}
