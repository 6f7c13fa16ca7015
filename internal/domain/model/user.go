package model

import "time"

// UserRole separates customers from workflow operators.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User represents a registered account.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}
