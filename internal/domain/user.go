package domain

import "time"

// Roles assignable to users.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
