package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User invariant: IssuedBooks is exactly the set of books with an open
// (active or overdue) activity for this user.
type User struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Email        string      `json:"email" db:"email"`
	PasswordHash string      `json:"-" db:"password_hash"`
	Role         Role        `json:"role" db:"role"`
	Phone        string      `json:"phone" db:"phone"`
	Address      string      `json:"address" db:"address"`
	JoinDate     time.Time   `json:"joinDate" db:"join_date"`
	IsActive     bool        `json:"isActive" db:"is_active"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
	IssuedBooks  []uuid.UUID `json:"issuedBooks" db:"-"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        User      `json:"user"`
}

type ProfileRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UserFilter struct {
	Search string
	// Role is empty for all roles.
	Role Role
	// Active is nil for all users.
	Active *bool
}

type ListUsers struct {
	Paging `json:",inline"`
	Items  []User `json:"items"`
}

type UserDetails struct {
	User           User           `json:"user"`
	Activities     []ActivityView `json:"activities"`
	CurrentBorrows []ActivityView `json:"currentBorrows"`
}
