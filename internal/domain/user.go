package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleStaff UserRole = "staff"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150" validate:"required"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255" validate:"required,email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsStaff reports whether the user has elevated visibility over bookings.
func (u *User) IsStaff() bool {
	return u != nil && u.Role == RoleStaff
}
