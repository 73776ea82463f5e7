package entity

import (
	"time"
)

// User represents a registered CRM user in the system
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	FullName     string    `bson:"full_name" json:"full_name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         UserRole  `bson:"role" json:"role"`
	IsActive     bool      `bson:"is_active" json:"is_active"`
	Phone        *string   `bson:"phone,omitempty" json:"phone,omitempty"`
	AvatarURL    *string   `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleAdmin UserRole = "Admin"
	UserRoleStaff UserRole = "Staff"
)

func DefaultRole() UserRole {
	return UserRoleStaff
}

// IsAdmin reports whether the user carries the Admin role.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
