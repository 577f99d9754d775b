package models

import (
	"time"
)

// RoleType represents a user role
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleTeacher RoleType = "TEACHER"
	RoleStudent RoleType = "STUDENT"
)

// User defines the user profile model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"admin@edusphere.in"`
	Password    string     `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName   string     `json:"firstName" db:"first_name" example:"Asha"`
	LastName    string     `json:"lastName" db:"last_name" example:"Verma"`
	Phone       string     `json:"phone,omitempty" db:"phone" example:"+919876543210"`
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
