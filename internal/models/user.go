package models

import (
	"time"
)

// Role is a user's authorization role
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// UserStatus is a user's account status
type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusBlocked UserStatus = "BLOCKED"
)

// User represents a user in the system. PasswordHash is empty for
// accounts created through social login.
type User struct {
	ID            string     `json:"id" gorm:"type:uuid;primaryKey"`
	Email         string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name          string     `json:"name" gorm:"type:varchar(255);not null"`
	PasswordHash  string     `json:"-" gorm:"type:varchar(255)"`
	Role          Role       `json:"role" gorm:"type:varchar(16);not null;default:'USER'"`
	Status        UserStatus `json:"status" gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	EmailVerified bool       `json:"emailVerified" gorm:"not null;default:false"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ValidRoles defines allowed user roles
var ValidRoles = map[Role]bool{
	RoleUser:  true,
	RoleAdmin: true,
}
