package models

import (
	"time"
)

type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleAdmin   UserRole = "admin"
	RoleScholar UserRole = "scholar"
)

// User is an account. Email is stored lower-cased; the password hash is never
// serialized.
type User struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Password  string    `json:"-" gorm:"column:password_hash;not null"`
	Role      UserRole  `json:"role" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleScholar:
		return true
	}
	return false
}
