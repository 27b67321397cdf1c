package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the access level carried in a user's token.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents an account of the store.
type User struct {
	ID                string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	FirstName         string         `json:"f_name" gorm:"column:f_name;type:varchar(100)"`
	LastName          string         `json:"l_name" gorm:"column:l_name;type:varchar(100)"`
	Email             string         `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password          string         `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	ProfilePicture    string         `json:"profile_picture,omitempty" gorm:"type:varchar(255)"`
	Role              Role           `json:"role" gorm:"type:varchar(10);default:user"`
	Verified          bool           `json:"verified"`
	VerificationToken string         `json:"-" gorm:"index;type:varchar(36)"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// Customer holds the shipping profile of a user. Every user gets one at registration.
type Customer struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string         `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Address     string         `json:"address"`
	PostalCode  string         `json:"postal_code"`
	Country     string         `json:"country"`
	PhoneNumber string         `json:"phone_number"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// Profile is a user joined with its customer row, as returned by the profile endpoints.
type Profile struct {
	ID             string `json:"id"`
	FirstName      string `json:"f_name"`
	LastName       string `json:"l_name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	Role           Role   `json:"role"`
	Verified       bool   `json:"verified"`
	CustomerID     string `json:"customer_id,omitempty"`
	Address        string `json:"address"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country"`
	PhoneNumber    string `json:"phone_number"`
}
