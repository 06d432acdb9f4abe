package models

import (
	"gorm.io/datatypes"
)

// User is a community member. APIKey doubles as the member's credential.
type User struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Name       string         `json:"name" gorm:"size:50;not null"`
	Email      string         `json:"email" gorm:"size:255;not null;uniqueIndex"`
	ProfilePic *string        `json:"profile_pic"`
	APIKey     string         `json:"api_key" gorm:"size:255;not null;uniqueIndex"`
	StartDate  datatypes.Date `json:"start_date" gorm:"not null"`
}

// CreateUserRequest holds the parameters accepted when registering a user
type CreateUserRequest struct {
	Name       string  `validate:"required,max=50"`
	Email      string  `validate:"required"`
	ProfilePic *string `validate:"omitempty"`
}

// UpdateUserRequest holds the parameters of a partial user update.
// A nil field is left untouched.
type UpdateUserRequest struct {
	Name       *string `validate:"omitempty,max=50"`
	Email      *string
	ProfilePic *string
}
