package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a library user.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36" example:"94c7e23a-0474-4d7c-979c-d647e70df3b5"`
	Name         string    `json:"name" gorm:"size:255;not null" example:"Julia"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex" example:"julia@example.com"`
	RegisterDate time.Time `json:"registerDate" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"precision:6"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"precision:6"`
}

// BeforeCreate assigns a fresh id, the creation time and, if unset, the
// registration time.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = creationTime()
	}
	if u.RegisterDate.IsZero() {
		u.RegisterDate = time.Now()
	}
	return nil
}

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Name  string `json:"name" example:"Julia"`
	Email string `json:"email" example:"julia@example.com"`
}

// UpdateUserNameRequest is the request body for renaming a user.
type UpdateUserNameRequest struct {
	Name string `json:"name" example:"Julia"`
}
